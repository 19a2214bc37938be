package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stride/app/models"
	"github.com/shashiranjanraj/stride/pkg/logger"
	"github.com/shashiranjanraj/stride/pkg/metrics"
	"github.com/shashiranjanraj/stride/pkg/ws"
)

// PlaceOrderInput is the validated checkout payload.
type PlaceOrderInput struct {
	ShippingInfo  models.ShippingInfo
	OrderItems    []PlaceOrderItem
	PaymentInfo   models.PaymentInfo
	ItemsPrice    float64
	ShippingPrice float64
	TotalPrice    float64
}

// PlaceOrderItem is one requested line: which product, size, how many.
type PlaceOrderItem struct {
	ProductID string
	Size      float64
	Quantity  int
}

// OrderService owns order placement and the order lifecycle.
type OrderService struct {
	orders   OrderStore
	products ProductStore
	feed     *ws.Hub
}

// NewOrderService wires the order service. feed may be nil when the live
// admin feed is disabled (tests, CLI commands).
func NewOrderService(orders OrderStore, products ProductStore, feed *ws.Hub) *OrderService {
	return &OrderService{orders: orders, products: products, feed: feed}
}

// Place creates an order. All items are validated against live stock
// first; only then are the per-size decrements committed. Each decrement
// is conditional on sufficient quantity, so a racing order cannot drive
// stock negative. If a decrement still fails mid-commit, the already
// decremented items are compensated and the placement fails.
func (s *OrderService) Place(ctx context.Context, userID primitive.ObjectID, in PlaceOrderInput) (*models.Order, error) {
	if len(in.OrderItems) == 0 {
		return nil, InvalidRequest("order must contain at least one item")
	}

	// Validation pass: every product exists, every size has enough stock.
	items := make([]resolvedItem, 0, len(in.OrderItems))
	for _, item := range in.OrderItems {
		if item.Quantity <= 0 {
			return nil, InvalidRequest("quantity must be positive")
		}

		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			metrics.OrderPlacementFailures.WithLabelValues("not_found").Inc()
			return nil, NotFound("Product not found")
		}

		p, err := s.products.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("orders: place: %w", err)
		}
		if p == nil {
			metrics.OrderPlacementFailures.WithLabelValues("not_found").Inc()
			return nil, NotFound("Product not found")
		}

		entry := p.FindSize(item.Size)
		if entry == nil || entry.Quantity < item.Quantity {
			metrics.OrderPlacementFailures.WithLabelValues("insufficient_stock").Inc()
			return nil, InvalidRequest("insufficient stock")
		}

		items = append(items, resolvedItem{product: p, item: item})
	}

	// Commit pass: conditional decrements, compensating on a lost race.
	committed := make([]resolvedItem, 0, len(items))
	for _, r := range items {
		ok, err := s.products.DecrementStock(ctx, r.product.ID, r.item.Size, r.item.Quantity)
		if err == nil && !ok {
			// A concurrent order took the stock between validation and
			// commit.
			metrics.OrderPlacementFailures.WithLabelValues("insufficient_stock").Inc()
			err = InvalidRequest("insufficient stock")
		}
		if err != nil {
			s.compensate(ctx, committed)
			if _, isSvc := err.(*Error); isSvc {
				return nil, err
			}
			return nil, fmt.Errorf("orders: place: %w", err)
		}
		committed = append(committed, r)
	}

	now := time.Now()
	order := &models.Order{
		ShippingInfo:  in.ShippingInfo,
		OrderItems:    make([]models.OrderItem, 0, len(items)),
		PaymentInfo:   in.PaymentInfo,
		ItemsPrice:    in.ItemsPrice,
		ShippingPrice: in.ShippingPrice,
		TotalPrice:    in.TotalPrice,
		User:          userID,
		OrderStatus:   models.StatusProcessing,
		PaidAt:        now,
		CreatedAt:     now,
	}
	for _, r := range items {
		price := r.product.Price
		if r.product.OnSale && r.product.SalePrice != nil {
			price = *r.product.SalePrice
		}
		image := ""
		if len(r.product.Images) > 0 {
			image = r.product.Images[0].URL
		}
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			Product:  r.product.ID,
			Name:     r.product.Name,
			Size:     r.item.Size,
			Quantity: r.item.Quantity,
			Price:    price,
			Image:    image,
		})
		metrics.StockUnitsSold.Add(float64(r.item.Quantity))
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.compensate(ctx, committed)
		return nil, fmt.Errorf("orders: place: %w", err)
	}

	metrics.OrdersPlaced.Inc()
	s.broadcast("order.placed", order)
	return order, nil
}

// resolvedItem pairs a requested line with its looked-up product.
type resolvedItem struct {
	product *models.Product
	item    PlaceOrderItem
}

// compensate returns already-decremented stock after a mid-commit failure.
func (s *OrderService) compensate(ctx context.Context, committed []resolvedItem) {
	for _, r := range committed {
		if err := s.products.IncrementStock(ctx, r.product.ID, r.item.Size, r.item.Quantity); err != nil {
			logger.Error("orders: stock compensation failed",
				"product", r.product.ID.Hex(),
				"size", r.item.Size,
				"quantity", r.item.Quantity,
				"error", err,
			)
		}
	}
}

// Get fetches one order. Only the order's owner or an admin may read it.
func (s *OrderService) Get(ctx context.Context, idHex string, requesterID primitive.ObjectID, isAdmin bool) (*models.Order, error) {
	order, err := s.find(ctx, idHex)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.User != requesterID {
		return nil, Forbidden("You are not allowed to view this order")
	}
	return order, nil
}

// MyOrders returns every order owned by the requesting user.
func (s *OrderService) MyOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("orders: my orders: %w", err)
	}
	return orders, nil
}

// AllOrders returns every order plus the sum of all total prices.
func (s *OrderService) AllOrders(ctx context.Context) ([]models.Order, float64, error) {
	orders, err := s.orders.All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("orders: all orders: %w", err)
	}

	totalAmount := 0.0
	for _, o := range orders {
		totalAmount += o.TotalPrice
	}
	return orders, totalAmount, nil
}

// UpdateStatus transitions an order to a new status. Delivered is
// terminal: once reached, no further transition is permitted. Entering
// Delivered stamps deliveredAt.
func (s *OrderService) UpdateStatus(ctx context.Context, idHex string, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, InvalidRequest("unknown order status")
	}

	order, err := s.find(ctx, idHex)
	if err != nil {
		return nil, err
	}
	if order.OrderStatus == models.StatusDelivered {
		return nil, InvalidRequest("order has already been delivered")
	}

	var deliveredAt *time.Time
	if status == models.StatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, status, deliveredAt); err != nil {
		return nil, fmt.Errorf("orders: update status: %w", err)
	}

	order.OrderStatus = status
	order.DeliveredAt = deliveredAt
	s.broadcast("order.status", order)
	return order, nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, idHex string) error {
	order, err := s.find(ctx, idHex)
	if err != nil {
		return err
	}

	ok, err := s.orders.Delete(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("orders: delete: %w", err)
	}
	if !ok {
		return NotFound("Order not found")
	}
	return nil
}

func (s *OrderService) find(ctx context.Context, idHex string) (*models.Order, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, NotFound("Order not found")
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("orders: find: %w", err)
	}
	if order == nil {
		return nil, NotFound("Order not found")
	}
	return order, nil
}

func (s *OrderService) broadcast(eventType string, order *models.Order) {
	if s.feed == nil {
		return
	}
	s.feed.BroadcastJSON(ws.Event{Type: eventType, Data: order})
}
