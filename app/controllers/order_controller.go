package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stride/app/models"
	"github.com/shashiranjanraj/stride/app/services"
	"github.com/shashiranjanraj/stride/pkg/bind"
	"github.com/shashiranjanraj/stride/pkg/middleware"
	"github.com/shashiranjanraj/stride/pkg/response"
	"github.com/shashiranjanraj/stride/pkg/ws"
)

type OrderController struct {
	orders *services.OrderService
	feed   *ws.Hub
}

func NewOrderController(orders *services.OrderService, feed *ws.Hub) *OrderController {
	return &OrderController{orders: orders, feed: feed}
}

// requester pulls the authenticated user id out of the request context.
func requester(r *http.Request) (primitive.ObjectID, bool) {
	hex, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

type orderItemRequest struct {
	Product  string  `json:"product" validate:"required"`
	Size     float64 `json:"size" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gte=1"`
}

type placeOrderRequest struct {
	ShippingInfo  models.ShippingInfo `json:"shippingInfo"`
	OrderItems    []orderItemRequest  `json:"orderItems" validate:"required"`
	PaymentInfo   models.PaymentInfo  `json:"paymentInfo"`
	ItemsPrice    float64             `json:"itemsPrice" validate:"gte=0"`
	ShippingPrice float64             `json:"shippingPrice" validate:"gte=0"`
	TotalPrice    float64             `json:"totalPrice" validate:"required,gt=0"`
}

// Place handles POST /api/orders/new.
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var in placeOrderRequest
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	input := services.PlaceOrderInput{
		ShippingInfo:  in.ShippingInfo,
		PaymentInfo:   in.PaymentInfo,
		ItemsPrice:    in.ItemsPrice,
		ShippingPrice: in.ShippingPrice,
		TotalPrice:    in.TotalPrice,
	}
	for _, item := range in.OrderItems {
		input.OrderItems = append(input.OrderItems, services.PlaceOrderItem{
			ProductID: item.Product,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}

	order, err := c.orders.Place(r.Context(), userID, input)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Created(w, response.M{"order": order})
}

// Show handles GET /api/orders/{id}. Owner or admin only.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	order, err := c.orders.Get(r.Context(), chi.URLParam(r, "id"), userID, middleware.IsAdmin(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{"order": order})
}

// MyOrders handles GET /api/orders/me.
func (c *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	orders, err := c.orders.MyOrders(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{"orders": orders})
}

// AllOrders handles GET /api/orders/admin/all.
func (c *OrderController) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, totalAmount, err := c.orders.AllOrders(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{
		"orders":      orders,
		"totalAmount": totalAmount,
	})
}

type statusRequest struct {
	Status string `json:"status" validate:"required,in=Processing,Shipped,Delivered"`
}

// UpdateStatus handles PUT /api/orders/admin/{id}.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), models.OrderStatus(in.Status))
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{"order": order})
}

// Delete handles DELETE /api/orders/admin/{id}.
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, response.M{"message": "Order deleted"})
}

// LiveFeed handles GET /api/orders/admin/live — upgrades the connection
// and streams order events to admin dashboards.
func (c *OrderController) LiveFeed(w http.ResponseWriter, r *http.Request) {
	if c.feed == nil {
		response.Error(w, http.StatusServiceUnavailable, "live feed is not enabled")
		return
	}
	ws.Upgrade(w, r, c.feed)
}
