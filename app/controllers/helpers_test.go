package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stride/app/models"
	"github.com/shashiranjanraj/stride/app/services"
	"github.com/shashiranjanraj/stride/pkg/middleware"
	"github.com/shashiranjanraj/stride/pkg/router"
)

// stubProductStore is a minimal in-memory ProductStore for handler tests.
// Find ignores the filter; filter semantics are covered by service tests.
type stubProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product
}

func newStubProductStore(products ...*models.Product) *stubProductStore {
	s := &stubProductStore{products: make(map[primitive.ObjectID]*models.Product)}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.products[p.ID] = p
	}
	return s
}

func (s *stubProductStore) Find(context.Context, bson.M) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Product{}
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Sizes = append([]models.SizeEntry(nil), p.Sizes...)
	return &cp, nil
}

func (s *stubProductStore) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.products[p.ID] = p
	return nil
}

func (s *stubProductStore) Update(_ context.Context, p *models.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return false, nil
	}
	s.products[p.ID] = p
	return true, nil
}

func (s *stubProductStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

func (s *stubProductStore) DecrementStock(_ context.Context, id primitive.ObjectID, size float64, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return false, nil
	}
	entry := p.FindSize(size)
	if entry == nil || entry.Quantity < qty {
		return false, nil
	}
	entry.Quantity -= qty
	return true, nil
}

func (s *stubProductStore) IncrementStock(_ context.Context, id primitive.ObjectID, size float64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.products[id]; ok {
		if entry := p.FindSize(size); entry != nil {
			entry.Quantity += qty
		}
	}
	return nil
}

func (s *stubProductStore) SetSizeQuantity(_ context.Context, id primitive.ObjectID, size float64, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return false, nil
	}
	entry := p.FindSize(size)
	if entry == nil {
		return false, nil
	}
	entry.Quantity = qty
	return true, nil
}

func (s *stubProductStore) SetSale(_ context.Context, id primitive.ObjectID, onSale bool, salePrice *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.products[id]; ok {
		p.OnSale = onSale
		p.SalePrice = salePrice
	}
	return nil
}

func (s *stubProductStore) AddImage(_ context.Context, id primitive.ObjectID, img models.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.products[id]; ok {
		p.Images = append(p.Images, img)
	}
	return nil
}

func (s *stubProductStore) RemoveImage(_ context.Context, id primitive.ObjectID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.products[id]; ok {
		kept := p.Images[:0]
		for _, img := range p.Images {
			if img.URL != url {
				kept = append(kept, img)
			}
		}
		p.Images = kept
	}
	return nil
}

// stubOrderStore is a minimal in-memory OrderStore for handler tests.
type stubOrderStore struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*models.Order
}

func newStubOrderStore(orders ...*models.Order) *stubOrderStore {
	s := &stubOrderStore{orders: make(map[primitive.ObjectID]*models.Order)}
	for _, o := range orders {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		s.orders[o.ID] = o
	}
	return s
}

func (s *stubOrderStore) Create(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.orders[o.ID] = o
	return nil
}

func (s *stubOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for _, o := range s.orders {
		if o.User == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrderStore) All(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus, deliveredAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o, ok := s.orders[id]; ok {
		o.OrderStatus = status
		if deliveredAt != nil {
			o.DeliveredAt = deliveredAt
		}
	}
	return nil
}

func (s *stubOrderStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return false, nil
	}
	delete(s.orders, id)
	return true, nil
}

// stubUserStore is a minimal in-memory UserStore for handler tests.
type stubUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newStubUserStore(users ...*models.User) *stubUserStore {
	s := &stubUserStore{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = u
	return nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) FindByUserName(_ context.Context, userName string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.UserName == userName {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserStore) Update(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[u.ID] = u
	return nil
}

// newTestAPI mounts the storefront routes over stub-backed services and
// returns the handler.
func newTestAPI(products *stubProductStore, orders *stubOrderStore, users *stubUserStore) http.Handler {
	catalogService := services.NewCatalogService(products)
	orderService := services.NewOrderService(orders, products, nil)
	userService := services.NewUserService(users)

	pc := NewProductController(catalogService)
	oc := NewOrderController(orderService, nil)
	uc := NewUserController(userService)

	r := router.New()
	api := r.Group("/api")

	api.Get("/products", "products.index", pc.Index)
	api.Get("/product/{id}", "products.show", pc.Show)

	admin := api.Group("/admin", middleware.Authenticate, middleware.RequireRole(models.RoleAdmin))
	admin.Post("/product/new", "products.create", pc.Create)
	admin.Put("/product/{id}/stock", "products.stock", pc.UpdateStock)
	admin.Put("/product/{id}/toggle-sale", "products.toggleSale", pc.ToggleSale)

	orderGroup := api.Group("/orders", middleware.Authenticate)
	orderGroup.Post("/new", "orders.place", oc.Place)
	orderGroup.Get("/me", "orders.mine", oc.MyOrders)

	ordersAdmin := orderGroup.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	ordersAdmin.Get("/all", "orders.all", oc.AllOrders)
	ordersAdmin.Put("/{id}", "orders.updateStatus", oc.UpdateStatus)

	orderGroup.Get("/{id}", "orders.show", oc.Show)

	api.Post("/users", "users.register", uc.Register)
	api.Post("/users/login", "users.login", uc.Login)

	return r.Handler()
}
