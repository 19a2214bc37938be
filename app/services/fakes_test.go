package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stride/app/models"
)

// fakeProductStore is an in-memory ProductStore that interprets the same
// bson filters the Mongo repository would.
type fakeProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product

	// failDecrementFor simulates a concurrent order winning the race for
	// these product ids: DecrementStock reports no match.
	failDecrementFor map[primitive.ObjectID]bool
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	s := &fakeProductStore{
		products:         make(map[primitive.ObjectID]*models.Product),
		failDecrementFor: make(map[primitive.ObjectID]bool),
	}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) Find(_ context.Context, filter bson.M) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Product{}
	for _, p := range s.products {
		if matchesFilter(p, filter) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func matchesFilter(p *models.Product, filter bson.M) bool {
	for key, val := range filter {
		switch key {
		case "gender":
			if p.Gender != val.(string) {
				return false
			}
		case "category":
			if p.Category != val.(string) {
				return false
			}
		case "brand":
			if p.Brand != val.(string) {
				return false
			}
		case "attributes.style":
			if p.Attributes.Style != val.(string) {
				return false
			}
		case "onSale":
			if p.OnSale != val.(bool) {
				return false
			}
		case "price":
			bounds := val.(bson.M)
			if min, ok := bounds["$gte"]; ok && p.Price < min.(float64) {
				return false
			}
			if max, ok := bounds["$lte"]; ok && p.Price > max.(float64) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (s *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
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

func (s *fakeProductStore) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.products[p.ID] = p
	return nil
}

func (s *fakeProductStore) Update(_ context.Context, p *models.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return false, nil
	}
	s.products[p.ID] = p
	return true, nil
}

func (s *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

func (s *fakeProductStore) DecrementStock(_ context.Context, id primitive.ObjectID, size float64, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failDecrementFor[id] {
		return false, nil
	}

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

func (s *fakeProductStore) IncrementStock(_ context.Context, id primitive.ObjectID, size float64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.products[id]; ok {
		if entry := p.FindSize(size); entry != nil {
			entry.Quantity += qty
		}
	}
	return nil
}

func (s *fakeProductStore) SetSizeQuantity(_ context.Context, id primitive.ObjectID, size float64, qty int) (bool, error) {
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

func (s *fakeProductStore) SetSale(_ context.Context, id primitive.ObjectID, onSale bool, salePrice *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.products[id]; ok {
		p.OnSale = onSale
		p.SalePrice = salePrice
	}
	return nil
}

func (s *fakeProductStore) AddImage(_ context.Context, id primitive.ObjectID, img models.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.products[id]; ok {
		p.Images = append(p.Images, img)
	}
	return nil
}

func (s *fakeProductStore) RemoveImage(_ context.Context, id primitive.ObjectID, url string) error {
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

// stockOf reads a size's current quantity straight out of the fake.
func (s *fakeProductStore) stockOf(id primitive.ObjectID, size float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.products[id]; ok {
		if entry := p.FindSize(size); entry != nil {
			return entry.Quantity
		}
	}
	return -1
}

// fakeOrderStore is an in-memory OrderStore.
type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*models.Order
	seq    []primitive.ObjectID

	createErr error
}

func newFakeOrderStore(orders ...*models.Order) *fakeOrderStore {
	s := &fakeOrderStore{orders: make(map[primitive.ObjectID]*models.Order)}
	for _, o := range orders {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		s.orders[o.ID] = o
		s.seq = append(s.seq, o.ID)
	}
	return s
}

func (s *fakeOrderStore) Create(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.orders[o.ID] = o
	s.seq = append(s.seq, o.ID)
	return nil
}

func (s *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (s *fakeOrderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for _, id := range s.seq {
		if o := s.orders[id]; o != nil && o.User == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) All(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for _, id := range s.seq {
		if o := s.orders[id]; o != nil {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus, deliveredAt *time.Time) error {
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

func (s *fakeOrderStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return false, nil
	}
	delete(s.orders, id)
	return true, nil
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = u
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
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

func (s *fakeUserStore) FindByUserName(_ context.Context, userName string) (*models.User, error) {
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

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) Update(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[u.ID] = u
	return nil
}
