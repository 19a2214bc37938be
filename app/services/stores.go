package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stride/app/models"
)

// The store interfaces are satisfied by app/repositories and by in-memory
// fakes in tests.

// ProductStore is the persistence surface the catalog service needs.
type ProductStore interface {
	Find(ctx context.Context, filter bson.M) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, size float64, qty int) (bool, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, size float64, qty int) error
	SetSizeQuantity(ctx context.Context, id primitive.ObjectID, size float64, qty int) (bool, error)
	SetSale(ctx context.Context, id primitive.ObjectID, onSale bool, salePrice *float64) error
	AddImage(ctx context.Context, id primitive.ObjectID, img models.Image) error
	RemoveImage(ctx context.Context, id primitive.ObjectID, url string) error
}

// OrderStore is the persistence surface the order service needs.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, deliveredAt *time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// UserStore is the persistence surface the user service needs.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUserName(ctx context.Context, userName string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
}
