package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/stride/app/models"
	"github.com/shashiranjanraj/stride/pkg/database"
)

// ProductRepository handles MongoDB operations for the products collection.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) col() *mongo.Collection {
	return database.Collection("products")
}

// Find returns every product matching the given bson filter.
func (r *ProductRepository) Find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cur, err := r.col().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID looks up a single product. Returns (nil, nil) when absent.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product and fills in its generated id.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	res, err := r.col().InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// Update replaces the stored document with p. Returns false when absent.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) (bool, error) {
	res, err := r.col().ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes a product. Returns false when absent.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// DecrementStock atomically takes qty units from one size slot. The update
// only matches when the slot still holds at least qty units, so concurrent
// orders can never drive a quantity negative. Returns false when the match
// failed (missing size or insufficient stock).
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, size float64, qty int) (bool, error) {
	filter := bson.M{
		"_id": id,
		"sizes": bson.M{"$elemMatch": bson.M{
			"size":     size,
			"quantity": bson.M{"$gte": qty},
		}},
	}
	update := bson.M{"$inc": bson.M{"sizes.$.quantity": -qty}}

	res, err := r.col().UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// IncrementStock gives qty units back to one size slot. Used to compensate
// already-decremented items when a later item in the same order fails.
func (r *ProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, size float64, qty int) error {
	filter := bson.M{
		"_id":        id,
		"sizes.size": size,
	}
	update := bson.M{"$inc": bson.M{"sizes.$.quantity": qty}}

	_, err := r.col().UpdateOne(ctx, filter, update)
	return err
}

// SetSizeQuantity overwrites the quantity of one size slot. Returns false
// when the product has no entry for that size.
func (r *ProductRepository) SetSizeQuantity(ctx context.Context, id primitive.ObjectID, size float64, qty int) (bool, error) {
	filter := bson.M{
		"_id":        id,
		"sizes.size": size,
	}
	update := bson.M{"$set": bson.M{"sizes.$.quantity": qty}}

	res, err := r.col().UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// SetSale updates the sale flag and price together so they never disagree.
func (r *ProductRepository) SetSale(ctx context.Context, id primitive.ObjectID, onSale bool, salePrice *float64) error {
	update := bson.M{"$set": bson.M{"onSale": onSale}}
	if onSale {
		update["$set"].(bson.M)["salePrice"] = salePrice
	} else {
		update["$unset"] = bson.M{"salePrice": ""}
	}
	_, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// AddImage appends an image to the product's gallery.
func (r *ProductRepository) AddImage(ctx context.Context, id primitive.ObjectID, img models.Image) error {
	_, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"images": img}})
	return err
}

// RemoveImage drops an image by URL from the product's gallery.
func (r *ProductRepository) RemoveImage(ctx context.Context, id primitive.ObjectID, url string) error {
	_, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"images": bson.M{"url": url}}})
	return err
}
