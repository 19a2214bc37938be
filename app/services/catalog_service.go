package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stride/app/models"
	"github.com/shashiranjanraj/stride/pkg/cache"
	"github.com/shashiranjanraj/stride/pkg/logger"
)

const (
	catalogCachePrefix = "products:"
	catalogCacheTTL    = 60 * time.Second
)

// ProductFilter is the optional catalog query. Absent fields impose no
// constraint; every supplied field narrows the result set.
type ProductFilter struct {
	Gender   string
	Category string
	Brand    string
	Style    string
	OnSale   *bool
	MinPrice *float64
	MaxPrice *float64
}

// BuildProductFilter turns a ProductFilter into a conjunctive bson filter.
// Exact match on every field except price, which is range-bounded.
func BuildProductFilter(f ProductFilter) bson.M {
	filter := bson.M{}

	if f.Gender != "" {
		filter["gender"] = f.Gender
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Brand != "" {
		filter["brand"] = f.Brand
	}
	if f.Style != "" {
		filter["attributes.style"] = f.Style
	}
	if f.OnSale != nil {
		filter["onSale"] = *f.OnSale
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter
}

func (f ProductFilter) cacheKey() string {
	onSale := "-"
	if f.OnSale != nil {
		onSale = fmt.Sprintf("%t", *f.OnSale)
	}
	minP, maxP := "-", "-"
	if f.MinPrice != nil {
		minP = fmt.Sprintf("%g", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		maxP = fmt.Sprintf("%g", *f.MaxPrice)
	}
	return fmt.Sprintf("%slist:%s|%s|%s|%s|%s|%s|%s",
		catalogCachePrefix, f.Gender, f.Category, f.Brand, f.Style, onSale, minP, maxP)
}

// StockUpdate is one {size, quantity} overwrite in an updateStock request.
type StockUpdate struct {
	Size     float64 `json:"size" validate:"required"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

// CatalogService owns product reads and admin product mutations.
type CatalogService struct {
	products ProductStore
}

func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

// List returns every product matching the filter plus the match count.
// An empty result set is a valid, non-error outcome. Results are served
// cache-aside from Redis with a short TTL.
func (s *CatalogService) List(ctx context.Context, f ProductFilter) ([]models.Product, int, error) {
	key := f.cacheKey()

	var cached []models.Product
	if cache.Get(key, &cached) {
		return cached, len(cached), nil
	}

	products, err := s.products.Find(ctx, BuildProductFilter(f))
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: list: %w", err)
	}

	if err := cache.Set(key, products, catalogCacheTTL); err != nil {
		logger.Warn("catalog: cache set failed", "error", err)
	}
	return products, len(products), nil
}

// Get fetches one product by its hex id.
func (s *CatalogService) Get(ctx context.Context, idHex string) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, NotFound("Product not found")
	}

	key := catalogCachePrefix + "one:" + idHex
	var cached models.Product
	if cache.Get(key, &cached) {
		return &cached, nil
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: get: %w", err)
	}
	if p == nil {
		return nil, NotFound("Product not found")
	}

	if err := cache.Set(key, p, catalogCacheTTL); err != nil {
		logger.Warn("catalog: cache set failed", "error", err)
	}
	return p, nil
}

// Create inserts a new product after validating the domain invariants.
func (s *CatalogService) Create(ctx context.Context, p *models.Product) error {
	if err := s.validate(p); err != nil {
		return err
	}

	if err := s.products.Create(ctx, p); err != nil {
		return fmt.Errorf("catalog: create: %w", err)
	}
	s.invalidate()
	return nil
}

// Update overwrites a product's editable fields. Ratings, reviews, images
// and creation time are preserved from the stored document.
func (s *CatalogService) Update(ctx context.Context, idHex string, in *models.Product) (*models.Product, error) {
	existing, err := s.Get(ctx, idHex)
	if err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Price = in.Price
	existing.Description = in.Description
	existing.Gender = in.Gender
	existing.Category = in.Category
	existing.Attributes = in.Attributes
	existing.Sizes = in.Sizes
	existing.Brand = in.Brand
	existing.OnSale = in.OnSale
	existing.SalePrice = in.SalePrice

	ok, err := s.products.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("catalog: update: %w", err)
	}
	if !ok {
		return nil, NotFound("Product not found")
	}
	s.invalidate()
	return existing, nil
}

// Delete removes a product.
func (s *CatalogService) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return NotFound("Product not found")
	}

	ok, err := s.products.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("catalog: delete: %w", err)
	}
	if !ok {
		return NotFound("Product not found")
	}
	s.invalidate()
	return nil
}

// UpdateStock overwrites per-size quantities. Updates whose size has no
// matching entry are silently ignored. Returns the product as stored after
// the writes.
func (s *CatalogService) UpdateStock(ctx context.Context, idHex string, updates []StockUpdate) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, NotFound("Product not found")
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: update stock: %w", err)
	}
	if p == nil {
		return nil, NotFound("Product not found")
	}

	for _, u := range updates {
		if _, err := s.products.SetSizeQuantity(ctx, id, u.Size, u.Quantity); err != nil {
			return nil, fmt.Errorf("catalog: update stock: %w", err)
		}
	}

	updated, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: update stock: %w", err)
	}
	s.invalidate()
	return updated, nil
}

// ToggleSale enables or disables sale pricing. Enabling requires a
// salePrice strictly below the product's current price; disabling clears it.
func (s *CatalogService) ToggleSale(ctx context.Context, idHex string, onSale bool, salePrice *float64) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, NotFound("Product not found")
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: toggle sale: %w", err)
	}
	if p == nil {
		return nil, NotFound("Product not found")
	}

	if onSale {
		if err := models.ValidateSale(p.Price, true, salePrice); err != nil {
			return nil, InvalidRequest(err.Error())
		}
		p.OnSale = true
		p.SalePrice = salePrice
	} else {
		p.OnSale = false
		p.SalePrice = nil
		salePrice = nil
	}

	if err := s.products.SetSale(ctx, id, onSale, salePrice); err != nil {
		return nil, fmt.Errorf("catalog: toggle sale: %w", err)
	}
	s.invalidate()
	return p, nil
}

// AddImage appends a stored image URL to the product's gallery.
func (s *CatalogService) AddImage(ctx context.Context, idHex, url string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return NotFound("Product not found")
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("catalog: add image: %w", err)
	}
	if p == nil {
		return NotFound("Product not found")
	}

	if err := s.products.AddImage(ctx, id, models.Image{URL: url}); err != nil {
		return fmt.Errorf("catalog: add image: %w", err)
	}
	s.invalidate()
	return nil
}

// RemoveImage drops an image URL from the product's gallery.
func (s *CatalogService) RemoveImage(ctx context.Context, idHex, url string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return NotFound("Product not found")
	}

	if err := s.products.RemoveImage(ctx, id, url); err != nil {
		return fmt.Errorf("catalog: remove image: %w", err)
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) validate(p *models.Product) error {
	if !models.ValidGender(p.Gender) {
		return InvalidRequest("gender must be one of men, women, unisex")
	}
	if !models.ValidCategory(p.Category) {
		return InvalidRequest("category must be one of casual, training")
	}
	if p.Price <= 0 {
		return InvalidRequest("price must be positive")
	}
	if err := models.ValidateSizes(p.Sizes); err != nil {
		return InvalidRequest(err.Error())
	}
	if err := models.ValidateSale(p.Price, p.OnSale, p.SalePrice); err != nil {
		return InvalidRequest(err.Error())
	}
	return nil
}

// invalidate drops every cached catalog read after a product write.
func (s *CatalogService) invalidate() {
	if err := cache.DelPrefix(catalogCachePrefix); err != nil {
		logger.Warn("catalog: cache invalidation failed", "error", err)
	}
}
