package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Allowed values for Product.Gender and Product.Category.
var (
	Genders    = []string{"men", "women", "unisex"}
	Categories = []string{"casual", "training"}
)

// SizeEntry is one (size, quantity) slot in a product's stock list.
// Size is unique within a product; quantity never goes below zero.
type SizeEntry struct {
	Size     float64 `bson:"size" json:"size"`
	Quantity int     `bson:"quantity" json:"quantity"`
	IsEU     bool    `bson:"isEU" json:"isEU"`
}

// Attributes are the free-form style fields of a shoe.
type Attributes struct {
	Color    string `bson:"color" json:"color"`
	Material string `bson:"material" json:"material"`
	Style    string `bson:"style" json:"style"`
}

// Image is a stored product photo.
type Image struct {
	URL string `bson:"url" json:"url"`
}

// Review is a single customer review. Carried on the document; there is
// no write endpoint for reviews yet.
type Review struct {
	User    primitive.ObjectID `bson:"user" json:"user"`
	Name    string             `bson:"name" json:"name"`
	Rating  float64            `bson:"rating" json:"rating"`
	Comment string             `bson:"comment" json:"comment"`
}

// Product is a shoe in the catalogue.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Price        float64            `bson:"price" json:"price"`
	Description  string             `bson:"description" json:"description"`
	Gender       string             `bson:"gender" json:"gender"`
	Category     string             `bson:"category" json:"category"`
	Attributes   Attributes         `bson:"attributes" json:"attributes"`
	Sizes        []SizeEntry        `bson:"sizes" json:"sizes"`
	Brand        string             `bson:"brand" json:"brand"`
	Ratings      float64            `bson:"ratings" json:"ratings"`
	NumOfReviews int                `bson:"numOfReviews" json:"numOfReviews"`
	Reviews      []Review           `bson:"reviews" json:"reviews"`
	Images       []Image            `bson:"images" json:"images"`
	OnSale       bool               `bson:"onSale" json:"onSale"`
	SalePrice    *float64           `bson:"salePrice,omitempty" json:"salePrice,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// TotalStock sums every size's quantity. Computed at read time, never stored.
func (p *Product) TotalStock() int {
	total := 0
	for _, s := range p.Sizes {
		total += s.Quantity
	}
	return total
}

// FindSize returns the stock entry for the given size value, or nil.
func (p *Product) FindSize(size float64) *SizeEntry {
	for i := range p.Sizes {
		if p.Sizes[i].Size == size {
			return &p.Sizes[i]
		}
	}
	return nil
}

// ValidateSale checks the sale invariant: when onSale is set, salePrice
// must be present and strictly below the base price. Run at write time.
func ValidateSale(price float64, onSale bool, salePrice *float64) error {
	if !onSale {
		return nil
	}
	if salePrice == nil {
		return fmt.Errorf("salePrice is required when onSale is true")
	}
	if *salePrice >= price {
		return fmt.Errorf("salePrice must be less than price")
	}
	return nil
}

// ValidateSizes rejects duplicate size values and negative quantities.
func ValidateSizes(sizes []SizeEntry) error {
	seen := make(map[float64]bool, len(sizes))
	for _, s := range sizes {
		if seen[s.Size] {
			return fmt.Errorf("duplicate size %v", s.Size)
		}
		seen[s.Size] = true
		if s.Quantity < 0 {
			return fmt.Errorf("quantity for size %v must not be negative", s.Size)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// ValidGender reports whether g is an allowed gender value.
func ValidGender(g string) bool { return contains(Genders, g) }

// ValidCategory reports whether c is an allowed category value.
func ValidCategory(c string) bool { return contains(Categories, c) }
