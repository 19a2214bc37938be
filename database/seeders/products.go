package seeders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/shashiranjanraj/stride/app/models"
	"github.com/shashiranjanraj/stride/app/repositories"
)

func init() {
	Register("products", SeedProducts)
}

func floatPtr(v float64) *float64 { return &v }

// SeedProducts inserts a small demo catalog when the collection is empty.
func SeedProducts(ctx context.Context) error {
	repo := repositories.NewProductRepository()

	existing, err := repo.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	catalog := []models.Product{
		{
			Name:        "Court Classic",
			Price:       89.99,
			Description: "Everyday low-top with a leather upper.",
			Gender:      "unisex",
			Category:    "casual",
			Attributes:  models.Attributes{Color: "white", Material: "leather", Style: "low-top"},
			Brand:       "Stride",
			Sizes: []models.SizeEntry{
				{Size: 7, Quantity: 10},
				{Size: 8, Quantity: 12},
				{Size: 9, Quantity: 8},
				{Size: 10, Quantity: 5},
			},
		},
		{
			Name:        "Tempo Racer",
			Price:       129.99,
			Description: "Lightweight trainer built for tempo runs.",
			Gender:      "men",
			Category:    "training",
			Attributes:  models.Attributes{Color: "black", Material: "mesh", Style: "runner"},
			Brand:       "Stride",
			OnSale:      true,
			SalePrice:   floatPtr(99.99),
			Sizes: []models.SizeEntry{
				{Size: 8, Quantity: 6},
				{Size: 9, Quantity: 9},
				{Size: 10, Quantity: 4},
				{Size: 11, Quantity: 3},
			},
		},
		{
			Name:        "Flex Motion",
			Price:       109.99,
			Description: "Studio trainer with a flexible knit upper.",
			Gender:      "women",
			Category:    "training",
			Attributes:  models.Attributes{Color: "rose", Material: "knit", Style: "trainer"},
			Brand:       "Stride",
			Sizes: []models.SizeEntry{
				{Size: 36, Quantity: 7, IsEU: true},
				{Size: 37, Quantity: 10, IsEU: true},
				{Size: 38, Quantity: 6, IsEU: true},
			},
		},
	}

	for i := range catalog {
		if err := repo.Create(ctx, &catalog[i]); err != nil {
			return err
		}
	}
	return nil
}
