package seeders

import (
	"context"

	"github.com/shashiranjanraj/stride/app/models"
	"github.com/shashiranjanraj/stride/app/repositories"
	"github.com/shashiranjanraj/stride/config"
	"github.com/shashiranjanraj/stride/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
}

// SeedUsers inserts the initial admin account. Skipped when it already
// exists, so the seeder is safe to re-run.
func SeedUsers(ctx context.Context) error {
	repo := repositories.NewUserRepository()

	email := config.Get("ADMIN_EMAIL", "admin@stride.local")
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "change-me-now"))
	if err != nil {
		return err
	}

	return repo.Create(ctx, &models.User{
		Name:     "Store Admin",
		UserName: "admin",
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	})
}
