package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stride/app/models"
	"github.com/shashiranjanraj/stride/pkg/auth"
)

// RegisterInput is the validated signup payload.
type RegisterInput struct {
	Name     string
	UserName string
	Email    string
	Password string
}

// ProfileUpdate carries the editable profile fields. Empty fields are
// left unchanged.
type ProfileUpdate struct {
	Name     string
	UserName string
	Email    string
	Password string
}

// UserService owns registration, login and profile management.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Register creates a new account and returns it with a signed token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", fmt.Errorf("users: register: %w", err)
	}
	if existing != nil {
		return nil, "", InvalidRequest("email is already registered")
	}

	existing, err = s.users.FindByUserName(ctx, in.UserName)
	if err != nil {
		return nil, "", fmt.Errorf("users: register: %w", err)
	}
	if existing != nil {
		return nil, "", InvalidRequest("username is already taken")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("users: register: %w", err)
	}

	user := &models.User{
		Name:     in.Name,
		UserName: in.UserName,
		Email:    in.Email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("users: register: %w", err)
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("users: register: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
// A wrong email and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("users: login: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.Password, password) {
		return nil, "", Unauthenticated("invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("users: login: %w", err)
	}
	return user, token, nil
}

// Profile returns the account for the given user id.
func (s *UserService) Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("users: profile: %w", err)
	}
	if user == nil {
		return nil, NotFound("User not found")
	}
	return user, nil
}

// UpdateProfile applies the non-empty fields of upd to the user's account.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Email != "" && upd.Email != user.Email {
		other, err := s.users.FindByEmail(ctx, upd.Email)
		if err != nil {
			return nil, fmt.Errorf("users: update profile: %w", err)
		}
		if other != nil {
			return nil, InvalidRequest("email is already registered")
		}
		user.Email = upd.Email
	}
	if upd.UserName != "" && upd.UserName != user.UserName {
		other, err := s.users.FindByUserName(ctx, upd.UserName)
		if err != nil {
			return nil, fmt.Errorf("users: update profile: %w", err)
		}
		if other != nil {
			return nil, InvalidRequest("username is already taken")
		}
		user.UserName = upd.UserName
	}
	if upd.Name != "" {
		user.Name = upd.Name
	}
	if upd.Password != "" {
		hash, err := auth.HashPassword(upd.Password)
		if err != nil {
			return nil, fmt.Errorf("users: update profile: %w", err)
		}
		user.Password = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("users: update profile: %w", err)
	}
	return user, nil
}
