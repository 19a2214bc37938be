package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stride/app/models"
	"github.com/shashiranjanraj/stride/pkg/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterInput{
		Name:     "Asha",
		UserName: "asha",
		Email:    "asha@example.com",
		Password: "sneakers-are-life",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "sneakers-are-life", user.Password, "password must be stored hashed")

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)

	_, loginToken, err := svc.Login(ctx, "asha@example.com", "sneakers-are-life")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{
		Name: "Asha", UserName: "asha", Email: "asha@example.com", Password: "sneakers-are-life",
	})
	require.NoError(t, err)

	var svcErr *Error
	_, _, err = svc.Register(ctx, RegisterInput{
		Name: "Impostor", UserName: "asha2", Email: "asha@example.com", Password: "whatever-pass",
	})
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)

	_, _, err = svc.Register(ctx, RegisterInput{
		Name: "Impostor", UserName: "asha", Email: "other@example.com", Password: "whatever-pass",
	})
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{
		Name: "Asha", UserName: "asha", Email: "asha@example.com", Password: "sneakers-are-life",
	})
	require.NoError(t, err)

	var svcErr *Error
	_, _, err = svc.Login(ctx, "asha@example.com", "wrong-password")
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 401, svcErr.Status)

	// Unknown email fails with the same message as a wrong password.
	_, _, wrongEmail := svc.Login(ctx, "nobody@example.com", "sneakers-are-life")
	require.ErrorAs(t, wrongEmail, &svcErr)
	assert.Equal(t, 401, svcErr.Status)
	assert.Equal(t, svcErr.Message, AsError(err).Message)
}

func TestProfileUpdate(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, RegisterInput{
		Name: "Asha", UserName: "asha", Email: "asha@example.com", Password: "sneakers-are-life",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Name: "Asha K"})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.Name)
	assert.Equal(t, "asha", updated.UserName, "unset fields stay unchanged")

	// Changing the password rehashes and old password stops working.
	_, err = svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Password: "new-password-123"})
	require.NoError(t, err)

	var svcErr *Error
	_, _, err = svc.Login(ctx, "asha@example.com", "sneakers-are-life")
	require.ErrorAs(t, err, &svcErr)

	_, _, err = svc.Login(ctx, "asha@example.com", "new-password-123")
	require.NoError(t, err)
}

func TestProfileUpdateRejectsTakenEmail(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	a, _, err := svc.Register(ctx, RegisterInput{
		Name: "Asha", UserName: "asha", Email: "asha@example.com", Password: "sneakers-are-life",
	})
	require.NoError(t, err)
	_, _, err = svc.Register(ctx, RegisterInput{
		Name: "Ben", UserName: "ben", Email: "ben@example.com", Password: "some-other-pass",
	})
	require.NoError(t, err)

	var svcErr *Error
	_, err = svc.UpdateProfile(ctx, a.ID, ProfileUpdate{Email: "ben@example.com"})
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)
}
