package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginFlow(t *testing.T) {
	api := newTestAPI(newStubProductStore(), newStubOrderStore(), newStubUserStore())

	rec, body := doJSON(t, api, http.MethodPost, "/api/users", "",
		`{"name":"Asha","userName":"asha_k","email":"asha@example.com","password":"sneakers-are-life"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "asha_k", user["userName"])
	assert.NotContains(t, user, "password", "password hash must never leave the API")

	rec, body = doJSON(t, api, http.MethodPost, "/api/users/login", "",
		`{"email":"asha@example.com","password":"sneakers-are-life"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["token"])
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(newStubProductStore(), newStubOrderStore(), newStubUserStore())

	rec, body := doJSON(t, api, http.MethodPost, "/api/users", "",
		`{"name":"Asha","userName":"a","email":"not-an-email","password":"short"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, false, body["success"])
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "userName")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestLoginBadCredentials(t *testing.T) {
	api := newTestAPI(newStubProductStore(), newStubOrderStore(), newStubUserStore())

	rec, _ := doJSON(t, api, http.MethodPost, "/api/users", "",
		`{"name":"Asha","userName":"asha_k","email":"asha@example.com","password":"sneakers-are-life"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := doJSON(t, api, http.MethodPost, "/api/users/login", "",
		`{"email":"asha@example.com","password":"wrong-password"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "invalid email or password", body["message"])
}
