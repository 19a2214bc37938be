package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/stride/app/services"
	"github.com/shashiranjanraj/stride/pkg/bind"
	"github.com/shashiranjanraj/stride/pkg/response"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	UserName string `json:"userName" validate:"required,alpha_dash,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles POST /api/users.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.users.Register(r.Context(), services.RegisterInput{
		Name:     in.Name,
		UserName: in.UserName,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Created(w, response.M{"user": user, "token": token})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/users/login.
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.users.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{"user": user, "token": token})
}

// Profile handles GET /api/users/profile.
func (c *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	user, err := c.users.Profile(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{"user": user})
}

type profileRequest struct {
	Name     string `json:"name" validate:"nullable"`
	UserName string `json:"userName" validate:"nullable,alpha_dash,min=3"`
	Email    string `json:"email" validate:"nullable,email"`
	Password string `json:"password" validate:"nullable,min=8"`
}

// UpdateProfile handles PUT /api/users/profile.
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var in profileRequest
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.users.UpdateProfile(r.Context(), userID, services.ProfileUpdate{
		Name:     in.Name,
		UserName: in.UserName,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{"user": user})
}
