// Package response writes the storefront's JSON envelope.
//
// Every success payload carries {"success":true, ...fields}; every error
// carries {"success":false, "message":"..."} with the matching HTTP status.
package response

import (
	"encoding/json"
	"net/http"
)

// M is the payload map merged into the success envelope.
type M map[string]any

func write(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with the payload fields merged
// alongside "success": true.
func Success(w http.ResponseWriter, data M) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 JSON response.
func Created(w http.ResponseWriter, data M) {
	JSON(w, http.StatusCreated, data)
}

// JSON sends a success envelope with an explicit status code.
func JSON(w http.ResponseWriter, status int, data M) {
	body := map[string]any{"success": true}
	for k, v := range data {
		body[k] = v
	}
	write(w, status, body)
}

// Error sends a JSON error envelope.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, map[string]any{"success": false, "message": message})
}

// ValidationError sends a 422 with field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, map[string]any{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Not authorized"
	}
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Not found"
	}
	Error(w, http.StatusNotFound, message)
}
