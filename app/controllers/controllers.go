// Package controllers maps HTTP requests onto the service layer and
// shapes the JSON envelope.
package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/stride/app/services"
	"github.com/shashiranjanraj/stride/pkg/logger"
	"github.com/shashiranjanraj/stride/pkg/response"
)

// fail writes a service error as the JSON error envelope. Unexpected
// errors are logged and surface as a plain 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	e := services.AsError(err)
	if e.Status == http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
	}
	response.Error(w, e.Status, e.Message)
}
