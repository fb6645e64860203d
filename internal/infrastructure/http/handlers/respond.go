// Package handlers provides the HTTP handlers for the REST API.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/recipesai/recipesai/pkg/errors"
)

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func writeError(logger *zap.Logger, w http.ResponseWriter, status int, message string) {
	writeJSON(logger, w, status, map[string]string{"error": message})
}

// writeAppError maps an application error to its HTTP status and error body.
// Unexpected errors are logged and reported as a generic 500.
func writeAppError(logger *zap.Logger, w http.ResponseWriter, err error) {
	appErr := apperrors.Wrap(err, "")
	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	}
	writeError(logger, w, appErr.StatusCode(), appErr.Message)
}
