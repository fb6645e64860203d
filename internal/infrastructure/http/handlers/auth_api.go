package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/application/user"
)

// AuthAPIHandlers handles registration and login requests.
type AuthAPIHandlers struct {
	userService *user.UserService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAuthAPIHandlers creates the authentication handlers.
func NewAuthAPIHandlers(userService *user.UserService, logger *zap.Logger) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		userService: userService,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Register handles POST /users/register.
func (h *AuthAPIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var cmd user.RegisterCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.validate.Struct(cmd); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	if err := h.userService.Register(r.Context(), cmd); err != nil {
		writeAppError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusCreated, map[string]string{"msg": "User registered successfully"})
}

// Login handles POST /users/login.
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd user.LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.validate.Struct(cmd); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.userService.Login(r.Context(), cmd)
	if err != nil {
		writeAppError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, map[string]string{"token": token})
}
