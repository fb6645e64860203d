package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	recipeapp "github.com/recipesai/recipesai/internal/application/recipe"
	domainrecipe "github.com/recipesai/recipesai/internal/domain/recipe"
	"github.com/recipesai/recipesai/internal/infrastructure/http/middleware"
)

// RecipeAPIHandlers handles the recipe CRUD endpoints.
type RecipeAPIHandlers struct {
	recipeService *recipeapp.Service
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewRecipeAPIHandlers creates the recipe handlers.
func NewRecipeAPIHandlers(recipeService *recipeapp.Service, logger *zap.Logger) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		recipeService: recipeService,
		validate:      validator.New(),
		logger:        logger,
	}
}

// ListResponse is the body of GET /recipes.
type ListResponse struct {
	Msg     string                 `json:"msg"`
	Recipes []*domainrecipe.Recipe `json:"recipes"`
}

// List handles GET /recipes, scoped to the authenticated owner.
func (h *RecipeAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recipes, err := h.recipeService.List(r.Context(), userID)
	if err != nil {
		writeAppError(h.logger, w, err)
		return
	}

	if recipes == nil {
		recipes = []*domainrecipe.Recipe{}
	}
	writeJSON(h.logger, w, http.StatusOK, ListResponse{Msg: "Success", Recipes: recipes})
}

// Create handles POST /recipes.
func (h *RecipeAPIHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	username, _ := middleware.UsernameFromContext(r.Context())

	var cmd recipeapp.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "Title, description and steps are required")
		return
	}

	created, err := h.recipeService.Create(r.Context(), userID, username, cmd)
	if err != nil {
		writeAppError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"msg":    "A new recipe has been added",
		"recipe": created,
	})
}

// Update handles PATCH /recipes/{id}.
func (h *RecipeAPIHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	recipeID := chi.URLParam(r, "id")

	var cmd recipeapp.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "Title, description and steps are required")
		return
	}

	if err := h.recipeService.Update(r.Context(), userID, recipeID, cmd); err != nil {
		writeAppError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, map[string]string{
		"msg": fmt.Sprintf("Recipe with id %s is updated successfully", recipeID),
	})
}

// Delete handles DELETE /recipes/{id}.
func (h *RecipeAPIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	recipeID := chi.URLParam(r, "id")

	if err := h.recipeService.Delete(r.Context(), userID, recipeID); err != nil {
		writeAppError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, map[string]string{
		"msg": fmt.Sprintf("Recipe with id %s is deleted", recipeID),
	})
}
