package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	aiapp "github.com/recipesai/recipesai/internal/application/ai"
)

// AIAPIHandlers handles the AI suggestion endpoints.
type AIAPIHandlers struct {
	aiService *aiapp.Service
	logger    *zap.Logger
}

// NewAIAPIHandlers creates the AI handlers.
func NewAIAPIHandlers(aiService *aiapp.Service, logger *zap.Logger) *AIAPIHandlers {
	return &AIAPIHandlers{
		aiService: aiService,
		logger:    logger,
	}
}

// SuggestRequest is the body of POST /ai/suggest.
type SuggestRequest struct {
	Ingredients []string `json:"ingredients"`
}

// MealPlanRequest is the body of POST /ai/meal-plan.
type MealPlanRequest struct {
	Days        int    `json:"days"`
	Preferences string `json:"preferences,omitempty"`
}

// Suggest handles POST /ai/suggest.
func (h *AIAPIHandlers) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Ingredients == nil {
		writeError(h.logger, w, http.StatusBadRequest, "ingredients[] is required")
		return
	}

	suggestions, err := h.aiService.Suggest(r.Context(), req.Ingredients)
	if err != nil {
		writeAppError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, map[string]string{"suggestions": suggestions})
}

// MealPlan handles POST /ai/meal-plan.
func (h *AIAPIHandlers) MealPlan(w http.ResponseWriter, r *http.Request) {
	var req MealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Days == 0 {
		writeError(h.logger, w, http.StatusBadRequest, "days is required")
		return
	}

	plan, err := h.aiService.MealPlan(r.Context(), req.Days, req.Preferences)
	if err != nil {
		writeAppError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, map[string]string{"mealPlan": plan})
}
