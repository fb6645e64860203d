package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/recipesai/recipesai/pkg/errors"
)

type stubCompleter struct {
	response  string
	err       error
	prompt    string
	maxTokens int
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	s.prompt = prompt
	s.maxTokens = maxTokens
	return s.response, s.err
}

func TestSuggestPrompt(t *testing.T) {
	stub := &stubCompleter{response: "ideas"}
	svc := NewService(stub, zap.NewNop())

	out, err := svc.Suggest(context.Background(), []string{"tomato", "basil", "garlic"})
	require.NoError(t, err)
	assert.Equal(t, "ideas", out)
	assert.Equal(t, 500, stub.maxTokens)
	assert.Contains(t, stub.prompt, "Suggest 3 meal ideas using these ingredients: tomato, basil, garlic.")
	assert.Contains(t, stub.prompt, "estimated cooking time")
}

func TestMealPlanPrompt(t *testing.T) {
	stub := &stubCompleter{response: "plan"}
	svc := NewService(stub, zap.NewNop())

	out, err := svc.MealPlan(context.Background(), 5, "low carb")
	require.NoError(t, err)
	assert.Equal(t, "plan", out)
	assert.Equal(t, 700, stub.maxTokens)
	assert.Contains(t, stub.prompt, "Create a 5-day meal plan.")
	assert.Contains(t, stub.prompt, "Preferences: low carb.")
}

func TestMealPlanDefaultPreferences(t *testing.T) {
	stub := &stubCompleter{response: "plan"}
	svc := NewService(stub, zap.NewNop())

	_, err := svc.MealPlan(context.Background(), 2, "")
	require.NoError(t, err)
	assert.Contains(t, stub.prompt, "Preferences: none.")
}

func TestProviderFailureIsWrapped(t *testing.T) {
	cause := errors.New("connection refused")
	stub := &stubCompleter{err: cause}
	svc := NewService(stub, zap.NewNop())

	_, err := svc.Suggest(context.Background(), []string{"x"})
	assert.Equal(t, apperrors.CodeAIUnavailable, apperrors.GetCode(err))
	assert.ErrorIs(t, err, cause)

	_, err = svc.MealPlan(context.Background(), 1, "")
	assert.Equal(t, apperrors.CodeAIUnavailable, apperrors.GetCode(err))
}
