// Package recipes keeps a local copy of the authenticated user's recipe
// list in sync with the server.
package recipes

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/client/api"
	"github.com/recipesai/recipesai/internal/client/session"
	"github.com/recipesai/recipesai/internal/client/token"
)

const descriptionLimit = 120

// FetchResult reports what a Refetch call actually did. Refetch never
// returns an error; failures only mean the local list kept its previous
// contents.
type FetchResult int

const (
	// Fetched means the list was replaced with the server's copy.
	Fetched FetchResult = iota
	// SkippedInFlight means another fetch was already running.
	SkippedInFlight
	// SkippedUnauthenticated means no user is logged in.
	SkippedUnauthenticated
	// Failed means the request errored and the list is unchanged.
	Failed
)

func (r FetchResult) String() string {
	switch r {
	case Fetched:
		return "fetched"
	case SkippedInFlight:
		return "skipped-in-flight"
	case SkippedUnauthenticated:
		return "skipped-unauthenticated"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Input is the UI-facing shape of a recipe mutation: ingredients as a
// list of free-text names and steps as one newline-delimited string.
type Input struct {
	Title       string
	Ingredients []string
	Steps       string
	ImageURL    string
}

// Synchronizer mirrors the server's recipe list for the current session.
// The list belongs to the authenticated user only: it is cleared on
// logout and refetched on every identity change. At most one list fetch
// runs at a time; concurrent Refetch callers are dropped, not queued.
type Synchronizer struct {
	client  *api.Client
	session *session.Controller
	tokens  api.TokenSource
	logger  *zap.Logger

	mu       sync.Mutex
	recipes  []api.Recipe
	loading  bool
	inFlight bool
}

// NewSynchronizer creates a synchronizer subscribed to session changes.
func NewSynchronizer(client *api.Client, tokens api.TokenSource, sess *session.Controller, logger *zap.Logger) *Synchronizer {
	s := &Synchronizer{
		client:  client,
		session: sess,
		tokens:  tokens,
		logger:  logger.Named("recipe-sync"),
	}
	sess.OnChange(s.handleSessionChange)
	return s
}

// Recipes returns a copy of the current list.
func (s *Synchronizer) Recipes() []api.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Loading reports whether a list fetch is in progress.
func (s *Synchronizer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Refetch replaces the local list with the server's copy. Errors are
// absorbed into the result: a failed fetch leaves the previous list in
// place. A stale response from a fetch started for a previous user can
// still land after a rapid user switch; there is no request cancellation.
func (s *Synchronizer) Refetch(ctx context.Context) FetchResult {
	// A cached user restored without a token is not enough to call the
	// server; the request would only fail with a 401.
	if s.session.CurrentUser() == nil || s.tokens == nil || s.tokens.Token() == "" {
		return SkippedUnauthenticated
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return SkippedInFlight
	}
	s.inFlight = true
	s.loading = true
	s.mu.Unlock()

	list, err := s.client.ListRecipes(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	s.loading = false

	if err != nil {
		s.logger.Warn("Failed to fetch recipes", zap.Error(err))
		return Failed
	}

	if list == nil {
		list = []api.Recipe{}
	}
	s.recipes = list
	return Fetched
}

// Create adds a recipe and resynchronizes the list. On failure the error
// propagates unchanged and no refetch happens.
func (s *Synchronizer) Create(ctx context.Context, input Input) error {
	if _, err := s.client.CreateRecipe(ctx, normalize(input)); err != nil {
		return err
	}
	s.Refetch(ctx)
	return nil
}

// Update modifies a recipe and resynchronizes the list.
func (s *Synchronizer) Update(ctx context.Context, id string, input Input) error {
	if err := s.client.UpdateRecipe(ctx, id, normalize(input)); err != nil {
		return err
	}
	s.Refetch(ctx)
	return nil
}

// Delete removes a recipe and resynchronizes the list.
func (s *Synchronizer) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	s.Refetch(ctx)
	return nil
}

func (s *Synchronizer) handleSessionChange(u *token.User) {
	if u == nil {
		s.mu.Lock()
		s.recipes = []api.Recipe{}
		s.mu.Unlock()
		return
	}
	s.Refetch(context.Background())
}

// normalize converts the UI shape into the server payload: ingredient
// names become {name} objects, the steps text splits into trimmed
// non-empty lines, and the description is the raw steps text capped at
// 120 characters.
func normalize(input Input) api.RecipePayload {
	ingredients := make([]api.Ingredient, 0, len(input.Ingredients))
	for _, name := range input.Ingredients {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			ingredients = append(ingredients, api.Ingredient{Name: trimmed})
		}
	}

	var steps []string
	for _, line := range strings.Split(input.Steps, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			steps = append(steps, trimmed)
		}
	}

	description := input.Steps
	if runes := []rune(description); len(runes) > descriptionLimit {
		description = string(runes[:descriptionLimit])
	}

	return api.RecipePayload{
		Title:       input.Title,
		Description: description,
		Ingredients: ingredients,
		Steps:       steps,
		ImageURL:    input.ImageURL,
	}
}
