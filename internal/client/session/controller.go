// Package session tracks the authenticated user across CLI invocations.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/client/api"
	"github.com/recipesai/recipesai/internal/client/token"
)

// Controller owns the authentication state. It is either authenticated,
// with a current user derived from the stored token, or unauthenticated.
// The token is authoritative: the cached user slot is only consulted when
// no token exists at all.
type Controller struct {
	client *api.Client
	store  *token.Store
	logger *zap.Logger

	mu          sync.Mutex
	current     *token.User
	subscribers []func(*token.User)
}

// NewController restores the session from the store. A stored token whose
// payload decodes to a user ID yields an authenticated session; anything
// else starts unauthenticated.
func NewController(client *api.Client, store *token.Store, logger *zap.Logger) *Controller {
	c := &Controller{
		client: client,
		store:  store,
		logger: logger.Named("session"),
	}

	if tok := store.Token(); tok != "" {
		if claims := token.DecodeClaims(tok); claims != nil && claims.UserID != "" {
			c.current = &token.User{ID: claims.UserID, Username: claims.Username}
		}
	} else if cached := store.CachedUser(); cached != nil {
		c.current = cached
	}

	return c
}

// CurrentUser returns the authenticated user, or nil.
func (c *Controller) CurrentUser() *token.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// OnChange registers a callback fired on every session transition,
// including a direct switch between two identities.
func (c *Controller) OnChange(fn func(*token.User)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Login authenticates and persists the session. API errors propagate
// unchanged so callers can inspect the status.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	tok, err := c.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.store.SetToken(tok)

	var u *token.User
	if claims := token.DecodeClaims(tok); claims != nil && claims.UserID != "" {
		u = &token.User{ID: claims.UserID, Username: claims.Username}
		c.store.SetCachedUser(u)
	} else {
		c.logger.Warn("Received token with undecodable payload")
		c.store.SetCachedUser(nil)
	}

	c.setUser(u)
	return nil
}

// Register creates an account and logs in with the same credentials.
func (c *Controller) Register(ctx context.Context, username, email, password string) error {
	if err := c.client.Register(ctx, username, email, password); err != nil {
		return err
	}
	return c.Login(ctx, username, password)
}

// Logout clears all persisted session state. No network call is made; the
// token simply expires server-side.
func (c *Controller) Logout() {
	c.store.Clear()
	c.setUser(nil)
}

func (c *Controller) setUser(u *token.User) {
	c.mu.Lock()
	if sameUser(c.current, u) {
		c.mu.Unlock()
		return
	}
	c.current = u
	subscribers := make([]func(*token.User), len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subscribers {
		fn(u)
	}
}

func sameUser(a, b *token.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID && a.Username == b.Username
}
