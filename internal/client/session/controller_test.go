package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/client/api"
	"github.com/recipesai/recipesai/internal/client/token"
)

func tokenFor(t *testing.T, userID, username string) string {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"userID": userID, "username": username})
	require.NoError(t, err)

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

// loginServer answers /users/login with the given token and /users/register
// with a 201, tracking call counts.
func loginServer(t *testing.T, tok string) (*httptest.Server, *int, *int) {
	t.Helper()
	logins := 0
	registers := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/login":
			logins++
			json.NewEncoder(w).Encode(map[string]string{"token": tok})
		case "/users/register":
			registers++
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"msg": "User registered successfully"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &logins, &registers
}

func newTestController(t *testing.T, baseURL string, store *token.Store) *Controller {
	t.Helper()
	client := api.NewClient(baseURL, store, zap.NewNop())
	return NewController(client, store, zap.NewNop())
}

func TestStartupFromStoredToken(t *testing.T) {
	store := token.NewStore(t.TempDir())
	store.SetToken(tokenFor(t, "u-1", "alice"))

	c := newTestController(t, "http://127.0.0.1:0", store)

	u := c.CurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "alice", u.Username)
}

func TestStartupTokenIsAuthoritative(t *testing.T) {
	store := token.NewStore(t.TempDir())
	store.SetToken("not.a-decodable.token")
	store.SetCachedUser(&token.User{ID: "u-stale", Username: "stale"})

	c := newTestController(t, "http://127.0.0.1:0", store)

	assert.Nil(t, c.CurrentUser())
}

func TestStartupFallsBackToCachedUser(t *testing.T) {
	store := token.NewStore(t.TempDir())
	store.SetCachedUser(&token.User{ID: "u-2", Username: "bob"})

	c := newTestController(t, "http://127.0.0.1:0", store)

	u := c.CurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, "bob", u.Username)
}

func TestLogin(t *testing.T) {
	tok := tokenFor(t, "u-3", "carol")
	srv, logins, _ := loginServer(t, tok)
	store := token.NewStore(t.TempDir())
	c := newTestController(t, srv.URL, store)

	var notified []*token.User
	c.OnChange(func(u *token.User) { notified = append(notified, u) })

	require.NoError(t, c.Login(context.Background(), "carol", "secret"))

	assert.Equal(t, 1, *logins)
	assert.Equal(t, tok, store.Token())

	cached := store.CachedUser()
	require.NotNil(t, cached)
	assert.Equal(t, "u-3", cached.ID)

	u := c.CurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, "carol", u.Username)

	require.Len(t, notified, 1)
	assert.Equal(t, "u-3", notified[0].ID)
}

func TestLoginFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))
	t.Cleanup(srv.Close)

	store := token.NewStore(t.TempDir())
	c := newTestController(t, srv.URL, store)

	err := c.Login(context.Background(), "alice", "wrong")

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Nil(t, c.CurrentUser())
	assert.Empty(t, store.Token())
}

func TestRegisterAutoLogin(t *testing.T) {
	tok := tokenFor(t, "u-4", "dave")
	srv, logins, registers := loginServer(t, tok)
	store := token.NewStore(t.TempDir())
	c := newTestController(t, srv.URL, store)

	require.NoError(t, c.Register(context.Background(), "dave", "dave@example.com", "secret"))

	assert.Equal(t, 1, *registers)
	assert.Equal(t, 1, *logins)

	u := c.CurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, "dave", u.Username)
}

func TestLogoutClearsEverything(t *testing.T) {
	store := token.NewStore(t.TempDir())
	store.SetToken(tokenFor(t, "u-5", "erin"))
	store.SetCachedUser(&token.User{ID: "u-5", Username: "erin"})

	c := newTestController(t, "http://127.0.0.1:0", store)
	require.NotNil(t, c.CurrentUser())

	var notified []*token.User
	c.OnChange(func(u *token.User) { notified = append(notified, u) })

	c.Logout()

	assert.Nil(t, c.CurrentUser())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.CachedUser())
	require.Len(t, notified, 1)
	assert.Nil(t, notified[0])
}

func TestIdentityChangeNotifies(t *testing.T) {
	tok := tokenFor(t, "u-7", "frank")
	srv, _, _ := loginServer(t, tok)

	store := token.NewStore(t.TempDir())
	store.SetToken(tokenFor(t, "u-6", "grace"))
	c := newTestController(t, srv.URL, store)

	var notified []*token.User
	c.OnChange(func(u *token.User) { notified = append(notified, u) })

	require.NoError(t, c.Login(context.Background(), "frank", "secret"))

	require.Len(t, notified, 1)
	require.NotNil(t, notified[0])
	assert.Equal(t, "u-7", notified[0].ID)
}
