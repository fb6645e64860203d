package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestDoRequestHeaders(t *testing.T) {
	var gotContentType, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"msg":"ok"}`))
	}))
	defer srv.Close()

	t.Run("token from source", func(t *testing.T) {
		client := NewClient(srv.URL, staticTokens("stored-token"), zap.NewNop())
		_, err := client.Do(context.Background(), http.MethodGet, "/x", nil)
		require.NoError(t, err)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "Bearer stored-token", gotAuth)
	})

	t.Run("explicit token wins over source", func(t *testing.T) {
		client := NewClient(srv.URL, staticTokens("stored-token"), zap.NewNop())
		_, err := client.Do(context.Background(), http.MethodGet, "/x", nil, WithToken("explicit"))
		require.NoError(t, err)
		assert.Equal(t, "Bearer explicit", gotAuth)
	})

	t.Run("explicit empty token disables auth", func(t *testing.T) {
		client := NewClient(srv.URL, staticTokens("stored-token"), zap.NewNop())
		_, err := client.Do(context.Background(), http.MethodGet, "/x", nil, WithToken(""))
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})

	t.Run("no source and no option sends no header", func(t *testing.T) {
		client := NewClient(srv.URL, nil, zap.NewNop())
		_, err := client.Do(context.Background(), http.MethodGet, "/x", nil)
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})
}

func TestDoErrorNormalization(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantBody    bool
	}{
		{"error field", http.StatusConflict, `{"error":"Username already exists"}`, "Username already exists", true},
		{"msg fallback", http.StatusBadRequest, `{"msg":"something happened"}`, "something happened", true},
		{"error preferred over msg", http.StatusForbidden, `{"error":"Not authorized","msg":"other"}`, "Not authorized", true},
		{"generic fallback", http.StatusTeapot, `{}`, "Request failed (418)", true},
		{"unparsable body", http.StatusBadGateway, `<html>bad gateway</html>`, "Request failed (502)", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, nil, zap.NewNop())
			raw, err := client.Do(context.Background(), http.MethodGet, "/x", nil)
			assert.Nil(t, raw)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.wantMessage, apiErr.Message)
			assert.Equal(t, tc.wantMessage, apiErr.Error())
			if tc.wantBody {
				assert.NotNil(t, apiErr.Body)
			} else {
				assert.Nil(t, apiErr.Body)
			}
		})
	}
}

func TestDoSuccessWithUnparsableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, zap.NewNop())
	raw, err := client.Do(context.Background(), http.MethodGet, "/x", nil)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestLogin(t *testing.T) {
	t.Run("returns token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/users/login", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "alice", body["username"])
			assert.Equal(t, "secret", body["pass"])

			w.Write([]byte(`{"token":"the-token"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, nil, zap.NewNop())
		tok, err := client.Login(context.Background(), "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, "the-token", tok)
	})

	t.Run("missing token in response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"msg":"no token here"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, nil, zap.NewNop())
		_, err := client.Login(context.Background(), "alice", "secret")
		assert.Error(t, err)
	})

	t.Run("invalid credentials propagate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Invalid credentials"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, nil, zap.NewNop())
		_, err := client.Login(context.Background(), "alice", "wrong")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "Invalid credentials", apiErr.Message)
	})
}

func TestListRecipes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes", r.URL.Path)
		w.Write([]byte(`{"msg":"Success","recipes":[{"id":"r1","title":"Soup"},{"id":"r2","title":"Stew"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens("tok"), zap.NewNop())
	list, err := client.ListRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Soup", list[0].Title)
	assert.Equal(t, "r2", list[1].ID)
}

func TestCreateRecipe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload RecipePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Tomato Soup", payload.Title)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"msg":"A new recipe has been added","recipe":{"id":"r9","title":"Tomato Soup"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens("tok"), zap.NewNop())
	created, err := client.CreateRecipe(context.Background(), RecipePayload{Title: "Tomato Soup"})
	require.NoError(t, err)
	assert.Equal(t, "r9", created.ID)
}

func TestSuggestAndMealPlan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ai/suggest":
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.NotNil(t, body["ingredients"])
			w.Write([]byte(`{"suggestions":"three ideas"}`))
		case "/ai/meal-plan":
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.EqualValues(t, 3, body["days"])
			w.Write([]byte(`{"mealPlan":"the plan"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens("tok"), zap.NewNop())

	suggestions, err := client.Suggest(context.Background(), []string{"tomato", "basil"})
	require.NoError(t, err)
	assert.Equal(t, "three ideas", suggestions)

	plan, err := client.MealPlan(context.Background(), 3, "vegetarian")
	require.NoError(t, err)
	assert.Equal(t, "the plan", plan)
}
