package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judyrop/sns-catalog/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestBearerHeader(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []models.Category{{ID: 1, Name: "Networking"}})
	}))
	defer srv.Close()

	session := NewMemorySession("")
	c := New(srv.URL, WithSession(session))

	cats, err := c.Categories().List(context.Background(), Page{})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Networking", cats[0].Name)

	require.NoError(t, session.SetToken("abc"))
	_, err = c.Categories().List(context.Background(), Page{})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer abc"}, got)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Could not validate credentials"})
	}))
	defer srv.Close()

	redirected := 0
	session := NewMemorySession("stale")
	c := New(srv.URL, WithSession(session), WithUnauthorizedHandler(func() { redirected++ }))

	_, err := c.Products().Get(context.Background(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "", session.Token())
	assert.Equal(t, 1, redirected)
	assert.False(t, c.LoggedIn())
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login-json", r.URL.Path)
		var req models.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "admin123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Incorrect username or password"})
			return
		}
		writeJSON(w, http.StatusOK, models.Token{AccessToken: "tok", TokenType: "bearer"})
	}))
	defer srv.Close()

	redirected := false
	c := New(srv.URL, WithUnauthorizedHandler(func() { redirected = true }))

	err := c.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Incorrect username or password", UserMessage(err, ""))
	assert.False(t, redirected)

	require.NoError(t, c.Login(context.Background(), "admin", "admin123"))
	assert.Equal(t, "tok", c.Session().Token())

	require.NoError(t, c.Logout())
	assert.False(t, c.LoggedIn())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error key", http.StatusConflict, `{"error":"Category with this name already exists"}`, "Category with this name already exists"},
		{"detail key", http.StatusNotFound, `{"detail":"Category not found"}`, "Category not found"},
		{"detail list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"}]}`, GenericFailure},
		{"no body", http.StatusInternalServerError, ``, GenericFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).Categories().Create(context.Background(), models.CategoryCreate{Name: "x"})
			require.Error(t, err)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.want, UserMessage(err, ""))
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).Public().Categories(context.Background(), Page{})
	require.Error(t, err)
	assert.Equal(t, GenericFailure, UserMessage(err, ""))
	assert.Equal(t, "Could not load", UserMessage(err, "Could not load"))
}

func TestSubProductQueries(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uri := r.URL.Path
		if r.URL.RawQuery != "" {
			uri += "?" + r.URL.RawQuery
		}
		paths = append(paths, uri)
		writeJSON(w, http.StatusOK, []models.SubProduct{})
	}))
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL + "/")
	sub := c.SubProducts()

	_, err := sub.ListFiltered(ctx, Page{}, 7)
	require.NoError(t, err)
	_, err = sub.ListByProduct(ctx, 7)
	require.NoError(t, err)
	_, err = sub.Featured(ctx, 5)
	require.NoError(t, err)
	_, err = sub.Search(ctx, "cisco switch", Page{Skip: 10, Limit: 5})
	require.NoError(t, err)
	_, err = c.Public().SubProductsByProduct(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/admin/sub-products?product_id=7",
		"/admin/products/7/sub-products",
		"/admin/sub-products/featured?limit=5",
		"/admin/sub-products/search?limit=5&q=cisco+switch&skip=10",
		"/public/products/2/sub-products",
	}, paths)
}

func TestUpdateSendsOnlySetFields(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/categories/4", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, models.Category{ID: 4, Name: "Networking", IsActive: false})
	}))
	defer srv.Close()

	inactive := false
	cat, err := New(srv.URL).Categories().Update(context.Background(), 4, models.CategoryUpdate{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, cat.IsActive)
	assert.Equal(t, map[string]any{"is_active": false}, body)
}

func TestFileSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sns", "token")
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewFileSession(path)
	s.now = func() time.Time { return now }

	assert.Equal(t, "", s.Token())
	require.NoError(t, s.SetToken("abc"))
	assert.Equal(t, "abc", s.Token())

	reopened := NewFileSession(path)
	reopened.now = s.now
	assert.Equal(t, "abc", reopened.Token())

	now = now.Add(TokenLifetime)
	assert.Equal(t, "", s.Token())
	assert.NoFileExists(t, path)

	require.NoError(t, s.Clear())
}
