package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judyrop/sns-catalog/client"
	"github.com/judyrop/sns-catalog/form"
	"github.com/judyrop/sns-catalog/models"
)

type request struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

// fakeAPI answers with canned JSON per "METHOD /path" and records what it saw.
type fakeAPI struct {
	t       *testing.T
	mu      sync.Mutex
	replies map[string]any
	status  map[string]int
	seen    []request
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	f := &fakeAPI{t: t, replies: map[string]any{}, status: map[string]int{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) reply(route string, v any) { f.replies[route] = v }

func (f *fakeAPI) fail(route string, code int, msg any) {
	f.status[route] = code
	f.replies[route] = msg
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := request{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization")}
	if r.Body != nil && r.ContentLength != 0 {
		assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&req.body))
	}
	route := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.seen = append(f.seen, req)
	v, ok := f.replies[route]
	code := f.status[route]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not found"}`))
		return
	}
	if code == 0 {
		code = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) requests(method string) []request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []request
	for _, r := range f.seen {
		if r.method == method {
			out = append(out, r)
		}
	}
	return out
}

type run struct {
	out    string
	errOut string
	err    error
}

func execute(t *testing.T, srv *httptest.Server, session string, args ...string) run {
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(append([]string{"--api-url", srv.URL, "--session-file", session}, args...))
	err := root.Execute()
	return run{out: out.String(), errOut: errOut.String(), err: err}
}

func loggedIn(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, client.NewFileSession(path).SetToken("tok"))
	return path
}

func TestLogin(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.reply("POST /auth/login-json", models.Token{AccessToken: "fresh", TokenType: "bearer"})
	session := filepath.Join(t.TempDir(), "snsctl", "token")

	res := execute(t, srv, session, "login", "-u", "admin", "-p", "admin123")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Logged in as admin")
	assert.Equal(t, "fresh", client.NewFileSession(session).Token())

	posts := api.requests(http.MethodPost)
	require.Len(t, posts, 1)
	assert.Equal(t, "admin123", posts[0].body["password"])

	require.NoError(t, execute(t, srv, session, "logout").err)
	assert.NoFileExists(t, session)
}

func TestCreateRequiresName(t *testing.T) {
	api, srv := newFakeAPI(t)

	res := execute(t, srv, loggedIn(t), "categories", "create", "--description", "no name")
	require.Error(t, res.err)
	assert.Equal(t, form.RequiredMessage, message(res.err))
	assert.Empty(t, api.requests(http.MethodPost))
}

func TestCreateSubProduct(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.reply("POST /admin/sub-products", models.SubProduct{ID: 1, Name: "Catalyst 9300", ProductID: 2})
	api.reply("GET /admin/sub-products", []models.SubProduct{{ID: 1, Name: "Catalyst 9300", ProductID: 2, Features: `["Fast","Reliable"]`}})
	api.reply("GET /admin/products", []models.Product{{ID: 2, Name: "Cisco Switches"}})
	api.reply("GET /public/default-images", models.DefaultImages{})

	res := execute(t, srv, loggedIn(t), "subproducts", "create",
		"--name", "Catalyst 9300", "--product-id", "2",
		"--feature", "Fast", "--feature", "Reliable",
		"--spec", "ports=48", "--spec", "poe=740W")
	require.NoError(t, res.err, res.errOut)

	posts := api.requests(http.MethodPost)
	require.Len(t, posts, 1)
	assert.Equal(t, "Bearer tok", posts[0].auth)
	assert.Equal(t, `["Fast","Reliable"]`, posts[0].body["features"])
	assert.Equal(t, `{"ports":"48","poe":"740W"}`, posts[0].body["specifications"])
	assert.Equal(t, "[]", posts[0].body["tags"])

	assert.Contains(t, res.out, "Cisco Switches", "listing refetched with product names")
	assert.Contains(t, res.out, "Sub-product created")
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.reply("GET /admin/categories/4", models.Category{ID: 4, Name: "Networking", Description: "old", IsActive: true})
	api.reply("PUT /admin/categories/4", models.Category{ID: 4, Name: "Networking", Description: "Switches", IsActive: true})
	api.reply("GET /admin/categories", []models.Category{{ID: 4, Name: "Networking", Description: "Switches", IsActive: true}})

	res := execute(t, srv, loggedIn(t), "categories", "update", "4", "--description", "Switches")
	require.NoError(t, res.err)

	puts := api.requests(http.MethodPut)
	require.Len(t, puts, 1)
	assert.Equal(t, map[string]any{"name": "Networking", "description": "Switches", "is_active": true}, puts[0].body)
	assert.Contains(t, res.out, "Category 4 updated")
}

func TestToggle(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.reply("GET /admin/customers/2", models.Customer{ID: 2, Name: "Acme", IsActive: true})
	api.reply("PUT /admin/customers/2", models.Customer{ID: 2, Name: "Acme"})
	api.reply("GET /admin/customers", []models.Customer{{ID: 2, Name: "Acme"}})

	res := execute(t, srv, loggedIn(t), "customers", "toggle", "2")
	require.NoError(t, res.err)

	puts := api.requests(http.MethodPut)
	require.Len(t, puts, 1)
	assert.Equal(t, false, puts[0].body["is_active"])
	assert.Contains(t, res.out, "Customer 2 is now Inactive")
}

func TestServerMessageShown(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.fail("POST /admin/categories", http.StatusConflict, map[string]string{"error": "Category with this name already exists"})

	res := execute(t, srv, loggedIn(t), "categories", "create", "--name", "Networking")
	require.Error(t, res.err)
	assert.Equal(t, "Category with this name already exists", message(res.err))
}

func TestUnauthorizedLogsOut(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.fail("GET /admin/categories", http.StatusUnauthorized, map[string]string{"error": "Could not validate credentials"})
	session := loggedIn(t)

	res := execute(t, srv, session, "categories", "list")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, client.ErrUnauthorized)
	assert.Contains(t, res.errOut, "snsctl login")
	assert.NoFileExists(t, session)
}

func TestListFilters(t *testing.T) {
	api, srv := newFakeAPI(t)
	one, two := uint(1), uint(2)
	api.reply("GET /admin/products", []models.Product{
		{ID: 1, Name: "Cisco Switches", CategoryID: &one, Category: &models.Category{Name: "Networking"}},
		{ID: 2, Name: "Dahua Cameras", CategoryID: &two, Category: &models.Category{Name: "Surveillance"}},
	})

	res := execute(t, srv, loggedIn(t), "products", "list", "--category", "2")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Dahua Cameras")
	assert.NotContains(t, res.out, "Cisco Switches")

	res = execute(t, srv, loggedIn(t), "products", "list", "--search", "CISCO")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Cisco Switches")
	assert.NotContains(t, res.out, "Dahua Cameras")
}

func TestSubProductFilters(t *testing.T) {
	api, srv := newFakeAPI(t)
	items := []models.SubProduct{
		{ID: 1, Name: "Catalyst 9300", ProductID: 1, IsFeatured: true, IsActive: true},
		{ID: 2, Name: "ASR 1001-X", ProductID: 1, IsActive: true},
		{ID: 3, Name: "FortiGate 100F", ProductID: 2, IsFeatured: true, IsActive: true},
	}
	products := []models.Product{{ID: 1, Name: "Routing"}, {ID: 2, Name: "Firewalls"}}
	api.reply("GET /public/sub-products", items)
	api.reply("GET /public/products", products)
	api.reply("GET /public/default-images", models.DefaultImages{})
	api.reply("GET /admin/sub-products", items)
	api.reply("GET /admin/products", products)

	res := execute(t, srv, filepath.Join(t.TempDir(), "token"), "site", "sub-products", "--product", "1", "--featured")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Catalyst 9300")
	assert.NotContains(t, res.out, "ASR 1001-X")
	assert.NotContains(t, res.out, "FortiGate 100F")

	res = execute(t, srv, loggedIn(t), "subproducts", "list", "--product", "2")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "FortiGate 100F")
	assert.NotContains(t, res.out, "Catalyst 9300")
}

func TestSiteSubProduct(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.reply("GET /public/sub-products/7", models.SubProduct{ID: 7, Name: "FortiGate 100F", Features: `["Fast","Reliable"]`})
	api.reply("GET /public/default-images", models.DefaultImages{ProductImage: "/static/product.png"})

	res := execute(t, srv, filepath.Join(t.TempDir(), "token"), "site", "sub-product", "7")
	require.NoError(t, res.err)
	assert.Equal(t, 2, strings.Count(res.out, "• "))
	assert.Contains(t, res.out, "/static/product.png")
	for _, r := range api.requests(http.MethodGet) {
		assert.Empty(t, r.auth)
	}
}

func TestMessage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	res := execute(t, srv, filepath.Join(t.TempDir(), "token"), "site", "about")
	require.Error(t, res.err)
	assert.Equal(t, client.GenericFailure, message(res.err))
	assert.Equal(t, `invalid id "x"`, message(mustErr(parseID("x"))))
}

func mustErr(_ uint, err error) error { return err }
