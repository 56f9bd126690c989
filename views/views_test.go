package views

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judyrop/sns-catalog/client"
	"github.com/judyrop/sns-catalog/models"
)

func plain() Styles { return NewStyles(&bytes.Buffer{}) }

func TestSubProductDetailFeatures(t *testing.T) {
	sp := models.SubProduct{
		Name:           "Catalyst 9300",
		Brand:          "Cisco",
		Features:       `["Fast","Reliable"]`,
		Specifications: `{"ports":"48","poe_budget":"740W"}`,
		IsActive:       true,
		IsFeatured:     true,
	}
	out := SubProductDetail(plain(), sp, &models.DefaultImages{ProductImage: "/img/default.png"})

	assert.Equal(t, 2, strings.Count(out, bullet))
	assert.Contains(t, out, "• Fast\n")
	assert.Contains(t, out, "• Reliable\n")
	assert.Contains(t, out, "Featured")
	assert.Contains(t, out, "1. /img/default.png")

	ports := strings.Index(out, "ports: 48")
	poe := strings.Index(out, "poe budget: 740W")
	require.True(t, ports >= 0 && poe >= 0, out)
	assert.Less(t, ports, poe)
}

func TestSubProductDetailMalformedFields(t *testing.T) {
	out := SubProductDetail(plain(), models.SubProduct{Name: "x", Features: "{oops", Specifications: "[]"}, nil)
	assert.NotContains(t, out, "Key Features")
	assert.NotContains(t, out, "Technical Specifications")
	assert.Contains(t, out, placeholderImage)
}

func TestTables(t *testing.T) {
	s := plain()
	assert.Contains(t, Categories(s, nil), "No categories found")

	out := Categories(s, []models.Category{
		{ID: 1, Name: "Networking", IsActive: true},
		{ID: 2, Name: "Security"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[3], "Active")
	assert.Contains(t, lines[4], "Inactive")

	sub := SubProducts(s, []models.SubProduct{{ID: 3, Name: "ASR", ProductID: 7}, {ID: 4, Name: "C9300", ProductID: 1}},
		[]models.Product{{ID: 1, Name: "Cisco"}})
	assert.Contains(t, sub, "#7")
	assert.Contains(t, sub, "Cisco")
}

func TestServiceDetail(t *testing.T) {
	out := ServiceDetail(plain(), models.Service{Name: "Installation", Features: `["Survey","Cabling"]`, Category: &models.Category{Name: "Networking"}})
	assert.Equal(t, 2, strings.Count(out, bullet))
	assert.Contains(t, out, "Category: Networking")
}

type fakeAPI struct {
	mux  *http.ServeMux
	fail string
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{mux: http.NewServeMux()}
	reply := func(path string, v any) {
		f.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == f.fail {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(v)
		})
	}
	reply("/admin/categories", []models.Category{{ID: 1}, {ID: 2}})
	reply("/admin/products", []models.Product{{ID: 1}})
	reply("/admin/services", []models.Service{})
	reply("/admin/solutions", []models.Solution{{ID: 1}, {ID: 2}, {ID: 3}})
	reply("/admin/customers", []models.Customer{{ID: 1}})
	reply("/public/company-info", models.CompanyInfo{CompanyName: "Star Network Solutions"})
	reply("/public/sub-products/featured", []models.SubProduct{{ID: 1, Name: "Catalyst 9300", IsFeatured: true}})
	reply("/public/categories", []models.Category{{ID: 1, Name: "Networking", IsActive: true}})
	reply("/public/customers", []models.Customer{})
	reply("/public/default-images", models.DefaultImages{ProductImage: "/p.png"})
	reply("/public/sub-products/4", models.SubProduct{ID: 4, Name: "FortiGate"})
	return f
}

func TestLoadDashboard(t *testing.T) {
	api := newFakeAPI()
	srv := httptest.NewServer(api.mux)
	defer srv.Close()
	c := client.New(srv.URL)

	d, err := LoadDashboard(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, Dashboard{Categories: 2, Products: 1, Services: 0, Solutions: 3, Customers: 1}, *d)

	api.fail = "/admin/solutions"
	d, err = LoadDashboard(context.Background(), c)
	assert.Error(t, err)
	assert.Nil(t, d)
	assert.Equal(t, "Internal server error", client.UserMessage(err, ""))
}

func TestLoadHome(t *testing.T) {
	api := newFakeAPI()
	srv := httptest.NewServer(api.mux)
	defer srv.Close()
	p := client.New(srv.URL).Public()

	h, err := LoadHome(context.Background(), p, 6)
	require.NoError(t, err)
	assert.Equal(t, "Star Network Solutions", h.Company.CompanyName)
	assert.Len(t, h.Featured, 1)
	assert.Len(t, h.Categories, 1)
	assert.Contains(t, Home(plain(), *h), "Catalyst 9300")

	api.fail = "/public/customers"
	h, err = LoadHome(context.Background(), p, 6)
	assert.Error(t, err)
	assert.Nil(t, h)
}

func TestLoadPublicSubProduct(t *testing.T) {
	srv := httptest.NewServer(newFakeAPI().mux)
	defer srv.Close()

	page, err := LoadPublicSubProduct(context.Background(), client.New(srv.URL).Public(), 4)
	require.NoError(t, err)
	assert.Equal(t, "FortiGate", page.SubProduct.Name)
	assert.Equal(t, "/p.png", page.Images.ProductImage)
}
