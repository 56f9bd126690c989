package form

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judyrop/sns-catalog/client"
	"github.com/judyrop/sns-catalog/codec"
	"github.com/judyrop/sns-catalog/models"
)

type recorder struct {
	creates  []CategoryDraft
	updates  []uint
	refetch  int
	failWith error
}

func (r *recorder) modal() *Modal[CategoryDraft] {
	return NewModal(
		func(_ context.Context, d CategoryDraft) error {
			r.creates = append(r.creates, d)
			return r.failWith
		},
		func(_ context.Context, id uint, _ CategoryDraft) error {
			r.updates = append(r.updates, id)
			return r.failWith
		},
		func(context.Context) error {
			r.refetch++
			return nil
		},
	)
}

func TestSubmitRequiresName(t *testing.T) {
	rec := &recorder{}
	m := rec.modal()
	m.OpenCreate(CategoryDraft{Description: "no name"})

	err := m.Submit(context.Background())
	assert.ErrorIs(t, err, ErrRequired)
	assert.Equal(t, OpenCreate, m.State())
	assert.Equal(t, RequiredMessage, m.Error())
	assert.Empty(t, rec.creates, "nothing sent")
}

func TestSubmitSuccessRefetchesAndCloses(t *testing.T) {
	rec := &recorder{}
	m := rec.modal()

	m.OpenCreate(CategoryDraft{Name: "Networking"})
	require.NoError(t, m.Submit(context.Background()))
	assert.Equal(t, Closed, m.State())
	assert.Equal(t, 1, rec.refetch)
	require.Len(t, rec.creates, 1)
	assert.Equal(t, "Networking", rec.creates[0].Name)

	m.OpenEdit(9, CategoryDraft{Name: "Networking", Description: "Switches"})
	assert.Equal(t, uint(9), m.EditID())
	require.NoError(t, m.Submit(context.Background()))
	assert.Equal(t, []uint{9}, rec.updates)
	assert.Equal(t, 2, rec.refetch)
	assert.Equal(t, CategoryDraft{}, *m.Draft())
}

func TestSubmitFailureKeepsFormOpen(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		state   State
		message string
	}{
		{"server message", &client.APIError{StatusCode: http.StatusConflict, Message: "Category with this name already exists"}, OpenEdit, "Category with this name already exists"},
		{"transport", errors.New("dial tcp: connection refused"), OpenEdit, client.GenericFailure},
		{"unauthorized", &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Could not validate credentials"}, Closed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{failWith: tt.err}
			m := rec.modal()
			m.OpenEdit(3, CategoryDraft{Name: "Networking"})

			assert.Error(t, m.Submit(context.Background()))
			assert.Equal(t, tt.state, m.State())
			assert.Equal(t, tt.message, m.Error())
			assert.Zero(t, rec.refetch)
		})
	}
}

func TestSubmitWhenClosed(t *testing.T) {
	m := (&recorder{}).modal()
	assert.ErrorIs(t, m.Submit(context.Background()), ErrNotOpen)
}

func TestEditOnlyDialog(t *testing.T) {
	m := NewModal[CompanyInfoDraft](nil, func(context.Context, uint, CompanyInfoDraft) error { return nil }, nil)
	m.OpenCreate(CompanyInfoDraft{CompanyName: "SNS"})
	assert.Error(t, m.Submit(context.Background()))
	assert.Equal(t, OpenCreate, m.State())

	m.OpenEdit(0, CompanyInfoDraft{})
	assert.ErrorIs(t, m.Submit(context.Background()), ErrRequired)

	m.OpenEdit(0, CompanyInfoDraft{CompanyName: "SNS"})
	assert.NoError(t, m.Submit(context.Background()))
}

func TestSubProductDraftEncoding(t *testing.T) {
	d := NewSubProductDraft(4)
	d.Name = "Catalyst 9300"
	d.Features = []string{"Fast", "  ", "Reliable", ""}
	d.Specs = codec.Pairs{{Key: "ports", Value: "48"}, {Key: "", Value: "orphan"}, {Key: "poe", Value: "yes"}}

	req := d.CreateRequest()
	assert.Equal(t, `["Fast","Reliable"]`, req.Features)
	assert.Equal(t, `{"ports":"48","poe":"yes"}`, req.Specifications)
	assert.Equal(t, "[]", req.Images)
	assert.Equal(t, "USD", req.Currency)
	assert.Equal(t, uint(4), req.ProductID)

	upd := d.UpdateRequest()
	require.NotNil(t, upd.Features)
	assert.Equal(t, `["Fast","Reliable"]`, *upd.Features)
}

func TestSubProductDraftOf(t *testing.T) {
	d := SubProductDraftOf(models.SubProduct{Name: "x", ProductID: 1, Features: "not json", Specifications: ""})
	assert.Equal(t, []string{""}, d.Features)
	assert.Equal(t, codec.Pairs{{}}, d.Specs)

	d = SubProductDraftOf(models.SubProduct{Features: `["a","b"]`, Specifications: `{"z":"1","a":"2"}`})
	assert.Equal(t, []string{"a", "b"}, d.Features)
	assert.Equal(t, codec.Pairs{{Key: "z", Value: "1"}, {Key: "a", Value: "2"}}, d.Specs)
}

func TestProductDraftCategory(t *testing.T) {
	assert.Nil(t, ProductDraft{Name: "p"}.CreateRequest().CategoryID)
	req := ProductDraft{Name: "p", CategoryID: 2}.CreateRequest()
	require.NotNil(t, req.CategoryID)
	assert.Equal(t, uint(2), *req.CategoryID)
}

func TestForResource(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Service not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(models.Service{ID: 1, Name: "Installation"})
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithSession(client.NewMemorySession("tok")))
	loads := 0
	m := ForResource[ServiceDraft](c.Services(), func(context.Context) error {
		loads++
		return nil
	})

	d := NewServiceDraft()
	d.Name = "Installation"
	d.Features = []string{"Site survey", ""}
	m.OpenCreate(d)
	require.NoError(t, m.Submit(context.Background()))
	assert.Equal(t, 1, loads)

	m.OpenEdit(5, ServiceDraftOf(models.Service{Name: "Installation"}))
	require.Error(t, m.Submit(context.Background()))
	assert.Equal(t, "Service not found", m.Error())
	assert.Equal(t, OpenEdit, m.State())

	require.Len(t, bodies, 2)
	assert.Equal(t, `["Site survey"]`, bodies[0]["features"])
	assert.Equal(t, "[]", bodies[1]["features"])
}
