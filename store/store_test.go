package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/judyrop/sns-catalog/codec"
	"github.com/judyrop/sns-catalog/models"
)

// getTestDB opens a fresh in-memory database. A single connection keeps
// every query on the same memory database.
func getTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("sqlite", "file::memory:", zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func ptr[T any](v T) *T { return &v }

func TestCategoryCRUD(t *testing.T) {
	ctx := context.Background()
	s := New(getTestDB(t))

	cat := models.CategoryCreate{Name: "Networking", Description: "Switches"}.Record()
	require.NoError(t, s.Categories.Create(ctx, &cat))
	assert.NotZero(t, cat.ID)
	assert.True(t, cat.IsActive)

	got, err := s.Categories.Get(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Networking", got.Name)

	updated, err := s.Categories.Update(ctx, cat.ID, models.CategoryUpdate{IsActive: ptr(false)}.Changes())
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Switches", updated.Description)

	taken, err := s.CategoryNameTaken(ctx, "networking", 0)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = s.CategoryNameTaken(ctx, "Networking", cat.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, s.DeleteCategory(ctx, cat.ID))
	_, err = s.Categories.Get(ctx, cat.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, s.DeleteCategory(ctx, cat.ID), gorm.ErrRecordNotFound)
}

func TestUpdateMissingRow(t *testing.T) {
	s := New(getTestDB(t))
	_, err := s.Products.Update(context.Background(), 42, map[string]any{"name": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteCategoryDetachesChildren(t *testing.T) {
	ctx := context.Background()
	s := New(getTestDB(t))

	cat := models.CategoryCreate{Name: "Security"}.Record()
	require.NoError(t, s.Categories.Create(ctx, &cat))
	prod := models.ProductCreate{Name: "Firewall", CategoryID: &cat.ID}.Record()
	require.NoError(t, s.Products.Create(ctx, &prod))
	require.NotNil(t, prod.Category)
	assert.Equal(t, "Security", prod.Category.Name)
	svc := models.ServiceCreate{Name: "Audit", CategoryID: &cat.ID}.Record()
	require.NoError(t, s.Services.Create(ctx, &svc))

	require.NoError(t, s.DeleteCategory(ctx, cat.ID))

	gotProd, err := s.Products.Get(ctx, prod.ID)
	require.NoError(t, err)
	assert.Nil(t, gotProd.CategoryID)
	assert.Nil(t, gotProd.Category)
	gotSvc, err := s.Services.Get(ctx, svc.ID)
	require.NoError(t, err)
	assert.Nil(t, gotSvc.CategoryID)
}

func TestDeleteProductCascades(t *testing.T) {
	ctx := context.Background()
	s := New(getTestDB(t))

	prod := models.ProductCreate{Name: "Switches"}.Record()
	require.NoError(t, s.Products.Create(ctx, &prod))
	for _, name := range []string{"A", "B"} {
		sp := models.SubProductCreate{Name: name, ProductID: prod.ID}.Record()
		require.NoError(t, s.SubProducts.Create(ctx, &sp))
	}
	other := models.ProductCreate{Name: "Routers"}.Record()
	require.NoError(t, s.Products.Create(ctx, &other))
	keep := models.SubProductCreate{Name: "C", ProductID: other.ID}.Record()
	require.NoError(t, s.SubProducts.Create(ctx, &keep))

	require.NoError(t, s.DeleteProduct(ctx, prod.ID))

	n, err := s.SubProducts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSubProductDefaults(t *testing.T) {
	ctx := context.Background()
	s := New(getTestDB(t))

	prod := models.ProductCreate{Name: "Cameras"}.Record()
	require.NoError(t, s.Products.Create(ctx, &prod))
	sp := models.SubProductCreate{Name: "Dome", ProductID: prod.ID, Features: `["Fast","Reliable"]`}.Record()
	require.NoError(t, s.SubProducts.Create(ctx, &sp))

	got, err := s.SubProducts.Get(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "Available", got.AvailabilityStatus)
	assert.Equal(t, "{}", got.Specifications)
	assert.Equal(t, "[]", got.Images)
	assert.Equal(t, []string{"Fast", "Reliable"}, got.FeatureList())
}

func seedSubProducts(t *testing.T, s *Store) models.Product {
	t.Helper()
	ctx := context.Background()
	prod := models.ProductCreate{Name: "Network"}.Record()
	require.NoError(t, s.Products.Create(ctx, &prod))
	rows := []models.SubProductCreate{
		{Name: "Catalyst 9300", Brand: "Cisco", Tags: `["switch"]`, IsFeatured: true, SortOrder: 2},
		{Name: "ASR 1001", Brand: "Cisco", Model: "ASR", Tags: `["router"]`, IsFeatured: true, SortOrder: 1},
		{Name: "FortiGate 100F", Brand: "Fortinet", Tags: `["firewall"]`, SortOrder: 1},
		{Name: "Hidden 50%", Brand: "Cisco", IsFeatured: true},
	}
	for i, r := range rows {
		r.ProductID = prod.ID
		sp := r.Record()
		require.NoError(t, s.SubProducts.Create(ctx, &sp))
		if i == len(rows)-1 {
			_, err := s.SubProducts.Update(ctx, sp.ID, map[string]any{"is_active": false})
			require.NoError(t, err)
		}
	}
	return prod
}

func TestSubProductQueries(t *testing.T) {
	ctx := context.Background()
	s := New(getTestDB(t))
	prod := seedSubProducts(t, s)

	t.Run("by product", func(t *testing.T) {
		items, err := s.SubProducts.ByProduct(ctx, prod.ID)
		require.NoError(t, err)
		names := make([]string, 0, len(items))
		for _, it := range items {
			names = append(names, it.Name)
		}
		assert.Equal(t, []string{"ASR 1001", "FortiGate 100F", "Catalyst 9300"}, names)
	})

	t.Run("featured", func(t *testing.T) {
		items, err := s.SubProducts.Featured(ctx, 0)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "ASR 1001", items[0].Name)

		items, err = s.SubProducts.Featured(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("search", func(t *testing.T) {
		items, err := s.SubProducts.Search(ctx, "CISCO", Page{})
		require.NoError(t, err)
		assert.Len(t, items, 2)

		items, err = s.SubProducts.Search(ctx, "firewall", Page{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "FortiGate 100F", items[0].Name)

		items, err = s.SubProducts.Search(ctx, "%", Page{})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("filtered", func(t *testing.T) {
		all, err := s.SubProducts.Filtered(ctx, Page{}, nil)
		require.NoError(t, err)
		assert.Len(t, all, 4)

		none, err := s.SubProducts.Filtered(ctx, Page{}, ptr(prod.ID+1))
		require.NoError(t, err)
		assert.Empty(t, none)

		active, err := s.SubProducts.Filtered(ctx, Page{Limit: 2}, &prod.ID, Active)
		require.NoError(t, err)
		assert.Len(t, active, 2)
	})
}

func TestCompanyInfo(t *testing.T) {
	ctx := context.Background()
	s := New(getTestDB(t))

	_, err := s.CompanyInfo.Get(ctx)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = s.CompanyInfo.Update(ctx, map[string]any{"phone": "1"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, s.CompanyInfo.Create(ctx, &models.CompanyInfo{CompanyName: "SNS"}))
	assert.Error(t, s.CompanyInfo.Create(ctx, &models.CompanyInfo{CompanyName: "Again"}))

	info, err := s.CompanyInfo.Update(ctx, models.CompanyInfoUpdate{Phone: ptr("+880")}.Changes())
	require.NoError(t, err)
	assert.Equal(t, "SNS", info.CompanyName)
	assert.Equal(t, "+880", info.Phone)
	assert.Equal(t, 365, info.ServiceDaysPerYear)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	db := getTestDB(t)
	s := New(db)

	require.NoError(t, EnsureAdmin(ctx, db, "admin", "admin@snsbd.com", "hash", zap.NewNop()))
	require.NoError(t, EnsureAdmin(ctx, db, "admin", "admin@snsbd.com", "other", zap.NewNop()))
	admin, err := s.ActiveAdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash", admin.HashedPassword)
	_, err = s.ActiveAdminByEmail(ctx, "ADMIN@snsbd.com")
	require.NoError(t, err)

	catalog, err := StarterCatalog()
	require.NoError(t, err)
	require.NoError(t, SeedCatalog(ctx, db, catalog, zap.NewNop()))

	n, err := s.Categories.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(catalog.Categories)), n)

	info, err := s.CompanyInfo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Star Network Solutions", info.CompanyName)

	items, err := s.SubProducts.Search(ctx, "catalyst", Page{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	specs := items[0].SpecificationPairs()
	require.NotEmpty(t, specs)
	assert.Equal(t, codec.Pair{Key: "ports", Value: "48 x 10/100/1000 Ethernet ports"}, specs[0])
	assert.Contains(t, items[0].FeatureList(), "StackWise-480 technology")

	// A second run leaves the catalog alone.
	require.NoError(t, SeedCatalog(ctx, db, catalog, zap.NewNop()))
	again, err := s.Categories.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, again)
}
