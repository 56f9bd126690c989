package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/judyrop/sns-catalog/models"
)

// Store groups the catalog repositories over one database.
type Store struct {
	db *gorm.DB

	Categories  *Repository[models.Category]
	Products    *Repository[models.Product]
	SubProducts *SubProductRepository
	Services    *Repository[models.Service]
	Solutions   *Repository[models.Solution]
	Customers   *Repository[models.Customer]
	CompanyInfo *CompanyInfoRepository
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		Categories:  NewRepository[models.Category](db),
		Products:    NewRepository[models.Product](db, "Category"),
		SubProducts: &SubProductRepository{Repository: NewRepository[models.SubProduct](db)},
		Services:    NewRepository[models.Service](db, "Category"),
		Solutions:   NewRepository[models.Solution](db),
		Customers:   NewRepository[models.Customer](db),
		CompanyInfo: &CompanyInfoRepository{db: db},
	}
}

func (s *Store) DB() *gorm.DB { return s.db }

// CategoryNameTaken reports whether another category already uses name.
func (s *Store) CategoryNameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("LOWER(name) = ? AND id <> ?", strings.ToLower(name), exceptID).
		Count(&n).Error
	return n > 0, err
}

// DeleteCategory removes a category and detaches the products and services
// that referenced it.
func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Service{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		return deleteByID[models.Category](tx, id)
	})
}

// DeleteProduct removes a product together with its sub-products.
func (s *Store) DeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.SubProduct{}).Error; err != nil {
			return err
		}
		return deleteByID[models.Product](tx, id)
	})
}

func (s *Store) ActiveAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).Where("username = ? AND is_active = ?", username, true).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *Store) ActiveAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).Where("LOWER(email) = ? AND is_active = ?", strings.ToLower(email), true).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// SubProductRepository adds the listing queries the storefront needs.
type SubProductRepository struct {
	*Repository[models.SubProduct]
}

// Filtered lists sub-products, optionally restricted to one product.
func (r *SubProductRepository) Filtered(ctx context.Context, page Page, productID *uint, scopes ...Scope) ([]models.SubProduct, error) {
	if productID != nil && *productID != 0 {
		id := *productID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("product_id = ?", id) })
	}
	return r.List(ctx, page, scopes...)
}

// ByProduct lists the active sub-products of a product in display order.
func (r *SubProductRepository) ByProduct(ctx context.Context, productID uint) ([]models.SubProduct, error) {
	items := []models.SubProduct{}
	err := r.db.WithContext(ctx).
		Scopes(Active).
		Where("product_id = ?", productID).
		Order("sort_order").Order("name").
		Find(&items).Error
	return items, err
}

// Featured lists active featured sub-products in display order.
func (r *SubProductRepository) Featured(ctx context.Context, limit int) ([]models.SubProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	items := []models.SubProduct{}
	err := r.db.WithContext(ctx).
		Scopes(Active).
		Where("is_featured = ?", true).
		Order("sort_order").Order("name").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// Search matches active sub-products whose name, brand, model or tags
// contain query, ignoring case.
func (r *SubProductRepository) Search(ctx context.Context, query string, page Page) ([]models.SubProduct, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	items := []models.SubProduct{}
	err := r.db.WithContext(ctx).
		Scopes(Active, page.scope).
		Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(brand) LIKE ? ESCAPE '\' OR LOWER(model) LIKE ? ESCAPE '\' OR LOWER(tags) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern, pattern).
		Order("id").
		Find(&items).Error
	return items, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// CompanyInfoRepository manages the single company_info row.
type CompanyInfoRepository struct {
	db *gorm.DB
}

func (r *CompanyInfoRepository) Get(ctx context.Context) (*models.CompanyInfo, error) {
	var info models.CompanyInfo
	if err := r.db.WithContext(ctx).Order("id").First(&info).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *CompanyInfoRepository) Create(ctx context.Context, info *models.CompanyInfo) error {
	if _, err := r.Get(ctx); err == nil {
		return errors.New("company info already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(info).Error
}

// Update changes the existing row. Without one it returns
// gorm.ErrRecordNotFound.
func (r *CompanyInfoRepository) Update(ctx context.Context, changes map[string]any) (*models.CompanyInfo, error) {
	info, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		if err := r.db.WithContext(ctx).Model(info).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return r.Get(ctx)
}
