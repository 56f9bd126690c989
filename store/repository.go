package store

import (
	"context"

	"gorm.io/gorm"
)

// Page is an offset window over a listing.
type Page struct {
	Skip  int
	Limit int
}

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

func (p Page) scope(db *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	skip := p.Skip
	if skip < 0 {
		skip = 0
	}
	return db.Offset(skip).Limit(limit)
}

// Active keeps rows with is_active set.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type Scope = func(*gorm.DB) *gorm.DB

// Repository is CRUD over one table. preload names associations loaded on
// every read.
type Repository[T any] struct {
	db      *gorm.DB
	preload []string
}

func NewRepository[T any](db *gorm.DB, preload ...string) *Repository[T] {
	return &Repository[T]{db: db, preload: preload}
}

func (r *Repository[T]) read(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, assoc := range r.preload {
		q = q.Preload(assoc)
	}
	return q
}

func (r *Repository[T]) List(ctx context.Context, page Page, scopes ...Scope) ([]T, error) {
	items := []T{}
	err := r.read(ctx).Scopes(scopes...).Scopes(page.scope).Order("id").Find(&items).Error
	return items, err
}

func (r *Repository[T]) Get(ctx context.Context, id uint, scopes ...Scope) (*T, error) {
	var item T
	if err := r.read(ctx).Scopes(scopes...).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository[T]) Create(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return err
	}
	return r.reload(ctx, item)
}

// Update applies changes to row id and returns the fresh row. A missing row
// is gorm.ErrRecordNotFound.
func (r *Repository[T]) Update(ctx context.Context, id uint, changes map[string]any) (*T, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, id)
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	return deleteByID[T](r.db.WithContext(ctx), id)
}

func (r *Repository[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Count(&n).Error
	return n, err
}

// reload refreshes item including its preloaded associations.
func (r *Repository[T]) reload(ctx context.Context, item *T) error {
	if len(r.preload) == 0 {
		return nil
	}
	return r.read(ctx).First(item).Error
}

func deleteByID[T any](db *gorm.DB, id uint) error {
	res := db.Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
