// Package listfilter narrows already-fetched listings the way the list pages
// do: a free-text search box, a dropdown on a foreign key and flag toggles.
package listfilter

import (
	"strings"

	"github.com/judyrop/sns-catalog/models"
)

// Predicate reports whether an item stays in the listing.
type Predicate[T any] func(T) bool

// Apply keeps the items that satisfy every predicate. The result is a new
// slice; items is not modified.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matches(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func matches[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}

// Search matches items where any field contains term, ignoring case. The term
// is used as typed; an empty term matches everything.
func Search[T any](term string, fields ...func(T) string) Predicate[T] {
	needle := strings.ToLower(term)
	return func(item T) bool {
		if needle == "" {
			return true
		}
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), needle) {
				return true
			}
		}
		return false
	}
}

// Equal matches items whose key equals *want. A nil want is "all".
func Equal[T any, K comparable](want *K, key func(T) K) Predicate[T] {
	return func(item T) bool {
		return want == nil || key(item) == *want
	}
}

// OptionalEqual is Equal for nullable keys: an unset want matches all, a set
// want never matches an item without a key.
func OptionalEqual[T any, K comparable](want *K, key func(T) *K) Predicate[T] {
	return func(item T) bool {
		if want == nil {
			return true
		}
		got := key(item)
		return got != nil && *got == *want
	}
}

// Flag keeps items whose flag is set.
func Flag[T any](flag func(T) bool) Predicate[T] {
	return flag
}

// AdminSubProductSearch is the back-office search box over sub-products.
func AdminSubProductSearch(term string) Predicate[models.SubProduct] {
	return Search(term,
		func(s models.SubProduct) string { return s.Name },
		func(s models.SubProduct) string { return s.Brand },
		func(s models.SubProduct) string { return s.Model },
		func(s models.SubProduct) string { return s.SKU },
	)
}

// PublicSubProductSearch is the storefront search box over sub-products.
func PublicSubProductSearch(term string) Predicate[models.SubProduct] {
	return Search(term,
		func(s models.SubProduct) string { return s.Name },
		func(s models.SubProduct) string { return s.Brand },
		func(s models.SubProduct) string { return s.Model },
	)
}

// SubProductsOf keeps the sub-products of one product; nil keeps all.
func SubProductsOf(productID *uint) Predicate[models.SubProduct] {
	return Equal(productID, func(s models.SubProduct) uint { return s.ProductID })
}

func ProductsInCategory(categoryID *uint) Predicate[models.Product] {
	return OptionalEqual(categoryID, func(p models.Product) *uint { return p.CategoryID })
}

func ServicesInCategory(categoryID *uint) Predicate[models.Service] {
	return OptionalEqual(categoryID, func(s models.Service) *uint { return s.CategoryID })
}

func FeaturedOnly() Predicate[models.SubProduct] {
	return Flag(func(s models.SubProduct) bool { return s.IsFeatured })
}

func ActiveCategories() Predicate[models.Category] {
	return Flag(func(c models.Category) bool { return c.IsActive })
}

// ByName searches any listing on its name.
func ByName[T any](term string, name func(T) string) Predicate[T] {
	return Search(term, name)
}
