package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/judyrop/sns-catalog/models"
)

// Page selects a window of a listing. Zero values use the server defaults.
type Page struct {
	Skip  int
	Limit int
}

func (p Page) values() url.Values {
	q := url.Values{}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

func idPath(base string, id uint) string {
	return base + "/" + strconv.FormatUint(uint64(id), 10)
}

// Resource is the admin CRUD surface of one entity.
type Resource[T, C, U any] struct {
	c    *Client
	path string
}

func (r *Resource[T, C, U]) List(ctx context.Context, page Page) ([]T, error) {
	var out []T
	err := r.c.do(ctx, http.MethodGet, r.path, page.values(), nil, &out)
	return out, err
}

func (r *Resource[T, C, U]) Get(ctx context.Context, id uint) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodGet, idPath(r.path, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, C, U]) Create(ctx context.Context, req C) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPost, r.path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, C, U]) Update(ctx context.Context, id uint, req U) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPut, idPath(r.path, id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, C, U]) Delete(ctx context.Context, id uint) error {
	return r.c.do(ctx, http.MethodDelete, idPath(r.path, id), nil, nil, nil)
}

type (
	Categories = Resource[models.Category, models.CategoryCreate, models.CategoryUpdate]
	Products   = Resource[models.Product, models.ProductCreate, models.ProductUpdate]
	Services   = Resource[models.Service, models.ServiceCreate, models.ServiceUpdate]
	Solutions  = Resource[models.Solution, models.SolutionCreate, models.SolutionUpdate]
	Customers  = Resource[models.Customer, models.CustomerCreate, models.CustomerUpdate]
)

func (c *Client) Categories() *Categories { return &Categories{c: c, path: "/admin/categories"} }
func (c *Client) Products() *Products     { return &Products{c: c, path: "/admin/products"} }
func (c *Client) Services() *Services     { return &Services{c: c, path: "/admin/services"} }
func (c *Client) Solutions() *Solutions   { return &Solutions{c: c, path: "/admin/solutions"} }
func (c *Client) Customers() *Customers   { return &Customers{c: c, path: "/admin/customers"} }

// SubProducts adds the product-scoped, featured and search listings.
type SubProducts struct {
	Resource[models.SubProduct, models.SubProductCreate, models.SubProductUpdate]
	prefix string
}

func (c *Client) SubProducts() *SubProducts {
	return &SubProducts{
		Resource: Resource[models.SubProduct, models.SubProductCreate, models.SubProductUpdate]{c: c, path: "/admin/sub-products"},
		prefix:   "/admin",
	}
}

// ListFiltered lists sub-products of productID, or all when it is zero.
func (s *SubProducts) ListFiltered(ctx context.Context, page Page, productID uint) ([]models.SubProduct, error) {
	return listSubProducts(ctx, s.c, s.path, page, productID)
}

func (s *SubProducts) ListByProduct(ctx context.Context, productID uint) ([]models.SubProduct, error) {
	return subProductsOf(ctx, s.c, s.prefix, productID)
}

func (s *SubProducts) Featured(ctx context.Context, limit int) ([]models.SubProduct, error) {
	return featured(ctx, s.c, s.path, limit)
}

func (s *SubProducts) Search(ctx context.Context, query string, page Page) ([]models.SubProduct, error) {
	return search(ctx, s.c, s.path, query, page)
}

func listSubProducts(ctx context.Context, c *Client, path string, page Page, productID uint) ([]models.SubProduct, error) {
	q := page.values()
	if productID != 0 {
		q.Set("product_id", strconv.FormatUint(uint64(productID), 10))
	}
	var out []models.SubProduct
	err := c.do(ctx, http.MethodGet, path, q, nil, &out)
	return out, err
}

func subProductsOf(ctx context.Context, c *Client, prefix string, productID uint) ([]models.SubProduct, error) {
	var out []models.SubProduct
	err := c.do(ctx, http.MethodGet, idPath(prefix+"/products", productID)+"/sub-products", nil, nil, &out)
	return out, err
}

func featured(ctx context.Context, c *Client, path string, limit int) ([]models.SubProduct, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []models.SubProduct
	err := c.do(ctx, http.MethodGet, path+"/featured", q, nil, &out)
	return out, err
}

func search(ctx context.Context, c *Client, path, query string, page Page) ([]models.SubProduct, error) {
	q := page.values()
	q.Set("q", query)
	var out []models.SubProduct
	err := c.do(ctx, http.MethodGet, path+"/search", q, nil, &out)
	return out, err
}

func (c *Client) CompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	var out models.CompanyInfo
	if err := c.do(ctx, http.MethodGet, "/admin/company-info", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCompanyInfo(ctx context.Context, req models.CompanyInfoUpdate) (*models.CompanyInfo, error) {
	var out models.CompanyInfo
	if err := c.do(ctx, http.MethodPut, "/admin/company-info", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DefaultImages(ctx context.Context) (*models.DefaultImages, error) {
	var out models.DefaultImages
	if err := c.do(ctx, http.MethodGet, "/public/default-images", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Public is the read-only storefront API. It only ever sees active rows.
type Public struct {
	c *Client
}

func (c *Client) Public() *Public { return &Public{c: c} }

func publicList[T any](ctx context.Context, p *Public, path string, page Page) ([]T, error) {
	var out []T
	err := p.c.do(ctx, http.MethodGet, "/public"+path, page.values(), nil, &out)
	return out, err
}

func (p *Public) Categories(ctx context.Context, page Page) ([]models.Category, error) {
	return publicList[models.Category](ctx, p, "/categories", page)
}

func (p *Public) Products(ctx context.Context, page Page) ([]models.Product, error) {
	return publicList[models.Product](ctx, p, "/products", page)
}

func (p *Public) Services(ctx context.Context, page Page) ([]models.Service, error) {
	return publicList[models.Service](ctx, p, "/services", page)
}

func (p *Public) Solutions(ctx context.Context, page Page) ([]models.Solution, error) {
	return publicList[models.Solution](ctx, p, "/solutions", page)
}

func (p *Public) Customers(ctx context.Context, page Page) ([]models.Customer, error) {
	return publicList[models.Customer](ctx, p, "/customers", page)
}

func (p *Public) SubProducts(ctx context.Context, page Page, productID uint) ([]models.SubProduct, error) {
	return listSubProducts(ctx, p.c, "/public/sub-products", page, productID)
}

func (p *Public) SubProduct(ctx context.Context, id uint) (*models.SubProduct, error) {
	var out models.SubProduct
	if err := p.c.do(ctx, http.MethodGet, idPath("/public/sub-products", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *Public) SubProductsByProduct(ctx context.Context, productID uint) ([]models.SubProduct, error) {
	return subProductsOf(ctx, p.c, "/public", productID)
}

func (p *Public) FeaturedSubProducts(ctx context.Context, limit int) ([]models.SubProduct, error) {
	return featured(ctx, p.c, "/public/sub-products", limit)
}

func (p *Public) SearchSubProducts(ctx context.Context, query string, page Page) ([]models.SubProduct, error) {
	return search(ctx, p.c, "/public/sub-products", query, page)
}

func (p *Public) CompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	var out models.CompanyInfo
	if err := p.c.do(ctx, http.MethodGet, "/public/company-info", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *Public) DefaultImages(ctx context.Context) (*models.DefaultImages, error) {
	return p.c.DefaultImages(ctx)
}
