package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/judyrop/sns-catalog/client"
	"github.com/judyrop/sns-catalog/models"
)

// Page loaders fetch everything a page shows at once. If any request fails
// the page gets nothing and the first error.

// all is the first page of every listing. The backend caps limit at 1000.
var all = client.Page{Limit: 1000}

type Dashboard struct {
	Categories int
	Products   int
	Services   int
	Solutions  int
	Customers  int
}

func count[T any](ctx context.Context, list func(context.Context, client.Page) ([]T, error), dst *int) func() error {
	return func() error {
		items, err := list(ctx, all)
		if err != nil {
			return err
		}
		*dst = len(items)
		return nil
	}
}

func LoadDashboard(ctx context.Context, c *client.Client) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(count(ctx, c.Categories().List, &d.Categories))
	g.Go(count(ctx, c.Products().List, &d.Products))
	g.Go(count(ctx, c.Services().List, &d.Services))
	g.Go(count(ctx, c.Solutions().List, &d.Solutions))
	g.Go(count(ctx, c.Customers().List, &d.Customers))
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ProductsPage backs the product listing and its category filter dropdown.
type ProductsPage struct {
	Products   []models.Product
	Categories []models.Category
}

func LoadProducts(ctx context.Context, c *client.Client) (*ProductsPage, error) {
	return loadProducts(ctx, c.Products().List, c.Categories().List)
}

func LoadPublicProducts(ctx context.Context, p *client.Public) (*ProductsPage, error) {
	return loadProducts(ctx, p.Products, p.Categories)
}

func loadProducts(ctx context.Context,
	products func(context.Context, client.Page) ([]models.Product, error),
	categories func(context.Context, client.Page) ([]models.Category, error),
) (*ProductsPage, error) {
	var page ProductsPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.Products, err = products(ctx, all)
		return err
	})
	g.Go(func() (err error) {
		page.Categories, err = categories(ctx, all)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

type ServicesPage struct {
	Services   []models.Service
	Categories []models.Category
}

func LoadServices(ctx context.Context, c *client.Client) (*ServicesPage, error) {
	var page ServicesPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.Services, err = c.Services().List(ctx, all)
		return err
	})
	g.Go(func() (err error) {
		page.Categories, err = c.Categories().List(ctx, all)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

// SubProductsPage backs the sub-product listing with its product filter.
type SubProductsPage struct {
	SubProducts []models.SubProduct
	Products    []models.Product
	Images      *models.DefaultImages
}

// LoadSubProducts loads the admin listing, narrowed to productID when it is
// not zero.
func LoadSubProducts(ctx context.Context, c *client.Client, productID uint) (*SubProductsPage, error) {
	return loadSubProducts(ctx,
		func(ctx context.Context) ([]models.SubProduct, error) {
			return c.SubProducts().ListFiltered(ctx, all, productID)
		},
		c.Products().List, c.DefaultImages)
}

func LoadPublicSubProducts(ctx context.Context, p *client.Public, productID uint) (*SubProductsPage, error) {
	return loadSubProducts(ctx,
		func(ctx context.Context) ([]models.SubProduct, error) {
			return p.SubProducts(ctx, all, productID)
		},
		p.Products, p.DefaultImages)
}

func loadSubProducts(ctx context.Context,
	subProducts func(context.Context) ([]models.SubProduct, error),
	products func(context.Context, client.Page) ([]models.Product, error),
	images func(context.Context) (*models.DefaultImages, error),
) (*SubProductsPage, error) {
	var page SubProductsPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.SubProducts, err = subProducts(ctx)
		return err
	})
	g.Go(func() (err error) {
		page.Products, err = products(ctx, all)
		return err
	})
	g.Go(func() (err error) {
		page.Images, err = images(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

type SubProductPage struct {
	SubProduct *models.SubProduct
	Images     *models.DefaultImages
}

func LoadSubProduct(ctx context.Context, c *client.Client, id uint) (*SubProductPage, error) {
	return loadSubProduct(ctx, id, c.SubProducts().Get, c.DefaultImages)
}

func LoadPublicSubProduct(ctx context.Context, p *client.Public, id uint) (*SubProductPage, error) {
	return loadSubProduct(ctx, id, p.SubProduct, p.DefaultImages)
}

func loadSubProduct(ctx context.Context, id uint,
	get func(context.Context, uint) (*models.SubProduct, error),
	images func(context.Context) (*models.DefaultImages, error),
) (*SubProductPage, error) {
	var page SubProductPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.SubProduct, err = get(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		page.Images, err = images(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

// HomePage is the storefront landing page.
type HomePage struct {
	Company    *models.CompanyInfo
	Featured   []models.SubProduct
	Categories []models.Category
	Customers  []models.Customer
}

func LoadHome(ctx context.Context, p *client.Public, featured int) (*HomePage, error) {
	var page HomePage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.Company, err = p.CompanyInfo(ctx)
		return err
	})
	g.Go(func() (err error) {
		page.Featured, err = p.FeaturedSubProducts(ctx, featured)
		return err
	})
	g.Go(func() (err error) {
		page.Categories, err = p.Categories(ctx, all)
		return err
	})
	g.Go(func() (err error) {
		page.Customers, err = p.Customers(ctx, all)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

func Home(s Styles, h HomePage) string {
	out := ""
	if h.Company != nil {
		out += CompanyInfo(s, *h.Company) + "\n"
	}
	out += SubProducts(s, h.Featured, nil) + "\n"
	out += Categories(s, h.Categories) + "\n"
	out += Customers(s, h.Customers)
	return out
}
