package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/judyrop/sns-catalog/client"
	"github.com/judyrop/sns-catalog/form"
	"github.com/judyrop/sns-catalog/listfilter"
	"github.com/judyrop/sns-catalog/models"
	"github.com/judyrop/sns-catalog/views"
)

func searchFlag(fs *pflag.FlagSet, term *string) {
	fs.StringVarP(term, "search", "s", "", "only rows whose name contains this text")
}

func categoryEntity() entity[models.Category, models.CategoryCreate, models.CategoryUpdate, form.CategoryDraft] {
	return entity[models.Category, models.CategoryCreate, models.CategoryUpdate, form.CategoryDraft]{
		name:    "categories",
		single:  "category",
		res:     (*client.Client).Categories,
		table:   views.Categories,
		detail:  func(s views.Styles, c models.Category) string { return views.Categories(s, []models.Category{c}) },
		blank:   form.NewCategoryDraft,
		draftOf: form.CategoryDraftOf,
		fields: func(fs *pflag.FlagSet, d *form.CategoryDraft) {
			fs.StringVar(&d.Name, "name", d.Name, "category name (required)")
			fs.StringVar(&d.Description, "description", d.Description, "description")
		},
		active: func(d *form.CategoryDraft) *bool { return &d.IsActive },
		filters: func(fs *pflag.FlagSet) func() []listfilter.Predicate[models.Category] {
			var term string
			var activeOnly bool
			searchFlag(fs, &term)
			fs.BoolVar(&activeOnly, "active-only", false, "hide inactive categories")
			return func() []listfilter.Predicate[models.Category] {
				preds := []listfilter.Predicate[models.Category]{
					listfilter.ByName(term, func(c models.Category) string { return c.Name }),
				}
				if activeOnly {
					preds = append(preds, listfilter.ActiveCategories())
				}
				return preds
			}
		},
	}
}

func productEntity() entity[models.Product, models.ProductCreate, models.ProductUpdate, form.ProductDraft] {
	return entity[models.Product, models.ProductCreate, models.ProductUpdate, form.ProductDraft]{
		name:    "products",
		single:  "product",
		res:     (*client.Client).Products,
		table:   views.Products,
		detail:  func(s views.Styles, p models.Product) string { return views.Products(s, []models.Product{p}) },
		blank:   form.NewProductDraft,
		draftOf: form.ProductDraftOf,
		fields: func(fs *pflag.FlagSet, d *form.ProductDraft) {
			fs.StringVar(&d.Name, "name", d.Name, "product name (required)")
			fs.StringVar(&d.Description, "description", d.Description, "description")
			fs.UintVar(&d.CategoryID, "category", d.CategoryID, "category id")
			fs.StringVar(&d.ImageURL, "image-url", d.ImageURL, "image URL")
		},
		active: func(d *form.ProductDraft) *bool { return &d.IsActive },
		filters: func(fs *pflag.FlagSet) func() []listfilter.Predicate[models.Product] {
			var term string
			var category uint
			searchFlag(fs, &term)
			fs.UintVar(&category, "category", 0, "only products in this category")
			return func() []listfilter.Predicate[models.Product] {
				return []listfilter.Predicate[models.Product]{
					listfilter.ByName(term, func(p models.Product) string { return p.Name }),
					listfilter.ProductsInCategory(optional(category)),
				}
			}
		},
	}
}

func subProductEntity() entity[models.SubProduct, models.SubProductCreate, models.SubProductUpdate, form.SubProductDraft] {
	return entity[models.SubProduct, models.SubProductCreate, models.SubProductUpdate, form.SubProductDraft]{
		name:   "subproducts",
		single: "sub-product",
		res: func(c *client.Client) *client.Resource[models.SubProduct, models.SubProductCreate, models.SubProductUpdate] {
			return &c.SubProducts().Resource
		},
		table: func(s views.Styles, items []models.SubProduct) string { return views.SubProducts(s, items, nil) },
		detail: func(s views.Styles, sp models.SubProduct) string {
			return views.SubProductDetail(s, sp, nil)
		},
		blank:   func() form.SubProductDraft { return form.NewSubProductDraft(0) },
		draftOf: form.SubProductDraftOf,
		fields:  subProductFields,
		active:  func(d *form.SubProductDraft) *bool { return &d.IsActive },
		filters: func(fs *pflag.FlagSet) func() []listfilter.Predicate[models.SubProduct] {
			var term string
			var product uint
			var featuredOnly bool
			fs.StringVarP(&term, "search", "s", "", "match name, brand, model or SKU")
			fs.UintVar(&product, "product", 0, "only sub-products of this product")
			fs.BoolVar(&featuredOnly, "featured", false, "only featured sub-products")
			return func() []listfilter.Predicate[models.SubProduct] {
				return subProductFilters(listfilter.AdminSubProductSearch(term), product, featuredOnly)
			}
		},
		view: func(ctx context.Context, a *app, preds []listfilter.Predicate[models.SubProduct]) error {
			page, err := views.LoadSubProducts(ctx, a.client, 0)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, views.SubProducts(a.styles, listfilter.Apply(page.SubProducts, preds...), page.Products))
			return nil
		},
		extra: []func(*app) *cobra.Command{subProductShowCmd, featuredCmd, searchCmd, productPageCmd},
	}
}

func subProductFilters(search listfilter.Predicate[models.SubProduct], product uint, featuredOnly bool) []listfilter.Predicate[models.SubProduct] {
	preds := []listfilter.Predicate[models.SubProduct]{search, listfilter.SubProductsOf(optional(product))}
	if featuredOnly {
		preds = append(preds, listfilter.FeaturedOnly())
	}
	return preds
}

func subProductFields(fs *pflag.FlagSet, d *form.SubProductDraft) {
	fs.StringVar(&d.Name, "name", d.Name, "sub-product name (required)")
	fs.UintVar(&d.ProductID, "product-id", d.ProductID, "parent product id (required)")
	fs.StringVar(&d.Description, "description", d.Description, "description")
	fs.StringVar(&d.SKU, "sku", d.SKU, "SKU")
	fs.StringVar(&d.Brand, "brand", d.Brand, "brand")
	fs.StringVar(&d.Model, "model", d.Model, "model")
	fs.Var(newPairsFlag(&d.Specs), "spec", "specification as key=value (repeatable)")
	fs.StringArrayVar(&d.Features, "feature", d.Features, "feature (repeatable)")
	fs.StringArrayVar(&d.Images, "image", d.Images, "image URL (repeatable)")
	fs.StringArrayVar(&d.Tags, "tag", d.Tags, "tag (repeatable)")
	fs.StringVar(&d.PriceRange, "price-range", d.PriceRange, "indicative price range")
	fs.StringVar(&d.Currency, "currency", d.Currency, "currency")
	fs.StringVar(&d.AvailabilityStatus, "availability", d.AvailabilityStatus, "availability status")
	fs.StringVar(&d.WarrantyInfo, "warranty", d.WarrantyInfo, "warranty information")
	fs.StringVar(&d.SupportInfo, "support", d.SupportInfo, "support information")
	fs.StringVar(&d.DocumentationURL, "documentation-url", d.DocumentationURL, "documentation URL")
	fs.StringVar(&d.DatasheetURL, "datasheet-url", d.DatasheetURL, "datasheet URL")
	fs.StringVar(&d.MetaTitle, "meta-title", d.MetaTitle, "SEO title")
	fs.StringVar(&d.MetaDescription, "meta-description", d.MetaDescription, "SEO description")
	fs.BoolVar(&d.IsFeatured, "featured", d.IsFeatured, "show on the home page")
	fs.IntVar(&d.SortOrder, "sort-order", d.SortOrder, "position in listings")
}

// subProductShowCmd shows the detail page with the default image fallback.
func subProductShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "page <id>",
		Short: "Show the full detail page of a sub-product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			page, err := views.LoadSubProduct(cmd.Context(), a.client, id)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, views.SubProductDetail(a.styles, *page.SubProduct, page.Images))
			return nil
		},
	}
}

func featuredCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "featured",
		Short: "List featured sub-products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.client.SubProducts().Featured(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, views.SubProducts(a.styles, items, nil))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "how many to show")
	return cmd
}

func searchCmd(a *app) *cobra.Command {
	var page client.Page
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search sub-products by name, brand, model or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.client.SubProducts().Search(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, views.SubProducts(a.styles, items, nil))
			return nil
		},
	}
	cmd.Flags().IntVar(&page.Skip, "skip", 0, "rows to skip")
	cmd.Flags().IntVar(&page.Limit, "limit", 0, "rows to return")
	return cmd
}

func productPageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "of-product <product-id>",
		Short: "List the active sub-products of one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			items, err := a.client.SubProducts().ListByProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, views.SubProducts(a.styles, items, nil))
			return nil
		},
	}
}

func serviceEntity() entity[models.Service, models.ServiceCreate, models.ServiceUpdate, form.ServiceDraft] {
	return entity[models.Service, models.ServiceCreate, models.ServiceUpdate, form.ServiceDraft]{
		name:    "services",
		single:  "service",
		res:     (*client.Client).Services,
		table:   views.Services,
		detail:  views.ServiceDetail,
		blank:   form.NewServiceDraft,
		draftOf: form.ServiceDraftOf,
		fields: func(fs *pflag.FlagSet, d *form.ServiceDraft) {
			fs.StringVar(&d.Name, "name", d.Name, "service name (required)")
			fs.StringVar(&d.Description, "description", d.Description, "description")
			fs.UintVar(&d.CategoryID, "category", d.CategoryID, "category id")
			fs.StringArrayVar(&d.Features, "feature", d.Features, "feature (repeatable)")
		},
		active: func(d *form.ServiceDraft) *bool { return &d.IsActive },
		filters: func(fs *pflag.FlagSet) func() []listfilter.Predicate[models.Service] {
			var term string
			var category uint
			searchFlag(fs, &term)
			fs.UintVar(&category, "category", 0, "only services in this category")
			return func() []listfilter.Predicate[models.Service] {
				return []listfilter.Predicate[models.Service]{
					listfilter.ByName(term, func(s models.Service) string { return s.Name }),
					listfilter.ServicesInCategory(optional(category)),
				}
			}
		},
	}
}

func solutionEntity() entity[models.Solution, models.SolutionCreate, models.SolutionUpdate, form.SolutionDraft] {
	return entity[models.Solution, models.SolutionCreate, models.SolutionUpdate, form.SolutionDraft]{
		name:    "solutions",
		single:  "solution",
		res:     (*client.Client).Solutions,
		table:   views.Solutions,
		detail:  views.SolutionDetail,
		blank:   form.NewSolutionDraft,
		draftOf: form.SolutionDraftOf,
		fields: func(fs *pflag.FlagSet, d *form.SolutionDraft) {
			fs.StringVar(&d.Name, "name", d.Name, "solution name (required)")
			fs.StringVar(&d.Description, "description", d.Description, "description")
			fs.StringArrayVar(&d.Features, "feature", d.Features, "feature (repeatable)")
		},
		active: func(d *form.SolutionDraft) *bool { return &d.IsActive },
		filters: func(fs *pflag.FlagSet) func() []listfilter.Predicate[models.Solution] {
			var term string
			searchFlag(fs, &term)
			return func() []listfilter.Predicate[models.Solution] {
				return []listfilter.Predicate[models.Solution]{
					listfilter.ByName(term, func(s models.Solution) string { return s.Name }),
				}
			}
		},
	}
}

func customerEntity() entity[models.Customer, models.CustomerCreate, models.CustomerUpdate, form.CustomerDraft] {
	return entity[models.Customer, models.CustomerCreate, models.CustomerUpdate, form.CustomerDraft]{
		name:    "customers",
		single:  "customer",
		res:     (*client.Client).Customers,
		table:   views.Customers,
		detail:  func(s views.Styles, c models.Customer) string { return views.Customers(s, []models.Customer{c}) },
		blank:   form.NewCustomerDraft,
		draftOf: form.CustomerDraftOf,
		fields: func(fs *pflag.FlagSet, d *form.CustomerDraft) {
			fs.StringVar(&d.Name, "name", d.Name, "customer name (required)")
			fs.StringVar(&d.LogoURL, "logo-url", d.LogoURL, "logo URL")
			fs.StringVar(&d.Description, "description", d.Description, "description")
		},
		active: func(d *form.CustomerDraft) *bool { return &d.IsActive },
		filters: func(fs *pflag.FlagSet) func() []listfilter.Predicate[models.Customer] {
			var term string
			searchFlag(fs, &term)
			return func() []listfilter.Predicate[models.Customer] {
				return []listfilter.Predicate[models.Customer]{
					listfilter.ByName(term, func(c models.Customer) string { return c.Name }),
				}
			}
		},
	}
}

func companyInfoFields(fs *pflag.FlagSet, d *form.CompanyInfoDraft) {
	fs.StringVar(&d.CompanyName, "name", d.CompanyName, "company name (required)")
	fs.StringVar(&d.Address, "address", d.Address, "postal address")
	fs.StringVar(&d.Phone, "phone", d.Phone, "phone number")
	fs.StringVar(&d.Email, "email", d.Email, "contact email")
	fs.StringVar(&d.Website, "website", d.Website, "website")
	fs.StringVar(&d.Mission, "mission", d.Mission, "mission statement")
	fs.StringVar(&d.Vision, "vision", d.Vision, "vision statement")
	fs.StringVar(&d.AboutUs, "about", d.AboutUs, "about us text")
	fs.IntVar(&d.FoundedYear, "founded", d.FoundedYear, "year founded")
	fs.IntVar(&d.TotalClients, "clients", d.TotalClients, "number of clients")
	fs.IntVar(&d.TotalBrands, "brands", d.TotalBrands, "number of brands")
	fs.IntVar(&d.ServiceDaysPerYear, "service-days", d.ServiceDaysPerYear, "service days per year")
}

func companyInfoCmd(a *app) *cobra.Command {
	show := func(ctx context.Context) error {
		info, err := a.client.CompanyInfo(ctx)
		if err != nil {
			return err
		}
		fmt.Fprint(a.out, views.CompanyInfo(a.styles, *info))
		return nil
	}

	cmd := &cobra.Command{Use: "company-info", Short: "Show or edit the company information"}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the company information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd.Context())
		},
	})

	update := &cobra.Command{
		Use:   "update",
		Short: "Edit the company information; only the given flags change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.client.CompanyInfo(cmd.Context())
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
					return errors.New("company information has not been set up yet")
				}
				return err
			}
			draft := form.CompanyInfoDraftOf(*info)
			if err := applyFlags(cmd.Flags(), func(fs *pflag.FlagSet) { companyInfoFields(fs, &draft) }); err != nil {
				return err
			}
			m := form.ForCompanyInfo(a.client, show)
			m.OpenEdit(info.ID, draft)
			if err := m.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Company information updated")
			return nil
		},
	}
	var help form.CompanyInfoDraft
	companyInfoFields(update.Flags(), &help)
	cmd.AddCommand(update)
	return cmd
}
