package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/judyrop/sns-catalog/listfilter"
	"github.com/judyrop/sns-catalog/models"
	"github.com/judyrop/sns-catalog/views"
)

// siteCmd browses the public storefront. It needs no login.
func siteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "site", Short: "Browse the public site"}

	cmd.AddCommand(&cobra.Command{
		Use:   "home",
		Short: "Company profile, featured products, categories and customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := views.LoadHome(cmd.Context(), a.client.Public(), 6)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, views.Home(a.styles, *page))
			return nil
		},
	})

	var category uint
	var productTerm string
	products := &cobra.Command{
		Use:   "products",
		Short: "Product lines, optionally within one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := views.LoadPublicProducts(cmd.Context(), a.client.Public())
			if err != nil {
				return err
			}
			items := listfilter.Apply(page.Products,
				listfilter.ProductsInCategory(optional(category)),
				listfilter.ByName(productTerm, func(p models.Product) string { return p.Name }),
			)
			fmt.Fprint(a.out, views.Products(a.styles, items))
			return nil
		},
	}
	products.Flags().UintVar(&category, "category", 0, "only products in this category")
	searchFlag(products.Flags(), &productTerm)
	cmd.AddCommand(products)

	var product uint
	var term string
	var featuredOnly bool
	subProducts := &cobra.Command{
		Use:   "sub-products",
		Short: "Individual products, optionally of one product line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := views.LoadPublicSubProducts(cmd.Context(), a.client.Public(), 0)
			if err != nil {
				return err
			}
			items := listfilter.Apply(page.SubProducts, subProductFilters(listfilter.PublicSubProductSearch(term), product, featuredOnly)...)
			fmt.Fprint(a.out, views.SubProducts(a.styles, items, page.Products))
			return nil
		},
	}
	subProducts.Flags().UintVar(&product, "product", 0, "only sub-products of this product")
	subProducts.Flags().StringVarP(&term, "search", "s", "", "match name, brand or model")
	subProducts.Flags().BoolVar(&featuredOnly, "featured", false, "only featured sub-products")
	cmd.AddCommand(subProducts)

	cmd.AddCommand(&cobra.Command{
		Use:   "sub-product <id>",
		Short: "Detail page of one sub-product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			page, err := views.LoadPublicSubProduct(cmd.Context(), a.client.Public(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, views.SubProductDetail(a.styles, *page.SubProduct, page.Images))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.client.Public().SearchSubProducts(cmd.Context(), args[0], everything)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, views.SubProducts(a.styles, items, nil))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "services",
		Short: "Services offered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.client.Public().Services(cmd.Context(), everything)
			if err != nil {
				return err
			}
			for _, svc := range items {
				fmt.Fprintln(a.out, views.ServiceDetail(a.styles, svc))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "solutions",
		Short: "Solutions offered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.client.Public().Solutions(cmd.Context(), everything)
			if err != nil {
				return err
			}
			for _, sol := range items {
				fmt.Fprintln(a.out, views.SolutionDetail(a.styles, sol))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "customers",
		Short: "Customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.client.Public().Customers(cmd.Context(), everything)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, views.Customers(a.styles, items))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "about",
		Short: "Company information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.client.Public().CompanyInfo(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, views.CompanyInfo(a.styles, *info))
			return nil
		},
	})
	return cmd
}
