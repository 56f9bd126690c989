package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/judyrop/sns-catalog/models"
	"github.com/judyrop/sns-catalog/store"
)

// registerPublic mounts the read-only storefront routes. Inactive rows are
// never returned.
func (srv *server) registerPublic(g *gin.RouterGroup) {
	srv.categories().registerPublic(g, "/categories")
	srv.products().registerPublic(g, "/products")
	srv.services().registerPublic(g, "/services")
	srv.solutions().registerPublic(g, "/solutions")
	srv.customers().registerPublic(g, "/customers")

	active := []store.Scope{store.Active}
	g.GET("/sub-products", srv.listSubProducts(active))
	g.GET("/sub-products/featured", srv.featuredSubProducts)
	g.GET("/sub-products/search", srv.searchSubProducts)
	g.GET("/sub-products/:id", srv.subProducts().get(active))
	g.GET("/products/:id/sub-products", srv.subProductsOfProduct(active))

	g.GET("/company-info", srv.getCompanyInfo)
	g.GET("/default-images", srv.defaultImages)
}

func (srv *server) defaultImages(c *gin.Context) {
	c.JSON(http.StatusOK, models.DefaultImages{
		ProductImage: srv.cfg.DefaultProductImage,
		LogoImage:    srv.cfg.DefaultLogoImage,
	})
}
