package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/judyrop/sns-catalog/apperrors"
	"github.com/judyrop/sns-catalog/models"
	"github.com/judyrop/sns-catalog/store"
)

func (srv *server) categories() *resource[models.Category, models.CategoryCreate, models.CategoryUpdate] {
	return &resource[models.Category, models.CategoryCreate, models.CategoryUpdate]{
		name: "Category",
		repo: srv.store.Categories,
		checkCreate: func(ctx context.Context, req models.CategoryCreate) error {
			return srv.checkCategoryName(ctx, req.Name, 0)
		},
		checkUpdate: func(ctx context.Context, id uint, req models.CategoryUpdate) error {
			if req.Name == nil {
				return nil
			}
			return srv.checkCategoryName(ctx, *req.Name, id)
		},
		remove: srv.store.DeleteCategory,
	}
}

func (srv *server) checkCategoryName(ctx context.Context, name string, exceptID uint) error {
	taken, err := srv.store.CategoryNameTaken(ctx, strings.TrimSpace(name), exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Conflict("Category with this name already exists")
	}
	return nil
}

// checkCategory rejects a category_id that does not exist.
func (srv *server) checkCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := srv.store.Categories.Get(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Category not found")
		}
		return err
	}
	return nil
}

func (srv *server) checkProduct(ctx context.Context, id uint) error {
	if _, err := srv.store.Products.Get(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Product not found")
		}
		return err
	}
	return nil
}

func (srv *server) products() *resource[models.Product, models.ProductCreate, models.ProductUpdate] {
	return &resource[models.Product, models.ProductCreate, models.ProductUpdate]{
		name: "Product",
		repo: srv.store.Products,
		checkCreate: func(ctx context.Context, req models.ProductCreate) error {
			return srv.checkCategory(ctx, req.CategoryID)
		},
		checkUpdate: func(ctx context.Context, _ uint, req models.ProductUpdate) error {
			return srv.checkCategory(ctx, req.CategoryID)
		},
		remove: srv.store.DeleteProduct,
	}
}

func (srv *server) subProducts() *resource[models.SubProduct, models.SubProductCreate, models.SubProductUpdate] {
	return &resource[models.SubProduct, models.SubProductCreate, models.SubProductUpdate]{
		name: "SubProduct",
		repo: srv.store.SubProducts.Repository,
		checkCreate: func(ctx context.Context, req models.SubProductCreate) error {
			return srv.checkProduct(ctx, req.ProductID)
		},
		checkUpdate: func(ctx context.Context, _ uint, req models.SubProductUpdate) error {
			if req.ProductID == nil {
				return nil
			}
			return srv.checkProduct(ctx, *req.ProductID)
		},
	}
}

func (srv *server) services() *resource[models.Service, models.ServiceCreate, models.ServiceUpdate] {
	return &resource[models.Service, models.ServiceCreate, models.ServiceUpdate]{
		name: "Service",
		repo: srv.store.Services,
		checkCreate: func(ctx context.Context, req models.ServiceCreate) error {
			return srv.checkCategory(ctx, req.CategoryID)
		},
		checkUpdate: func(ctx context.Context, _ uint, req models.ServiceUpdate) error {
			return srv.checkCategory(ctx, req.CategoryID)
		},
	}
}

func (srv *server) solutions() *resource[models.Solution, models.SolutionCreate, models.SolutionUpdate] {
	return &resource[models.Solution, models.SolutionCreate, models.SolutionUpdate]{
		name: "Solution",
		repo: srv.store.Solutions,
	}
}

func (srv *server) customers() *resource[models.Customer, models.CustomerCreate, models.CustomerUpdate] {
	return &resource[models.Customer, models.CustomerCreate, models.CustomerUpdate]{
		name: "Customer",
		repo: srv.store.Customers,
	}
}

func (srv *server) registerAdmin(g *gin.RouterGroup) {
	srv.categories().register(g, "/categories")
	srv.products().register(g, "/products")
	srv.services().register(g, "/services")
	srv.solutions().register(g, "/solutions")
	srv.customers().register(g, "/customers")

	sub := srv.subProducts()
	g.GET("/sub-products", srv.listSubProducts(nil))
	g.GET("/sub-products/featured", srv.featuredSubProducts)
	g.GET("/sub-products/search", srv.searchSubProducts)
	g.POST("/sub-products", sub.create)
	g.GET("/sub-products/:id", sub.get(nil))
	g.PUT("/sub-products/:id", sub.update)
	g.DELETE("/sub-products/:id", sub.delete)
	g.GET("/products/:id/sub-products", srv.subProductsOfProduct(nil))

	g.GET("/company-info", srv.getCompanyInfo)
	g.PUT("/company-info", srv.updateCompanyInfo)
}

func (srv *server) listSubProducts(scopes []store.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := bindPage(c)
		if !ok {
			return
		}
		productID, ok := optionalID(c, "product_id")
		if !ok {
			return
		}
		items, err := srv.store.SubProducts.Filtered(c.Request.Context(), page, productID, scopes...)
		if err != nil {
			_ = c.Error(apperrors.FromDB(err, "SubProduct not found"))
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

type featuredQuery struct {
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

func (srv *server) featuredSubProducts(c *gin.Context) {
	var q featuredQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperrors.Invalid(err))
		return
	}
	items, err := srv.store.SubProducts.Featured(c.Request.Context(), q.Limit)
	if err != nil {
		_ = c.Error(apperrors.FromDB(err, "SubProduct not found"))
		return
	}
	c.JSON(http.StatusOK, items)
}

type searchQuery struct {
	Q string `form:"q" binding:"required"`
}

func (srv *server) searchSubProducts(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(apperrors.BadRequest("Query parameter q is required", err))
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}
	items, err := srv.store.SubProducts.Search(c.Request.Context(), q.Q, page)
	if err != nil {
		_ = c.Error(apperrors.FromDB(err, "SubProduct not found"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// subProductsOfProduct lists a product's active sub-products. The product
// itself must pass scopes.
func (srv *server) subProductsOfProduct(scopes []store.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bindID(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if _, err := srv.store.Products.Get(ctx, id, scopes...); err != nil {
			_ = c.Error(apperrors.FromDB(err, "Product not found"))
			return
		}
		items, err := srv.store.SubProducts.ByProduct(ctx, id)
		if err != nil {
			_ = c.Error(apperrors.FromDB(err, "SubProduct not found"))
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func (srv *server) getCompanyInfo(c *gin.Context) {
	info, err := srv.store.CompanyInfo.Get(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.FromDB(err, "Company info not found"))
		return
	}
	c.JSON(http.StatusOK, info)
}

func (srv *server) updateCompanyInfo(c *gin.Context) {
	var req models.CompanyInfoUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Invalid(err))
		return
	}
	info, err := srv.store.CompanyInfo.Update(c.Request.Context(), req.Changes())
	if err != nil {
		_ = c.Error(apperrors.FromDB(err, "Company info not found"))
		return
	}
	c.JSON(http.StatusOK, info)
}
