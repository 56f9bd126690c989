package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/judyrop/sns-catalog/codec"
	"github.com/judyrop/sns-catalog/models"
)

//go:embed seed.yaml
var seedYAML []byte

// Catalog is the starter content loaded into an empty database. Rows refer
// to their parents by name.
type Catalog struct {
	Company     seedCompany      `yaml:"company"`
	Categories  []seedCategory   `yaml:"categories"`
	Products    []seedProduct    `yaml:"products"`
	SubProducts []seedSubProduct `yaml:"sub_products"`
	Services    []seedService    `yaml:"services"`
	Solutions   []seedSolution   `yaml:"solutions"`
	Customers   []seedCustomer   `yaml:"customers"`
}

type seedCompany struct {
	CompanyName        string `yaml:"company_name"`
	Address            string `yaml:"address"`
	Phone              string `yaml:"phone"`
	Email              string `yaml:"email"`
	Website            string `yaml:"website"`
	Mission            string `yaml:"mission"`
	Vision             string `yaml:"vision"`
	AboutUs            string `yaml:"about_us"`
	FoundedYear        int    `yaml:"founded_year"`
	TotalClients       int    `yaml:"total_clients"`
	TotalBrands        int    `yaml:"total_brands"`
	ServiceDaysPerYear int    `yaml:"service_days_per_year"`
}

type seedCategory struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type seedProduct struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	ImageURL    string `yaml:"image_url"`
}

type seedSubProduct struct {
	Name             string      `yaml:"name"`
	Description      string      `yaml:"description"`
	Product          string      `yaml:"product"`
	SKU              string      `yaml:"sku"`
	Brand            string      `yaml:"brand"`
	Model            string      `yaml:"model"`
	Specifications   codec.Pairs `yaml:"specifications"`
	Features         []string    `yaml:"features"`
	Images           []string    `yaml:"images"`
	Tags             []string    `yaml:"tags"`
	PriceRange       string      `yaml:"price_range"`
	WarrantyInfo     string      `yaml:"warranty_info"`
	SupportInfo      string      `yaml:"support_info"`
	DocumentationURL string      `yaml:"documentation_url"`
	DatasheetURL     string      `yaml:"datasheet_url"`
	MetaTitle        string      `yaml:"meta_title"`
	MetaDescription  string      `yaml:"meta_description"`
	IsFeatured       bool        `yaml:"is_featured"`
	SortOrder        int         `yaml:"sort_order"`
}

type seedService struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Features    []string `yaml:"features"`
}

type seedSolution struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
}

type seedCustomer struct {
	Name        string `yaml:"name"`
	LogoURL     string `yaml:"logo_url"`
	Description string `yaml:"description"`
}

// StarterCatalog parses the embedded starter content.
func StarterCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(seedYAML, &c); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	return &c, nil
}

// EnsureAdmin creates the admin account unless the username exists.
func EnsureAdmin(ctx context.Context, db *gorm.DB, username, email, hashedPassword string, log *zap.Logger) error {
	var existing models.Admin
	err := db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		log.Info("admin user already exists", zap.String("username", username))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}
	admin := models.Admin{Username: username, Email: email, HashedPassword: hashedPassword, IsActive: true}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Info("created admin user", zap.String("username", username))
	return nil
}

// SeedCatalog loads c in one transaction. It does nothing when any category
// already exists.
func SeedCatalog(ctx context.Context, db *gorm.DB, c *Catalog, log *zap.Logger) error {
	var n int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		log.Info("catalog already seeded", zap.Int64("categories", n))
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var infoCount int64
		if err := tx.Model(&models.CompanyInfo{}).Count(&infoCount).Error; err != nil {
			return err
		}
		if infoCount == 0 && c.Company.CompanyName != "" {
			sc := c.Company
			company := models.CompanyInfo{
				CompanyName:        sc.CompanyName,
				Address:            sc.Address,
				Phone:              sc.Phone,
				Email:              sc.Email,
				Website:            sc.Website,
				Mission:            sc.Mission,
				Vision:             sc.Vision,
				AboutUs:            sc.AboutUs,
				FoundedYear:        sc.FoundedYear,
				TotalClients:       sc.TotalClients,
				TotalBrands:        sc.TotalBrands,
				ServiceDaysPerYear: sc.ServiceDaysPerYear,
			}
			if company.ServiceDaysPerYear == 0 {
				company.ServiceDaysPerYear = 365
			}
			if err := tx.Create(&company).Error; err != nil {
				return fmt.Errorf("seed company info: %w", err)
			}
		}

		categories := make(map[string]uint, len(c.Categories))
		for _, sc := range c.Categories {
			cat := models.CategoryCreate{Name: sc.Name, Description: sc.Description}.Record()
			if err := tx.Create(&cat).Error; err != nil {
				return fmt.Errorf("seed category %q: %w", sc.Name, err)
			}
			categories[sc.Name] = cat.ID
		}

		products := make(map[string]uint, len(c.Products))
		for _, sp := range c.Products {
			req := models.ProductCreate{Name: sp.Name, Description: sp.Description, ImageURL: sp.ImageURL}
			if id, ok := categories[sp.Category]; ok {
				req.CategoryID = &id
			}
			p := req.Record()
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("seed product %q: %w", sp.Name, err)
			}
			products[sp.Name] = p.ID
		}

		for _, ss := range c.SubProducts {
			productID, ok := products[ss.Product]
			if !ok {
				return fmt.Errorf("seed sub-product %q: unknown product %q", ss.Name, ss.Product)
			}
			sub := models.SubProductCreate{
				Name:             ss.Name,
				Description:      ss.Description,
				ProductID:        productID,
				SKU:              ss.SKU,
				Brand:            ss.Brand,
				Model:            ss.Model,
				Specifications:   codec.EncodePairs(ss.Specifications),
				Features:         codec.EncodeList(codec.Compact(ss.Features)),
				Images:           codec.EncodeList(codec.Compact(ss.Images)),
				Tags:             codec.EncodeList(codec.Compact(ss.Tags)),
				PriceRange:       ss.PriceRange,
				WarrantyInfo:     ss.WarrantyInfo,
				SupportInfo:      ss.SupportInfo,
				DocumentationURL: ss.DocumentationURL,
				DatasheetURL:     ss.DatasheetURL,
				MetaTitle:        ss.MetaTitle,
				MetaDescription:  ss.MetaDescription,
				IsFeatured:       ss.IsFeatured,
				SortOrder:        ss.SortOrder,
			}.Record()
			if err := tx.Create(&sub).Error; err != nil {
				return fmt.Errorf("seed sub-product %q: %w", ss.Name, err)
			}
		}

		for _, sv := range c.Services {
			req := models.ServiceCreate{Name: sv.Name, Description: sv.Description, Features: codec.EncodeList(codec.Compact(sv.Features))}
			if id, ok := categories[sv.Category]; ok {
				req.CategoryID = &id
			}
			svc := req.Record()
			if err := tx.Create(&svc).Error; err != nil {
				return fmt.Errorf("seed service %q: %w", sv.Name, err)
			}
		}

		for _, so := range c.Solutions {
			sol := models.SolutionCreate{Name: so.Name, Description: so.Description, Features: codec.EncodeList(codec.Compact(so.Features))}.Record()
			if err := tx.Create(&sol).Error; err != nil {
				return fmt.Errorf("seed solution %q: %w", so.Name, err)
			}
		}

		for _, cu := range c.Customers {
			cust := models.CustomerCreate{Name: cu.Name, LogoURL: cu.LogoURL, Description: cu.Description}.Record()
			if err := tx.Create(&cust).Error; err != nil {
				return fmt.Errorf("seed customer %q: %w", cu.Name, err)
			}
		}

		log.Info("seeded catalog",
			zap.Int("categories", len(c.Categories)),
			zap.Int("products", len(c.Products)),
			zap.Int("sub_products", len(c.SubProducts)),
			zap.Int("services", len(c.Services)),
			zap.Int("solutions", len(c.Solutions)),
			zap.Int("customers", len(c.Customers)),
		)
		return nil
	})
}
