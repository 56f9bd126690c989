package models

import (
	"time"

	"github.com/judyrop/sns-catalog/codec"
)

type Admin struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CategoryID  *uint     `gorm:"index" json:"category_id"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	ImageURL    string    `gorm:"size:500" json:"image_url"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubProduct carries its list and map attributes as encoded JSON text; the
// accessor methods below decode them.
type SubProduct struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:200;not null" json:"name"`
	Description        string    `gorm:"type:text" json:"description"`
	ProductID          uint      `gorm:"index;not null" json:"product_id"`
	SKU                string    `gorm:"column:sku;size:100" json:"sku"`
	Brand              string    `gorm:"size:100" json:"brand"`
	Model              string    `gorm:"size:100" json:"model"`
	Specifications     string    `gorm:"type:text" json:"specifications"`
	Features           string    `gorm:"type:text" json:"features"`
	Images             string    `gorm:"type:text" json:"images"`
	PriceRange         string    `gorm:"size:100" json:"price_range"`
	Currency           string    `gorm:"size:10;default:USD" json:"currency"`
	AvailabilityStatus string    `gorm:"size:50;default:Available" json:"availability_status"`
	WarrantyInfo       string    `gorm:"type:text" json:"warranty_info"`
	SupportInfo        string    `gorm:"type:text" json:"support_info"`
	DocumentationURL   string    `gorm:"size:500" json:"documentation_url"`
	DatasheetURL       string    `gorm:"size:500" json:"datasheet_url"`
	Tags               string    `gorm:"type:text" json:"tags"`
	MetaTitle          string    `gorm:"size:200" json:"meta_title"`
	MetaDescription    string    `gorm:"type:text" json:"meta_description"`
	IsActive           bool      `gorm:"default:true" json:"is_active"`
	IsFeatured         bool      `gorm:"default:false" json:"is_featured"`
	SortOrder          int       `gorm:"default:0" json:"sort_order"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (s SubProduct) FeatureList() []string { return codec.DecodeList(s.Features) }
func (s SubProduct) ImageList() []string   { return codec.DecodeList(s.Images) }
func (s SubProduct) TagList() []string     { return codec.DecodeList(s.Tags) }

// SpecificationPairs returns the specifications in stored order.
func (s SubProduct) SpecificationPairs() codec.Pairs { return codec.DecodePairs(s.Specifications) }

type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CategoryID  *uint     `gorm:"index" json:"category_id"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Features    string    `gorm:"type:text" json:"features"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s Service) FeatureList() []string { return codec.DecodeList(s.Features) }

type Solution struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Features    string    `gorm:"type:text" json:"features"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s Solution) FeatureList() []string { return codec.DecodeList(s.Features) }

type Customer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	LogoURL     string    `gorm:"size:500" json:"logo_url"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanyInfo is a single-row table.
type CompanyInfo struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	CompanyName        string    `gorm:"size:200;not null" json:"company_name"`
	Address            string    `gorm:"type:text" json:"address"`
	Phone              string    `gorm:"size:50" json:"phone"`
	Email              string    `gorm:"size:100" json:"email"`
	Website            string    `gorm:"size:200" json:"website"`
	Mission            string    `gorm:"type:text" json:"mission"`
	Vision             string    `gorm:"type:text" json:"vision"`
	AboutUs            string    `gorm:"type:text" json:"about_us"`
	FoundedYear        int       `json:"founded_year"`
	TotalClients       int       `gorm:"default:0" json:"total_clients"`
	TotalBrands        int       `gorm:"default:0" json:"total_brands"`
	ServiceDaysPerYear int       `gorm:"default:365" json:"service_days_per_year"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (CompanyInfo) TableName() string { return "company_info" }

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type DefaultImages struct {
	ProductImage string `json:"product_image"`
	LogoImage    string `json:"logo_image"`
}

// All lists every table for AutoMigrate, parents first.
func All() []any {
	return []any{
		&Admin{}, &Category{}, &Product{}, &SubProduct{},
		&Service{}, &Solution{}, &Customer{}, &CompanyInfo{},
	}
}
