package models

// Create requests carry the fields a client may set on insert. Update
// requests use pointers so that an omitted field is left untouched and
// Changes only reports what was sent.

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type CategoryCreate struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (r CategoryCreate) Record() Category {
	return Category{Name: r.Name, Description: r.Description, IsActive: true}
}

type CategoryUpdate struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r CategoryUpdate) Changes() map[string]any {
	c := changes{}
	c.str("name", r.Name)
	c.str("description", r.Description)
	c.boolean("is_active", r.IsActive)
	return c
}

type ProductCreate struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CategoryID  *uint  `json:"category_id,omitempty"`
	ImageURL    string `json:"image_url"`
}

func (r ProductCreate) Record() Product {
	return Product{
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		ImageURL:    r.ImageURL,
		IsActive:    true,
	}
}

type ProductUpdate struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	CategoryID  *uint   `json:"category_id,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r ProductUpdate) Changes() map[string]any {
	c := changes{}
	c.str("name", r.Name)
	c.str("description", r.Description)
	c.id("category_id", r.CategoryID)
	c.str("image_url", r.ImageURL)
	c.boolean("is_active", r.IsActive)
	return c
}

type SubProductCreate struct {
	Name               string `json:"name" binding:"required"`
	Description        string `json:"description"`
	ProductID          uint   `json:"product_id" binding:"required"`
	SKU                string `json:"sku"`
	Brand              string `json:"brand"`
	Model              string `json:"model"`
	Specifications     string `json:"specifications" binding:"jsonmap"`
	Features           string `json:"features" binding:"jsonlist"`
	Images             string `json:"images" binding:"jsonlist"`
	PriceRange         string `json:"price_range"`
	Currency           string `json:"currency"`
	AvailabilityStatus string `json:"availability_status"`
	WarrantyInfo       string `json:"warranty_info"`
	SupportInfo        string `json:"support_info"`
	DocumentationURL   string `json:"documentation_url"`
	DatasheetURL       string `json:"datasheet_url"`
	Tags               string `json:"tags" binding:"jsonlist"`
	MetaTitle          string `json:"meta_title"`
	MetaDescription    string `json:"meta_description"`
	IsFeatured         bool   `json:"is_featured"`
	SortOrder          int    `json:"sort_order"`
}

func (r SubProductCreate) Record() SubProduct {
	sp := SubProduct{
		Name:               r.Name,
		Description:        r.Description,
		ProductID:          r.ProductID,
		SKU:                r.SKU,
		Brand:              r.Brand,
		Model:              r.Model,
		Specifications:     orEmpty(r.Specifications, "{}"),
		Features:           orEmpty(r.Features, "[]"),
		Images:             orEmpty(r.Images, "[]"),
		PriceRange:         r.PriceRange,
		Currency:           orEmpty(r.Currency, "USD"),
		AvailabilityStatus: orEmpty(r.AvailabilityStatus, "Available"),
		WarrantyInfo:       r.WarrantyInfo,
		SupportInfo:        r.SupportInfo,
		DocumentationURL:   r.DocumentationURL,
		DatasheetURL:       r.DatasheetURL,
		Tags:               orEmpty(r.Tags, "[]"),
		MetaTitle:          r.MetaTitle,
		MetaDescription:    r.MetaDescription,
		IsActive:           true,
		IsFeatured:         r.IsFeatured,
		SortOrder:          r.SortOrder,
	}
	return sp
}

type SubProductUpdate struct {
	Name               *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Description        *string `json:"description,omitempty"`
	ProductID          *uint   `json:"product_id,omitempty"`
	SKU                *string `json:"sku,omitempty"`
	Brand              *string `json:"brand,omitempty"`
	Model              *string `json:"model,omitempty"`
	Specifications     *string `json:"specifications,omitempty" binding:"omitempty,jsonmap"`
	Features           *string `json:"features,omitempty" binding:"omitempty,jsonlist"`
	Images             *string `json:"images,omitempty" binding:"omitempty,jsonlist"`
	PriceRange         *string `json:"price_range,omitempty"`
	Currency           *string `json:"currency,omitempty"`
	AvailabilityStatus *string `json:"availability_status,omitempty"`
	WarrantyInfo       *string `json:"warranty_info,omitempty"`
	SupportInfo        *string `json:"support_info,omitempty"`
	DocumentationURL   *string `json:"documentation_url,omitempty"`
	DatasheetURL       *string `json:"datasheet_url,omitempty"`
	Tags               *string `json:"tags,omitempty" binding:"omitempty,jsonlist"`
	MetaTitle          *string `json:"meta_title,omitempty"`
	MetaDescription    *string `json:"meta_description,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
	IsFeatured         *bool   `json:"is_featured,omitempty"`
	SortOrder          *int    `json:"sort_order,omitempty"`
}

func (r SubProductUpdate) Changes() map[string]any {
	c := changes{}
	c.str("name", r.Name)
	c.str("description", r.Description)
	c.id("product_id", r.ProductID)
	c.str("sku", r.SKU)
	c.str("brand", r.Brand)
	c.str("model", r.Model)
	c.encoded("specifications", r.Specifications, "{}")
	c.encoded("features", r.Features, "[]")
	c.encoded("images", r.Images, "[]")
	c.str("price_range", r.PriceRange)
	c.str("currency", r.Currency)
	c.str("availability_status", r.AvailabilityStatus)
	c.str("warranty_info", r.WarrantyInfo)
	c.str("support_info", r.SupportInfo)
	c.str("documentation_url", r.DocumentationURL)
	c.str("datasheet_url", r.DatasheetURL)
	c.encoded("tags", r.Tags, "[]")
	c.str("meta_title", r.MetaTitle)
	c.str("meta_description", r.MetaDescription)
	c.boolean("is_active", r.IsActive)
	c.boolean("is_featured", r.IsFeatured)
	if r.SortOrder != nil {
		c["sort_order"] = *r.SortOrder
	}
	return c
}

type ServiceCreate struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CategoryID  *uint  `json:"category_id,omitempty"`
	Features    string `json:"features" binding:"jsonlist"`
}

func (r ServiceCreate) Record() Service {
	return Service{
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Features:    orEmpty(r.Features, "[]"),
		IsActive:    true,
	}
}

type ServiceUpdate struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	CategoryID  *uint   `json:"category_id,omitempty"`
	Features    *string `json:"features,omitempty" binding:"omitempty,jsonlist"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r ServiceUpdate) Changes() map[string]any {
	c := changes{}
	c.str("name", r.Name)
	c.str("description", r.Description)
	c.id("category_id", r.CategoryID)
	c.encoded("features", r.Features, "[]")
	c.boolean("is_active", r.IsActive)
	return c
}

type SolutionCreate struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Features    string `json:"features" binding:"jsonlist"`
}

func (r SolutionCreate) Record() Solution {
	return Solution{
		Name:        r.Name,
		Description: r.Description,
		Features:    orEmpty(r.Features, "[]"),
		IsActive:    true,
	}
}

type SolutionUpdate struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	Features    *string `json:"features,omitempty" binding:"omitempty,jsonlist"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r SolutionUpdate) Changes() map[string]any {
	c := changes{}
	c.str("name", r.Name)
	c.str("description", r.Description)
	c.encoded("features", r.Features, "[]")
	c.boolean("is_active", r.IsActive)
	return c
}

type CustomerCreate struct {
	Name        string `json:"name" binding:"required"`
	LogoURL     string `json:"logo_url"`
	Description string `json:"description"`
}

func (r CustomerCreate) Record() Customer {
	return Customer{Name: r.Name, LogoURL: r.LogoURL, Description: r.Description, IsActive: true}
}

type CustomerUpdate struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1"`
	LogoURL     *string `json:"logo_url,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r CustomerUpdate) Changes() map[string]any {
	c := changes{}
	c.str("name", r.Name)
	c.str("logo_url", r.LogoURL)
	c.str("description", r.Description)
	c.boolean("is_active", r.IsActive)
	return c
}

type CompanyInfoUpdate struct {
	CompanyName        *string `json:"company_name,omitempty" binding:"omitempty,min=1"`
	Address            *string `json:"address,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Email              *string `json:"email,omitempty" binding:"omitempty,email"`
	Website            *string `json:"website,omitempty"`
	Mission            *string `json:"mission,omitempty"`
	Vision             *string `json:"vision,omitempty"`
	AboutUs            *string `json:"about_us,omitempty"`
	FoundedYear        *int    `json:"founded_year,omitempty"`
	TotalClients       *int    `json:"total_clients,omitempty" binding:"omitempty,gte=0"`
	TotalBrands        *int    `json:"total_brands,omitempty" binding:"omitempty,gte=0"`
	ServiceDaysPerYear *int    `json:"service_days_per_year,omitempty" binding:"omitempty,gte=0,lte=366"`
}

func (r CompanyInfoUpdate) Changes() map[string]any {
	c := changes{}
	c.str("company_name", r.CompanyName)
	c.str("address", r.Address)
	c.str("phone", r.Phone)
	c.str("email", r.Email)
	c.str("website", r.Website)
	c.str("mission", r.Mission)
	c.str("vision", r.Vision)
	c.str("about_us", r.AboutUs)
	c.integer("founded_year", r.FoundedYear)
	c.integer("total_clients", r.TotalClients)
	c.integer("total_brands", r.TotalBrands)
	c.integer("service_days_per_year", r.ServiceDaysPerYear)
	return c
}

// changes collects column updates for gorm's Updates(map).
type changes map[string]any

func (c changes) str(col string, v *string) {
	if v != nil {
		c[col] = *v
	}
}

func (c changes) encoded(col string, v *string, empty string) {
	if v != nil {
		c[col] = orEmpty(*v, empty)
	}
}

func (c changes) integer(col string, v *int) {
	if v != nil {
		c[col] = *v
	}
}

func (c changes) id(col string, v *uint) {
	if v != nil {
		c[col] = *v
	}
}

func (c changes) boolean(col string, v *bool) {
	if v != nil {
		c[col] = *v
	}
}

func orEmpty(s, empty string) string {
	if s == "" {
		return empty
	}
	return s
}
