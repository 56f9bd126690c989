package form

import (
	"github.com/judyrop/sns-catalog/codec"
	"github.com/judyrop/sns-catalog/models"
)

// Drafts hold what the dialogs edit. List and specification fields are
// edited as rows and encoded back into flat strings on submit. Update
// requests carry every field, as the dialogs always save the whole draft.

func optionalID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

func derefID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

type CategoryDraft struct {
	Name        string `validate:"required"`
	Description string
	IsActive    bool
}

func NewCategoryDraft() CategoryDraft { return CategoryDraft{IsActive: true} }

func CategoryDraftOf(c models.Category) CategoryDraft {
	return CategoryDraft{Name: c.Name, Description: c.Description, IsActive: c.IsActive}
}

func (d CategoryDraft) CreateRequest() models.CategoryCreate {
	return models.CategoryCreate{Name: d.Name, Description: d.Description}
}

func (d CategoryDraft) UpdateRequest() models.CategoryUpdate {
	return models.CategoryUpdate{Name: &d.Name, Description: &d.Description, IsActive: &d.IsActive}
}

// ProductDraft uses 0 for "no category".
type ProductDraft struct {
	Name        string `validate:"required"`
	Description string
	CategoryID  uint
	ImageURL    string
	IsActive    bool
}

func NewProductDraft() ProductDraft { return ProductDraft{IsActive: true} }

func ProductDraftOf(p models.Product) ProductDraft {
	return ProductDraft{
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  derefID(p.CategoryID),
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
	}
}

func (d ProductDraft) CreateRequest() models.ProductCreate {
	return models.ProductCreate{
		Name:        d.Name,
		Description: d.Description,
		CategoryID:  optionalID(d.CategoryID),
		ImageURL:    d.ImageURL,
	}
}

func (d ProductDraft) UpdateRequest() models.ProductUpdate {
	return models.ProductUpdate{
		Name:        &d.Name,
		Description: &d.Description,
		CategoryID:  optionalID(d.CategoryID),
		ImageURL:    &d.ImageURL,
		IsActive:    &d.IsActive,
	}
}

type SubProductDraft struct {
	Name               string `validate:"required"`
	ProductID          uint   `validate:"required"`
	Description        string
	SKU                string
	Brand              string
	Model              string
	Specs              codec.Pairs
	Features           []string
	Images             []string
	Tags               []string
	PriceRange         string
	Currency           string
	AvailabilityStatus string
	WarrantyInfo       string
	SupportInfo        string
	DocumentationURL   string
	DatasheetURL       string
	MetaTitle          string
	MetaDescription    string
	IsActive           bool
	IsFeatured         bool
	SortOrder          int
}

// NewSubProductDraft starts a blank draft with one empty row per list.
func NewSubProductDraft(productID uint) SubProductDraft {
	return SubProductDraft{
		ProductID:          productID,
		Specs:              codec.Pairs{{}},
		Features:           []string{""},
		Images:             []string{""},
		Tags:               []string{""},
		Currency:           "USD",
		AvailabilityStatus: "Available",
		IsActive:           true,
	}
}

func SubProductDraftOf(s models.SubProduct) SubProductDraft {
	specs := s.SpecificationPairs()
	if len(specs) == 0 {
		specs = codec.Pairs{{}}
	}
	return SubProductDraft{
		Name:               s.Name,
		ProductID:          s.ProductID,
		Description:        s.Description,
		SKU:                s.SKU,
		Brand:              s.Brand,
		Model:              s.Model,
		Specs:              specs,
		Features:           codec.EditableList(s.Features),
		Images:             codec.EditableList(s.Images),
		Tags:               codec.EditableList(s.Tags),
		PriceRange:         s.PriceRange,
		Currency:           s.Currency,
		AvailabilityStatus: s.AvailabilityStatus,
		WarrantyInfo:       s.WarrantyInfo,
		SupportInfo:        s.SupportInfo,
		DocumentationURL:   s.DocumentationURL,
		DatasheetURL:       s.DatasheetURL,
		MetaTitle:          s.MetaTitle,
		MetaDescription:    s.MetaDescription,
		IsActive:           s.IsActive,
		IsFeatured:         s.IsFeatured,
		SortOrder:          s.SortOrder,
	}
}

func (d SubProductDraft) CreateRequest() models.SubProductCreate {
	return models.SubProductCreate{
		Name:               d.Name,
		Description:        d.Description,
		ProductID:          d.ProductID,
		SKU:                d.SKU,
		Brand:              d.Brand,
		Model:              d.Model,
		Specifications:     codec.EncodePairs(d.Specs),
		Features:           codec.EncodeList(codec.Compact(d.Features)),
		Images:             codec.EncodeList(codec.Compact(d.Images)),
		PriceRange:         d.PriceRange,
		Currency:           d.Currency,
		AvailabilityStatus: d.AvailabilityStatus,
		WarrantyInfo:       d.WarrantyInfo,
		SupportInfo:        d.SupportInfo,
		DocumentationURL:   d.DocumentationURL,
		DatasheetURL:       d.DatasheetURL,
		Tags:               codec.EncodeList(codec.Compact(d.Tags)),
		MetaTitle:          d.MetaTitle,
		MetaDescription:    d.MetaDescription,
		IsFeatured:         d.IsFeatured,
		SortOrder:          d.SortOrder,
	}
}

func (d SubProductDraft) UpdateRequest() models.SubProductUpdate {
	specs := codec.EncodePairs(d.Specs)
	features := codec.EncodeList(codec.Compact(d.Features))
	images := codec.EncodeList(codec.Compact(d.Images))
	tags := codec.EncodeList(codec.Compact(d.Tags))
	return models.SubProductUpdate{
		Name:               &d.Name,
		Description:        &d.Description,
		ProductID:          &d.ProductID,
		SKU:                &d.SKU,
		Brand:              &d.Brand,
		Model:              &d.Model,
		Specifications:     &specs,
		Features:           &features,
		Images:             &images,
		PriceRange:         &d.PriceRange,
		Currency:           &d.Currency,
		AvailabilityStatus: &d.AvailabilityStatus,
		WarrantyInfo:       &d.WarrantyInfo,
		SupportInfo:        &d.SupportInfo,
		DocumentationURL:   &d.DocumentationURL,
		DatasheetURL:       &d.DatasheetURL,
		Tags:               &tags,
		MetaTitle:          &d.MetaTitle,
		MetaDescription:    &d.MetaDescription,
		IsActive:           &d.IsActive,
		IsFeatured:         &d.IsFeatured,
		SortOrder:          &d.SortOrder,
	}
}

type ServiceDraft struct {
	Name        string `validate:"required"`
	Description string
	CategoryID  uint
	Features    []string
	IsActive    bool
}

func NewServiceDraft() ServiceDraft {
	return ServiceDraft{Features: []string{""}, IsActive: true}
}

func ServiceDraftOf(s models.Service) ServiceDraft {
	return ServiceDraft{
		Name:        s.Name,
		Description: s.Description,
		CategoryID:  derefID(s.CategoryID),
		Features:    codec.EditableList(s.Features),
		IsActive:    s.IsActive,
	}
}

func (d ServiceDraft) CreateRequest() models.ServiceCreate {
	return models.ServiceCreate{
		Name:        d.Name,
		Description: d.Description,
		CategoryID:  optionalID(d.CategoryID),
		Features:    codec.EncodeList(codec.Compact(d.Features)),
	}
}

func (d ServiceDraft) UpdateRequest() models.ServiceUpdate {
	features := codec.EncodeList(codec.Compact(d.Features))
	return models.ServiceUpdate{
		Name:        &d.Name,
		Description: &d.Description,
		CategoryID:  optionalID(d.CategoryID),
		Features:    &features,
		IsActive:    &d.IsActive,
	}
}

type SolutionDraft struct {
	Name        string `validate:"required"`
	Description string
	Features    []string
	IsActive    bool
}

func NewSolutionDraft() SolutionDraft {
	return SolutionDraft{Features: []string{""}, IsActive: true}
}

func SolutionDraftOf(s models.Solution) SolutionDraft {
	return SolutionDraft{
		Name:        s.Name,
		Description: s.Description,
		Features:    codec.EditableList(s.Features),
		IsActive:    s.IsActive,
	}
}

func (d SolutionDraft) CreateRequest() models.SolutionCreate {
	return models.SolutionCreate{Name: d.Name, Description: d.Description, Features: codec.EncodeList(codec.Compact(d.Features))}
}

func (d SolutionDraft) UpdateRequest() models.SolutionUpdate {
	features := codec.EncodeList(codec.Compact(d.Features))
	return models.SolutionUpdate{Name: &d.Name, Description: &d.Description, Features: &features, IsActive: &d.IsActive}
}

type CustomerDraft struct {
	Name        string `validate:"required"`
	LogoURL     string
	Description string
	IsActive    bool
}

func NewCustomerDraft() CustomerDraft { return CustomerDraft{IsActive: true} }

func CustomerDraftOf(c models.Customer) CustomerDraft {
	return CustomerDraft{Name: c.Name, LogoURL: c.LogoURL, Description: c.Description, IsActive: c.IsActive}
}

func (d CustomerDraft) CreateRequest() models.CustomerCreate {
	return models.CustomerCreate{Name: d.Name, LogoURL: d.LogoURL, Description: d.Description}
}

func (d CustomerDraft) UpdateRequest() models.CustomerUpdate {
	return models.CustomerUpdate{Name: &d.Name, LogoURL: &d.LogoURL, Description: &d.Description, IsActive: &d.IsActive}
}

type CompanyInfoDraft struct {
	CompanyName        string `validate:"required"`
	Address            string
	Phone              string
	Email              string
	Website            string
	Mission            string
	Vision             string
	AboutUs            string
	FoundedYear        int
	TotalClients       int
	TotalBrands        int
	ServiceDaysPerYear int
}

func CompanyInfoDraftOf(c models.CompanyInfo) CompanyInfoDraft {
	return CompanyInfoDraft{
		CompanyName:        c.CompanyName,
		Address:            c.Address,
		Phone:              c.Phone,
		Email:              c.Email,
		Website:            c.Website,
		Mission:            c.Mission,
		Vision:             c.Vision,
		AboutUs:            c.AboutUs,
		FoundedYear:        c.FoundedYear,
		TotalClients:       c.TotalClients,
		TotalBrands:        c.TotalBrands,
		ServiceDaysPerYear: c.ServiceDaysPerYear,
	}
}

func (d CompanyInfoDraft) UpdateRequest() models.CompanyInfoUpdate {
	return models.CompanyInfoUpdate{
		CompanyName:        &d.CompanyName,
		Address:            &d.Address,
		Phone:              &d.Phone,
		Email:              &d.Email,
		Website:            &d.Website,
		Mission:            &d.Mission,
		Vision:             &d.Vision,
		AboutUs:            &d.AboutUs,
		FoundedYear:        &d.FoundedYear,
		TotalClients:       &d.TotalClients,
		TotalBrands:        &d.TotalBrands,
		ServiceDaysPerYear: &d.ServiceDaysPerYear,
	}
}
