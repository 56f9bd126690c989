package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/judyrop/sns-catalog/models"
)

const (
	bullet           = "• "
	placeholderImage = "https://via.placeholder.com/400x300/0066CC/FFFFFF?text=Product+Image"
)

func join(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func id(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func categoryName(c *models.Category) string {
	if c == nil {
		return "-"
	}
	return c.Name
}

func Categories(s Styles, items []models.Category) string {
	t := NewTable("Categories", "No categories found", "ID", "Name", "Description", "Status")
	for _, c := range items {
		t.AddRow(id(c.ID), c.Name, c.Description, s.Status(c.IsActive))
	}
	return t.Render(s)
}

func Products(s Styles, items []models.Product) string {
	t := NewTable("Products", "No products found", "ID", "Name", "Category", "Status")
	for _, p := range items {
		t.AddRow(id(p.ID), p.Name, categoryName(p.Category), s.Status(p.IsActive))
	}
	return t.Render(s)
}

// SubProducts lists sub-products with their parent product's name taken from
// products.
func SubProducts(s Styles, items []models.SubProduct, products []models.Product) string {
	names := make(map[uint]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	t := NewTable("Sub-Products", "No sub-products found", "ID", "Name", "Product", "Brand", "Model", "SKU", "Status")
	for _, sp := range items {
		product := names[sp.ProductID]
		if product == "" {
			product = "#" + id(sp.ProductID)
		}
		t.AddRow(id(sp.ID), sp.Name, product, sp.Brand, sp.Model, sp.SKU,
			join(s.Status(sp.IsActive), s.FeaturedBadge(sp.IsFeatured)))
	}
	return t.Render(s)
}

func Services(s Styles, items []models.Service) string {
	t := NewTable("Services", "No services found", "ID", "Name", "Category", "Features", "Status")
	for _, svc := range items {
		t.AddRow(id(svc.ID), svc.Name, categoryName(svc.Category),
			strconv.Itoa(len(svc.FeatureList())), s.Status(svc.IsActive))
	}
	return t.Render(s)
}

func Solutions(s Styles, items []models.Solution) string {
	t := NewTable("Solutions", "No solutions found", "ID", "Name", "Features", "Status")
	for _, sol := range items {
		t.AddRow(id(sol.ID), sol.Name, strconv.Itoa(len(sol.FeatureList())), s.Status(sol.IsActive))
	}
	return t.Render(s)
}

func Customers(s Styles, items []models.Customer) string {
	t := NewTable("Customers", "No customers found", "ID", "Name", "Logo", "Status")
	for _, c := range items {
		t.AddRow(id(c.ID), c.Name, c.LogoURL, s.Status(c.IsActive))
	}
	return t.Render(s)
}

// Bullets renders one bulleted line per item.
func Bullets(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(bullet)
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return sb.String()
}

type section struct {
	sb *strings.Builder
	s  Styles
}

func (sec section) field(label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sec.sb, "%s %s\n", sec.s.Label.Render(label+":"), value)
}

func (sec section) heading(title string) {
	sec.sb.WriteString("\n")
	sec.sb.WriteString(sec.s.Heading.Render(title))
	sec.sb.WriteString("\n")
}

// SubProductDetail is the detail page of one sub-product. Specifications keep
// their stored order; images fall back to the default product image.
func SubProductDetail(s Styles, sp models.SubProduct, defaults *models.DefaultImages) string {
	var sb strings.Builder
	sec := section{sb: &sb, s: s}

	sb.WriteString(join(s.Title.Render(sp.Name), s.FeaturedBadge(sp.IsFeatured)))
	sb.WriteString("\n")
	sec.field("Brand", sp.Brand)
	sec.field("SKU", sp.SKU)
	sec.field("Model", sp.Model)
	sec.field("Availability", sp.AvailabilityStatus)
	if sp.PriceRange != "" {
		sec.field("Price", join(sp.PriceRange, sp.Currency))
	}
	sec.field("Status", s.Status(sp.IsActive))
	if sp.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(sp.Description)
		sb.WriteString("\n")
	}

	if features := sp.FeatureList(); len(features) > 0 {
		sec.heading("Key Features")
		sb.WriteString(Bullets(features))
	}

	if specs := sp.SpecificationPairs(); len(specs) > 0 {
		sec.heading("Technical Specifications")
		for _, p := range specs {
			sec.field(strings.ReplaceAll(p.Key, "_", " "), p.Value)
		}
	}

	sec.heading("Images")
	images := sp.ImageList()
	if len(images) == 0 {
		images = []string{defaultProductImage(defaults)}
	}
	for i, img := range images {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, img)
	}

	if tags := sp.TagList(); len(tags) > 0 {
		sec.heading("Tags")
		sb.WriteString(strings.Join(tags, ", "))
		sb.WriteString("\n")
	}

	if sp.WarrantyInfo != "" || sp.SupportInfo != "" {
		sec.heading("Support")
		sec.field("Warranty", sp.WarrantyInfo)
		sec.field("Support", sp.SupportInfo)
	}
	if sp.DocumentationURL != "" || sp.DatasheetURL != "" {
		sec.heading("Documents")
		sec.field("Documentation", sp.DocumentationURL)
		sec.field("Datasheet", sp.DatasheetURL)
	}
	return sb.String()
}

func defaultProductImage(d *models.DefaultImages) string {
	if d != nil && d.ProductImage != "" {
		return d.ProductImage
	}
	return placeholderImage
}

func ServiceDetail(s Styles, svc models.Service) string {
	var sb strings.Builder
	sec := section{sb: &sb, s: s}
	sb.WriteString(s.Title.Render(svc.Name))
	sb.WriteString("\n")
	if svc.Category != nil {
		sec.field("Category", svc.Category.Name)
	}
	sec.field("Status", s.Status(svc.IsActive))
	if svc.Description != "" {
		sb.WriteString("\n" + svc.Description + "\n")
	}
	if features := svc.FeatureList(); len(features) > 0 {
		sec.heading("Features")
		sb.WriteString(Bullets(features))
	}
	return sb.String()
}

func SolutionDetail(s Styles, sol models.Solution) string {
	var sb strings.Builder
	sec := section{sb: &sb, s: s}
	sb.WriteString(s.Title.Render(sol.Name))
	sb.WriteString("\n")
	sec.field("Status", s.Status(sol.IsActive))
	if sol.Description != "" {
		sb.WriteString("\n" + sol.Description + "\n")
	}
	if features := sol.FeatureList(); len(features) > 0 {
		sec.heading("Features")
		sb.WriteString(Bullets(features))
	}
	return sb.String()
}

func CompanyInfo(s Styles, c models.CompanyInfo) string {
	var sb strings.Builder
	sec := section{sb: &sb, s: s}
	sb.WriteString(s.Title.Render(c.CompanyName))
	sb.WriteString("\n")
	sec.field("Address", c.Address)
	sec.field("Phone", c.Phone)
	sec.field("Email", c.Email)
	sec.field("Website", c.Website)
	if c.FoundedYear != 0 {
		sec.field("Founded", strconv.Itoa(c.FoundedYear))
	}

	sec.heading("At a glance")
	sec.field("Clients", strconv.Itoa(c.TotalClients)+"+")
	sec.field("Brands", strconv.Itoa(c.TotalBrands)+"+")
	sec.field("Service days per year", strconv.Itoa(c.ServiceDaysPerYear))

	for _, block := range []struct{ title, body string }{
		{"Mission", c.Mission},
		{"Vision", c.Vision},
		{"About Us", c.AboutUs},
	} {
		if block.body == "" {
			continue
		}
		sec.heading(block.title)
		sb.WriteString(block.body)
		sb.WriteString("\n")
	}
	return sb.String()
}

func DashboardView(s Styles, d Dashboard) string {
	t := NewTable("Dashboard", "", "Section", "Total")
	t.AddRow("Categories", strconv.Itoa(d.Categories))
	t.AddRow("Products", strconv.Itoa(d.Products))
	t.AddRow("Services", strconv.Itoa(d.Services))
	t.AddRow("Solutions", strconv.Itoa(d.Solutions))
	t.AddRow("Customers", strconv.Itoa(d.Customers))
	return t.Render(s)
}

// ErrorLine renders a failure the way the pages show it inline.
func ErrorLine(s Styles, message string) string {
	return s.Error.Render(message) + "\n"
}
