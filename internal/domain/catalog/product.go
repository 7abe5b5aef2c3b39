package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/turkmasale/backend/internal/domain/shared"
)

// Product represents a spice product in the storefront catalog.
// It is the aggregate root for catalog operations.
//
// Size and price variants are persisted as parallel comma-delimited
// columns for compatibility with the storefront data model. The pairing
// is enforced at the boundary: a product can only be constructed or
// updated through SetVariants, which rejects mismatched lists, so the
// two columns always decode to the same number of entries.
type Product struct {
	shared.BaseAggregateRoot
	Title       string `gorm:"type:varchar(200);not null"`
	Slug        string `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"type:varchar(100);index"`
	ImageFront  string `gorm:"type:text"`
	ImageBack   string `gorm:"type:text"`
	Sizes       string `gorm:"type:text;not null"` // e.g. "50g,100g,250g"
	Prices      string `gorm:"type:text;not null"` // e.g. "45,80,180"
	Featured    bool   `gorm:"not null;default:false"`
	InStock     bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// Variant is one purchasable (size, price) pair of a product
type Variant struct {
	Size  string
	Price decimal.Decimal
}

// NewProduct creates a new product with at least one size/price
// variant. A fresh product starts at version 1; setting the initial
// variants is part of construction, not an edit.
func NewProduct(title, description, category, imageFront, imageBack string, variants []Variant) (*Product, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	sizes, prices, err := encodeVariants(variants)
	if err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Slug:              Slugify(title),
		Description:       description,
		Category:          category,
		ImageFront:        imageFront,
		ImageBack:         imageBack,
		Sizes:             sizes,
		Prices:            prices,
		InStock:           true,
	}, nil
}

// Update updates the product's descriptive fields.
// The slug follows the title so storefront links stay readable.
func (p *Product) Update(title, description, category, imageFront, imageBack string) error {
	if err := validateTitle(title); err != nil {
		return err
	}

	p.Title = title
	p.Slug = Slugify(title)
	p.Description = description
	p.Category = category
	p.ImageFront = imageFront
	p.ImageBack = imageBack
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetVariants replaces the product's size/price variants
func (p *Product) SetVariants(variants []Variant) error {
	sizes, prices, err := encodeVariants(variants)
	if err != nil {
		return err
	}

	p.Sizes = sizes
	p.Prices = prices
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// encodeVariants validates the pairs and renders the parallel
// comma-delimited columns.
func encodeVariants(variants []Variant) (string, string, error) {
	if len(variants) == 0 {
		return "", "", shared.NewDomainError("INVALID_VARIANTS", "Product must have at least one size/price variant")
	}

	sizes := make([]string, 0, len(variants))
	prices := make([]string, 0, len(variants))
	for _, v := range variants {
		size := strings.TrimSpace(v.Size)
		if size == "" {
			return "", "", shared.NewDomainError("INVALID_VARIANTS", "Variant size cannot be empty")
		}
		if strings.Contains(size, ",") {
			return "", "", shared.NewDomainError("INVALID_VARIANTS", "Variant size cannot contain commas")
		}
		if !v.Price.IsPositive() {
			return "", "", shared.NewDomainError("INVALID_VARIANTS", "Variant price must be positive")
		}
		sizes = append(sizes, size)
		prices = append(prices, v.Price.String())
	}

	return strings.Join(sizes, ","), strings.Join(prices, ","), nil
}

// Variants decodes the persisted size/price columns back into pairs.
// It fails if the columns have drifted out of alignment, which signals
// a row written outside the aggregate.
func (p *Product) Variants() ([]Variant, error) {
	sizes := splitList(p.Sizes)
	prices := splitList(p.Prices)
	if len(sizes) == 0 || len(sizes) != len(prices) {
		return nil, shared.NewDomainError("CORRUPT_VARIANTS", "Product sizes and prices are misaligned")
	}

	variants := make([]Variant, 0, len(sizes))
	for i, size := range sizes {
		price, err := decimal.NewFromString(prices[i])
		if err != nil {
			return nil, shared.NewDomainError("CORRUPT_VARIANTS", "Product price is not a valid number")
		}
		variants = append(variants, Variant{Size: size, Price: price})
	}

	return variants, nil
}

// PriceFor returns the price of the given size variant
func (p *Product) PriceFor(size string) (decimal.Decimal, error) {
	variants, err := p.Variants()
	if err != nil {
		return decimal.Zero, err
	}
	for _, v := range variants {
		if v.Size == size {
			return v.Price, nil
		}
	}
	return decimal.Zero, shared.NewDomainError("UNKNOWN_SIZE", "Product does not offer this size")
}

// SetFeatured marks or unmarks the product for the storefront homepage
func (p *Product) SetFeatured(featured bool) {
	p.Featured = featured
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetStock updates whether the product can be added to carts
func (p *Product) SetStock(inStock bool) {
	p.InStock = inStock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Slugify derives a URL-safe slug from a product title.
// Runs of non-alphanumeric characters collapse into single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// validateTitle validates the product title
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot exceed 200 characters")
	}
	return nil
}
