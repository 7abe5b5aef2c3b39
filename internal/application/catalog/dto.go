package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/turkmasale/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product.
// Sizes and Prices are parallel lists; the service rejects mismatched
// lengths before anything touches the database.
type CreateProductRequest struct {
	Title       string            `json:"title" binding:"required,min=1,max=200"`
	Description string            `json:"description" binding:"max=2000"`
	Category    string            `json:"category" binding:"max=100"`
	ImageFront  string            `json:"image_front" binding:"max=2000"`
	ImageBack   string            `json:"image_back" binding:"max=2000"`
	Sizes       []string          `json:"sizes" binding:"required,min=1"`
	Prices      []decimal.Decimal `json:"prices" binding:"required,min=1"`
	Featured    bool              `json:"featured"`
	InStock     *bool             `json:"in_stock"`
}

// UpdateProductRequest represents a full-field product update
type UpdateProductRequest struct {
	Title       string            `json:"title" binding:"required,min=1,max=200"`
	Description string            `json:"description" binding:"max=2000"`
	Category    string            `json:"category" binding:"max=100"`
	ImageFront  string            `json:"image_front" binding:"max=2000"`
	ImageBack   string            `json:"image_back" binding:"max=2000"`
	Sizes       []string          `json:"sizes" binding:"required,min=1"`
	Prices      []decimal.Decimal `json:"prices" binding:"required,min=1"`
	Featured    bool              `json:"featured"`
	InStock     bool              `json:"in_stock"`
}

// VariantResponse is one purchasable size/price pair in API responses
type VariantResponse struct {
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	ImageFront  string            `json:"image_front"`
	ImageBack   string            `json:"image_back"`
	Variants    []VariantResponse `json:"variants"`
	Featured    bool              `json:"featured"`
	InStock     bool              `json:"in_stock"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Version     int               `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Featured *bool  `form:"featured"`
	InStock  *bool  `form:"in_stock"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) (ProductResponse, error) {
	variants, err := p.Variants()
	if err != nil {
		return ProductResponse{}, err
	}

	out := make([]VariantResponse, len(variants))
	for i, v := range variants {
		out[i] = VariantResponse{Size: v.Size, Price: v.Price}
	}

	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Category:    p.Category,
		ImageFront:  p.ImageFront,
		ImageBack:   p.ImageBack,
		Variants:    out,
		Featured:    p.Featured,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}, nil
}

// ToProductResponses converts a slice of domain Products to responses
func ToProductResponses(products []catalog.Product) ([]ProductResponse, error) {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		resp, err := ToProductResponse(&products[i])
		if err != nil {
			return nil, err
		}
		responses[i] = resp
	}
	return responses, nil
}
