package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/turkmasale/backend/internal/domain/catalog"
	"github.com/turkmasale/backend/internal/domain/shared"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	variants, err := pairVariants(req.Sizes, req.Prices)
	if err != nil {
		return nil, err
	}

	slug := catalog.Slugify(req.Title)
	exists, err := s.productRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this title already exists")
	}

	product, err := catalog.NewProduct(req.Title, req.Description, req.Category, req.ImageFront, req.ImageBack, variants)
	if err != nil {
		return nil, err
	}

	if req.Featured {
		product.SetFeatured(true)
	}
	if req.InStock != nil {
		product.SetStock(*req.InStock)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response, err := ToProductResponse(product)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uint) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response, err := ToProductResponse(product)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetBySlug retrieves a product by its storefront slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	response, err := ToProductResponse(product)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Featured != nil {
		domainFilter.Filters["featured"] = *filter.Featured
	}
	if filter.InStock != nil {
		domainFilter.Filters["in_stock"] = *filter.InStock
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses, err := ToProductResponses(products)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// Update replaces a product's fields and variants
func (s *ProductService) Update(ctx context.Context, id uint, req UpdateProductRequest) (*ProductResponse, error) {
	variants, err := pairVariants(req.Sizes, req.Prices)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A title change moves the slug; reject if the new one is taken
	newSlug := catalog.Slugify(req.Title)
	if newSlug != product.Slug {
		exists, err := s.productRepo.ExistsBySlug(ctx, newSlug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this title already exists")
		}
	}

	if err := product.Update(req.Title, req.Description, req.Category, req.ImageFront, req.ImageBack); err != nil {
		return nil, err
	}
	if err := product.SetVariants(variants); err != nil {
		return nil, err
	}
	product.SetFeatured(req.Featured)
	product.SetStock(req.InStock)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response, err := ToProductResponse(product)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// pairVariants zips the parallel size and price lists from a request.
// Mismatched lengths are rejected here so a half-formed pairing never
// reaches the aggregate.
func pairVariants(sizes []string, prices []decimal.Decimal) ([]catalog.Variant, error) {
	if len(sizes) != len(prices) {
		return nil, shared.NewDomainError("INVALID_VARIANTS", "Sizes and prices must have the same number of entries")
	}
	variants := make([]catalog.Variant, len(sizes))
	for i := range sizes {
		variants[i] = catalog.Variant{Size: sizes[i], Price: prices[i]}
	}
	return variants, nil
}
