package shopify

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	defaultListCount = 5
	minListCount     = 1
	maxListCount     = 20

	productGIDPrefix = "gid://shopify/Product/"
)

// ProductSummary is the normalized product shape exposed to the agent by
// the list tool. ImageURL is always present, empty when the product has no
// image.
type ProductSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	Inventory      *int   `json:"inventory"`
	Vendor         string `json:"vendor"`
	OnlineStoreURL string `json:"onlineStoreUrl"`
	ImageURL       string `json:"imageUrl"`
}

// ProductDetail extends ProductSummary with the fields the detail tool maps.
type ProductDetail struct {
	ProductSummary
	DescriptionHTML string      `json:"descriptionHtml,omitempty"`
	PriceRange      *PriceRange `json:"priceRange,omitempty"`
}

// ProductAPI is the slice of Client the tool adapter needs.
type ProductAPI interface {
	ListProducts(ctx context.Context, first int) ([]RemoteProduct, error)
	GetProduct(ctx context.Context, gid string) (*RemoteProduct, error)
}

// CatalogService is the tool surface registered with the agent.
type CatalogService interface {
	ListProducts(ctx context.Context, count int) ([]ProductSummary, error)
	GetProductByID(ctx context.Context, productID string) (*ProductDetail, error)
}

// Tools adapts the Admin API client into the two callable catalog tools.
// Pure pass-through mapping: no retry, no caching.
type Tools struct {
	api ProductAPI
}

// NewTools creates the catalog tool adapter.
func NewTools(api ProductAPI) *Tools {
	return &Tools{api: api}
}

// ClampListCount corrects an out-of-range list count silently. Zero or
// negative means the caller did not specify one and gets the default.
func ClampListCount(count int) int {
	if count <= 0 {
		return defaultListCount
	}
	if count < minListCount {
		return minListCount
	}
	if count > maxListCount {
		return maxListCount
	}
	return count
}

// ListProducts fetches a list of products, clamping count to [1,20].
// Data-source failures are wrapped as ToolExecutionError.
func (t *Tools) ListProducts(ctx context.Context, count int) ([]ProductSummary, error) {
	clamped := ClampListCount(count)
	if clamped != count {
		log.Debug().Int("requested", count).Int("clamped", clamped).Msg("list count clamped")
	}

	products, err := t.api.ListProducts(ctx, clamped)
	if err != nil {
		return nil, &ToolExecutionError{Tool: "listShopifyProducts", Err: err}
	}

	summaries := make([]ProductSummary, len(products))
	for i := range products {
		summaries[i] = summarize(&products[i])
	}
	return summaries, nil
}

// GetProductByID fetches details for one product. Accepts a bare numeric id
// or a fully qualified GID; returns nil, nil when the catalog has no match.
func (t *Tools) GetProductByID(ctx context.Context, productID string) (*ProductDetail, error) {
	gid := NormalizeProductID(productID)

	product, err := t.api.GetProduct(ctx, gid)
	if err != nil {
		return nil, &ToolExecutionError{Tool: "getShopifyProductById", Err: err}
	}
	if product == nil {
		return nil, nil
	}

	return &ProductDetail{
		ProductSummary:  summarize(product),
		DescriptionHTML: product.DescriptionHTML,
		PriceRange:      product.PriceRangeV2,
	}, nil
}

// NormalizeProductID converts a bare numeric id to a fully qualified product
// GID. Already-qualified ids pass through unchanged.
func NormalizeProductID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, productGIDPrefix) {
		return id
	}
	return productGIDPrefix + id
}

func summarize(p *RemoteProduct) ProductSummary {
	return ProductSummary{
		ID:             p.ID,
		Name:           p.Title,
		Status:         p.Status,
		Inventory:      p.TotalInventory,
		Vendor:         p.Vendor,
		OnlineStoreURL: p.OnlineStoreURL,
		ImageURL:       p.ImageURL(),
	}
}

// MockCatalogService is a function-field test double for CatalogService.
type MockCatalogService struct {
	ListProductsFunc   func(ctx context.Context, count int) ([]ProductSummary, error)
	GetProductByIDFunc func(ctx context.Context, productID string) (*ProductDetail, error)
}

func (m *MockCatalogService) ListProducts(ctx context.Context, count int) ([]ProductSummary, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, count)
	}
	return nil, nil
}

func (m *MockCatalogService) GetProductByID(ctx context.Context, productID string) (*ProductDetail, error) {
	if m.GetProductByIDFunc != nil {
		return m.GetProductByIDFunc(ctx, productID)
	}
	return nil, nil
}
