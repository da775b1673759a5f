package shopify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProductAPI struct {
	ListProductsFunc func(ctx context.Context, first int) ([]RemoteProduct, error)
	GetProductFunc   func(ctx context.Context, gid string) (*RemoteProduct, error)
}

func (m *mockProductAPI) ListProducts(ctx context.Context, first int) ([]RemoteProduct, error) {
	return m.ListProductsFunc(ctx, first)
}

func (m *mockProductAPI) GetProduct(ctx context.Context, gid string) (*RemoteProduct, error) {
	return m.GetProductFunc(ctx, gid)
}

func TestClampListCount(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 5},
		{-3, 5},
		{1, 1},
		{7, 7},
		{20, 20},
		{21, 20},
		{500, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampListCount(tt.in), "count %d", tt.in)
	}
}

func TestTools_ListProducts_ClampsCount(t *testing.T) {
	var gotFirst int
	api := &mockProductAPI{
		ListProductsFunc: func(_ context.Context, first int) ([]RemoteProduct, error) {
			gotFirst = first
			return nil, nil
		},
	}
	tools := NewTools(api)

	_, err := tools.ListProducts(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 20, gotFirst)

	_, err = tools.ListProducts(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 5, gotFirst)
}

func TestTools_ListProducts_Summarizes(t *testing.T) {
	inventory := 7
	api := &mockProductAPI{
		ListProductsFunc: func(context.Context, int) ([]RemoteProduct, error) {
			return []RemoteProduct{
				{
					ID:             "gid://shopify/Product/1",
					Title:          "Alpha",
					Status:         "ACTIVE",
					TotalInventory: &inventory,
					Vendor:         "Acme",
					OnlineStoreURL: "https://shop.test/products/alpha",
					FeaturedImage: &struct {
						URL string `json:"url"`
					}{URL: "https://cdn.test/alpha.png"},
				},
				{ID: "gid://shopify/Product/2", Title: "Beta", Status: "DRAFT"},
			}, nil
		},
	}

	summaries, err := NewTools(api).ListProducts(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, ProductSummary{
		ID:             "gid://shopify/Product/1",
		Name:           "Alpha",
		Status:         "ACTIVE",
		Inventory:      &inventory,
		Vendor:         "Acme",
		OnlineStoreURL: "https://shop.test/products/alpha",
		ImageURL:       "https://cdn.test/alpha.png",
	}, summaries[0])
	assert.Nil(t, summaries[1].Inventory)
	assert.Equal(t, "", summaries[1].ImageURL)
}

func TestTools_ListProducts_WrapsError(t *testing.T) {
	apiErr := fmt.Errorf("connection refused")
	api := &mockProductAPI{
		ListProductsFunc: func(context.Context, int) ([]RemoteProduct, error) {
			return nil, apiErr
		},
	}

	_, err := NewTools(api).ListProducts(context.Background(), 5)

	var toolErr *ToolExecutionError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "listShopifyProducts", toolErr.Tool)
	assert.ErrorIs(t, err, apiErr)
}

func TestNormalizeProductID(t *testing.T) {
	assert.Equal(t, "gid://shopify/Product/123", NormalizeProductID("123"))
	assert.Equal(t, "gid://shopify/Product/123", NormalizeProductID("  123 "))
	assert.Equal(t, "gid://shopify/Product/123", NormalizeProductID("gid://shopify/Product/123"))
}

func TestTools_GetProductByID_NormalizesID(t *testing.T) {
	var gotGID string
	api := &mockProductAPI{
		GetProductFunc: func(_ context.Context, gid string) (*RemoteProduct, error) {
			gotGID = gid
			return &RemoteProduct{ID: gid, Title: "Gamma", Status: "ACTIVE"}, nil
		},
	}

	detail, err := NewTools(api).GetProductByID(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Product/42", gotGID)
	assert.Equal(t, "Gamma", detail.Name)
}

func TestTools_GetProductByID_MissingReturnsNil(t *testing.T) {
	api := &mockProductAPI{
		GetProductFunc: func(context.Context, string) (*RemoteProduct, error) {
			return nil, nil
		},
	}

	detail, err := NewTools(api).GetProductByID(context.Background(), "999")

	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestTools_GetProductByID_WrapsError(t *testing.T) {
	api := &mockProductAPI{
		GetProductFunc: func(context.Context, string) (*RemoteProduct, error) {
			return nil, fmt.Errorf("boom")
		},
	}

	_, err := NewTools(api).GetProductByID(context.Background(), "1")

	var toolErr *ToolExecutionError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "getShopifyProductById", toolErr.Tool)
}
