package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const apiVersion = "2024-07"

const shopInfoQuery = `
query {
  shop {
    name
    email
  }
}`

const listProductsQuery = `
query listProducts($first: Int!) {
  products(first: $first, sortKey: TITLE, reverse: false) {
    edges {
      node {
        id
        title
        status
        totalInventory
        vendor
        onlineStoreUrl
        featuredImage {
          url
        }
      }
    }
  }
}`

const getProductQuery = `
query getProductById($id: ID!) {
  product(id: $id) {
    id
    title
    descriptionHtml
    status
    totalInventory
    vendor
    onlineStoreUrl
    priceRangeV2 {
      minVariantPrice {
        amount
        currencyCode
      }
      maxVariantPrice {
        amount
        currencyCode
      }
    }
    images(first: 1) {
      edges {
        node {
          url
        }
      }
    }
  }
}`

// ShopInfo identifies the connected store.
type ShopInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Money is a Shopify money amount.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// PriceRange is the min/max variant price range of a product.
type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

// RemoteProduct is a product as returned by the Admin API. Fields beyond the
// summary set are only populated by GetProduct.
type RemoteProduct struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Status          string `json:"status"`
	TotalInventory  *int   `json:"totalInventory"`
	Vendor          string `json:"vendor"`
	OnlineStoreURL  string `json:"onlineStoreUrl"`
	DescriptionHTML string `json:"descriptionHtml"`
	FeaturedImage   *struct {
		URL string `json:"url"`
	} `json:"featuredImage"`
	PriceRangeV2 *PriceRange `json:"priceRangeV2"`
	Images       *struct {
		Edges []struct {
			Node struct {
				URL string `json:"url"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"images"`
}

// ImageURL returns the product's first image URL, or "" when it has none.
func (p *RemoteProduct) ImageURL() string {
	if p.FeaturedImage != nil {
		return p.FeaturedImage.URL
	}
	if p.Images != nil && len(p.Images.Edges) > 0 {
		return p.Images.Edges[0].Node.URL
	}
	return ""
}

// ClientOpts configures a Client. BaseURL overrides the derived
// https://<domain> base, which tests use to point at a local server.
type ClientOpts struct {
	Domain      string
	AccessToken string
	BaseURL     string
}

// Client talks to the Shopify Admin GraphQL API. Every call is a fresh
// network round trip: no caching, no retries.
type Client struct {
	httpClient *resty.Client
	domain     string
	token      string
	baseURL    string
}

// NewClient creates a client. Missing credentials are not an error here;
// they surface as a ConfigurationError on first use.
func NewClient(opts ClientOpts) *Client {
	c := &Client{
		domain:  opts.Domain,
		token:   opts.AccessToken,
		baseURL: opts.BaseURL,
	}
	if c.baseURL == "" && c.domain != "" {
		c.baseURL = "https://" + c.domain
	}
	c.httpClient = resty.New().
		SetDebug(false).
		SetBaseURL(c.baseURL).
		SetHeaders(map[string]string{
			"Accept":       "application/json",
			"Content-Type": "application/json",
		})
	return c
}

// checkConfigured raises the lazy configuration error for missing credentials.
func (c *Client) checkConfigured() error {
	if c.domain == "" && c.baseURL == "" {
		return &ConfigurationError{Var: "SHOPIFY_SHOP_DOMAIN"}
	}
	if c.token == "" {
		return &ConfigurationError{Var: "SHOPIFY_ADMIN_ACCESS_TOKEN"}
	}
	return nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// query executes one GraphQL request and decodes the data payload into out.
func (c *Client) query(ctx context.Context, query string, variables map[string]any, out any) error {
	if err := c.checkConfigured(); err != nil {
		return err
	}

	result := &graphQLResponse{}
	res, err := c.httpClient.NewRequest().
		SetContext(ctx).
		SetHeader("X-Shopify-Access-Token", c.token).
		SetBody(graphQLRequest{Query: query, Variables: variables}).
		SetResult(result).
		Post(fmt.Sprintf("/admin/api/%s/graphql.json", apiVersion))
	if err != nil {
		return fmt.Errorf("shopify request failed: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("shopify request failed: %s %s (status: %d)", res.Request.Method, res.Request.URL, res.StatusCode())
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("shopify API error: %s", result.Errors[0].Message)
	}
	if out != nil && len(result.Data) > 0 {
		if err := json.Unmarshal(result.Data, out); err != nil {
			return fmt.Errorf("failed to decode shopify response: %w", err)
		}
	}
	return nil
}

// GetShopInfo fetches the connected store's name and email.
func (c *Client) GetShopInfo(ctx context.Context) (*ShopInfo, error) {
	var data struct {
		Shop *ShopInfo `json:"shop"`
	}
	if err := c.query(ctx, shopInfoQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.Shop == nil {
		return nil, fmt.Errorf("shopify returned no shop info")
	}
	return data.Shop, nil
}

// ListProducts fetches up to first products, sorted by title.
func (c *Client) ListProducts(ctx context.Context, first int) ([]RemoteProduct, error) {
	var data struct {
		Products struct {
			Edges []struct {
				Node RemoteProduct `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := c.query(ctx, listProductsQuery, map[string]any{"first": first}, &data); err != nil {
		return nil, err
	}
	products := make([]RemoteProduct, 0, len(data.Products.Edges))
	for _, edge := range data.Products.Edges {
		products = append(products, edge.Node)
	}
	return products, nil
}

// GetProduct fetches a single product by its fully qualified GID. Returns
// nil, nil when the catalog has no product with that id.
func (c *Client) GetProduct(ctx context.Context, gid string) (*RemoteProduct, error) {
	var data struct {
		Product *RemoteProduct `json:"product"`
	}
	if err := c.query(ctx, getProductQuery, map[string]any{"id": gid}, &data); err != nil {
		return nil, err
	}
	return data.Product, nil
}
