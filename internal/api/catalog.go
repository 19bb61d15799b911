package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"shopfront/internal/domain"
)

// CatalogClient reads the product catalog. The cart stores the returned
// snapshot as-is; it is validated and defaulted here at the boundary, not
// inside the cart's query operations.
type CatalogClient struct {
	client *Client
	sfg    singleflight.Group // collapses concurrent lookups of the same product
}

func NewCatalogClient(client *Client) *CatalogClient {
	return &CatalogClient{client: client}
}

// productDTO is the backend catalog shape.
type productDTO struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
}

func (d productDTO) toDomain() domain.Product {
	return domain.Product{
		ID:       d.ID,
		Name:     d.ProductName,
		Price:    d.Price,
		ImageURL: d.ImageURL,
	}
}

// Product fetches a single product snapshot by catalog identity.
func (c *CatalogClient) Product(ctx context.Context, id string) (domain.Product, error) {
	v, err, _ := c.sfg.Do(id, func() (any, error) {
		var dto productDTO
		if err := c.client.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &dto); err != nil {
			return domain.Product{}, err
		}
		return dto.toDomain(), nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return v.(domain.Product), nil
}

// Search runs a catalog query and returns matching product snapshots.
func (c *CatalogClient) Search(ctx context.Context, query string) ([]domain.Product, error) {
	var dtos []productDTO
	path := "/api/products?search=" + url.QueryEscape(query)
	if err := c.client.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products, nil
}
