package libs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ecommerce-backend/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductClient looks products up in the catalog service over HTTP.
type ProductClient struct {
	baseURL string
	http    *http.Client
}

func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	return &ProductClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type catalogProduct struct {
	ID    *int64           `json:"id"`
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

type catalogEnvelope struct {
	Success bool            `json:"success"`
	Data    *catalogProduct `json:"data"`
}

// LookupProduct returns the product's current name and price. A 404 is
// ProductNotFound; anything else that is not a complete product is Upstream.
func (c *ProductClient) LookupProduct(ctx context.Context, productID int64) (*models.ProductSnapshot, error) {
	url := fmt.Sprintf("%s/api/products/%d", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, models.WrapError(models.ErrUpstream, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, models.WrapError(models.ErrUpstream, err, "catalog unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.NewError(models.ErrProductNotFound, "product %d not found", productID)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, models.NewError(models.ErrUpstream, "catalog returned %d for product %d", resp.StatusCode, productID)
	}

	var body catalogEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, models.WrapError(models.ErrUpstream, err, "decode catalog response")
	}
	p := body.Data
	if p == nil || p.ID == nil || p.Name == nil || p.Price == nil {
		return nil, models.NewError(models.ErrUpstream, "catalog response for product %d is incomplete", productID)
	}

	zerolog.Ctx(ctx).Debug().
		Int64("product_id", *p.ID).
		Str("price", p.Price.String()).
		Msg("catalog lookup")

	return &models.ProductSnapshot{ID: *p.ID, Name: *p.Name, Price: *p.Price}, nil
}
