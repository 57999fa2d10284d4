package clients

import (
	"context"
	"net/http"
	"strconv"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

type ProductClient struct{ c *Client }

func NewProductClient(c *Client) *ProductClient { return &ProductClient{c: c} }

func (pc *ProductClient) ListProducts(ctx context.Context, local storage.Local) ([]model.Product, error) {
	var out []model.Product
	if _, err := pc.c.call(ctx, local, http.MethodGet, "/api/v1/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (pc *ProductClient) GetProduct(ctx context.Context, local storage.Local, id int64) (*model.Product, error) {
	var p model.Product
	if _, err := pc.c.call(ctx, local, http.MethodGet, "/api/v1/products/"+strconv.FormatInt(id, 10), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
