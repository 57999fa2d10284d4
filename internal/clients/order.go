package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

type OrderClient struct{ c *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

func orderPath(orderID int64) string {
	return "/api/v1/orders/" + strconv.FormatInt(orderID, 10)
}

func statusQuery(status order.Status) url.Values {
	if status == "" {
		return nil
	}
	return url.Values{"status": {string(status)}}
}

func (oc *OrderClient) CreateOrder(ctx context.Context, local storage.Local, req model.CreateOrderRequest) (*model.Order, error) {
	var o model.Order
	if _, err := oc.c.call(ctx, local, http.MethodPost, "/api/v1/orders", nil, req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOrders returns the caller's orders; an empty status means all.
func (oc *OrderClient) ListOrders(ctx context.Context, local storage.Local, status order.Status) ([]model.Order, error) {
	var out []model.Order
	if _, err := oc.c.call(ctx, local, http.MethodGet, "/api/v1/orders", statusQuery(status), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (oc *OrderClient) GetOrder(ctx context.Context, local storage.Local, orderID int64) (*model.Order, error) {
	var o model.Order
	if _, err := oc.c.call(ctx, local, http.MethodGet, orderPath(orderID), nil, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (oc *OrderClient) CancelOrder(ctx context.Context, local storage.Local, orderID int64) (*model.Order, error) {
	var o model.Order
	if _, err := oc.c.call(ctx, local, http.MethodPatch, orderPath(orderID)+"/cancel", nil, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (oc *OrderClient) CountOrders(ctx context.Context, local storage.Local, status order.Status) (int64, error) {
	var n int64
	if _, err := oc.c.call(ctx, local, http.MethodGet, "/api/v1/orders/count", statusQuery(status), nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}
