package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

type CartClient struct{ c *Client }

func NewCartClient(c *Client) *CartClient { return &CartClient{c: c} }

func itemPath(itemID int64) string {
	return "/api/v1/cart/items/" + strconv.FormatInt(itemID, 10)
}

func (cc *CartClient) GetCart(ctx context.Context, local storage.Local) (*model.Cart, error) {
	var cart model.Cart
	if _, err := cc.c.call(ctx, local, http.MethodGet, "/api/v1/cart", nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cc *CartClient) CountItems(ctx context.Context, local storage.Local) (int, error) {
	var n int
	if _, err := cc.c.call(ctx, local, http.MethodGet, "/api/v1/cart/count", nil, nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (cc *CartClient) AddItem(ctx context.Context, local storage.Local, productID int64, quantity int) error {
	body := model.AddToCartRequest{ProductID: productID, Quantity: quantity}
	_, err := cc.c.call(ctx, local, http.MethodPost, "/api/v1/cart/items", nil, body, nil)
	return err
}

func (cc *CartClient) UpdateItem(ctx context.Context, local storage.Local, itemID int64, quantity int) error {
	body := model.UpdateCartItemRequest{Quantity: quantity}
	_, err := cc.c.call(ctx, local, http.MethodPut, itemPath(itemID), nil, body, nil)
	return err
}

func (cc *CartClient) RemoveItem(ctx context.Context, local storage.Local, itemID int64) error {
	_, err := cc.c.call(ctx, local, http.MethodDelete, itemPath(itemID), nil, nil, nil)
	return err
}

func (cc *CartClient) Clear(ctx context.Context, local storage.Local) error {
	_, err := cc.c.call(ctx, local, http.MethodDelete, "/api/v1/cart", nil, nil, nil)
	return err
}

func (cc *CartClient) ToggleItem(ctx context.Context, local storage.Local, itemID int64) error {
	_, err := cc.c.call(ctx, local, http.MethodPatch, itemPath(itemID)+"/toggle", nil, nil, nil)
	return err
}

func (cc *CartClient) ToggleAll(ctx context.Context, local storage.Local, checked bool) error {
	q := url.Values{"checked": {strconv.FormatBool(checked)}}
	_, err := cc.c.call(ctx, local, http.MethodPatch, "/api/v1/cart/items/toggle-all", q, nil, nil)
	return err
}
