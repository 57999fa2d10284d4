package session

import (
	"context"
	"log"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

// CartAPI is the slice of the backend cart client the store needs.
type CartAPI interface {
	GetCart(ctx context.Context, local storage.Local) (*model.Cart, error)
	CountItems(ctx context.Context, local storage.Local) (int, error)
	AddItem(ctx context.Context, local storage.Local, productID int64, quantity int) error
	UpdateItem(ctx context.Context, local storage.Local, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, local storage.Local, itemID int64) error
	Clear(ctx context.Context, local storage.Local) error
	ToggleItem(ctx context.Context, local storage.Local, itemID int64) error
	ToggleAll(ctx context.Context, local storage.Local, checked bool) error
}

// Cart mirrors the server cart for one browser. Every mutation is a single
// backend call followed by a full resync; nothing is updated optimistically.
type Cart struct {
	auth   *Auth
	api    CartAPI
	logger *log.Logger

	cart  *model.Cart
	count int
}

func NewCart(auth *Auth, api CartAPI, logger *log.Logger) *Cart {
	return &Cart{auth: auth, api: api, logger: logger}
}

func (c *Cart) Cart() *model.Cart { return c.cart }

func (c *Cart) ItemCount() int { return c.count }

func (c *Cart) CheckedItems() []model.CartItem { return c.cart.CheckedItems() }

// Refresh loads cart and count, or empties both when logged out. It only
// fails when the backend tore the session down.
func (c *Cart) Refresh(ctx context.Context) error {
	if !c.auth.IsAuthenticated() {
		c.cart, c.count = nil, 0
		return nil
	}
	return c.resync(ctx)
}

func (c *Cart) AddToCart(ctx context.Context, productID int64, quantity int) error {
	return c.mutate(ctx, func(l storage.Local) error {
		return c.api.AddItem(ctx, l, productID, quantity)
	})
}

func (c *Cart) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error {
	return c.mutate(ctx, func(l storage.Local) error {
		return c.api.UpdateItem(ctx, l, itemID, quantity)
	})
}

func (c *Cart) RemoveCartItem(ctx context.Context, itemID int64) error {
	return c.mutate(ctx, func(l storage.Local) error {
		return c.api.RemoveItem(ctx, l, itemID)
	})
}

func (c *Cart) ClearCart(ctx context.Context) error {
	return c.mutate(ctx, func(l storage.Local) error {
		return c.api.Clear(ctx, l)
	})
}

func (c *Cart) ToggleCartItemChecked(ctx context.Context, itemID int64) error {
	return c.mutate(ctx, func(l storage.Local) error {
		return c.api.ToggleItem(ctx, l, itemID)
	})
}

func (c *Cart) ToggleAllCartItems(ctx context.Context, checked bool) error {
	return c.mutate(ctx, func(l storage.Local) error {
		return c.api.ToggleAll(ctx, l, checked)
	})
}

func (c *Cart) mutate(ctx context.Context, call func(storage.Local) error) error {
	if !c.auth.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if err := call(c.auth.Local()); err != nil {
		return err
	}
	return c.resync(ctx)
}

// resync fetches the cart and the count once each. A failed fetch keeps
// the previous value; a 401 that cleared the session empties the cart,
// logs the user out and is returned.
func (c *Cart) resync(ctx context.Context) error {
	l := c.auth.Local()
	cart, err := c.api.GetCart(ctx, l)
	switch {
	case err == nil:
		c.cart = cart
	case c.torndown(ctx, err):
		return err
	default:
		c.logf("fetch cart: %v", err)
	}

	n, err := c.api.CountItems(ctx, l)
	switch {
	case err == nil:
		c.count = n
	case c.torndown(ctx, err):
		return err
	default:
		c.logf("fetch cart count: %v", err)
	}
	return nil
}

func (c *Cart) torndown(ctx context.Context, err error) bool {
	if !clients.SessionCleared(err) {
		return false
	}
	c.cart, c.count = nil, 0
	c.auth.Logout(ctx)
	return true
}

func (c *Cart) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf("cart: "+format, args...)
	}
}
