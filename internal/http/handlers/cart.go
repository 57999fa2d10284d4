package handlers

import (
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/session"
)

type CartHandler struct{ *Base }

func NewCartHandler(b *Base) *CartHandler { return &CartHandler{Base: b} }

func (h *CartHandler) Page(w http.ResponseWriter, r *http.Request) {
	a := h.storefront(r)
	cart := h.cartFor(a)
	if err := cart.Refresh(r.Context()); err != nil {
		h.fail(w, r, err, "/")
		return
	}

	v := h.view(r, AreaShop, "Your cart")
	v.User = a.User()
	v.CartCount = cart.ItemCount()
	v.Data["cart"] = cart.Cart()
	v.Data["checked"] = cart.CheckedItems()
	v.Data["checkedTotal"] = cart.Cart().CheckedTotal()
	v.Data["allChecked"] = cart.Cart().AllChecked()
	h.render(w, http.StatusOK, "cart", v)
}

// mutate runs one cart action for the current user and sends the browser
// back to where it came from.
func (h *CartHandler) mutate(w http.ResponseWriter, r *http.Request, back, done string, action func(*session.Cart) error) {
	cart := h.cartFor(h.storefront(r))
	if err := action(cart); err != nil {
		h.fail(w, r, err, back)
		return
	}
	if done != "" {
		h.flash(r, FlashSuccess, done)
	}
	h.redirect(w, r, back)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r.FormValue("productId"))
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	qty := formInt(r, "quantity", 1)
	if qty < 1 {
		qty = 1
	}
	back := r.FormValue("back")
	if !isLocalPath(back) {
		back = "/cart"
	}
	h.mutate(w, r, back, "Added to cart", func(c *session.Cart) error {
		return c.AddToCart(r.Context(), productID, qty)
	})
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, AreaShop)
		return
	}
	qty := formInt(r, "quantity", 0)
	if qty < 1 {
		h.flash(r, FlashError, "Quantity must be at least 1")
		h.redirect(w, r, "/cart")
		return
	}
	h.mutate(w, r, "/cart", "", func(c *session.Cart) error {
		return c.UpdateCartItem(r.Context(), id, qty)
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, AreaShop)
		return
	}
	h.mutate(w, r, "/cart", "Item removed", func(c *session.Cart) error {
		return c.RemoveCartItem(r.Context(), id)
	})
}

func (h *CartHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, AreaShop)
		return
	}
	h.mutate(w, r, "/cart", "", func(c *session.Cart) error {
		return c.ToggleCartItemChecked(r.Context(), id)
	})
}

func (h *CartHandler) ToggleAll(w http.ResponseWriter, r *http.Request) {
	checked := r.FormValue("checked") == "true"
	h.mutate(w, r, "/cart", "", func(c *session.Cart) error {
		return c.ToggleAllCartItems(r.Context(), checked)
	})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "/cart", "Cart cleared", func(c *session.Cart) error {
		return c.ClearCart(r.Context())
	})
}
