package handlers

import (
	"net/http"
	"strconv"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/forms"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

type OrderHandler struct {
	*Base
	orders *clients.OrderClient
}

func NewOrderHandler(b *Base, o *clients.OrderClient) *OrderHandler {
	return &OrderHandler{Base: b, orders: o}
}

func orderURL(id int64) string { return "/orders/" + strconv.FormatInt(id, 10) }

// Dashboard shows the profile with order counts per status.
func (h *OrderHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	a := h.storefront(r)
	total, err := h.orders.CountOrders(r.Context(), a.Local(), "")
	if err != nil {
		h.renderError(w, r, AreaShop, err)
		return
	}
	recent, err := h.orders.ListOrders(r.Context(), a.Local(), "")
	if err != nil {
		h.renderError(w, r, AreaShop, err)
		return
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	v := h.shopView(r, a, "My account")
	v.Data["orderCount"] = total
	v.Data["recent"] = recent
	h.render(w, http.StatusOK, "dashboard", v)
}

func (h *OrderHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	a := h.storefront(r)
	cart := h.cartFor(a)
	if err := cart.Refresh(r.Context()); err != nil {
		h.fail(w, r, err, "/cart")
		return
	}
	if len(cart.CheckedItems()) == 0 {
		h.flash(r, FlashInfo, "Select at least one item to check out")
		h.redirect(w, r, "/cart")
		return
	}

	v := h.view(r, AreaShop, "Checkout")
	v.User = a.User()
	v.CartCount = cart.ItemCount()
	v.Form = forms.CheckoutForm{ReceiverName: a.User().Name}
	v.Data["items"] = cart.CheckedItems()
	v.Data["total"] = cart.Cart().CheckedTotal()
	h.render(w, http.StatusOK, "checkout", v)
}

// Checkout creates an order from the checked cart lines. The empty check
// happens here so the backend is never asked for an empty order.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	a := h.storefront(r)
	cart := h.cartFor(a)
	if err := cart.Refresh(r.Context()); err != nil {
		h.fail(w, r, err, "/cart")
		return
	}
	items := cart.CheckedItems()
	if len(items) == 0 {
		h.flash(r, FlashInfo, "Select at least one item to check out")
		h.redirect(w, r, "/cart")
		return
	}

	var f forms.CheckoutForm
	if err := r.ParseForm(); err == nil {
		forms.Decode(r.PostForm, &f)
	}
	if errs := forms.Validate(f); errs.Any() {
		v := h.view(r, AreaShop, "Checkout")
		v.User = a.User()
		v.CartCount = cart.ItemCount()
		v.Form = f
		v.Errors = errs
		v.Data["items"] = items
		v.Data["total"] = cart.Cart().CheckedTotal()
		h.render(w, http.StatusUnprocessableEntity, "checkout", v)
		return
	}

	o, err := h.orders.CreateOrder(r.Context(), a.Local(), f.Request())
	if err != nil {
		h.fail(w, r, err, "/checkout")
		return
	}
	h.flash(r, FlashSuccess, "Order "+o.OrderNumber+" placed")
	h.redirect(w, r, orderURL(o.ID))
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	a := h.storefront(r)
	status, known := order.ParseStatus(r.URL.Query().Get("status"))
	if !known {
		status = ""
	}
	orders, err := h.orders.ListOrders(r.Context(), a.Local(), status)
	if err != nil {
		h.renderError(w, r, AreaShop, err)
		return
	}

	v := h.shopView(r, a, "My orders")
	v.Data["orders"] = orders
	v.Data["status"] = status
	h.render(w, http.StatusOK, "orders", v)
}

func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, AreaShop)
		return
	}
	a := h.storefront(r)
	o, err := h.orders.GetOrder(r.Context(), a.Local(), id)
	if err != nil {
		h.renderError(w, r, AreaShop, err)
		return
	}

	v := h.shopView(r, a, "Order "+o.OrderNumber)
	v.Data["order"] = o
	h.render(w, http.StatusOK, "order", v)
}

// Cancel re-reads the order and only calls the backend while the status
// still allows cancellation.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, AreaShop)
		return
	}
	a := h.storefront(r)
	back := orderURL(id)

	o, err := h.orders.GetOrder(r.Context(), a.Local(), id)
	if err != nil {
		h.fail(w, r, err, "/orders")
		return
	}
	if err := o.Status.CheckCancel(); err != nil {
		h.fail(w, r, err, back)
		return
	}
	if _, err := h.orders.CancelOrder(r.Context(), a.Local(), id); err != nil {
		h.fail(w, r, err, back)
		return
	}
	h.flash(r, FlashSuccess, "Order cancelled")
	h.redirect(w, r, back)
}
