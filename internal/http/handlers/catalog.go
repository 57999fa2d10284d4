package handlers

import (
	"net/http"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
)

type CatalogHandler struct {
	*Base
	products *clients.ProductClient
}

func NewCatalogHandler(b *Base, p *clients.ProductClient) *CatalogHandler {
	return &CatalogHandler{Base: b, products: p}
}

// Home lists the catalogue, optionally filtered by a name query.
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	a := h.storefront(r)
	products, err := h.products.ListProducts(r.Context(), a.Local())
	if err != nil {
		h.renderError(w, r, AreaShop, err)
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q != "" {
		filtered := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	v := h.shopView(r, a, "Products")
	v.Data["products"] = visible(products)
	v.Data["query"] = q
	h.render(w, http.StatusOK, "home", v)
}

func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, AreaShop)
		return
	}
	a := h.storefront(r)
	p, err := h.products.GetProduct(r.Context(), a.Local(), id)
	if err != nil {
		h.renderError(w, r, AreaShop, err)
		return
	}

	v := h.shopView(r, a, p.Name)
	v.Data["product"] = p
	h.render(w, http.StatusOK, "product", v)
}

// visible drops products the backend marks hidden.
func visible(ps []model.Product) []model.Product {
	out := make([]model.Product, 0, len(ps))
	for _, p := range ps {
		if p.Status != model.ProductHidden {
			out = append(out, p)
		}
	}
	return out
}
