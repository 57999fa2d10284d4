package handlers

import (
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/forms"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
)

const (
	productPageSize = 10
	maxImageBytes   = 10 << 20
)

// productSortColumns are the listing columns the backend can sort on.
var productSortColumns = []string{"id", "name", "price", "stock", "createdAt"}

type AdminProductHandler struct {
	*Base
	products *clients.AdminProductClient
}

func NewAdminProductHandler(b *Base, p *clients.AdminProductClient) *AdminProductHandler {
	return &AdminProductHandler{Base: b, products: p}
}

func productURL(id int64) string { return "/admin/products/" + strconv.FormatInt(id, 10) }

func (h *AdminProductHandler) List(w http.ResponseWriter, r *http.Request) {
	a := h.adminSession(r)
	q := r.URL.Query()

	query := model.ProductQuery{
		Name:    q.Get("name"),
		Page:    max(0, atoiOr(q.Get("page"), 0)),
		Size:    productPageSize,
		SortBy:  q.Get("sortBy"),
		SortDir: q.Get("sortDir"),
	}
	if !slices.Contains(productSortColumns, query.SortBy) {
		query.SortBy = "id"
	}
	if query.SortDir != "asc" {
		query.SortDir = "desc"
	}

	page, err := h.products.SearchProducts(r.Context(), a.Local(), query)
	if err != nil {
		h.renderError(w, r, AreaAdmin, err)
		return
	}

	v := h.adminView(r, a, "Products")
	v.Data["page"] = page
	v.Data["query"] = query
	h.render(w, http.StatusOK, "admin_products", v)
}

// Search is the quick name lookup used by the product list search box.
func (h *AdminProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	a := h.adminSession(r)
	name := r.URL.Query().Get("name")
	if name == "" {
		h.redirect(w, r, "/admin/products")
		return
	}
	products, err := h.products.SearchByName(r.Context(), a.Local(), name)
	if err != nil {
		h.renderError(w, r, AreaAdmin, err)
		return
	}

	v := h.adminView(r, a, "Products")
	v.Data["page"] = &model.Page[model.Product]{Content: products, TotalElements: int64(len(products)), TotalPages: 1}
	v.Data["query"] = model.ProductQuery{Name: name}
	h.render(w, http.StatusOK, "admin_products", v)
}

func (h *AdminProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, AreaAdmin)
		return
	}
	a := h.adminSession(r)
	p, err := h.products.GetProduct(r.Context(), a.Local(), id)
	if err != nil {
		h.renderError(w, r, AreaAdmin, err)
		return
	}
	v := h.adminView(r, a, p.Name)
	v.Data["product"] = p
	h.render(w, http.StatusOK, "admin_product", v)
}

func (h *AdminProductHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	v := h.adminView(r, h.adminSession(r), "New product")
	v.Form = forms.ProductForm{Status: string(model.ProductOpen)}
	v.Data["action"] = "/admin/products/create"
	v.Data["create"] = true
	h.render(w, http.StatusOK, "admin_product_form", v)
}

func (h *AdminProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	a := h.adminSession(r)
	var f forms.ProductForm
	if err := r.ParseMultipartForm(maxImageBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.fail(w, r, err, "/admin/products/create")
		return
	}
	forms.Decode(r.PostForm, &f)

	if errs := forms.Validate(f); errs.Any() {
		h.renderForm(w, r, "New product", "/admin/products/create", true, f, errs)
		return
	}

	var upload *clients.Upload
	if file, hdr, err := r.FormFile("image"); err == nil {
		defer file.Close()
		upload = &clients.Upload{
			Filename:    hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Data:        file,
		}
	}

	p, err := h.products.CreateProduct(r.Context(), a.Local(), f.Request(), upload)
	if err != nil {
		if clients.SessionCleared(err) {
			h.fail(w, r, err, "")
			return
		}
		h.renderForm(w, r, "New product", "/admin/products/create", true, f, forms.Errors{"": clients.Message(err)})
		return
	}
	h.flash(r, FlashSuccess, "Product created")
	h.redirect(w, r, productURL(p.ID))
}

func (h *AdminProductHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, AreaAdmin)
		return
	}
	a := h.adminSession(r)
	p, err := h.products.GetProduct(r.Context(), a.Local(), id)
	if err != nil {
		h.renderError(w, r, AreaAdmin, err)
		return
	}
	v := h.adminView(r, a, "Edit "+p.Name)
	v.Form = forms.ProductFormFrom(*p)
	v.Data["action"] = productURL(id) + "/edit"
	v.Data["product"] = p
	h.render(w, http.StatusOK, "admin_product_form", v)
}

func (h *AdminProductHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, AreaAdmin)
		return
	}
	a := h.adminSession(r)
	var f forms.ProductForm
	if err := r.ParseForm(); err == nil {
		forms.Decode(r.PostForm, &f)
	}
	action := productURL(id) + "/edit"

	if errs := forms.Validate(f); errs.Any() {
		h.renderForm(w, r, "Edit product", action, false, f, errs)
		return
	}
	if _, err := h.products.UpdateProduct(r.Context(), a.Local(), id, f.Request()); err != nil {
		if clients.SessionCleared(err) {
			h.fail(w, r, err, "")
			return
		}
		h.renderForm(w, r, "Edit product", action, false, f, forms.Errors{"": clients.Message(err)})
		return
	}
	h.flash(r, FlashSuccess, "Product updated")
	h.redirect(w, r, productURL(id))
}

func (h *AdminProductHandler) renderForm(w http.ResponseWriter, r *http.Request, title, action string, create bool, f forms.ProductForm, errs forms.Errors) {
	v := h.adminView(r, h.adminSession(r), title)
	v.Form = f
	v.Errors = errs
	v.Data["action"] = action
	v.Data["create"] = create
	h.render(w, http.StatusUnprocessableEntity, "admin_product_form", v)
}

func (h *AdminProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, false)
}

func (h *AdminProductHandler) HardDelete(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, true)
}

func (h *AdminProductHandler) remove(w http.ResponseWriter, r *http.Request, hard bool) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r, AreaAdmin)
		return
	}
	local := h.local(r)
	var err error
	if hard {
		err = h.products.HardDeleteProduct(r.Context(), local, id)
	} else {
		err = h.products.DeleteProduct(r.Context(), local, id)
	}
	if err != nil {
		h.fail(w, r, err, productURL(id))
		return
	}
	if hard {
		h.flash(r, FlashSuccess, "Product permanently deleted")
	} else {
		h.flash(r, FlashSuccess, "Product deleted")
	}
	h.redirect(w, r, "/admin/products")
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
