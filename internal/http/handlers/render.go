package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/admin"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/forms"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

//go:embed templates
var templateFS embed.FS

const (
	AreaShop  = "shop"
	AreaAdmin = "admin"
)

// View is the data every page template receives.
type View struct {
	Title     string
	Area      string
	Path      string
	Flash     *storage.Flash
	User      *model.User
	CartCount int
	Form      any
	Errors    forms.Errors
	Data      map[string]any
}

// Renderer holds one parsed template set per page, each sharing the layout
// and partials.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
	"date": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02 15:04")
	},
	"statuses":        func() []order.Status { return order.Statuses },
	"productStatuses": func() []model.ProductStatus { return model.ProductStatuses },
	"roleOptions":     admin.RoleOptions,
	"sortColumns":     func() []string { return productSortColumns },
	"add":             func(a, b int) int { return a + b },
	"join":            strings.Join,
}

func NewRenderer() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layout/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		r.pages[strings.TrimSuffix(path.Base(f), ".tmpl")] = t
	}
	return r, nil
}

// Render writes page with status. Templates are executed into memory first
// so a failing template never produces half a page.
func (rn *Renderer) Render(w http.ResponseWriter, status int, page string, v View) error {
	t, ok := rn.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
