package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

type AdminProductClient struct{ c *Client }

func NewAdminProductClient(c *Client) *AdminProductClient { return &AdminProductClient{c: c} }

// Upload is an optional product image forwarded from the admin form.
type Upload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

func adminProductPath(id int64) string {
	return "/admin/v1/products/" + strconv.FormatInt(id, 10)
}

func (pc *AdminProductClient) SearchProducts(ctx context.Context, local storage.Local, q model.ProductQuery) (*model.Page[model.Product], error) {
	v := url.Values{}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	v.Set("page", strconv.Itoa(q.Page))
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortDir != "" {
		v.Set("sortDir", q.SortDir)
	}

	var page model.Page[model.Product]
	if _, err := pc.c.call(ctx, local, http.MethodGet, "/admin/v1/products", v, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (pc *AdminProductClient) SearchByName(ctx context.Context, local storage.Local, name string) ([]model.Product, error) {
	var out []model.Product
	q := url.Values{"name": {name}}
	if _, err := pc.c.call(ctx, local, http.MethodGet, "/admin/v1/products/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (pc *AdminProductClient) GetProduct(ctx context.Context, local storage.Local, id int64) (*model.Product, error) {
	var p model.Product
	if _, err := pc.c.call(ctx, local, http.MethodGet, adminProductPath(id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct posts multipart/form-data with a JSON "data" part and an
// optional "image" part.
func (pc *AdminProductClient) CreateProduct(ctx context.Context, local storage.Local, req model.ProductRequest, image *Upload) (*model.Product, error) {
	body, contentType, err := productMultipart(req, image)
	if err != nil {
		return nil, err
	}
	env, err := pc.c.Call(ctx, local, Request{
		Method:      http.MethodPost,
		Path:        "/admin/v1/products",
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}
	var p model.Product
	if err := decodeData(env, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (pc *AdminProductClient) UpdateProduct(ctx context.Context, local storage.Local, id int64, req model.ProductRequest) (*model.Product, error) {
	var p model.Product
	if _, err := pc.c.call(ctx, local, http.MethodPut, adminProductPath(id), nil, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (pc *AdminProductClient) DeleteProduct(ctx context.Context, local storage.Local, id int64) error {
	_, err := pc.c.call(ctx, local, http.MethodDelete, adminProductPath(id), nil, nil, nil)
	return err
}

func (pc *AdminProductClient) HardDeleteProduct(ctx context.Context, local storage.Local, id int64) error {
	_, err := pc.c.call(ctx, local, http.MethodDelete, adminProductPath(id)+"/hard", nil, nil, nil)
	return err
}

func productMultipart(req model.ProductRequest, image *Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="data"`)
	h.Set("Content-Type", "application/json")
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create data part: %w", err)
	}
	if err := json.NewEncoder(part).Encode(req); err != nil {
		return nil, "", fmt.Errorf("encode data part: %w", err)
	}

	if image != nil && image.Data != nil {
		ih := textproto.MIMEHeader{}
		ih.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, image.Filename))
		ct := image.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		ih.Set("Content-Type", ct)
		ip, err := mw.CreatePart(ih)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(ip, image.Data); err != nil {
			return nil, "", fmt.Errorf("copy image: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
