package clients

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

func TestCartClient_PathsAndMethods(t *testing.T) {
	ctx := context.Background()
	srv, ch := newStubBackend(t, http.StatusOK, okEnvelope)
	cc := NewCartClient(newTestClient(srv.URL))
	l := seededStorage(t)

	cases := []struct {
		name      string
		call      func() error
		wantMeth  string
		wantPath  string
		wantQuery string
		wantBody  string
	}{
		{name: "add", call: func() error { return cc.AddItem(ctx, l, 5, 2) }, wantMeth: http.MethodPost, wantPath: "/api/v1/cart/items", wantBody: `{"productId":5,"quantity":2}`},
		{name: "update", call: func() error { return cc.UpdateItem(ctx, l, 9, 3) }, wantMeth: http.MethodPut, wantPath: "/api/v1/cart/items/9", wantBody: `{"quantity":3}`},
		{name: "remove", call: func() error { return cc.RemoveItem(ctx, l, 9) }, wantMeth: http.MethodDelete, wantPath: "/api/v1/cart/items/9"},
		{name: "clear", call: func() error { return cc.Clear(ctx, l) }, wantMeth: http.MethodDelete, wantPath: "/api/v1/cart"},
		{name: "toggle", call: func() error { return cc.ToggleItem(ctx, l, 9) }, wantMeth: http.MethodPatch, wantPath: "/api/v1/cart/items/9/toggle"},
		{name: "toggle all", call: func() error { return cc.ToggleAll(ctx, l, true) }, wantMeth: http.MethodPatch, wantPath: "/api/v1/cart/items/toggle-all", wantQuery: "checked=true"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.call())
			rec := receive(t, ch)
			assert.Equal(t, tc.wantMeth, rec.Method)
			assert.Equal(t, tc.wantPath, rec.Path)
			assert.Equal(t, tc.wantQuery, rec.RawQuery)
			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, rec.Body)
				assert.Equal(t, "application/json", rec.Header.Get("Content-Type"))
			}
		})
	}
}

func TestCartClient_DecodesCart(t *testing.T) {
	body := `{"success":true,"data":{"id":1,"items":[{"id":3,"productId":5,"productName":"Lamp","productPrice":"19.90","quantity":2,"checked":true,"subtotal":"39.80"}],"totalItems":2,"totalAmount":"39.80"}}`
	srv, _ := newStubBackend(t, http.StatusOK, body)
	cc := NewCartClient(newTestClient(srv.URL))

	cart, err := cc.GetCart(context.Background(), seededStorage(t))
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Items[0].Subtotal.Equal(decimal.RequireFromString("39.80")))
	assert.True(t, cart.CheckedTotal().Equal(decimal.RequireFromString("39.80")))
}

func TestOrderClient_StatusFilterAndCancel(t *testing.T) {
	ctx := context.Background()
	srv, ch := newStubBackend(t, http.StatusOK, `{"success":true,"data":[]}`)
	oc := NewOrderClient(newTestClient(srv.URL))
	l := seededStorage(t)

	_, err := oc.ListOrders(ctx, l, order.StatusShipped)
	require.NoError(t, err)
	rec := receive(t, ch)
	assert.Equal(t, "/api/v1/orders", rec.Path)
	assert.Equal(t, "status=SHIPPED", rec.RawQuery)

	_, err = oc.ListOrders(ctx, l, "")
	require.NoError(t, err)
	assert.Empty(t, receive(t, ch).RawQuery)
}

func TestAdminClient_RolePaths(t *testing.T) {
	ctx := context.Background()
	srv, ch := newStubBackend(t, http.StatusOK, okEnvelope)
	ac := NewAdminClient(newTestClient(srv.URL))
	l := seededStorage(t)

	require.NoError(t, ac.AddRole(ctx, l, 4, model.RoleAdmin))
	rec := receive(t, ch)
	assert.Equal(t, http.MethodPut, rec.Method)
	assert.Equal(t, "/admin/v1/users/4/add-role/ADMIN", rec.Path)

	require.NoError(t, ac.RemoveRole(ctx, l, 4, model.RoleUser))
	assert.Equal(t, "/admin/v1/users/4/remove-role/USER", receive(t, ch).Path)
}

func TestAuthClient_LoginRequiresToken(t *testing.T) {
	srv, _ := newStubBackend(t, http.StatusOK, `{"success":true,"data":{"user":{"id":1}}}`)
	ac := NewAuthClient(newTestClient(srv.URL))

	_, err := ac.Login(context.Background(), nil, model.Credentials{Email: "a@b.c", Password: "secret1"})
	assert.Error(t, err)
}

func TestAdminProductClient_CreateIsMultipart(t *testing.T) {
	srv, ch := newStubBackend(t, http.StatusOK, `{"success":true,"data":{"id":11,"name":"Desk","price":"120.00"}}`)
	pc := NewAdminProductClient(newTestClient(srv.URL))

	req := model.ProductRequest{Name: "Desk", Price: decimal.RequireFromString("120.00"), Stock: 3, Status: model.ProductOpen}
	img := &Upload{Filename: "desk.png", ContentType: "image/png", Data: strings.NewReader("PNG")}

	p, err := pc.CreateProduct(context.Background(), seededStorage(t), req, img)
	require.NoError(t, err)
	assert.EqualValues(t, 11, p.ID)

	rec := receive(t, ch)
	assert.Equal(t, "Bearer admin-tok", rec.Header.Get("Authorization"))

	mediaType, params, err := mime.ParseMediaType(rec.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	mr := multipart.NewReader(strings.NewReader(rec.Body), params["boundary"])
	parts := map[string]string{}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		b, _ := io.ReadAll(part)
		parts[part.FormName()] = string(b)
	}
	assert.Contains(t, parts["data"], `"name":"Desk"`)
	assert.Equal(t, "PNG", parts["image"])
}
