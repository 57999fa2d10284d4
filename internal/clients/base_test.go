package clients

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     string
}

// newStubBackend answers every request with status and body and records
// what it received.
func newStubBackend(t *testing.T, status int, body string) (*httptest.Server, <-chan recordedRequest) {
	t.Helper()
	ch := make(chan recordedRequest, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		ch <- recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     string(b),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, ch
}

func newTestClient(baseURL string) *Client {
	return NewClient("backend", baseURL, &http.Client{Timeout: 5 * time.Second}, nil)
}

func receive(t *testing.T, ch <-chan recordedRequest) recordedRequest {
	t.Helper()
	select {
	case rec := <-ch:
		return rec
	case <-time.After(time.Second):
		t.Fatal("did not receive backend request")
		return recordedRequest{}
	}
}

func seededStorage(t *testing.T) storage.Local {
	t.Helper()
	ctx := context.Background()
	l := storage.NewMemory()
	require.NoError(t, l.Set(ctx, storage.KeyUserToken, "user-tok"))
	require.NoError(t, l.Set(ctx, storage.KeyUser, `{"id":1,"email":"u@example.com","roles":["USER"]}`))
	require.NoError(t, l.Set(ctx, storage.KeyAdminToken, "admin-tok"))
	require.NoError(t, l.Set(ctx, storage.KeyAdminUser, `{"id":2,"email":"a@example.com","roles":["ADMIN"]}`))
	return l
}

const okEnvelope = `{"success":true,"message":"ok","data":null}`

func TestCall_AttachesBearerToken(t *testing.T) {
	ctx := context.Background()
	srv, ch := newStubBackend(t, http.StatusOK, okEnvelope)
	c := newTestClient(srv.URL)

	l := storage.NewMemory()
	require.NoError(t, l.Set(ctx, storage.KeyUserToken, "user-tok"))

	_, err := c.Call(ctx, l, Request{Method: http.MethodGet, Path: "/api/v1/cart"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer user-tok", receive(t, ch).Header.Get("Authorization"))
}

func TestCall_PrefersAdminToken(t *testing.T) {
	ctx := context.Background()
	srv, ch := newStubBackend(t, http.StatusOK, okEnvelope)
	c := newTestClient(srv.URL)

	_, err := c.Call(ctx, seededStorage(t), Request{Method: http.MethodGet, Path: "/admin/v1/users"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer admin-tok", receive(t, ch).Header.Get("Authorization"))
}

func TestCall_PublicPathsCarryNoToken(t *testing.T) {
	ctx := context.Background()
	srv, ch := newStubBackend(t, http.StatusOK, okEnvelope)
	c := newTestClient(srv.URL)
	l := seededStorage(t)

	for _, path := range []string{"/api/v1/products", "/api/v1/products/3", "/api/v1/auth/login", "/admin/v1/auth/login"} {
		t.Run(path, func(t *testing.T) {
			_, err := c.Call(ctx, l, Request{Method: http.MethodGet, Path: path})
			require.NoError(t, err)
			assert.Empty(t, receive(t, ch).Header.Get("Authorization"))
		})
	}
}

func TestCall_UnauthorizedClearsSession(t *testing.T) {
	ctx := context.Background()
	srv, _ := newStubBackend(t, http.StatusUnauthorized, `{"success":false,"message":"token expired"}`)
	c := newTestClient(srv.URL)
	l := seededStorage(t)
	require.NoError(t, l.Set(ctx, storage.KeyFlash, `{"kind":"info","message":"keep"}`))

	_, err := c.Call(ctx, l, Request{Method: http.MethodGet, Path: "/api/v1/cart"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.True(t, SessionCleared(err))
	assert.Equal(t, "token expired", Message(err))

	for _, k := range storage.SessionKeys {
		_, ok, _ := l.Get(ctx, k)
		assert.False(t, ok, "key %s should be cleared", k)
	}
	_, ok, _ := l.Get(ctx, storage.KeyFlash)
	assert.True(t, ok, "unrelated keys survive")
}

func TestCall_UnauthorizedOnPublicPathKeepsSession(t *testing.T) {
	ctx := context.Background()
	srv, _ := newStubBackend(t, http.StatusUnauthorized, `{"success":false,"message":"bad credentials"}`)
	c := newTestClient(srv.URL)
	l := seededStorage(t)

	_, err := c.Call(ctx, l, Request{Method: http.MethodPost, Path: "/api/v1/auth/login"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, SessionCleared(err))

	for _, k := range storage.SessionKeys {
		_, ok, _ := l.Get(ctx, k)
		assert.True(t, ok, "key %s should survive", k)
	}
}

func TestCall_NormalizesErrors(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "envelope message", status: http.StatusBadRequest, body: `{"success":false,"message":"quantity too large"}`, wantMsg: "quantity too large"},
		{name: "success false on 200", status: http.StatusOK, body: `{"success":false,"message":"out of stock"}`, wantMsg: "out of stock"},
		{name: "success false without message", status: http.StatusOK, body: `{"success":false}`, wantMsg: defaultMessage},
		{name: "non json error", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantMsg: "Bad Gateway"},
		{name: "non json success", status: http.StatusOK, body: `oops`, wantMsg: "invalid response from backend"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newStubBackend(t, tc.status, tc.body)
			c := newTestClient(srv.URL)

			_, err := c.Call(ctx, storage.NewMemory(), Request{Method: http.MethodGet, Path: "/api/v1/orders"})
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.wantMsg, Message(err))
		})
	}
}

func TestCall_TransportError(t *testing.T) {
	srv, _ := newStubBackend(t, http.StatusOK, okEnvelope)
	c := newTestClient(srv.URL)
	srv.Close()

	_, err := c.Call(context.Background(), nil, Request{Method: http.MethodGet, Path: "/api/v1/products"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Zero(t, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestCall_PropagatesCorrelationID(t *testing.T) {
	srv, ch := newStubBackend(t, http.StatusOK, okEnvelope)
	c := newTestClient(srv.URL)

	var ctx context.Context
	h := middleware.CorrelationID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderCorrelationID, "cid-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	_, err := c.Call(ctx, nil, Request{Method: http.MethodGet, Path: "/api/v1/products"})
	require.NoError(t, err)
	assert.Equal(t, "cid-42", receive(t, ch).Header.Get(middleware.HeaderCorrelationID))
}

func TestLoginRouteFor(t *testing.T) {
	tests := map[string]string{
		"/admin":              "/admin/login",
		"/admin/users":        "/admin/login",
		"/admin/products/3":   "/admin/login",
		"/":                   "/login",
		"/cart":               "/login",
		"/orders/12":          "/login",
		"/administrator-page": "/login",
	}
	for path, want := range tests {
		assert.Equal(t, want, LoginRouteFor(path), path)
	}
}

func TestDecodeData(t *testing.T) {
	var n int
	require.NoError(t, decodeData(&model.Envelope{Data: []byte("7")}, &n))
	assert.Equal(t, 7, n)

	require.NoError(t, decodeData(&model.Envelope{Data: []byte("null")}, &n))
	assert.Equal(t, 7, n)

	assert.Error(t, decodeData(&model.Envelope{Data: []byte(`"x"`)}, &n))
}
