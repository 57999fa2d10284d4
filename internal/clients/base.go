package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

// DefaultPublicPaths never carry a bearer token and never tear the session
// down on 401. Matching is by substring, so "/auth/login" covers both the
// storefront and the admin login.
var DefaultPublicPaths = []string{
	"/auth/login",
	"/auth/register",
	"/auth/forgot-password",
	"/auth/check-login",
	"/api/v1/products",
}

type Client struct {
	Name        string
	BaseURL     *url.URL
	HTTP        *http.Client
	PublicPaths []string
}

func NewClient(name string, baseURL string, httpClient *http.Client, publicPaths []string) *Client {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid %s base url %q: %v", name, baseURL, err))
	}
	if publicPaths == nil {
		publicPaths = DefaultPublicPaths
	}
	return &Client{Name: name, BaseURL: u, HTTP: httpClient, PublicPaths: publicPaths}
}

// Do sends a raw request to the backend. Call is the envelope-aware wrapper
// used by the typed clients.
func (c *Client) Do(ctx context.Context, method, path, rawQuery string, body io.Reader, headers http.Header) (*http.Response, error) {
	rel := &url.URL{Path: path, RawQuery: rawQuery}
	u := c.BaseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}

	for k, vv := range headers {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}

	// Ensure correlation id propagated downstream
	if cid := middleware.GetCorrelationID(ctx); cid != "" {
		req.Header.Set(middleware.HeaderCorrelationID, cid)
	}

	return c.HTTP.Do(req)
}

// Request describes one backend call.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        io.Reader
	ContentType string
}

func NewJSONRequest(method, path string, v any) (Request, error) {
	req := Request{Method: method, Path: path}
	if v == nil {
		return req, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return req, fmt.Errorf("encode request body: %w", err)
	}
	req.Body = strings.NewReader(string(b))
	req.ContentType = "application/json"
	return req, nil
}

// Call issues req on behalf of the browser owning local and unwraps the
// response envelope. local may be nil for anonymous calls.
func (c *Client) Call(ctx context.Context, local storage.Local, req Request) (*model.Envelope, error) {
	public := c.IsPublic(req.Path)

	headers := http.Header{}
	headers.Set("Accept", "application/json")
	if req.ContentType != "" {
		headers.Set("Content-Type", req.ContentType)
	}
	if !public {
		if tok := bearerToken(ctx, local); tok != "" {
			headers.Set("Authorization", "Bearer "+tok)
		}
	}

	rawQuery := ""
	if len(req.Query) > 0 {
		rawQuery = req.Query.Encode()
	}

	resp, err := c.Do(ctx, req.Method, req.Path, rawQuery, req.Body, headers)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	env, decodeErr := decodeEnvelope(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		apiErr := &APIError{Status: resp.StatusCode, Message: messageOr(env, "unauthorized")}
		if !public && local != nil {
			// Best effort: a storage failure must not mask the 401.
			_ = local.Remove(ctx, storage.SessionKeys...)
			apiErr.SessionCleared = true
		}
		return nil, apiErr
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: messageOr(env, http.StatusText(resp.StatusCode))}
	}
	if decodeErr != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: "invalid response from " + c.Name}
	}
	if !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: messageOr(env, defaultMessage)}
	}
	return env, nil
}

// IsPublic reports whether path matches the public allow-list.
func (c *Client) IsPublic(path string) bool {
	for _, p := range c.PublicPaths {
		if p != "" && strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// bearerToken prefers the admin slot, then the storefront slot.
func bearerToken(ctx context.Context, local storage.Local) string {
	if local == nil {
		return ""
	}
	for _, key := range []string{storage.KeyAdminToken, storage.KeyUserToken} {
		if v, ok, err := local.Get(ctx, key); err == nil && ok && v != "" {
			return v
		}
	}
	return ""
}

func decodeEnvelope(r io.Reader) (*model.Envelope, error) {
	var env model.Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, err
	}
	return &env, nil
}

func messageOr(env *model.Envelope, fallback string) string {
	if env != nil && strings.TrimSpace(env.Message) != "" {
		return env.Message
	}
	if fallback == "" {
		return defaultMessage
	}
	return fallback
}

// decodeData unmarshals env.Data into out; empty or null data is left as is.
func decodeData(env *model.Envelope, out any) error {
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{Message: "invalid response data: " + err.Error()}
	}
	return nil
}

// call is the common path for typed clients: build a JSON request, send it
// and decode the data payload into out.
func (c *Client) call(ctx context.Context, local storage.Local, method, path string, query url.Values, body, out any) (*model.Envelope, error) {
	req, err := NewJSONRequest(method, path, body)
	if err != nil {
		return nil, err
	}
	req.Query = query
	env, err := c.Call(ctx, local, req)
	if err != nil {
		return nil, err
	}
	if err := decodeData(env, out); err != nil {
		return nil, err
	}
	return env, nil
}
