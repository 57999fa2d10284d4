//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

type httpResult struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// TestStorefrontHappyPath runs against a deployed storefront. The shopping
// part needs STOREFRONT_EMAIL and STOREFRONT_PASSWORD of an existing account.
func TestStorefrontHappyPath(t *testing.T) {
	baseURL := getenv("STOREFRONT_URL", "http://localhost:8080")
	correlationID := fmt.Sprintf("it-%d", time.Now().UnixNano())

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{
		Timeout: 10 * time.Second,
		Jar:     jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	waitForHealth(ctx, t, client, baseURL)

	resp := doRequest(ctx, t, client, http.MethodGet, baseURL+"/", nil, correlationID)
	ensureNon5xx(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("home page: %d", resp.StatusCode)
	}

	resp = doRequest(ctx, t, client, http.MethodGet, baseURL+"/cart", nil, correlationID)
	expectRedirect(t, resp, "/login")
	resp = doRequest(ctx, t, client, http.MethodGet, baseURL+"/admin/users", nil, correlationID)
	expectRedirect(t, resp, "/admin/login")

	email, password := os.Getenv("STOREFRONT_EMAIL"), os.Getenv("STOREFRONT_PASSWORD")
	if email == "" || password == "" {
		t.Skip("STOREFRONT_EMAIL/STOREFRONT_PASSWORD not set, skipping signed-in flow")
	}

	resp = doRequest(ctx, t, client, http.MethodPost, baseURL+"/login",
		url.Values{"email": {email}, "password": {password}}, correlationID)
	expectRedirect(t, resp, "/")

	resp = doRequest(ctx, t, client, http.MethodGet, baseURL+"/cart", nil, correlationID)
	ensureNon5xx(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cart after login: %d", resp.StatusCode)
	}

	resp = doRequest(ctx, t, client, http.MethodGet, baseURL+"/orders", nil, correlationID)
	ensureNon5xx(t, resp)

	resp = doRequest(ctx, t, client, http.MethodPost, baseURL+"/logout", url.Values{}, correlationID)
	expectRedirect(t, resp, "/login")
	resp = doRequest(ctx, t, client, http.MethodGet, baseURL+"/cart", nil, correlationID)
	expectRedirect(t, resp, "/login")
}

func waitForHealth(ctx context.Context, t *testing.T, client *http.Client, baseURL string) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("context done while waiting for health: %v", ctx.Err())
		case <-ticker.C:
			resp := doRequest(ctx, t, client, http.MethodGet, baseURL+"/health", nil, "")
			if resp.StatusCode != http.StatusOK {
				continue
			}
			resp = doRequest(ctx, t, client, http.MethodGet, baseURL+"/health/upstreams", nil, "")
			if resp.StatusCode != http.StatusOK {
				continue
			}

			var payload struct {
				Upstream []struct {
					Name string `json:"name"`
					OK   bool   `json:"ok"`
				} `json:"upstream"`
			}
			if err := json.Unmarshal(resp.Body, &payload); err != nil {
				continue
			}
			for _, u := range payload.Upstream {
				if u.Name == "backend" && u.OK {
					return
				}
			}
		}
	}
}

func doRequest(ctx context.Context, t *testing.T, client *http.Client, method, target string, form url.Values, cid string) httpResult {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cid != "" {
		req.Header.Set("X-Correlation-Id", cid)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request %s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	ensureCorrelation(t, resp.Header)

	return httpResult{StatusCode: resp.StatusCode, Body: data, Header: resp.Header.Clone()}
}

func expectRedirect(t *testing.T, resp httpResult, location string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != location {
		t.Fatalf("expected 303 to %s, got %d to %q", location, resp.StatusCode, resp.Header.Get("Location"))
	}
}

func ensureCorrelation(t *testing.T, h http.Header) {
	if h.Get("X-Correlation-Id") == "" {
		t.Fatalf("expected correlation id on response")
	}
}

func ensureNon5xx(t *testing.T, resp httpResult) {
	if resp.StatusCode >= 500 {
		t.Fatalf("received 5xx (%d): %s", resp.StatusCode, string(resp.Body))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
