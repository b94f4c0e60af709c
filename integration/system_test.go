//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestSystem_E2E_CartFlow(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	var products []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/products", nil, &products, 200)
	if len(products) == 0 {
		t.Fatalf("expected non-empty catalog")
	}

	uuid, _ := products[0]["uuid"].(string)
	if uuid == "" {
		t.Fatalf("product uuid missing: %#v", products[0])
	}
	minOrder := int(asFloat(products[0]["min_order_amount"]))
	if minOrder < 1 {
		minOrder = 1
	}

	// Start from a clean cart; earlier runs against a live instance may
	// have left lines behind.
	doJSON(t, http.MethodDelete, baseURL+"/cart", nil, nil, 204)

	var v map[string]any
	doJSON(t, http.MethodPost, baseURL+"/cart/items", map[string]any{
		"uuid":     uuid,
		"quantity": minOrder,
	}, &v, 201)

	if got := int(asFloat(v["total_items"])); got != 1 {
		t.Fatalf("total_items=%d want=1", got)
	}

	doJSON(t, http.MethodPost, baseURL+"/cart/items/"+uuid+"/increase", nil, &v, 200)
	doJSON(t, http.MethodPost, baseURL+"/cart/items/"+uuid+"/decrease", nil, &v, 200)

	var after []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/products", nil, &after, 200)
	if got := asFloat(after[0]["available_amount"]); got != asFloat(products[0]["available_amount"])-float64(minOrder) {
		t.Fatalf("available_amount=%v, want initial minus the reserved add", got)
	}

	doJSON(t, http.MethodDelete, baseURL+"/cart", nil, nil, 204)
	doJSON(t, http.MethodGet, baseURL+"/cart", nil, &v, 200)
	if got := int(asFloat(v["total_items"])); got != 0 {
		t.Fatalf("total_items=%d want=0 after clear", got)
	}
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
