package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", 0, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", 0, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	client, err := NewHTTPClient("http://localhost:8080", 0, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", client.httpClient.Timeout)
	}
}

func TestHTTPClientProducts(t *testing.T) {
	var gotPath, gotCategory, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCategory = r.URL.Query().Get("categories")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"count":2,"products":[
			{"_id":"p1","name":"Lamp","price":"19.99","rating":4.5,"images":[{"image":"/img/lamp.png"},{"image":"/img/lamp2.png"}]},
			{"_id":"p2","name":"Desk","price":120,"rating":3,"images":[]}
		]}`)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL+"/shop", time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	products, err := client.Products(context.Background(), "popular")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/shop/api/v1/products" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotCategory != "popular" {
		t.Fatalf("expected category popular, got %q", gotCategory)
	}
	if gotAccept != "application/json" {
		t.Fatalf("expected json accept header, got %q", gotAccept)
	}
	if len(products) != 2 {
		t.Fatalf("expected two products, got %d", len(products))
	}
	first := products[0]
	if first.ID != "p1" || first.Name != "Lamp" || first.Rating != 4.5 {
		t.Fatalf("unexpected product %+v", first)
	}
	if !first.Price.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("unexpected price %s", first.Price)
	}
	if len(first.Images) != 2 || first.Images[0].URL != "/img/lamp.png" {
		t.Fatalf("unexpected images %+v", first.Images)
	}
	if !products[1].Price.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected numeric price to decode, got %s", products[1].Price)
	}
}

func TestHTTPClientProductsWithoutCategory(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"products":null}`)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	products, err := client.Products(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rawQuery != "" {
		t.Fatalf("expected no query, got %q", rawQuery)
	}
	if products == nil || len(products) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", products)
	}
}

func TestHTTPClientProductsErrors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"products":[`)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			client, err := NewHTTPClient(srv.URL, time.Second, testLogger())
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			if _, err := client.Products(context.Background(), "popular"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestHTTPClientProductsHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, err := NewHTTPClient(srv.URL, time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Products(ctx, "popular"); err == nil {
		t.Fatal("expected canceled request to fail")
	}
}
