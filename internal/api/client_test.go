package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, RateLimit: 1000, RateBurst: 100, MaxRetries: 2})
}

func TestListProducts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/products" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"products":[
			{"id":1,"title":"Essence Mascara","price":9.99,"category":"beauty","stock":5,"thumbnail":"https://cdn/1.png"},
			{"id":"abc","title":"Other"}
		],"total":2}`))
	})

	products, err := client.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(products))
	}
	if products[0].ID != "1" {
		t.Errorf("Expected numeric id to decode as \"1\", got %q", products[0].ID)
	}
	if products[1].ID != "abc" {
		t.Errorf("Expected string id \"abc\", got %q", products[1].ID)
	}
	if products[0].Thumbnail != "https://cdn/1.png" {
		t.Errorf("Unexpected thumbnail %q", products[0].Thumbnail)
	}
}

func TestAddProductSendsServiceShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/products/add" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, ok := body["id"]; ok {
			t.Errorf("Expected no id in create body, got %v", body["id"])
		}
		if body["title"] != "Desk" || body["thumbnail"] != "https://img/desk.png" {
			t.Errorf("Unexpected body %v", body)
		}
		w.Write([]byte(`{"id":195,"title":"Desk"}`))
	})

	created, err := client.AddProduct(context.Background(), Product{
		ID:        "ignored",
		Title:     "Desk",
		Thumbnail: "https://img/desk.png",
		Status:    "active",
	})
	if err != nil {
		t.Fatalf("AddProduct failed: %v", err)
	}
	if created.ID != "195" {
		t.Errorf("Expected id 195, got %q", created.ID)
	}
}

func TestUpdateAndDeletePaths(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"id":7,"isDeleted":true}`))
	})

	if _, err := client.UpdateProduct(context.Background(), "7", Product{Title: "x"}); err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if err := client.DeleteProduct(context.Background(), "7"); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}

	want := []string{"PUT /products/7", "DELETE /products/7"}
	if len(seen) != len(want) {
		t.Fatalf("Expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Request %d: expected %s, got %s", i, want[i], seen[i])
		}
	}
}

func TestLoginErrorMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	_, err := client.Login(context.Background(), Credentials{Username: "emilys", Password: "wrong"})
	if err == nil {
		t.Fatal("Expected login to fail")
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Expected *HTTPError, got %T", err)
	}
	if httpErr.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", httpErr.StatusCode)
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("Expected service message, got %q", err.Error())
	}
}

func TestLoginAccessToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Username != "emilys" || creds.Password != "emilyspass" {
			t.Errorf("Unexpected credentials %+v", creds)
		}
		w.Write([]byte(`{"id":1,"username":"emilys","firstName":"Emily","lastName":"Johnson","accessToken":"tok","role":"admin"}`))
	})

	user, err := client.Login(context.Background(), Credentials{Username: "emilys", Password: "emilyspass"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.SessionToken() != "tok" {
		t.Errorf("Expected accessToken fallback, got %q", user.SessionToken())
	}
	if user.ID != "1" {
		t.Errorf("Expected id 1, got %q", user.ID)
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"products":[]}`))
	})

	if _, err := client.ListProducts(context.Background()); err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("Expected 2 calls, got %d", calls.Load())
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.DeleteProduct(context.Background(), "404")
	if err == nil {
		t.Fatal("Expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("Expected a single call, got %d", calls.Load())
	}
	if err.Error() != "HTTP 404: Not Found" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
