package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopfront/internal/catalog"
	"shopfront/internal/notify"
)

func newTestClient(t *testing.T, handler http.Handler, cfg Config) (*Client, *notify.Recorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rec := notify.NewRecorder()
	cfg.BaseURL = srv.URL
	if cfg.Notifier == nil {
		cfg.Notifier = rec
	}
	return NewClient(cfg), rec
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":[]}`))
	})
	c, _ := newTestClient(t, handler, Config{
		Tokens: TokenFunc(func() string { return "tok-123" }),
	})

	if _, err := c.Categories(context.Background()); err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClientOmitsAuthorizationWhenLoggedOut(t *testing.T) {
	var sawHeader bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`{"success":true,"data":[]}`))
	})
	c, _ := newTestClient(t, handler, Config{})

	if _, err := c.Categories(context.Background()); err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	if sawHeader {
		t.Fatalf("anonymous request must not carry an Authorization header")
	}
}

func TestClientProductsQueryAndEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("category") != "books" || q.Get("page") != "2" || q.Get("limit") != "12" {
			t.Errorf("unexpected query %v", q)
		}
		if _, ok := q["search"]; ok {
			t.Errorf("empty search must not be sent")
		}
		w.Write([]byte(`{
			"success": true,
			"data": [{"id":"p1","name":"Go Book","slug":"go-book","price":25,"stock_quantity":4}],
			"pagination": {"page":2,"limit":12,"total":30,"pages":3,"hasNext":true,"hasPrev":true}
		}`))
	})
	c, _ := newTestClient(t, handler, Config{})

	filters := catalog.ParseFilters(nil)
	filters.Category = "books"
	filters.Page = 2

	page, err := c.Products(context.Background(), filters)
	if err != nil {
		t.Fatalf("products failed: %v", err)
	}
	if len(page.Products) != 1 || page.Products[0].Slug != "go-book" {
		t.Fatalf("unexpected products: %+v", page.Products)
	}
	if page.Pagination.Pages != 3 || !page.Pagination.HasNext {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
}

func TestClientUnauthorizedRunsHandler(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":{"message":"token expired","statusCode":401}}`))
	})

	var teardowns int
	c, rec := newTestClient(t, handler, Config{
		OnUnauthorized: func() { teardowns++ },
	})

	_, err := c.Profile(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if teardowns != 1 {
		t.Fatalf("expected one teardown, got %d", teardowns)
	}
	// Messaging for expired sessions belongs to the teardown handler.
	if entries := rec.Entries(); len(entries) != 0 {
		t.Fatalf("client must not notify on 401, got %v", entries)
	}
}

func TestClientErrorNotifications(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"forbidden", http.StatusForbidden, `{}`,
			"Access denied. You do not have permission to perform this action."},
		{"not found", http.StatusNotFound, `{}`, "Resource not found."},
		{"server error", http.StatusBadGateway, `{}`, "Server error. Please try again later."},
		{"backend message", http.StatusUnprocessableEntity,
			`{"success":false,"error":{"message":"rating must be 1-5","statusCode":422}}`,
			"rating must be 1-5"},
		{"opaque failure", http.StatusBadRequest, `not json`, "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			c, rec := newTestClient(t, handler, Config{})

			_, err := c.Product(context.Background(), "anything")
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if statusErr.Status != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, statusErr.Status)
			}
			last, ok := rec.Last()
			if !ok || last.Message != tt.message {
				t.Fatalf("expected notification %q, got %v", tt.message, last)
			}
			if last.Level != notify.LevelError {
				t.Fatalf("expected error-level notification")
			}
		})
	}
}

func TestClientLoginDecodesAuthResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{
			"success": true,
			"data": {
				"user": {"id":"u1","email":"a@b.c","first_name":"Ada","last_name":"L","role":"customer","is_active":true},
				"token": "tok-9",
				"expires_in": "24h"
			}
		}`))
	})
	c, _ := newTestClient(t, handler, Config{})

	resp, err := c.Login(context.Background(), LoginForm{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token != "tok-9" || resp.User.FirstName != "Ada" {
		t.Fatalf("unexpected auth response: %+v", resp)
	}
}

func TestClientEscapesSlug(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"success":true,"data":{}}`))
	})
	c, _ := newTestClient(t, handler, Config{})

	if _, err := c.Product(context.Background(), "odd/slug"); err != nil {
		t.Fatalf("product failed: %v", err)
	}
	if !strings.HasSuffix(gotPath, "/products/odd%2Fslug") {
		t.Fatalf("expected escaped slug in path, got %q", gotPath)
	}
}
