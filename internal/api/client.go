// Package api is the REST client for the storefront backend. It attaches the
// bearer token to every request, decodes the backend's response envelope, and
// normalizes failures: unauthorized responses trigger the injected session
// teardown, everything else becomes a user-facing notification plus an error
// for the caller. No request is ever retried automatically.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopfront/internal/catalog"
	"shopfront/internal/logging"
	"shopfront/internal/notify"
)

// ErrUnauthorized is returned for any 401 response, after the session-expired
// handler has run.
var ErrUnauthorized = errors.New("api: unauthorized")

// StatusError carries the backend's error payload for a non-2xx response.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// Config configures a Client.
type Config struct {
	// BaseURL is the backend root, e.g. "https://shop.example.com/api".
	BaseURL string
	// Timeout bounds each request when the caller's context has no deadline.
	Timeout time.Duration
	// Tokens supplies the bearer token. Required; use a source returning ""
	// for anonymous sessions.
	Tokens TokenSource
	// Notifier receives the user-facing message for failed requests.
	Notifier notify.Notifier
	// OnUnauthorized runs once per 401 response, before the error returns.
	// The composition root points it at the auth store's forced logout.
	OnUnauthorized func()
}

// Client talks to the storefront backend.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	notifier       notify.Notifier
	onUnauthorized func()
	log            *zap.Logger
}

// DefaultTimeout matches the backend's slowest documented endpoint budget.
const DefaultTimeout = 30 * time.Second

// NewClient creates a client. Zero-value config fields get defaults.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Tokens == nil {
		cfg.Tokens = TokenFunc(func() string { return "" })
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Discard
	}
	return &Client{
		baseURL:        cfg.BaseURL,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		tokens:         cfg.Tokens,
		notifier:       cfg.Notifier,
		onUnauthorized: cfg.OnUnauthorized,
		log:            logging.Get(logging.CategoryAPI),
	}
}

// do performs a request and returns the raw response body for 2xx responses.
// Non-2xx responses are normalized: the session-expired handler fires on 401,
// the notifier gets a user-facing message for everything else.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("req", reqID), zap.String("method", method),
			zap.String("path", path), zap.Error(err))
		c.notifier.Error("Something went wrong")
		return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("request complete",
		zap.String("req", reqID), zap.String("method", method),
		zap.String("path", path), zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, c.normalizeError(resp.StatusCode, data)
}

// normalizeError maps a non-2xx response to an error, emitting the matching
// user-facing notification. 401 is special: the session teardown handler owns
// messaging and navigation, so no notification is emitted here.
func (c *Client) normalizeError(status int, body []byte) error {
	message := "Something went wrong"
	var env envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		message = env.Error.Message
	}

	switch {
	case status == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	case status == http.StatusForbidden:
		c.notifier.Error("Access denied. You do not have permission to perform this action.")
	case status == http.StatusNotFound:
		c.notifier.Error("Resource not found.")
	case status >= 500:
		c.notifier.Error("Server error. Please try again later.")
	default:
		c.notifier.Error(message)
	}
	return &StatusError{Status: status, Message: message}
}

// decode unmarshals a backend envelope and returns its data payload.
func decode[T any](data []byte) (T, *Pagination, error) {
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		var zero T
		return zero, nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return env.Data, env.Pagination, nil
}

// ---- Auth endpoints ----

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, form LoginForm) (AuthResponse, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/login", nil, form)
	if err != nil {
		return AuthResponse{}, err
	}
	out, _, err := decode[AuthResponse](data)
	return out, err
}

// Register creates an account and returns an authenticated session.
func (c *Client) Register(ctx context.Context, form RegisterForm) (AuthResponse, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/register", nil, form)
	if err != nil {
		return AuthResponse{}, err
	}
	out, _, err := decode[AuthResponse](data)
	return out, err
}

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (User, error) {
	data, err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil)
	if err != nil {
		return User{}, err
	}
	out, _, err := decode[User](data)
	return out, err
}

// UpdateProfile updates the current user's profile.
func (c *Client) UpdateProfile(ctx context.Context, form ProfileForm) (User, error) {
	data, err := c.do(ctx, http.MethodPut, "/auth/profile", nil, form)
	if err != nil {
		return User{}, err
	}
	out, _, err := decode[User](data)
	return out, err
}

// ChangePassword changes the current user's password.
func (c *Client) ChangePassword(ctx context.Context, form ChangePasswordForm) error {
	_, err := c.do(ctx, http.MethodPut, "/auth/change-password", nil, form)
	return err
}

// Logout notifies the backend that the session ended. Callers treat this as
// best-effort; the auth store never waits on it.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

// ---- Product endpoints ----

// Products fetches a filtered, paginated product listing.
func (c *Client) Products(ctx context.Context, filters catalog.Filters) (ProductPage, error) {
	data, err := c.do(ctx, http.MethodGet, "/products", filters.Query(), nil)
	if err != nil {
		return ProductPage{}, err
	}
	products, pagination, err := decode[[]Product](data)
	if err != nil {
		return ProductPage{}, err
	}
	page := ProductPage{Products: products}
	if pagination != nil {
		page.Pagination = *pagination
	}
	return page, nil
}

// Product fetches one product by slug.
func (c *Client) Product(ctx context.Context, slug string) (Product, error) {
	data, err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(slug), nil, nil)
	if err != nil {
		return Product{}, err
	}
	out, _, err := decode[Product](data)
	return out, err
}

// FeaturedProducts fetches up to limit featured products.
func (c *Client) FeaturedProducts(ctx context.Context, limit int) ([]Product, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	data, err := c.do(ctx, http.MethodGet, "/products/featured", q, nil)
	if err != nil {
		return nil, err
	}
	out, _, err := decode[[]Product](data)
	return out, err
}

// ProductReviews fetches a page of reviews for a product.
func (c *Client) ProductReviews(ctx context.Context, slug string, page, limit int) (ReviewPage, error) {
	q := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
	data, err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(slug)+"/reviews", q, nil)
	if err != nil {
		return ReviewPage{}, err
	}
	reviews, pagination, err := decode[[]Review](data)
	if err != nil {
		return ReviewPage{}, err
	}
	rp := ReviewPage{Reviews: reviews}
	if pagination != nil {
		rp.Pagination = *pagination
	}
	return rp, nil
}

// CreateReview submits a review for a product. Requires authentication.
func (c *Client) CreateReview(ctx context.Context, slug string, form ReviewForm) (Review, error) {
	data, err := c.do(ctx, http.MethodPost, "/products/"+url.PathEscape(slug)+"/reviews", nil, form)
	if err != nil {
		return Review{}, err
	}
	out, _, err := decode[Review](data)
	return out, err
}

// ---- Category endpoints ----

// Categories fetches all categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	data, err := c.do(ctx, http.MethodGet, "/categories", nil, nil)
	if err != nil {
		return nil, err
	}
	out, _, err := decode[[]Category](data)
	return out, err
}

// Category fetches one category by slug.
func (c *Client) Category(ctx context.Context, slug string) (Category, error) {
	data, err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(slug), nil, nil)
	if err != nil {
		return Category{}, err
	}
	out, _, err := decode[Category](data)
	return out, err
}

// CategoryProducts fetches a category together with a page of its products.
func (c *Client) CategoryProducts(ctx context.Context, slug string, page, limit int) (CategoryProducts, error) {
	q := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
	data, err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(slug)+"/products", q, nil)
	if err != nil {
		return CategoryProducts{}, err
	}
	out, pagination, err := decode[CategoryProducts](data)
	if err != nil {
		return CategoryProducts{}, err
	}
	if pagination != nil {
		out.Pagination = *pagination
	}
	return out, nil
}

// ---- Order endpoints ----

// Orders fetches the current user's orders. Requires authentication.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	data, err := c.do(ctx, http.MethodGet, "/orders", nil, nil)
	if err != nil {
		return nil, err
	}
	out, _, err := decode[[]Order](data)
	return out, err
}
