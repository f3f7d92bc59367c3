package api

// Wire types for the storefront backend. Field names follow the backend's
// snake_case JSON exactly; optional fields the backend may omit are pointers
// only where the zero value is ambiguous.

// User is the authenticated customer record.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User      User   `json:"user"`
	Token     string `json:"token"`
	ExpiresIn string `json:"expires_in"`
}

// Product is a catalog entry.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Slug          string   `json:"slug"`
	Price         float64  `json:"price"`
	ComparePrice  *float64 `json:"compare_price,omitempty"`
	SKU           string   `json:"sku,omitempty"`
	StockQuantity int      `json:"stock_quantity"`
	CategoryID    string   `json:"category_id,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	Images        []string `json:"images"`
	IsActive      bool     `json:"is_active"`
	IsFeatured    bool     `json:"is_featured"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	CategoryName  string   `json:"category_name,omitempty"`
	ReviewCount   int      `json:"review_count,omitempty"`
	AverageRating float64  `json:"average_rating,omitempty"`
}

// OnSale reports whether the product carries a compare-at price above the
// current price.
func (p Product) OnSale() bool {
	return p.ComparePrice != nil && *p.ComparePrice > p.Price
}

// Category is a catalog category.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Slug         string `json:"slug"`
	ImageURL     string `json:"image_url,omitempty"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	ProductCount int    `json:"product_count,omitempty"`
}

// Review is a product review.
type Review struct {
	ID                 string `json:"id"`
	ProductID          string `json:"product_id"`
	UserID             string `json:"user_id"`
	Rating             int    `json:"rating"`
	Title              string `json:"title,omitempty"`
	Comment            string `json:"comment,omitempty"`
	IsVerifiedPurchase bool   `json:"is_verified_purchase"`
	IsApproved         bool   `json:"is_approved"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
	FirstName          string `json:"first_name,omitempty"`
	LastName           string `json:"last_name,omitempty"`
}

// Order is a past order summary shown on the orders page.
type Order struct {
	ID            string  `json:"id"`
	OrderNumber   string  `json:"order_number"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Subtotal      float64 `json:"subtotal"`
	TaxAmount     float64 `json:"tax_amount"`
	ShippingAmt   float64 `json:"shipping_amount"`
	DiscountAmt   float64 `json:"discount_amount"`
	TotalAmount   float64 `json:"total_amount"`
	Currency      string  `json:"currency"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// Pagination is the server-reported paging envelope.
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// LoginForm is the login request body.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterForm is the registration request body.
type RegisterForm struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// ProfileForm is the profile update request body.
type ProfileForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// ChangePasswordForm is the password change request body.
type ChangePasswordForm struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ReviewForm is the review submission request body.
type ReviewForm struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// envelope is the backend's standard response wrapper.
type envelope[T any] struct {
	Success    bool        `json:"success"`
	Data       T           `json:"data"`
	Message    string      `json:"message,omitempty"`
	Error      *apiError   `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type apiError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// ProductPage is a page of products plus its paging envelope.
type ProductPage struct {
	Products   []Product
	Pagination Pagination
}

// ReviewPage is a page of reviews plus its paging envelope.
type ReviewPage struct {
	Reviews    []Review
	Pagination Pagination
}

// CategoryProducts is the category landing payload: the category record and a
// page of its products.
type CategoryProducts struct {
	Category   Category  `json:"category"`
	Products   []Product `json:"products"`
	Pagination Pagination
}
