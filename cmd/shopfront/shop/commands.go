package shop

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"shopfront/internal/api"
	"shopfront/internal/query"
)

// Cache lifetimes. Catalog data is shared and changes rarely; listings are
// keyed by their full filter query so every filter change is its own entry.
const (
	categoriesTTL = 5 * time.Minute
	featuredTTL   = time.Minute
	listingTTL    = 30 * time.Second
	detailTTL     = 30 * time.Second
)

func (m Model) fetchCategories() tea.Cmd {
	client, cache := m.deps.Client, m.deps.Cache
	return func() tea.Msg {
		cats, err := query.Fetch(context.Background(), cache, "categories", categoriesTTL,
			func(ctx context.Context) ([]api.Category, error) {
				return client.Categories(ctx)
			})
		return categoriesMsg{categories: cats, err: err}
	}
}

func (m Model) fetchFeatured() tea.Cmd {
	client, cache := m.deps.Client, m.deps.Cache
	return func() tea.Msg {
		products, err := query.Fetch(context.Background(), cache, "products:featured", featuredTTL,
			func(ctx context.Context) ([]api.Product, error) {
				return client.FeaturedProducts(ctx, 8)
			})
		return featuredMsg{products: products, err: err}
	}
}

func (m Model) fetchListing() tea.Cmd {
	client, cache := m.deps.Client, m.deps.Cache
	filters := m.filters()
	key := "products:list:" + filters.Query().Encode()
	return func() tea.Msg {
		page, err := query.Fetch(context.Background(), cache, key, listingTTL,
			func(ctx context.Context) (api.ProductPage, error) {
				return client.Products(ctx, filters)
			})
		return listingMsg{key: key, page: page, err: err}
	}
}

func (m Model) fetchDetail(slug string) tea.Cmd {
	client, cache := m.deps.Client, m.deps.Cache
	return func() tea.Msg {
		product, err := query.Fetch(context.Background(), cache, "products:detail:"+slug, detailTTL,
			func(ctx context.Context) (api.Product, error) {
				return client.Product(ctx, slug)
			})
		if err != nil {
			return detailMsg{err: err}
		}
		desc := product.Description
		if desc != "" {
			if rendered, rerr := glamour.Render(desc, "dark"); rerr == nil {
				desc = rendered
			}
		}
		return detailMsg{product: product, desc: desc}
	}
}

func (m Model) fetchReviews(slug string, page int) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		// Reviews bypass the cache: a just-posted review must show up.
		rp, err := client.ProductReviews(context.Background(), slug, page, 10)
		return reviewsMsg{page: rp, err: err}
	}
}

func (m Model) fetchCategory(slug string, page int) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		data, err := client.CategoryProducts(context.Background(), slug, page, 12)
		return categoryMsg{data: data, err: err}
	}
}

func (m Model) fetchOrders() tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		orders, err := client.Orders(context.Background())
		return ordersMsg{orders: orders, err: err}
	}
}

func (m Model) submitLogin(email, password string) tea.Cmd {
	store := m.deps.Auth
	return func() tea.Msg {
		err := store.Login(context.Background(), api.LoginForm{Email: email, Password: password})
		return authDoneMsg{err: err}
	}
}

func (m Model) submitRegister(form api.RegisterForm) tea.Cmd {
	store := m.deps.Auth
	return func() tea.Msg {
		err := store.Register(context.Background(), form)
		return authDoneMsg{err: err}
	}
}

func (m Model) submitProfile(form api.ProfileForm) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		user, err := client.UpdateProfile(context.Background(), form)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m Model) submitPasswordChange(form api.ChangePasswordForm) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		err := client.ChangePassword(context.Background(), form)
		return passwordChangedMsg{err: err}
	}
}

func (m Model) submitReview(slug string, form api.ReviewForm) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		_, err := client.CreateReview(context.Background(), slug, form)
		return reviewPostedMsg{err: err}
	}
}
