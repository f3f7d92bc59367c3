// Package shop is the interactive storefront TUI. The functionality is split
// across files:
//   - model.go: types, messages, Init
//   - update.go: the event loop
//   - commands.go: async backend fetches
//   - forms.go: login/register/profile/review input forms
//   - view.go: rendering
//
// All domain behavior lives in the internal packages; this package is the
// layout and event glue on top of the stores and the API client.
package shop

import (
	"net/url"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shopfront/cmd/shopfront/ui"
	"shopfront/internal/api"
	"shopfront/internal/auth"
	"shopfront/internal/cart"
	"shopfront/internal/catalog"
	"shopfront/internal/config"
	"shopfront/internal/notify"
	"shopfront/internal/query"
)

// Page identifies the active screen.
type Page int

const (
	PageHome Page = iota
	PageProducts
	PageDetail
	PageCategory
	PageLogin
	PageRegister
	PageProfile
	PageOrders
	PageCheckout
)

// toastDuration is how long a notification stays on screen.
const toastDuration = 4 * time.Second

// Deps is everything the TUI needs, assembled by the composition root.
type Deps struct {
	Config config.Config
	Client *api.Client
	Auth   *auth.Store
	Cart   *cart.Store
	Cache  *query.Cache
}

type toast struct {
	id int
	n  notify.Notification
}

// Model is the root bubbletea model.
type Model struct {
	deps   Deps
	styles ui.Styles

	page     Page
	prevPage Page
	width    int
	height   int
	spinner  spinner.Model
	loading  bool
	errText  string

	// Home page.
	featured   []api.Product
	categories []api.Category
	homeCursor int

	// Products listing. queryState is the URL-equivalent: the single source
	// of truth for the filter set, reparsed on every render.
	queryState  url.Values
	listing     api.ProductPage
	listCursor  int
	searching   bool
	searchInput textinput.Model

	// Category page.
	categorySlug string
	categoryPage int
	category     api.CategoryProducts
	catCursor    int

	// Product detail.
	detail        api.Product
	detailDesc    string
	reviews       api.ReviewPage
	reviewsPage   int
	reviewingFrom string // slug being reviewed while the form is open

	// Orders page.
	orders []api.Order

	// Cart overlay.
	cartCursor int

	// Active form, nil when no form is open.
	form *form

	toasts   []toast
	toastSeq int
}

// ---- Messages ----

// ToastMsg carries a notification into the UI. The composition root points
// the stores' notifier at the running program with this message.
type ToastMsg struct {
	N notify.Notification
}

// ForcedLogoutMsg navigates to the login page after a session teardown.
type ForcedLogoutMsg struct{}

type toastExpiredMsg struct{ id int }

type categoriesMsg struct {
	categories []api.Category
	err        error
}

type featuredMsg struct {
	products []api.Product
	err      error
}

type listingMsg struct {
	key  string
	page api.ProductPage
	err  error
}

type detailMsg struct {
	product api.Product
	desc    string
	err     error
}

type reviewsMsg struct {
	page api.ReviewPage
	err  error
}

type categoryMsg struct {
	data api.CategoryProducts
	err  error
}

type ordersMsg struct {
	orders []api.Order
	err    error
}

type authDoneMsg struct {
	err error
}

type profileSavedMsg struct {
	user api.User
	err  error
}

type passwordChangedMsg struct {
	err error
}

type reviewPostedMsg struct {
	err error
}

// New assembles the root model.
func New(deps Deps) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	search := textinput.New()
	search.Placeholder = "search products"
	search.CharLimit = 80

	return Model{
		deps:        deps,
		styles:      ui.DefaultStyles(),
		page:        PageHome,
		spinner:     sp,
		searchInput: search,
		queryState:  url.Values{},
	}
}

// Init starts the home page fetches.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchFeatured(), m.fetchCategories())
}

// filters reparses the current query state, exactly as a web page would
// reconstruct its filters from the URL on each render.
func (m Model) filters() catalog.Filters {
	return catalog.ParseFilters(m.queryState)
}

func (m *Model) pushToast(n notify.Notification) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toasts = append(m.toasts, toast{id: id, n: n})
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) dropToast(id int) {
	for i, to := range m.toasts {
		if to.id == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// navigate switches pages, remembering where we came from so auth flows can
// return.
func (m *Model) navigate(p Page) {
	if p != m.page {
		m.prevPage = m.page
		m.page = p
	}
	m.errText = ""
	m.form = nil
}

func toastSuccess(msg string) notify.Notification {
	return notify.Notification{Level: notify.LevelSuccess, Message: msg}
}

// requireAuth redirects to login when no session is active.
func (m *Model) requireAuth(p Page) (Page, tea.Cmd) {
	if m.deps.Auth.IsAuthenticated() {
		return p, nil
	}
	cmd := m.pushToast(notify.Notification{
		Level:   notify.LevelInfo,
		Message: "Please log in to continue.",
	})
	return PageLogin, cmd
}
