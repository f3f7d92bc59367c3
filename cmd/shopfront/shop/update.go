package shop

import (
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"shopfront/internal/catalog"
)

// Update is the event loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ToastMsg:
		return m, m.pushToast(msg.N)

	case toastExpiredMsg:
		m.dropToast(msg.id)
		return m, nil

	case ForcedLogoutMsg:
		m.navigate(PageLogin)
		m.form = newLoginForm()
		return m, nil

	case categoriesMsg:
		if msg.err == nil {
			m.categories = msg.categories
		}
		return m, nil

	case featuredMsg:
		m.loading = false
		if msg.err == nil {
			m.featured = msg.products
			if m.homeCursor >= len(m.featured) {
				m.homeCursor = 0
			}
		}
		return m, nil

	case listingMsg:
		m.loading = false
		if msg.err != nil {
			return m, nil
		}
		m.listing = msg.page
		if m.listCursor >= len(m.listing.Products) {
			m.listCursor = 0
		}
		return m, nil

	case detailMsg:
		m.loading = false
		if msg.err != nil {
			return m, nil
		}
		m.detail = msg.product
		m.detailDesc = msg.desc
		return m, nil

	case reviewsMsg:
		if msg.err == nil {
			m.reviews = msg.page
		}
		return m, nil

	case categoryMsg:
		m.loading = false
		if msg.err != nil {
			return m, nil
		}
		m.category = msg.data
		if m.catCursor >= len(m.category.Products) {
			m.catCursor = 0
		}
		return m, nil

	case ordersMsg:
		m.loading = false
		if msg.err == nil {
			m.orders = msg.orders
		}
		return m, nil

	case authDoneMsg:
		m.loading = false
		if msg.err != nil {
			// The store left us logged out; the page shows the failure.
			m.errText = "Sign-in failed. Check your details and try again."
			return m, nil
		}
		m.form = nil
		m.navigate(PageHome)
		return m, tea.Batch(m.fetchFeatured(), m.fetchCategories())

	case profileSavedMsg:
		m.loading = false
		if msg.err != nil {
			return m, nil
		}
		m.deps.Auth.UpdateUser(msg.user)
		m.form = nil
		return m, m.pushToast(toastSuccess("Profile updated"))

	case passwordChangedMsg:
		m.loading = false
		if msg.err != nil {
			return m, nil
		}
		m.form = nil
		return m, m.pushToast(toastSuccess("Password changed"))

	case reviewPostedMsg:
		m.loading = false
		if msg.err != nil {
			return m, nil
		}
		slug := m.reviewingFrom
		m.reviewingFrom = ""
		m.form = nil
		m.reviewsPage = 1
		// The new review changes the product's rating summary.
		m.deps.Cache.Invalidate("products:detail:" + slug)
		return m, tea.Batch(
			m.pushToast(toastSuccess("Review submitted")),
			m.fetchReviews(slug, 1),
			m.fetchDetail(slug),
		)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search input swallows everything except its terminators.
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			m.queryState = catalog.Update(m.queryState, map[string]string{
				"search": m.searchInput.Value(),
			})
			m.listCursor = 0
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetchListing())
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	// An open form gets the keys next.
	if m.form != nil {
		return m.handleFormKey(msg)
	}

	// The cart overlay intercepts keys while visible.
	if m.deps.Cart.IsOpen() {
		return m.handleCartKey(msg)
	}

	// Global keys.
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "c":
		m.deps.Cart.ToggleCart()
		m.cartCursor = 0
		return m, nil
	case "g":
		m.navigate(PageHome)
		return m, tea.Batch(m.fetchFeatured(), m.fetchCategories())
	case "b":
		m.navigate(PageProducts)
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchListing(), m.fetchCategories())
	case "o":
		page, toastCmd := m.requireAuth(PageOrders)
		m.navigate(page)
		if page == PageLogin {
			m.form = newLoginForm()
			return m, toastCmd
		}
		m.loading = true
		return m, tea.Batch(toastCmd, m.spinner.Tick, m.fetchOrders())
	case "u":
		page, toastCmd := m.requireAuth(PageProfile)
		m.navigate(page)
		if page == PageLogin {
			m.form = newLoginForm()
		}
		return m, toastCmd
	case "l":
		if m.deps.Auth.IsAuthenticated() {
			m.deps.Auth.Logout()
			return m, nil
		}
		m.navigate(PageLogin)
		m.form = newLoginForm()
		return m, nil
	}

	switch m.page {
	case PageHome:
		return m.handleHomeKey(msg)
	case PageProducts:
		return m.handleProductsKey(msg)
	case PageDetail:
		return m.handleDetailKey(msg)
	case PageCategory:
		return m.handleCategoryKey(msg)
	case PageOrders, PageCheckout, PageProfile:
		if msg.String() == "esc" {
			m.navigate(PageHome)
			return m, nil
		}
		if m.page == PageProfile {
			return m.handleProfileKey(msg)
		}
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.errText = ""
		if m.page == PageLogin || m.page == PageRegister {
			m.navigate(PageHome)
		}
		return m, nil
	case "tab", "down":
		m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form.prev()
		return m, nil
	case "ctrl+r":
		// Switch between login and register.
		if m.page == PageLogin {
			m.navigate(PageRegister)
			m.form = newRegisterForm()
		} else if m.page == PageRegister {
			m.navigate(PageLogin)
			m.form = newLoginForm()
		}
		return m, nil
	case "enter":
		if !m.form.onLastField() {
			m.form.next()
			return m, nil
		}
		cmd, errText := m.form.submit(&m)
		if cmd == nil {
			m.errText = errText
			return m, nil
		}
		m.errText = ""
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, cmd)
	}
	return m, m.form.update(msg)
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.deps.Cart.Items()
	switch msg.String() {
	case "esc", "c":
		m.deps.Cart.CloseCart()
		return m, nil
	case "j", "down":
		if m.cartCursor < len(items)-1 {
			m.cartCursor++
		}
		return m, nil
	case "k", "up":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
		return m, nil
	case "+":
		if m.cartCursor < len(items) {
			item := items[m.cartCursor]
			_ = m.deps.Cart.UpdateQuantity(item.ID, item.Quantity+1)
		}
		return m, nil
	case "-":
		if m.cartCursor < len(items) {
			item := items[m.cartCursor]
			_ = m.deps.Cart.UpdateQuantity(item.ID, item.Quantity-1)
			if m.cartCursor >= len(m.deps.Cart.Items()) && m.cartCursor > 0 {
				m.cartCursor--
			}
		}
		return m, nil
	case "x", "delete":
		if m.cartCursor < len(items) {
			m.deps.Cart.RemoveItem(items[m.cartCursor].ID)
			if m.cartCursor > 0 {
				m.cartCursor--
			}
		}
		return m, nil
	case "X":
		m.deps.Cart.ClearCart()
		m.cartCursor = 0
		return m, nil
	case "enter":
		if len(items) == 0 {
			return m, nil
		}
		m.deps.Cart.CloseCart()
		page, toastCmd := m.requireAuth(PageCheckout)
		m.navigate(page)
		if page == PageLogin {
			m.form = newLoginForm()
		}
		return m, toastCmd
	}
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.homeCursor < len(m.featured)-1 {
			m.homeCursor++
		}
	case "k", "up":
		if m.homeCursor > 0 {
			m.homeCursor--
		}
	case "enter":
		if m.homeCursor < len(m.featured) {
			return m.openDetail(m.featured[m.homeCursor].Slug)
		}
	case "a":
		if m.homeCursor < len(m.featured) {
			_ = m.deps.Cart.AddItem(m.featured[m.homeCursor], 1)
		}
	case "/":
		m.navigate(PageProducts)
		m.searching = true
		m.searchInput.Focus()
		return m, tea.Batch(m.fetchListing(), m.fetchCategories())
	default:
		// Digits open the n-th category.
		if idx, err := strconv.Atoi(msg.String()); err == nil {
			if idx >= 1 && idx <= len(m.categories) {
				return m.openCategory(m.categories[idx-1].Slug)
			}
		}
	}
	return m, nil
}

func (m Model) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filters := m.filters()
	switch msg.String() {
	case "esc":
		m.navigate(PageHome)
		return m, nil
	case "j", "down":
		if m.listCursor < len(m.listing.Products)-1 {
			m.listCursor++
		}
		return m, nil
	case "k", "up":
		if m.listCursor > 0 {
			m.listCursor--
		}
		return m, nil
	case "enter":
		if m.listCursor < len(m.listing.Products) {
			return m.openDetail(m.listing.Products[m.listCursor].Slug)
		}
		return m, nil
	case "a":
		if m.listCursor < len(m.listing.Products) {
			_ = m.deps.Cart.AddItem(m.listing.Products[m.listCursor], 1)
		}
		return m, nil
	case "/":
		m.searching = true
		m.searchInput.SetValue(filters.Search)
		m.searchInput.Focus()
		return m, nil
	case "s":
		// Cycle through the sort options.
		options := catalog.SortOptions()
		next := 0
		for i, opt := range options {
			if opt.Sort == filters.Sort && opt.Order == filters.Order {
				next = (i + 1) % len(options)
				break
			}
		}
		return m.applyFilterChange(map[string]string{
			"sort":  string(options[next].Sort),
			"order": string(options[next].Order),
		})
	case "f":
		if filters.Featured {
			return m.applyFilterChange(map[string]string{"featured": ""})
		}
		return m.applyFilterChange(map[string]string{"featured": "true"})
	case "F":
		m.queryState = catalog.Clear(m.queryState)
		m.listCursor = 0
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchListing())
	case "n", "right":
		if m.listing.Pagination.HasNext {
			return m.applyFilterChange(map[string]string{
				"page": strconv.Itoa(filters.Page + 1),
			})
		}
		return m, nil
	case "p", "left":
		if m.listing.Pagination.HasPrev {
			return m.applyFilterChange(map[string]string{
				"page": strconv.Itoa(filters.Page - 1),
			})
		}
		return m, nil
	default:
		// Digits select the n-th category as a filter; 0 clears it.
		if idx, err := strconv.Atoi(msg.String()); err == nil {
			if idx == 0 {
				return m.applyFilterChange(map[string]string{"category": ""})
			}
			if idx >= 1 && idx <= len(m.categories) {
				return m.applyFilterChange(map[string]string{
					"category": m.categories[idx-1].Slug,
				})
			}
		}
	}
	return m, nil
}

func (m Model) applyFilterChange(changes map[string]string) (tea.Model, tea.Cmd) {
	m.queryState = catalog.Update(m.queryState, changes)
	m.listCursor = 0
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.fetchListing())
}

func (m Model) openDetail(slug string) (tea.Model, tea.Cmd) {
	m.navigate(PageDetail)
	m.loading = true
	m.reviewsPage = 1
	return m, tea.Batch(m.spinner.Tick, m.fetchDetail(slug), m.fetchReviews(slug, 1))
}

func (m Model) openCategory(slug string) (tea.Model, tea.Cmd) {
	m.navigate(PageCategory)
	m.categorySlug = slug
	m.categoryPage = 1
	m.catCursor = 0
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.fetchCategory(slug, 1))
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.navigate(m.prevPage)
		return m, nil
	case "a":
		_ = m.deps.Cart.AddItem(m.detail, 1)
		return m, nil
	case "r":
		page, toastCmd := m.requireAuth(PageDetail)
		if page == PageLogin {
			m.navigate(page)
			m.form = newLoginForm()
			return m, toastCmd
		}
		m.reviewingFrom = m.detail.Slug
		m.form = newReviewForm()
		return m, nil
	case "n":
		if m.reviews.Pagination.HasNext {
			m.reviewsPage++
			return m, m.fetchReviews(m.detail.Slug, m.reviewsPage)
		}
		return m, nil
	case "p":
		if m.reviews.Pagination.HasPrev {
			m.reviewsPage--
			return m, m.fetchReviews(m.detail.Slug, m.reviewsPage)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.navigate(PageHome)
		return m, nil
	case "j", "down":
		if m.catCursor < len(m.category.Products)-1 {
			m.catCursor++
		}
		return m, nil
	case "k", "up":
		if m.catCursor > 0 {
			m.catCursor--
		}
		return m, nil
	case "enter":
		if m.catCursor < len(m.category.Products) {
			return m.openDetail(m.category.Products[m.catCursor].Slug)
		}
		return m, nil
	case "a":
		if m.catCursor < len(m.category.Products) {
			_ = m.deps.Cart.AddItem(m.category.Products[m.catCursor], 1)
		}
		return m, nil
	case "n", "right":
		if m.category.Pagination.HasNext {
			m.categoryPage++
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetchCategory(m.categorySlug, m.categoryPage))
		}
		return m, nil
	case "p", "left":
		if m.category.Pagination.HasPrev {
			m.categoryPage--
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetchCategory(m.categorySlug, m.categoryPage))
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e":
		if user, ok := m.deps.Auth.User(); ok {
			m.form = newProfileForm(user)
		}
		return m, nil
	case "w":
		m.form = newPasswordForm()
		return m, nil
	}
	return m, nil
}
