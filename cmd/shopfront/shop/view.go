package shop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shopfront/cmd/shopfront/ui"
	"shopfront/internal/api"
	"shopfront/internal/catalog"
	"shopfront/internal/notify"
)

// View renders the active page plus any overlay and toasts.
func (m Model) View() string {
	var body string
	switch m.page {
	case PageHome:
		body = m.viewHome()
	case PageProducts:
		body = m.viewProducts()
	case PageDetail:
		body = m.viewDetail()
	case PageCategory:
		body = m.viewCategory()
	case PageLogin, PageRegister:
		body = m.viewForm()
	case PageProfile:
		body = m.viewProfile()
	case PageOrders:
		body = m.viewOrders()
	case PageCheckout:
		body = m.viewCheckout()
	}

	var sections []string
	sections = append(sections, m.viewHeader(), body)
	if m.deps.Cart.IsOpen() {
		sections = append(sections, m.viewCartOverlay())
	}
	if t := m.viewToasts(); t != "" {
		sections = append(sections, t)
	}
	sections = append(sections, m.viewFooter())
	return strings.Join(sections, "\n")
}

func (m Model) viewHeader() string {
	left := m.styles.Title.Render("⌂ shopfront")
	cartLabel := fmt.Sprintf("cart: %d items · %s",
		m.deps.Cart.TotalItems(), ui.FormatPrice(m.deps.Cart.TotalPrice()))
	session := "guest"
	if user, ok := m.deps.Auth.User(); ok {
		session = user.FirstName + " " + user.LastName
	}
	right := m.styles.MutedText.Render(cartLabel + " · " + session)
	return left + "  " + right
}

func (m Model) viewFooter() string {
	var help string
	switch {
	case m.searching:
		help = "enter apply · esc cancel"
	case m.form != nil:
		help = "tab next field · enter submit · esc cancel"
	case m.deps.Cart.IsOpen():
		help = "j/k move · +/- quantity · x remove · X clear · enter checkout · esc close"
	case m.page == PageProducts:
		help = "j/k move · enter view · a add · / search · s sort · f featured · 1-9 category · F clear · n/p page · c cart · q quit"
	case m.page == PageDetail:
		help = "a add to cart · r review · n/p reviews · esc back"
	case m.page == PageProfile:
		help = "e edit · w change password · esc back"
	default:
		help = "b browse · / search · 1-9 category · o orders · u profile · l login/logout · c cart · q quit"
	}
	return m.styles.Help.Render(help)
}

func (m Model) viewToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	var lines []string
	for _, t := range m.toasts {
		style := m.styles.ToastInfo
		switch t.n.Level {
		case notify.LevelSuccess:
			style = m.styles.ToastOK
		case notify.LevelError:
			style = m.styles.ToastErr
		}
		lines = append(lines, style.Render(t.n.Message))
	}
	return strings.Join(lines, "\n")
}

func (m Model) loadingLine() string {
	if !m.loading {
		return ""
	}
	return m.spinner.View() + " loading…"
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Featured products") + "\n")
	if line := m.loadingLine(); line != "" && len(m.featured) == 0 {
		b.WriteString(line + "\n")
	}
	for i, p := range m.featured {
		b.WriteString(m.productLine(p, i == m.homeCursor) + "\n")
	}
	if len(m.featured) == 0 && !m.loading {
		b.WriteString(m.styles.MutedText.Render("Nothing featured right now.") + "\n")
	}

	b.WriteString("\n" + m.styles.Header.Render("Categories") + "\n")
	for i, c := range m.categories {
		label := fmt.Sprintf("%d. %s", i+1, c.Name)
		if c.ProductCount > 0 {
			label += m.styles.MutedText.Render(fmt.Sprintf(" (%d)", c.ProductCount))
		}
		b.WriteString("  " + label + "\n")
	}
	return b.String()
}

func (m Model) productLine(p api.Product, selected bool) string {
	prefix := m.styles.Unselected.String()
	name := p.Name
	if selected {
		prefix = m.styles.Selected.String()
		name = m.styles.Subtitle.Render(name)
	}
	price := m.styles.Price.Render(ui.FormatPrice(p.Price))
	if p.OnSale() {
		price += " " + m.styles.SalePrice.Render(ui.FormatPrice(*p.ComparePrice)) +
			" " + m.styles.Badge.Render("SALE")
	}
	line := prefix + name + "  " + price
	if p.IsFeatured {
		line += " " + m.styles.Badge.Render("Featured")
	}
	if p.StockQuantity == 0 {
		line += " " + m.styles.ErrorText.Render("out of stock")
	}
	if p.ReviewCount > 0 {
		line += "  " + m.styles.MutedText.Render(
			fmt.Sprintf("%s (%d)", ui.Stars(p.AverageRating), p.ReviewCount))
	}
	return line
}

func (m Model) viewProducts() string {
	filters := m.filters()
	var b strings.Builder

	title := "All Products"
	if filters.Search != "" {
		title = fmt.Sprintf("Search results for %q", filters.Search)
	}
	b.WriteString(m.styles.Header.Render(title) + "\n")
	if m.listing.Pagination.Total > 0 {
		b.WriteString(m.styles.MutedText.Render(
			fmt.Sprintf("%d products found", m.listing.Pagination.Total)) + "\n")
	}

	if m.searching {
		b.WriteString(m.styles.Input.Render(m.searchInput.View()) + "\n")
	}
	b.WriteString(m.viewActiveFilters(filters) + "\n")

	if line := m.loadingLine(); line != "" {
		b.WriteString(line + "\n")
	} else if len(m.listing.Products) == 0 {
		b.WriteString(m.styles.MutedText.Render("No products found. Press F to clear filters.") + "\n")
	}
	for i, p := range m.listing.Products {
		b.WriteString(m.productLine(p, i == m.listCursor) + "\n")
	}

	if m.listing.Pagination.Pages > 1 {
		b.WriteString("\n" + m.viewPager(filters.Page, m.listing.Pagination.Pages) + "\n")
	}
	return b.String()
}

func (m Model) viewActiveFilters(filters catalog.Filters) string {
	var parts []string
	sortLabel := string(filters.Sort) + " " + string(filters.Order)
	for _, opt := range catalog.SortOptions() {
		if opt.Sort == filters.Sort && opt.Order == filters.Order {
			sortLabel = opt.Label
			break
		}
	}
	parts = append(parts, "sort: "+sortLabel)
	if filters.Category != "" {
		parts = append(parts, "category: "+filters.Category)
	}
	if filters.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("min: %s", ui.FormatPrice(*filters.MinPrice)))
	}
	if filters.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("max: %s", ui.FormatPrice(*filters.MaxPrice)))
	}
	if filters.Featured {
		parts = append(parts, "featured only")
	}
	return m.styles.MutedText.Render(strings.Join(parts, " · "))
}

func (m Model) viewPager(current, pages int) string {
	var cells []string
	for _, page := range catalog.PageWindow(current, pages) {
		if page == catalog.Ellipsis {
			cells = append(cells, m.styles.PageNum.Render("…"))
			continue
		}
		style := m.styles.PageNum
		if page == current {
			style = m.styles.PageCur
		}
		cells = append(cells, style.Render(fmt.Sprintf("%d", page)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) viewDetail() string {
	var b strings.Builder
	if line := m.loadingLine(); line != "" {
		return line
	}
	p := m.detail
	b.WriteString(m.styles.Header.Render(p.Name) + "\n")
	if p.CategoryName != "" {
		b.WriteString(m.styles.MutedText.Render(p.CategoryName) + "\n")
	}
	price := m.styles.Price.Render(ui.FormatPrice(p.Price))
	if p.OnSale() {
		price += "  " + m.styles.SalePrice.Render(ui.FormatPrice(*p.ComparePrice))
	}
	b.WriteString(price + "\n")
	if p.StockQuantity == 0 {
		b.WriteString(m.styles.ErrorText.Render("Out of stock") + "\n")
	} else {
		b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("%d in stock", p.StockQuantity)) + "\n")
	}
	if m.detailDesc != "" {
		b.WriteString(m.detailDesc + "\n")
	}

	b.WriteString("\n" + m.styles.Header.Render("Reviews") + "\n")
	if len(m.reviews.Reviews) == 0 {
		b.WriteString(m.styles.MutedText.Render("No reviews yet.") + "\n")
	}
	for _, r := range m.reviews.Reviews {
		author := strings.TrimSpace(r.FirstName + " " + r.LastName)
		if author == "" {
			author = "anonymous"
		}
		head := fmt.Sprintf("%s %s", ui.Stars(float64(r.Rating)), author)
		if r.IsVerifiedPurchase {
			head += " " + m.styles.Badge.Render("verified")
		}
		b.WriteString(head + "\n")
		if r.Title != "" {
			b.WriteString("  " + m.styles.Subtitle.Render(r.Title) + "\n")
		}
		if r.Comment != "" {
			b.WriteString("  " + r.Comment + "\n")
		}
	}
	if m.reviews.Pagination.Pages > 1 {
		b.WriteString(m.viewPager(m.reviewsPage, m.reviews.Pagination.Pages) + "\n")
	}
	if m.form != nil {
		b.WriteString("\n" + m.viewFormBody())
	}
	return b.String()
}

func (m Model) viewCategory() string {
	var b strings.Builder
	if line := m.loadingLine(); line != "" {
		return line
	}
	b.WriteString(m.styles.Header.Render(m.category.Category.Name) + "\n")
	if m.category.Category.Description != "" {
		b.WriteString(m.styles.MutedText.Render(m.category.Category.Description) + "\n")
	}
	for i, p := range m.category.Products {
		b.WriteString(m.productLine(p, i == m.catCursor) + "\n")
	}
	if len(m.category.Products) == 0 {
		b.WriteString(m.styles.MutedText.Render("No products in this category.") + "\n")
	}
	if m.category.Pagination.Pages > 1 {
		b.WriteString("\n" + m.viewPager(m.categoryPage, m.category.Pagination.Pages) + "\n")
	}
	return b.String()
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	return m.viewFormBody()
}

func (m Model) viewFormBody() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.form.title) + "\n")
	if m.page == PageLogin {
		b.WriteString(m.styles.MutedText.Render("ctrl+r to create an account instead") + "\n")
	} else if m.page == PageRegister {
		b.WriteString(m.styles.MutedText.Render("ctrl+r to log in instead") + "\n")
	}
	for i, field := range m.form.fields {
		b.WriteString(m.styles.MutedText.Render(m.form.labels[i]) + "\n")
		b.WriteString(m.styles.Input.Render(field.View()) + "\n")
	}
	if m.errText != "" {
		b.WriteString(m.styles.ErrorText.Render(m.errText) + "\n")
	}
	if m.loading {
		b.WriteString(m.spinner.View() + " submitting…\n")
	}
	return m.styles.Panel.Render(b.String())
}

func (m Model) viewProfile() string {
	user, ok := m.deps.Auth.User()
	if !ok {
		return m.styles.MutedText.Render("Not logged in.")
	}
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Profile") + "\n")
	b.WriteString(fmt.Sprintf("Name:  %s %s\n", user.FirstName, user.LastName))
	b.WriteString(fmt.Sprintf("Email: %s\n", user.Email))
	if user.Phone != "" {
		b.WriteString(fmt.Sprintf("Phone: %s\n", user.Phone))
	}
	if m.form != nil {
		b.WriteString("\n" + m.viewFormBody())
	}
	return b.String()
}

func (m Model) viewOrders() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Your orders") + "\n")
	if line := m.loadingLine(); line != "" {
		return b.String() + line
	}
	if len(m.orders) == 0 {
		b.WriteString(m.styles.MutedText.Render("No orders yet.") + "\n")
		return b.String()
	}
	for _, o := range m.orders {
		b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
			o.OrderNumber,
			m.styles.Price.Render(ui.FormatPrice(o.TotalAmount)),
			o.Status,
			m.styles.MutedText.Render(o.CreatedAt)))
	}
	return b.String()
}

func (m Model) viewCheckout() string {
	// Checkout stays a stub: stock must be revalidated server-side before an
	// order is confirmed, and that flow is not part of this client.
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Checkout") + "\n")
	b.WriteString(fmt.Sprintf("%d items · subtotal %s\n",
		m.deps.Cart.TotalItems(), ui.FormatPrice(m.deps.Cart.TotalPrice())))
	b.WriteString(m.styles.MutedText.Render(
		"Checkout is not available in the terminal client yet.\n"+
			"Your cart is saved and will be waiting on the web store.") + "\n")
	return b.String()
}

func (m Model) viewCartOverlay() string {
	items := m.deps.Cart.Items()
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Your cart") + "\n")
	if len(items) == 0 {
		b.WriteString(m.styles.MutedText.Render("Your cart is empty.") + "\n")
	}
	for i, item := range items {
		prefix := m.styles.Unselected.String()
		name := item.Name
		if i == m.cartCursor {
			prefix = m.styles.Selected.String()
			name = m.styles.Subtitle.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s%s  ×%d  %s\n",
			prefix, name, item.Quantity,
			m.styles.Price.Render(ui.FormatPrice(item.Price*float64(item.Quantity)))))
	}
	b.WriteString("\n" + fmt.Sprintf("Total: %s (%d items)",
		m.styles.Price.Render(ui.FormatPrice(m.deps.Cart.TotalPrice())),
		m.deps.Cart.TotalItems()))
	return m.styles.Overlay.Render(b.String())
}
