// Package ui provides the visual styling for the shopfront terminal client.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	Primary   = lipgloss.Color("#5A56E0") // indigo, brand primary
	Accent    = lipgloss.Color("#F2B705") // amber, sale/featured badges
	Success   = lipgloss.Color("#2FBF71")
	Error     = lipgloss.Color("#E5484D")
	Muted     = lipgloss.Color("#6C7086")
	Border    = lipgloss.Color("#3B3F51")
	Highlight = lipgloss.Color("#C9C7FF")
)

// Styles bundles the lipgloss styles used by the pages.
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Header     lipgloss.Style
	MutedText  lipgloss.Style
	Price      lipgloss.Style
	SalePrice  lipgloss.Style
	Badge      lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Panel      lipgloss.Style
	Overlay    lipgloss.Style
	ToastOK    lipgloss.Style
	ToastErr   lipgloss.Style
	ToastInfo  lipgloss.Style
	PageNum    lipgloss.Style
	PageCur    lipgloss.Style
	Help       lipgloss.Style
	Input      lipgloss.Style
	ErrorText  lipgloss.Style
}

// DefaultStyles returns the standard theme.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Subtitle:   lipgloss.NewStyle().Foreground(Highlight),
		Header:     lipgloss.NewStyle().Bold(true),
		MutedText:  lipgloss.NewStyle().Foreground(Muted),
		Price:      lipgloss.NewStyle().Bold(true),
		SalePrice:  lipgloss.NewStyle().Strikethrough(true).Foreground(Muted),
		Badge:      lipgloss.NewStyle().Foreground(lipgloss.Color("#1B1D2A")).Background(Accent).Padding(0, 1),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(Primary).SetString("> "),
		Unselected: lipgloss.NewStyle().SetString("  "),
		Panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1),
		Overlay:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(Primary).Padding(1, 2),
		ToastOK:    lipgloss.NewStyle().Foreground(lipgloss.Color("#10121C")).Background(Success).Padding(0, 1),
		ToastErr:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(Error).Padding(0, 1),
		ToastInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#10121C")).Background(Highlight).Padding(0, 1),
		PageNum:    lipgloss.NewStyle().Foreground(Muted).Padding(0, 1),
		PageCur:    lipgloss.NewStyle().Bold(true).Foreground(Primary).Padding(0, 1),
		Help:       lipgloss.NewStyle().Foreground(Muted),
		Input:      lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(Border),
		ErrorText:  lipgloss.NewStyle().Foreground(Error),
	}
}

// FormatPrice renders a price in the store currency.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Stars renders an n-of-5 rating bar.
func Stars(rating float64) string {
	full := int(rating)
	if full > 5 {
		full = 5
	}
	out := ""
	for i := 0; i < 5; i++ {
		if i < full {
			out += "★"
		} else {
			out += "☆"
		}
	}
	return out
}
