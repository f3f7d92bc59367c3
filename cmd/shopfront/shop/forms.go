package shop

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shopfront/internal/api"
)

type formKind int

const (
	formLogin formKind = iota
	formRegister
	formProfile
	formPassword
	formReview
)

// form is a vertical stack of labeled text inputs with one focused field.
type form struct {
	kind       formKind
	title      string
	labels     []string
	fields     []textinput.Model
	focus      int
	submitting bool
}

func newField(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	if secret {
		ti.EchoMode = textinput.EchoPassword
	}
	return ti
}

func newForm(kind formKind, title string, labels []string, fields []textinput.Model) *form {
	f := &form{kind: kind, title: title, labels: labels, fields: fields}
	f.fields[0].Focus()
	return f
}

func newLoginForm() *form {
	return newForm(formLogin, "Log in",
		[]string{"Email", "Password"},
		[]textinput.Model{
			newField("you@example.com", false),
			newField("password", true),
		})
}

func newRegisterForm() *form {
	return newForm(formRegister, "Create account",
		[]string{"Email", "Password", "First name", "Last name", "Phone (optional)"},
		[]textinput.Model{
			newField("you@example.com", false),
			newField("password", true),
			newField("", false),
			newField("", false),
			newField("", false),
		})
}

func newProfileForm(user api.User) *form {
	first := newField("", false)
	first.SetValue(user.FirstName)
	last := newField("", false)
	last.SetValue(user.LastName)
	phone := newField("", false)
	phone.SetValue(user.Phone)
	return newForm(formProfile, "Edit profile",
		[]string{"First name", "Last name", "Phone"},
		[]textinput.Model{first, last, phone})
}

func newPasswordForm() *form {
	return newForm(formPassword, "Change password",
		[]string{"Current password", "New password", "Confirm new password"},
		[]textinput.Model{
			newField("", true),
			newField("", true),
			newField("", true),
		})
}

func newReviewForm() *form {
	return newForm(formReview, "Write a review",
		[]string{"Rating (1-5)", "Title", "Comment"},
		[]textinput.Model{
			newField("5", false),
			newField("", false),
			newField("", false),
		})
}

func (f *form) next() {
	f.fields[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.fields)
	f.fields[f.focus].Focus()
}

func (f *form) prev() {
	f.fields[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
	f.fields[f.focus].Focus()
}

func (f *form) onLastField() bool {
	return f.focus == len(f.fields)-1
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	return f.fields[i].Value()
}

// submit builds the matching command for the form's kind. Returns nil when
// the input is locally invalid; errText carries the reason.
func (f *form) submit(m *Model) (tea.Cmd, string) {
	switch f.kind {
	case formLogin:
		if f.value(0) == "" || f.value(1) == "" {
			return nil, "Email and password are required."
		}
		return m.submitLogin(f.value(0), f.value(1)), ""

	case formRegister:
		if f.value(0) == "" || f.value(1) == "" || f.value(2) == "" || f.value(3) == "" {
			return nil, "Email, password and name are required."
		}
		return m.submitRegister(api.RegisterForm{
			Email:     f.value(0),
			Password:  f.value(1),
			FirstName: f.value(2),
			LastName:  f.value(3),
			Phone:     f.value(4),
		}), ""

	case formProfile:
		if f.value(0) == "" || f.value(1) == "" {
			return nil, "First and last name are required."
		}
		return m.submitProfile(api.ProfileForm{
			FirstName: f.value(0),
			LastName:  f.value(1),
			Phone:     f.value(2),
		}), ""

	case formPassword:
		if f.value(1) != f.value(2) {
			return nil, "New passwords do not match."
		}
		if f.value(0) == "" || f.value(1) == "" {
			return nil, "All password fields are required."
		}
		return m.submitPasswordChange(api.ChangePasswordForm{
			CurrentPassword: f.value(0),
			NewPassword:     f.value(1),
			ConfirmPassword: f.value(2),
		}), ""

	case formReview:
		rating, err := strconv.Atoi(f.value(0))
		if err != nil || rating < 1 || rating > 5 {
			return nil, "Rating must be a number from 1 to 5."
		}
		return m.submitReview(m.reviewingFrom, api.ReviewForm{
			Rating:  rating,
			Title:   f.value(1),
			Comment: f.value(2),
		}), ""
	}
	return nil, ""
}
