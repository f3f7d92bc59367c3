// Package notify is the toast layer: stores and the API client report
// user-facing outcomes here, and the TUI drains them into transient toasts.
// Nothing in this package blocks; dropping a notification is acceptable,
// losing a store mutation is not.
package notify

// Level classifies a notification for styling.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
	LevelInfo
)

// Notification is a single user-facing message.
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives user-facing notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Func adapts a plain function to the Notifier interface.
type Func func(Notification)

// Success implements Notifier.
func (f Func) Success(msg string) { f(Notification{Level: LevelSuccess, Message: msg}) }

// Error implements Notifier.
func (f Func) Error(msg string) { f(Notification{Level: LevelError, Message: msg}) }

// Info implements Notifier.
func (f Func) Info(msg string) { f(Notification{Level: LevelInfo, Message: msg}) }

// Discard swallows every notification. Used where no UI is attached.
var Discard Notifier = Func(func(Notification) {})
