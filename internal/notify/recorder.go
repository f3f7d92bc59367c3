package notify

import "sync"

// Recorder is a Notifier that keeps every notification in order. Test double.
type Recorder struct {
	mu      sync.Mutex
	entries []Notification
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Success implements Notifier.
func (r *Recorder) Success(msg string) { r.append(Notification{Level: LevelSuccess, Message: msg}) }

// Error implements Notifier.
func (r *Recorder) Error(msg string) { r.append(Notification{Level: LevelError, Message: msg}) }

// Info implements Notifier.
func (r *Recorder) Info(msg string) { r.append(Notification{Level: LevelInfo, Message: msg}) }

func (r *Recorder) append(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, n)
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.entries))
	copy(out, r.entries)
	return out
}

// Last returns the most recent notification, or false if none were recorded.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Notification{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
