// Package auth holds the client session: current user, bearer token, and the
// authenticated flag, persisted as a single named record. Login and register
// go through the backend; logout is optimistic and unconditional locally,
// with the remote call fired as a best-effort side task whose failure is
// intentionally unobserved.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"shopfront/internal/api"
	"shopfront/internal/logging"
	"shopfront/internal/notify"
	"shopfront/internal/storage"
)

// recordName is the persisted session document name.
const recordName = "auth"

// Backend is the slice of the API client the auth store depends on.
type Backend interface {
	Login(ctx context.Context, form api.LoginForm) (api.AuthResponse, error)
	Register(ctx context.Context, form api.RegisterForm) (api.AuthResponse, error)
	Logout(ctx context.Context) error
}

// record is the persisted session shape. The user payload stays raw until
// CheckAuth validates it, so a corrupted user document can be detected and
// purged instead of failing the whole read.
type record struct {
	User            json.RawMessage `json:"user"`
	Token           string          `json:"token"`
	IsAuthenticated bool            `json:"isAuthenticated"`
}

// Store is the auth store.
type Store struct {
	mu            sync.Mutex
	user          *api.User
	token         string
	authenticated bool
	loading       bool

	backend  Backend
	storage  storage.Store
	notifier notify.Notifier
	log      *zap.Logger

	// onForcedLogout navigates the UI to the login page after a session
	// teardown triggered by an unauthorized response.
	onForcedLogout func()
}

// NewStore creates a logged-out auth store. Call CheckAuth to restore a
// persisted session.
func NewStore(backend Backend, st storage.Store, notifier notify.Notifier) *Store {
	return &Store{
		backend:  backend,
		storage:  st,
		notifier: notifier,
		log:      logging.Get(logging.CategoryAuth),
	}
}

// OnForcedLogout registers the navigation hook run after ForceLogout.
func (s *Store) OnForcedLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onForcedLogout = fn
}

// Login authenticates and persists the session. On failure the loading flag
// is cleared and the error propagates; the calling page presents it.
func (s *Store) Login(ctx context.Context, form api.LoginForm) error {
	s.setLoading(true)

	resp, err := s.backend.Login(ctx, form)
	if err != nil {
		s.setLoading(false)
		return err
	}

	s.establishSession(resp)
	s.notifier.Success("Login successful!")
	return nil
}

// Register creates an account and persists the resulting session.
func (s *Store) Register(ctx context.Context, form api.RegisterForm) error {
	s.setLoading(true)

	resp, err := s.backend.Register(ctx, form)
	if err != nil {
		s.setLoading(false)
		return err
	}

	s.establishSession(resp)
	s.notifier.Success("Registration successful!")
	return nil
}

func (s *Store) establishSession(resp api.AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := resp.User
	s.user = &user
	s.token = resp.Token
	s.authenticated = true
	s.loading = false
	s.persistLocked()
	s.log.Info("session established", zap.String("user", user.ID))
}

// Logout tears the session down locally and unconditionally, then fires the
// remote logout without waiting for it. Logout always succeeds locally.
func (s *Store) Logout() {
	s.mu.Lock()
	s.clearLocked()
	backend := s.backend
	s.mu.Unlock()

	go func() {
		// Best effort; a failed remote logout changes nothing locally.
		_ = backend.Logout(context.Background())
	}()

	s.notifier.Success("Logged out successfully!")
	s.log.Info("logged out")
}

// ForceLogout tears the session down after the API client saw an
// unauthorized response. No remote call is made: the token is already dead.
// Idempotent, so a burst of 401s from concurrent requests produces a single
// teardown and notification.
func (s *Store) ForceLogout() {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return
	}
	s.clearLocked()
	hook := s.onForcedLogout
	s.mu.Unlock()

	s.notifier.Error("Session expired. Please log in again.")
	s.log.Info("session expired, forced logout")
	if hook != nil {
		hook()
	}
}

func (s *Store) clearLocked() {
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.loading = false
	if err := s.storage.Delete(recordName); err != nil {
		s.log.Warn("failed to delete session record", zap.Error(err))
	}
}

// CheckAuth restores a previously persisted session at startup. A record
// whose user payload does not parse is purged and the store stays logged
// out. Token freshness is not verified here; an expired token surfaces on
// the first failing API call.
func (s *Store) CheckAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec record
	switch err := s.storage.Read(recordName, &rec); {
	case errors.Is(err, storage.ErrNotFound):
		return
	case err != nil:
		s.log.Warn("purging unreadable session record", zap.Error(err))
		if derr := s.storage.Delete(recordName); derr != nil {
			s.log.Warn("failed to purge session record", zap.Error(derr))
		}
		return
	}

	if rec.Token == "" || len(rec.User) == 0 {
		return
	}

	var user api.User
	if err := json.Unmarshal(rec.User, &user); err != nil {
		s.log.Warn("purging session record with invalid user payload", zap.Error(err))
		if derr := s.storage.Delete(recordName); derr != nil {
			s.log.Warn("failed to purge session record", zap.Error(derr))
		}
		return
	}

	s.user = &user
	s.token = rec.Token
	s.authenticated = true
	s.log.Info("session restored", zap.String("user", user.ID))
}

// UpdateUser overwrites the in-memory and persisted user record.
func (s *Store) UpdateUser(user api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
	s.persistLocked()
}

func (s *Store) persistLocked() {
	userJSON, err := json.Marshal(s.user)
	if err != nil {
		s.log.Warn("failed to marshal user for persistence", zap.Error(err))
		return
	}
	rec := record{
		User:            userJSON,
		Token:           s.token,
		IsAuthenticated: s.authenticated,
	}
	if err := s.storage.Write(recordName, rec); err != nil {
		s.log.Warn("failed to persist session", zap.Error(err))
	}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the current user, if authenticated.
func (s *Store) User() (api.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// IsLoading reports whether a login or register call is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
