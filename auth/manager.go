// Package auth owns the login/logout lifecycle. The Manager is created once
// at startup, lives for the process lifetime, and is passed explicitly to
// everything that needs it; there is no package-level session state.
package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	apperrors "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/session"
)

const defaultLoginTimeout = 10 * time.Second

// TokenClient is the slice of the request pipeline the manager needs: the
// credential-submitting token call.
type TokenClient interface {
	Token(ctx context.Context, username, password string) (*oauth2.Token, error)
}

// Subscriber is notified with the derived authenticated state whenever a
// lifecycle transition completes. Notifications run on the caller's
// goroutine; subscribers must not block.
type Subscriber func(authenticated bool)

// User is the identity and token metadata of the authenticated operator.
type User struct {
	Username  string
	TokenType string
	LoginTime time.Time
	ExpiresAt *time.Time
}

// Manager drives the two-state session machine (anonymous, authenticated).
// The credential store is the single source of truth: authenticated state is
// derived from it on every read and never cached, so a session cleared
// behind the manager's back (a 401 in the pipeline) cannot leave a stale
// "logged in" answer here.
type Manager struct {
	store        session.Store
	tokens       TokenClient
	loginTimeout time.Duration
	nowTime      func() time.Time
	logger       zerolog.Logger

	lock        sync.Mutex
	subscribers []Subscriber
}

// Option customizes the Manager.
type Option func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithLoginTimeout bounds how long a login call may wait for the backend.
func WithLoginTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.loginTimeout = d
		}
	}
}

// WithLogger sets the manager logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over the given store and token client.
func NewManager(store session.Store, tokens TokenClient, options ...Option) *Manager {
	m := &Manager{
		store:        store,
		tokens:       tokens,
		loginTimeout: defaultLoginTimeout,
		nowTime:      time.Now,
		logger:       zerolog.Nop(),
	}
	for _, option := range options {
		option(m)
	}
	m.logger = m.logger.With().Str("component", "auth").Logger()
	return m
}

// Login submits credentials to the backend and, on success, persists the
// resulting session and notifies subscribers. On failure the store is left
// exactly as it was: a failed re-login does not log the operator out.
func (m *Manager) Login(ctx context.Context, username, password string) (*session.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidCredentials, "username and password are required")
	}

	ctx, cancel := context.WithTimeout(ctx, m.loginTimeout)
	defer cancel()

	token, err := m.tokens.Token(ctx, username, password)
	if err != nil {
		m.logger.Info().Err(err).Str("username", username).Msg("login failed")
		return nil, err
	}

	newSession := &session.Session{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Username:    username,
		LoginTime:   m.nowTime(),
	}
	if err := m.store.Save(newSession); err != nil {
		return nil, apperrors.Wrapf(err, "persist session")
	}

	m.logger.Info().Str("username", username).Msg("logged in")
	m.notify()
	return newSession, nil
}

// Logout clears the session and notifies subscribers. Safe to call while
// already anonymous; the only effect is the notification that drives
// navigation back to the login view.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return apperrors.Wrapf(err, "clear session")
	}
	m.logger.Info().Msg("logged out")
	m.notify()
	return nil
}

// IsAuthenticated derives the auth state from the store.
func (m *Manager) IsAuthenticated() bool {
	current, err := m.store.Read()
	if err != nil {
		m.logger.Warn().Err(err).Msg("credential store read failed, treating as anonymous")
		return false
	}
	return current.Valid()
}

// CurrentUser returns the authenticated operator's identity and token
// metadata, or false when anonymous.
func (m *Manager) CurrentUser() (User, bool) {
	current, err := m.store.Read()
	if err != nil || !current.Valid() {
		return User{}, false
	}
	user := User{
		Username:  current.Username,
		TokenType: current.TokenType,
		LoginTime: current.LoginTime,
	}
	if expiry, ok := current.ExpiresAt(); ok {
		user.ExpiresAt = &expiry
	}
	return user, true
}

// Subscribe registers a state-change subscriber. Subscribers are never
// removed; the manager and its consumers share the process lifetime.
func (m *Manager) Subscribe(subscriber func(authenticated bool)) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.subscribers = append(m.subscribers, subscriber)
}

func (m *Manager) notify() {
	authenticated := m.IsAuthenticated()

	m.lock.Lock()
	subscribers := make([]Subscriber, len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.lock.Unlock()

	for _, subscriber := range subscribers {
		subscriber(authenticated)
	}
}
