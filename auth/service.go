// Package auth owns the session lifecycle: credential validation, session
// creation and renewal through the simulated backend, persistence to a durable
// slot, and change notification for the monitor and the views.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	apperrors "github.com/findash/findash/internal/errors"
	"github.com/findash/findash/mockapi"
	"github.com/findash/findash/users"
)

const (
	defaultSessionTTL = 5 * time.Minute
	minPasswordLength = 6
	loginPath         = "/api/auth/login"
)

// Credentials is an email/password pair supplied by the login view.
type Credentials struct {
	Email    string
	Password string
}

// Service validates credentials, obtains sessions from the mock backend and
// holds the single current session. It is the only writer of that state;
// readers observe changes through Subscribe.
type Service struct {
	backend *mockapi.API
	store   Store
	log     zerolog.Logger
	ttl     time.Duration
	nowTime func() time.Time
	tokenFn func() string

	mu        sync.RWMutex
	current   *Session
	observers map[int]func(*Session)
	nextObs   int
}

// Option defines a function type to modify the Service instance.
type Option func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Service) { s.nowTime = nowFunc }
}

// WithSessionTTL overrides the fixed session duration.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithTokenFunc overrides the renewal token generator.
func WithTokenFunc(fn func() string) Option {
	return func(s *Service) { s.tokenFn = fn }
}

// NewService initializes a Service with required dependencies.
func NewService(backend *mockapi.API, store Store, options ...Option) (*Service, error) {
	if backend == nil {
		return nil, errors.New("[NewService] backend is required")
	}
	if store == nil {
		return nil, errors.New("[NewService] store is required")
	}

	s := &Service{
		backend:   backend,
		store:     store,
		log:       zerolog.Nop(),
		ttl:       defaultSessionTTL,
		nowTime:   time.Now,
		tokenFn:   func() string { return "mock-jwt-token-" + uuid.NewString() },
		observers: make(map[int]func(*Session)),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Subscribe registers a callback invoked on every session change with the new
// value (nil on clear). The returned function removes the subscription.
func (s *Service) Subscribe(fn func(*Session)) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// setCurrent installs the session and notifies observers with a copy.
func (s *Service) setCurrent(session *Session) {
	s.mu.Lock()
	s.current = session
	obs := make([]func(*Session), 0, len(s.observers))
	for _, fn := range s.observers {
		obs = append(obs, fn)
	}
	s.mu.Unlock()

	for _, fn := range obs {
		fn(copySession(session))
	}
}

func copySession(session *Session) *Session {
	if session == nil {
		return nil
	}
	c := *session
	return &c
}

// Authenticate validates the credentials, logs in through the backend and
// installs the resulting session with the configured fixed duration.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (*Session, error) {
	if len(creds.Password) < minPasswordLength {
		return nil, ErrShortPassword
	}

	resp, err := s.backend.Post(loginPath, mockapi.Credentials{Email: creds.Email, Password: creds.Password})
	if err != nil {
		if apperrors.KindOf(err) != "" {
			return nil, err
		}
		return nil, apperrors.Authentication(err.Error()).WithCause(err)
	}

	env, err := mockapi.Data[mockapi.LoginSession](resp)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Authenticate] login envelope")
	}

	session := &Session{
		User:      env.User,
		Token:     env.Token,
		ExpiresAt: s.nowTime().Add(s.ttl),
	}
	s.setCurrent(session)
	s.persist(ctx, session)
	s.log.Info().Str("email", session.User.Email).Time("expiresAt", session.ExpiresAt).Msg("session created")
	return copySession(session), nil
}

// Logout clears the in-memory and persisted session unconditionally. A failed
// persistence deletion is logged, never surfaced: the caller-visible path
// always succeeds and a second Logout is a harmless no-op.
func (s *Service) Logout(ctx context.Context) {
	s.setCurrent(nil)
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("clearing persisted session failed")
	}
	s.log.Info().Msg("session cleared")
}

// Refresh renews the current session with a new token and expiry. It returns
// nil when no session exists; an already expired session is cleared first.
func (s *Service) Refresh(ctx context.Context) *Session {
	s.mu.RLock()
	current := copySession(s.current)
	s.mu.RUnlock()

	if current == nil {
		return nil
	}
	now := s.nowTime()
	if !current.ExpiresAt.After(now) {
		s.setCurrent(nil)
		if err := s.store.Clear(ctx); err != nil {
			s.log.Warn().Err(err).Msg("clearing expired session failed")
		}
		return nil
	}
	return s.renew(ctx, current, now)
}

// Extend renews the current session like Refresh but fails when none exists.
func (s *Service) Extend(ctx context.Context) (*Session, error) {
	s.mu.RLock()
	current := copySession(s.current)
	s.mu.RUnlock()

	if current == nil {
		return nil, ErrNoSessionToExtend
	}
	return copySession(s.renew(ctx, current, s.nowTime())), nil
}

func (s *Service) renew(ctx context.Context, current *Session, now time.Time) *Session {
	renewed := &Session{
		User:      current.User,
		Token:     s.tokenFn(),
		ExpiresAt: now.Add(s.ttl),
	}
	s.setCurrent(renewed)
	s.persist(ctx, renewed)
	s.log.Info().Time("expiresAt", renewed.ExpiresAt).Msg("session renewed")
	return renewed
}

func (s *Service) persist(ctx context.Context, session *Session) {
	payload, err := session.encode()
	if err != nil {
		s.log.Warn().Err(err).Msg("encoding session failed")
		return
	}
	if err := s.store.Save(ctx, payload); err != nil {
		s.log.Warn().Err(err).Msg("persisting session failed")
	}
}

// RestoreFromStorage reads the persisted session on startup. Corrupt or
// expired entries are discarded and wiped; malformed data never surfaces to
// the caller, it simply results in no session.
func (s *Service) RestoreFromStorage(ctx context.Context) {
	payload, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("loading persisted session failed")
		return
	}
	if payload == nil {
		return
	}

	session, err := decodeSession(payload)
	if err != nil {
		corrupt := apperrors.ErrCorruptStorage.WithCause(err)
		s.log.Warn().Err(corrupt).Msg("discarding corrupt persisted session")
		s.wipe(ctx)
		return
	}
	if !session.ExpiresAt.After(s.nowTime()) {
		s.log.Info().Msg("discarding expired persisted session")
		s.wipe(ctx)
		return
	}

	s.setCurrent(session)
	s.log.Info().Str("email", session.User.Email).Msg("session restored")
}

func (s *Service) wipe(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("wiping session slot failed")
	}
}

// Current returns a copy of the current session, nil when none exists.
func (s *Service) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.current)
}

// CurrentUser returns the session's user, nil when unauthenticated.
func (s *Service) CurrentUser() *users.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := s.current.User
	return &u
}

// IsAuthenticated reports whether a session exists and has not expired.
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Authenticated(s.nowTime())
}

// TimeRemainingSeconds returns the whole seconds until expiry, never negative.
func (s *Service) TimeRemainingSeconds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return 0
	}
	remaining := s.current.ExpiresAt.Sub(s.nowTime())
	if remaining < 0 {
		return 0
	}
	return int(remaining / time.Second)
}

// IsExpiringSoon reports whether the session expires within warningMinutes
// but has not yet expired.
func (s *Service) IsExpiringSoon(warningMinutes int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return false
	}
	now := s.nowTime()
	warningTime := now.Add(time.Duration(warningMinutes) * time.Minute)
	return !s.current.ExpiresAt.After(warningTime) && s.current.ExpiresAt.After(now)
}
