// Package monitor watches the authentication service once per second, derives
// a warning level from the time remaining and forces logout when the session
// runs out.
//
// The two-tier threshold with one-time dismissal per tier prevents nagging
// while still forcing attention once the session is about to die: dismissing a
// warning-level alert suppresses that level for the rest of the session, but
// critical alerts ignore dismissal and dismissing one ends the session.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/findash/findash/auth"
)

// Level is the severity of a session warning.
type Level string

const (
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

const (
	defaultInterval          = time.Second
	defaultWarningThreshold  = 120 // seconds remaining
	defaultCriticalThreshold = 60
)

const (
	warningMessage  = "Tu sesión está por expirar. ¿Deseas extenderla?"
	criticalMessage = "¡Sesión crítica! Serás desconectado automáticamente."
)

// Warning is the alert surfaced to the banner view. It is derived state,
// recomputed on every tick while a session is active.
type Warning struct {
	Level            Level
	Message          string
	SecondsRemaining int
	OfferExtend      bool
}

// Monitor polls the authentication service and drives the warning banner.
// Tick evaluations are strictly sequential: they all run on the monitor's
// own goroutine, and a logout triggered by expiry stops the loop before any
// further tick fires.
type Monitor struct {
	auth     *auth.Service
	navigate func() // sends the caller to the unauthenticated route
	log      zerolog.Logger

	interval          time.Duration
	warningThreshold  int
	criticalThreshold int

	mu               sync.Mutex
	current          *Warning
	dismissedWarning bool // dismissal memory; only the warning level is ever recorded
	observers        map[int]func(*Warning)
	nextObs          int
	running          bool
	stop             chan struct{}
	done             chan struct{}
}

// Option defines a function type to modify the Monitor instance.
type Option func(*Monitor)

// WithInterval overrides the tick interval (primarily for testing).
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) { m.interval = d }
}

// WithThresholds sets the warning and critical thresholds in seconds remaining.
func WithThresholds(warning, critical int) Option {
	return func(m *Monitor) {
		m.warningThreshold = warning
		m.criticalThreshold = critical
	}
}

// WithLogger sets the monitor logger.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Monitor) { m.log = log }
}

// New initializes a Monitor. navigate is invoked after every forced logout.
func New(authService *auth.Service, navigate func(), options ...Option) (*Monitor, error) {
	if authService == nil {
		return nil, errors.New("[monitor.New] auth service is required")
	}
	if navigate == nil {
		navigate = func() {}
	}

	m := &Monitor{
		auth:              authService,
		navigate:          navigate,
		log:               zerolog.Nop(),
		interval:          defaultInterval,
		warningThreshold:  defaultWarningThreshold,
		criticalThreshold: defaultCriticalThreshold,
		observers:         make(map[int]func(*Warning)),
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Subscribe registers a callback invoked whenever the surfaced warning
// changes (nil when the alert clears). Returns an unsubscribe function.
func (m *Monitor) Subscribe(fn func(*Warning)) func() {
	m.mu.Lock()
	id := m.nextObs
	m.nextObs++
	m.observers[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.observers, id)
		m.mu.Unlock()
	}
}

// Start launches the tick loop. Starting a running monitor is a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	stop, done := m.stop, m.done
	m.mu.Unlock()

	go m.run(stop, done)
}

func (m *Monitor) run(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Initial check before the first tick, like the view expects.
	if !m.CheckNow() {
		return
	}
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !m.CheckNow() {
				return
			}
		}
	}
}

// Stop tears down the tick loop synchronously: once it returns, no further
// evaluation will run.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stop)
	done := m.done
	m.mu.Unlock()

	<-done
}

// markStopped flips the running flag when the loop exits on its own
// (expiry-driven logout). Safe to call from the loop goroutine.
func (m *Monitor) markStopped() {
	m.mu.Lock()
	if m.running {
		m.running = false
		close(m.stop)
	}
	m.mu.Unlock()
}

// CheckNow runs one evaluation of the transition rule immediately. It returns
// false when monitoring must stop (session expired and logout was performed).
func (m *Monitor) CheckNow() bool {
	if !m.auth.IsAuthenticated() {
		// Idle reset: no alert, dismissal memory cleared.
		m.clearDismissal()
		m.setWarning(nil)
		return true
	}

	remaining := m.auth.TimeRemainingSeconds()

	switch {
	case remaining <= 0:
		m.setWarning(nil)
		m.clearDismissal()
		m.markStopped()
		m.log.Info().Msg("session expired, logging out")
		m.auth.Logout(context.Background())
		m.navigate()
		return false

	case remaining <= m.criticalThreshold:
		// Critical ignores dismissal memory.
		m.setWarning(&Warning{
			Level:            LevelCritical,
			Message:          criticalMessage,
			SecondsRemaining: remaining,
			OfferExtend:      true,
		})

	case remaining <= m.warningThreshold:
		if m.warningDismissed() {
			m.setWarning(nil)
		} else {
			m.setWarning(&Warning{
				Level:            LevelWarning,
				Message:          warningMessage,
				SecondsRemaining: remaining,
				OfferExtend:      true,
			})
		}

	default:
		m.setWarning(nil)
	}
	return true
}

// Dismiss handles an explicit dismissal of the current alert. Dismissing a
// warning records it in the dismissal memory and keeps monitoring; dismissing
// a critical alert ends the session.
func (m *Monitor) Dismiss() {
	m.mu.Lock()
	current := m.current
	m.mu.Unlock()
	if current == nil {
		return
	}

	switch current.Level {
	case LevelWarning:
		m.mu.Lock()
		m.dismissedWarning = true
		m.mu.Unlock()
		m.setWarning(nil)

	case LevelCritical:
		m.Stop()
		m.clearDismissal()
		m.setWarning(nil)
		m.log.Info().Msg("critical warning dismissed, logging out")
		m.auth.Logout(context.Background())
		m.navigate()
	}
}

// Extend renews the session and, on success, clears the current alert and the
// dismissal memory so a fresh session does not resurface a stale warning.
func (m *Monitor) Extend(ctx context.Context) error {
	if _, err := m.auth.Extend(ctx); err != nil {
		return errors.Wrap(err, "[Monitor.Extend] auth.Extend")
	}
	m.clearDismissal()
	m.setWarning(nil)
	return nil
}

// CurrentWarning returns the currently surfaced alert, nil when none.
func (m *Monitor) CurrentWarning() *Warning {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	c := *m.current
	return &c
}

func (m *Monitor) warningDismissed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dismissedWarning
}

func (m *Monitor) clearDismissal() {
	m.mu.Lock()
	m.dismissedWarning = false
	m.mu.Unlock()
}

// setWarning publishes the new alert state. A nil alert is only published when
// it clears an existing one; active alerts re-publish each tick so the
// countdown stays current.
func (m *Monitor) setWarning(w *Warning) {
	m.mu.Lock()
	if w == nil && m.current == nil {
		m.mu.Unlock()
		return
	}
	m.current = w
	obs := make([]func(*Warning), 0, len(m.observers))
	for _, fn := range m.observers {
		obs = append(obs, fn)
	}
	m.mu.Unlock()

	for _, fn := range obs {
		if w == nil {
			fn(nil)
		} else {
			c := *w
			fn(&c)
		}
	}
}
