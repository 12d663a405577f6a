package monitor_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/findash/findash/auth"
	"github.com/findash/findash/auth/storefakes"
	"github.com/findash/findash/mockapi"
	"github.com/findash/findash/monitor"
)

const (
	testTTL               = 5 * time.Minute
	testWarningThreshold  = 120
	testCriticalThreshold = 60
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testFixture holds all test dependencies
type testFixture struct {
	clock     *fakeClock
	auth      *auth.Service
	monitor   *monitor.Monitor
	navigated *atomic.Int32
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	clock := newFakeClock(time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC))

	api, err := mockapi.New("test-secret",
		mockapi.WithDelayFunc(func() time.Duration { return 0 }),
		mockapi.WithNowTime(clock.Now),
	)
	require.NoError(t, err)

	authService, err := auth.NewService(api, storefakes.NewFakeStore(),
		auth.WithNowTime(clock.Now),
		auth.WithSessionTTL(testTTL),
	)
	require.NoError(t, err)

	navigated := &atomic.Int32{}
	m, err := monitor.New(authService,
		func() { navigated.Add(1) },
		monitor.WithThresholds(testWarningThreshold, testCriticalThreshold),
	)
	require.NoError(t, err)

	return &testFixture{clock: clock, auth: authService, monitor: m, navigated: navigated}
}

func (f *testFixture) login(t *testing.T) {
	t.Helper()
	_, err := f.auth.Authenticate(context.Background(), auth.Credentials{
		Email:    "carlos.rodriguez@email.com",
		Password: mockapi.DemoPassword,
	})
	require.NoError(t, err)
}

// advanceToRemaining moves the clock so the session has exactly the given
// number of seconds left.
func (f *testFixture) advanceToRemaining(t *testing.T, seconds int) {
	t.Helper()
	current := f.auth.TimeRemainingSeconds()
	require.GreaterOrEqual(t, current, seconds)
	f.clock.Advance(time.Duration(current-seconds) * time.Second)
	require.Equal(t, seconds, f.auth.TimeRemainingSeconds())
}

func TestNoWarningWhileSessionIsFresh(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	require.True(t, f.monitor.CheckNow())
	require.Nil(t, f.monitor.CurrentWarning())
}

func TestNoWarningWithoutSession(t *testing.T) {
	f := setupTestFixture(t)

	require.True(t, f.monitor.CheckNow())
	require.Nil(t, f.monitor.CurrentWarning())
}

func TestWarningLevelAtNinetySeconds(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.advanceToRemaining(t, 90)

	require.True(t, f.monitor.CheckNow())

	w := f.monitor.CurrentWarning()
	require.NotNil(t, w)
	require.Equal(t, monitor.LevelWarning, w.Level)
	require.Equal(t, "Tu sesión está por expirar. ¿Deseas extenderla?", w.Message)
	require.Equal(t, 90, w.SecondsRemaining)
	require.True(t, w.OfferExtend)
}

func TestCriticalLevelAtFortyFiveSeconds(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.advanceToRemaining(t, 45)

	require.True(t, f.monitor.CheckNow())

	w := f.monitor.CurrentWarning()
	require.NotNil(t, w)
	require.Equal(t, monitor.LevelCritical, w.Level)
	require.Equal(t, "¡Sesión crítica! Serás desconectado automáticamente.", w.Message)
	require.Equal(t, 45, w.SecondsRemaining)
}

func TestDismissedWarningStaysQuiet(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.advanceToRemaining(t, 90)

	require.True(t, f.monitor.CheckNow())
	f.monitor.Dismiss()
	require.Nil(t, f.monitor.CurrentWarning())

	// Still in the warning band on the next evaluation: nothing resurfaces.
	f.clock.Advance(5 * time.Second)
	require.True(t, f.monitor.CheckNow())
	require.Nil(t, f.monitor.CurrentWarning())
}

func TestCriticalIgnoresWarningDismissal(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.advanceToRemaining(t, 90)

	require.True(t, f.monitor.CheckNow())
	f.monitor.Dismiss()

	f.advanceToRemaining(t, 45)
	require.True(t, f.monitor.CheckNow())

	w := f.monitor.CurrentWarning()
	require.NotNil(t, w)
	require.Equal(t, monitor.LevelCritical, w.Level)
}

func TestDismissingCriticalEndsSession(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.advanceToRemaining(t, 45)
	require.True(t, f.monitor.CheckNow())

	f.monitor.Dismiss()

	require.Nil(t, f.monitor.CurrentWarning())
	require.False(t, f.auth.IsAuthenticated())
	require.Equal(t, int32(1), f.navigated.Load())
}

func TestExpiryForcesLogout(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.advanceToRemaining(t, 90)
	require.True(t, f.monitor.CheckNow())

	f.clock.Advance(2 * time.Minute)
	require.False(t, f.monitor.CheckNow(), "evaluation reports the loop must stop")

	require.Nil(t, f.monitor.CurrentWarning())
	require.False(t, f.auth.IsAuthenticated())
	require.Equal(t, int32(1), f.navigated.Load())
}

func TestExtendClearsAlertAndDismissalMemory(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.advanceToRemaining(t, 90)
	require.True(t, f.monitor.CheckNow())
	f.monitor.Dismiss()

	require.NoError(t, f.monitor.Extend(context.Background()))
	require.Nil(t, f.monitor.CurrentWarning())

	// Back in the warning band after the extension: memory was cleared, so
	// the warning surfaces again.
	f.advanceToRemaining(t, 90)
	require.True(t, f.monitor.CheckNow())

	w := f.monitor.CurrentWarning()
	require.NotNil(t, w)
	require.Equal(t, monitor.LevelWarning, w.Level)
}

func TestExtendWithoutSessionFails(t *testing.T) {
	f := setupTestFixture(t)
	require.Error(t, f.monitor.Extend(context.Background()))
}

func TestLogoutClearsDismissalForNextSession(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.advanceToRemaining(t, 90)
	require.True(t, f.monitor.CheckNow())
	f.monitor.Dismiss()

	f.auth.Logout(context.Background())
	require.True(t, f.monitor.CheckNow())

	f.login(t)
	f.advanceToRemaining(t, 90)
	require.True(t, f.monitor.CheckNow())
	require.NotNil(t, f.monitor.CurrentWarning(), "fresh session starts with a clean slate")
}

func TestObserverSeesWarningTransitions(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	var events []*monitor.Warning
	unsubscribe := f.monitor.Subscribe(func(w *monitor.Warning) {
		events = append(events, w)
	})
	defer unsubscribe()

	f.advanceToRemaining(t, 90)
	require.True(t, f.monitor.CheckNow())
	require.Len(t, events, 1)
	require.Equal(t, monitor.LevelWarning, events[0].Level)

	// Countdown updates re-publish while active.
	f.clock.Advance(time.Second)
	require.True(t, f.monitor.CheckNow())
	require.Len(t, events, 2)
	require.Equal(t, 89, events[1].SecondsRemaining)

	require.NoError(t, f.monitor.Extend(context.Background()))
	require.Len(t, events, 3)
	require.Nil(t, events[2])

	// Clearing an already-clear alert publishes nothing.
	require.True(t, f.monitor.CheckNow())
	require.Len(t, events, 3)
}

func TestStartAndStopLifecycle(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	f.monitor.Start()
	f.monitor.Start() // second Start is a no-op
	f.monitor.Stop()
	f.monitor.Stop() // second Stop is a no-op

	f.monitor.Start()
	f.monitor.Stop()
}
