package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter(cfg Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := New(cfg)
	l.now = clock.Now
	return l, clock
}

func TestLimiter_LockoutAfterFailures(t *testing.T) {
	l, clock := newTestLimiter(Config{MaxAttempts: 3, Lockout: 15 * time.Minute, Rate: rate.Inf, Burst: 1})
	key := Key("login", "Mozilla/5.0")

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Allow(key))
		l.Failure(key)
	}

	err := l.Allow(key)
	var lockout *LockoutError
	require.ErrorAs(t, err, &lockout)
	assert.Equal(t, 15*time.Minute, lockout.Remaining)
	assert.Equal(t, "too many attempts, try again in 15m0s", lockout.Error())

	clock.Advance(10 * time.Minute)
	require.ErrorAs(t, l.Allow(key), &lockout)
	assert.Equal(t, 5*time.Minute, lockout.Remaining)

	clock.Advance(5 * time.Minute)
	assert.NoError(t, l.Allow(key))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Config{MaxAttempts: 1, Lockout: time.Minute, Rate: rate.Inf, Burst: 1})

	l.Failure(Key("login", "agent-a"))

	assert.Error(t, l.Allow(Key("login", "agent-a")))
	assert.NoError(t, l.Allow(Key("login", "agent-b")))
	assert.NoError(t, l.Allow(Key("register", "agent-a")))
}

func TestLimiter_SuccessResetsFailures(t *testing.T) {
	l, _ := newTestLimiter(Config{MaxAttempts: 2, Lockout: time.Minute, Rate: rate.Inf, Burst: 1})
	key := Key("login", "agent")

	l.Failure(key)
	l.Success(key)
	l.Failure(key)

	assert.NoError(t, l.Allow(key))
}

func TestLimiter_RateLimit(t *testing.T) {
	l, clock := newTestLimiter(Config{MaxAttempts: 100, Lockout: time.Minute, Rate: rate.Every(time.Second), Burst: 2})
	key := Key("login", "agent")

	require.NoError(t, l.Allow(key))
	require.NoError(t, l.Allow(key))

	var lockout *LockoutError
	require.ErrorAs(t, l.Allow(key), &lockout)
	assert.Equal(t, time.Second, lockout.Remaining)

	clock.Advance(time.Second)
	assert.NoError(t, l.Allow(key))
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(Config{MaxAttempts: 1, Lockout: time.Hour, Rate: rate.Inf, Burst: 1, IdleTTL: time.Minute})

	require.NoError(t, l.Allow(Key("login", "idle")))
	l.Failure(Key("login", "locked"))
	assert.Equal(t, 2, l.size())

	clock.Advance(2 * time.Minute)
	l.Cleanup()

	assert.Equal(t, 1, l.size())
}
