//go:build !integration

package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/inventory-allocator/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMongoDown = errors.New("mongo down")

func ok() error   { return nil }
func fail() error { return errMongoDown }

// fakeClock lets tests move past Timeout without sleeping.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(t *testing.T, failures, successes int) (*CircuitBreaker, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := New(Config{
		FailureThreshold: failures,
		SuccessThreshold: successes,
		Timeout:          time.Minute,
		Name:             t.Name(),
	})
	cb.now = clock.now
	return cb, clock
}

func TestCircuitBreaker_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		successes int
		steps     func(t *testing.T, cb *CircuitBreaker, clock *fakeClock)
	}{
		{
			name:      "opens after consecutive failures",
			failures:  2,
			successes: 1,
			steps: func(t *testing.T, cb *CircuitBreaker, _ *fakeClock) {
				assert.ErrorIs(t, cb.Execute(context.Background(), fail), errMongoDown)
				assert.Equal(t, StateClosed, cb.State())
				assert.ErrorIs(t, cb.Execute(context.Background(), fail), errMongoDown)
				assert.Equal(t, StateOpen, cb.State())

				called := false
				err := cb.Execute(context.Background(), func() error { called = true; return nil })
				assert.ErrorIs(t, err, ErrCircuitOpen)
				assert.False(t, called)
			},
		},
		{
			name:      "success resets the failure streak",
			failures:  2,
			successes: 1,
			steps: func(t *testing.T, cb *CircuitBreaker, _ *fakeClock) {
				_ = cb.Execute(context.Background(), fail)
				require.NoError(t, cb.Execute(context.Background(), ok))
				_ = cb.Execute(context.Background(), fail)
				assert.Equal(t, StateClosed, cb.State())
			},
		},
		{
			name:      "half-open closes after enough trial calls",
			failures:  1,
			successes: 2,
			steps: func(t *testing.T, cb *CircuitBreaker, clock *fakeClock) {
				_ = cb.Execute(context.Background(), fail)
				clock.advance(30 * time.Second)
				assert.ErrorIs(t, cb.Execute(context.Background(), ok), ErrCircuitOpen)

				clock.advance(31 * time.Second)
				require.NoError(t, cb.Execute(context.Background(), ok))
				assert.Equal(t, StateHalfOpen, cb.State())
				require.NoError(t, cb.Execute(context.Background(), ok))
				assert.Equal(t, StateClosed, cb.State())
			},
		},
		{
			name:      "half-open failure reopens",
			failures:  3,
			successes: 2,
			steps: func(t *testing.T, cb *CircuitBreaker, clock *fakeClock) {
				for i := 0; i < 3; i++ {
					_ = cb.Execute(context.Background(), fail)
				}
				clock.advance(time.Minute)
				assert.ErrorIs(t, cb.Execute(context.Background(), fail), errMongoDown)
				assert.Equal(t, StateOpen, cb.State())
				assert.Equal(t, 3, cb.GetStats().FailureCount)
				assert.ErrorIs(t, cb.Execute(context.Background(), ok), ErrCircuitOpen)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, clock := newTestBreaker(t, tt.failures, tt.successes)
			tt.steps(t, cb, clock)
		})
	}
}

func TestCircuitBreaker_SingleTrialCall(t *testing.T) {
	cb, clock := newTestBreaker(t, 1, 1)
	_ = cb.Execute(context.Background(), fail)
	clock.advance(time.Minute)

	inTrial := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- cb.Execute(context.Background(), func() error {
			close(inTrial)
			<-release
			return nil
		})
	}()

	<-inTrial
	assert.ErrorIs(t, cb.Execute(context.Background(), ok), ErrCircuitOpen, "only one trial call at a time")
	close(release)

	require.NoError(t, <-done)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_IsFailure(t *testing.T) {
	errNotFound := errors.New("not found")
	cb := New(Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "classifier",
		IsFailure: func(err error) bool {
			return !errors.Is(err, errNotFound)
		},
	})

	err := cb.Execute(context.Background(), func() error { return errNotFound })
	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, StateClosed, cb.State())

	_ = cb.Execute(context.Background(), fail)
	assert.True(t, cb.IsOpen())
}

func TestCircuitBreaker_Cancellation(t *testing.T) {
	cb, _ := newTestBreaker(t, 1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := cb.Execute(ctx, func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)

	err = cb.Execute(context.Background(), func() error { return context.Canceled })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, cb.State(), "cancellation is not a dependency failure")
}

func TestCircuitBreaker_GetStats(t *testing.T) {
	cb, clock := newTestBreaker(t, 2, 1)

	stats := cb.GetStats()
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)
	assert.Zero(t, stats.FailureCount)

	_ = cb.Execute(context.Background(), fail)
	stats = cb.GetStats()
	assert.Equal(t, 1, stats.FailureCount)
	assert.Equal(t, clock.t, stats.LastFailure)
	assert.True(t, stats.IsHealthy)

	_ = cb.Execute(context.Background(), fail)
	stats = cb.GetStats()
	assert.Equal(t, "open", stats.State)
	assert.False(t, stats.IsHealthy)
}

func TestCircuitBreaker_StateGauge(t *testing.T) {
	cb, clock := newTestBreaker(t, 1, 1)
	gauge := metrics.CircuitBreakerState.WithLabelValues(cb.Name())
	assert.Equal(t, float64(0), testutil.ToFloat64(gauge))

	_ = cb.Execute(context.Background(), fail)
	assert.Equal(t, float64(2), testutil.ToFloat64(gauge))

	clock.advance(time.Minute)
	require.NoError(t, cb.Execute(context.Background(), ok))
	assert.Equal(t, float64(0), testutil.ToFloat64(gauge))
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 5, config.FailureThreshold)
	assert.Equal(t, 2, config.SuccessThreshold)
	assert.Equal(t, 30*time.Second, config.Timeout)
	assert.Equal(t, "circuit-breaker", config.Name)
	assert.Nil(t, config.IsFailure)
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateClosed, "closed"},
		{StateOpen, "open"},
		{StateHalfOpen, "half-open"},
		{State(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}
