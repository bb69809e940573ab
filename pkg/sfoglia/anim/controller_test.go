package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickUntilSettled(t *testing.T, c *Controller, step time.Duration) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !c.Animating() {
			return
		}
		c.Tick(step)
	}
	t.Fatal("controller never settled")
}

func TestForwardRunsToCompletion(t *testing.T) {
	c := NewController(100*time.Millisecond, 100*time.Millisecond, Linear)
	done := c.Forward()

	assert.Equal(t, StatusForward, c.Status())
	c.Tick(50 * time.Millisecond)
	assert.InDelta(t, 0.5, c.Value(), 1e-9)

	select {
	case <-done:
		t.Fatal("run channel closed before completion")
	default:
	}

	c.Tick(50 * time.Millisecond)
	assert.Equal(t, StatusCompleted, c.Status())
	assert.Equal(t, 1.0, c.Value())

	select {
	case <-done:
	default:
		t.Fatal("run channel not closed on completion")
	}
}

func TestReverseRestartsFromCurrentValue(t *testing.T) {
	c := NewController(100*time.Millisecond, 100*time.Millisecond, Linear)
	c.Forward()
	c.Tick(30 * time.Millisecond)
	require.InDelta(t, 0.3, c.Progress(), 1e-9)

	// Interrupting mid-push must reverse from 0.3, not snap to 1.0 first.
	c.Reverse()
	assert.Equal(t, StatusReverse, c.Status())
	assert.InDelta(t, 0.3, c.Progress(), 1e-9)

	c.Tick(30 * time.Millisecond)
	assert.Equal(t, StatusDismissed, c.Status())
	assert.Equal(t, 0.0, c.Value())
}

func TestZeroDurationIsInstant(t *testing.T) {
	c := NewController(0, 0, nil)
	done := c.Forward()
	assert.Equal(t, StatusCompleted, c.Status())

	select {
	case <-done:
	default:
		t.Fatal("instant run must return a closed channel")
	}
}

func TestDriveAndSettle(t *testing.T) {
	c := NewController(100*time.Millisecond, 100*time.Millisecond, Linear)
	c.Complete()

	// Gesture drags the value down.
	c.Drive(0.6)
	assert.Equal(t, StatusReverse, c.Status())
	assert.InDelta(t, 0.6, c.Progress(), 1e-9)

	// Cancelled gesture animates forward from the current value.
	c.Settle(false)
	assert.Equal(t, StatusForward, c.Status())
	c.Tick(40 * time.Millisecond)
	assert.Equal(t, StatusCompleted, c.Status())
}

func TestSettleCommitScalesToRemainingDistance(t *testing.T) {
	c := NewController(100*time.Millisecond, 100*time.Millisecond, Linear)
	c.Complete()
	c.Drive(0.2)

	// Only 0.2 of the range remains, so 20ms at full-range rate settles it.
	c.Settle(true)
	c.Tick(20 * time.Millisecond)
	assert.Equal(t, StatusDismissed, c.Status())
}

func TestTickerRegistersOnlyActiveControllers(t *testing.T) {
	ticker := NewTicker()
	a := NewController(50*time.Millisecond, 50*time.Millisecond, Linear)
	b := NewController(50*time.Millisecond, 50*time.Millisecond, Linear)
	a.AttachTicker(ticker)
	b.AttachTicker(ticker)

	assert.Zero(t, ticker.Active())
	a.Forward()
	b.Forward()
	assert.Equal(t, 2, ticker.Active())

	ticker.Tick(50 * time.Millisecond)
	assert.Zero(t, ticker.Active())
	assert.Equal(t, StatusCompleted, a.Status())
	assert.Equal(t, StatusCompleted, b.Status())
}

func TestCurvesAreAnchored(t *testing.T) {
	for name, curve := range map[string]Curve{
		"linear":       Linear,
		"ease-in-out":  EaseInOut,
		"decelerate":   Decelerate,
		"nav":          NavDecelerate,
		"cubic-bezier": CubicBezier(0.25, 0.1, 0.25, 1.0),
	} {
		assert.InDelta(t, 0.0, curve(0), 1e-6, name)
		assert.InDelta(t, 1.0, curve(1), 1e-6, name)

		mid := curve(0.5)
		assert.GreaterOrEqual(t, mid, 0.0, name)
		assert.LessOrEqual(t, mid, 1.0, name)
	}
}

func TestCurveByName(t *testing.T) {
	for _, name := range []string{"linear", "ease-in-out", "decelerate", "nav"} {
		curve, err := CurveByName(name)
		require.NoError(t, err)
		require.NotNil(t, curve)
	}

	_, err := CurveByName("bouncy")
	assert.Error(t, err)
}
