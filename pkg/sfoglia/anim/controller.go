package anim

import (
	"time"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/signal"
)

// Status describes where a controller is in its lifecycle.
type Status int

const (
	// StatusDismissed means the value is settled at 0.0.
	StatusDismissed Status = iota
	// StatusForward means the value is moving toward 1.0.
	StatusForward
	// StatusReverse means the value is moving toward 0.0.
	StatusReverse
	// StatusCompleted means the value is settled at 1.0.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusDismissed:
		return "dismissed"
	case StatusForward:
		return "forward"
	case StatusReverse:
		return "reverse"
	case StatusCompleted:
		return "completed"
	}
	return "unknown"
}

var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Controller owns one animation value in [0.0, 1.0]. It is advanced by an
// external frame pump through Tick; Forward and Reverse only set direction.
//
// A run interrupted by a request in the opposite direction restarts from the
// current value, never from an endpoint, so rapid push-then-pop sequences
// stay visually continuous.
type Controller struct {
	forward time.Duration
	reverse time.Duration
	curve   Curve

	t         float64 // linear progress
	status    Status
	direction int // +1 toward 1.0, -1 toward 0.0, 0 at rest or driven
	runDur    time.Duration

	changed       signal.Notifier
	statusChanged signal.Notifier
	done          chan struct{}

	ticker *Ticker
}

// NewController creates a controller at value 0.0 with the given full-range
// durations and easing curve. A nil curve means Linear.
func NewController(forward, reverse time.Duration, curve Curve) *Controller {
	if curve == nil {
		curve = Linear
	}
	return &Controller{
		forward: forward,
		reverse: reverse,
		curve:   curve,
		status:  StatusDismissed,
	}
}

// AttachTicker registers the controller with a frame-pump registry. While a
// run is active the ticker advances the controller; a settled controller
// deregisters itself.
func (c *Controller) AttachTicker(t *Ticker) {
	c.ticker = t
	if c.direction != 0 {
		t.register(c)
	}
}

// Value returns the eased animation value.
func (c *Controller) Value() float64 {
	return c.curve(c.t)
}

// Progress returns the raw linear progress before easing.
func (c *Controller) Progress() float64 {
	return c.t
}

// Status returns the controller status.
func (c *Controller) Status() Status {
	return c.status
}

// OnChange subscribes to value changes.
func (c *Controller) OnChange(fn func()) *signal.Subscription {
	return c.changed.Add(fn)
}

// OnStatus subscribes to status changes.
func (c *Controller) OnStatus(fn func()) *signal.Subscription {
	return c.statusChanged.Add(fn)
}

// Forward starts moving toward 1.0 from the current value over the forward
// duration. The returned channel closes when the run settles at 1.0 or is
// superseded by another request. Returns an already-closed channel when the
// value is already settled at 1.0.
func (c *Controller) Forward() <-chan struct{} {
	if c.t >= 1 && c.direction == 0 {
		c.setStatus(StatusCompleted)
		return closedChan
	}
	if c.forward <= 0 {
		c.Complete()
		return closedChan
	}
	return c.run(+1, c.forward, StatusForward)
}

// Reverse starts moving toward 0.0 from the current value over the reverse
// duration. Channel semantics follow Forward.
func (c *Controller) Reverse() <-chan struct{} {
	if c.t <= 0 && c.direction == 0 {
		c.setStatus(StatusDismissed)
		return closedChan
	}
	if c.reverse <= 0 {
		c.Dismiss()
		return closedChan
	}
	return c.run(-1, c.reverse, StatusReverse)
}

func (c *Controller) run(dir int, dur time.Duration, status Status) <-chan struct{} {
	c.supersede()
	c.direction = dir
	c.runDur = dur
	c.done = make(chan struct{})
	c.setStatus(status)
	if c.ticker != nil {
		c.ticker.register(c)
	}
	return c.done
}

// Complete jumps instantly to 1.0.
func (c *Controller) Complete() {
	c.supersede()
	c.direction = 0
	if c.t != 1 {
		c.t = 1
		c.changed.Notify()
	}
	c.setStatus(StatusCompleted)
	c.detach()
}

// Dismiss jumps instantly to 0.0.
func (c *Controller) Dismiss() {
	c.supersede()
	c.direction = 0
	if c.t != 0 {
		c.t = 0
		c.changed.Notify()
	}
	c.setStatus(StatusDismissed)
	c.detach()
}

// Drive injects a value directly, as a gesture-driven transition does. It
// halts any timed run; call Settle when the gesture ends.
func (c *Controller) Drive(v float64) {
	c.supersede()
	c.direction = 0
	c.detach()

	v = clamp(v)
	if v == c.t {
		return
	}
	if v < c.t {
		c.setStatus(StatusReverse)
	} else {
		c.setStatus(StatusForward)
	}
	c.t = v
	c.changed.Notify()
}

// Settle finishes a driven transition. With commit true the value animates
// back to 0.0, otherwise forward to 1.0; either way the time spent is the
// full-range duration scaled by the remaining distance, so a nearly-finished
// gesture settles quickly rather than replaying the whole transition.
func (c *Controller) Settle(commit bool) <-chan struct{} {
	if commit {
		return c.Reverse()
	}
	return c.Forward()
}

// Tick advances an active run by elapsed wall time. Settling at an endpoint
// updates the status, closes the run channel, and deregisters from the
// ticker.
func (c *Controller) Tick(elapsed time.Duration) {
	if c.direction == 0 || c.runDur <= 0 {
		return
	}

	delta := float64(elapsed) / float64(c.runDur)
	c.t = clamp(c.t + float64(c.direction)*delta)
	c.changed.Notify()

	if c.direction > 0 && c.t >= 1 {
		c.finish(StatusCompleted)
	} else if c.direction < 0 && c.t <= 0 {
		c.finish(StatusDismissed)
	}
}

func (c *Controller) finish(status Status) {
	c.direction = 0
	done := c.done
	c.done = nil
	c.setStatus(status)
	if done != nil {
		close(done)
	}
	c.detach()
}

// Animating reports whether a timed run is in progress.
func (c *Controller) Animating() bool {
	return c.direction != 0
}

func (c *Controller) setStatus(s Status) {
	if c.status == s {
		return
	}
	c.status = s
	c.statusChanged.Notify()
}

func (c *Controller) supersede() {
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
}

func (c *Controller) detach() {
	if c.ticker != nil {
		c.ticker.unregister(c)
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
