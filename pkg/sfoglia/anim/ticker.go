package anim

import "time"

// Ticker is the registry an external frame pump drains. Controllers with an
// active run register themselves; the host calls Tick once per frame with
// the elapsed wall time.
type Ticker struct {
	controllers []*Controller
}

// NewTicker creates an empty registry.
func NewTicker() *Ticker {
	return &Ticker{}
}

// Tick advances every registered controller. Controllers that settle during
// the tick deregister themselves; iteration works on a snapshot so that is
// safe.
func (t *Ticker) Tick(elapsed time.Duration) {
	snapshot := make([]*Controller, len(t.controllers))
	copy(snapshot, t.controllers)
	for _, c := range snapshot {
		c.Tick(elapsed)
	}
}

// Active returns the number of controllers with a run in progress.
func (t *Ticker) Active() int {
	return len(t.controllers)
}

func (t *Ticker) register(c *Controller) {
	for _, existing := range t.controllers {
		if existing == c {
			return
		}
	}
	t.controllers = append(t.controllers, c)
}

func (t *Ticker) unregister(c *Controller) {
	for i, existing := range t.controllers {
		if existing == c {
			t.controllers = append(t.controllers[:i], t.controllers[i+1:]...)
			return
		}
	}
}
