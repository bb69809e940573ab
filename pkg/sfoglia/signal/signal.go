// Package signal provides the change-notification primitives the navigation
// engine is built on: a plain subscribable Notifier, a value-holding variant
// that notifies only on inequality, and a composite that merges several
// sources into one.
//
// All types are designed for a single-threaded, event-driven host. They are
// not safe for concurrent use; the engine enforces single-thread discipline
// by API design rather than locking.
package signal

import (
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/internal"
)

// Notifier is a subscribable change signal. Subscribers are invoked in
// registration order on every Notify call. A panicking subscriber is
// recovered and logged so one faulty observer cannot break the others.
//
// The zero value is ready to use.
type Notifier struct {
	subs      []*Subscription
	notifying atomic.Bool
}

// Subscription is the handle returned by Add. Removing it is idempotent.
type Subscription struct {
	fn      func()
	n       *Notifier
	removed bool
}

// Add registers fn to be invoked on every Notify. The returned Subscription
// removes the registration; fn itself is never compared by identity.
func (n *Notifier) Add(fn func()) *Subscription {
	sub := &Subscription{fn: fn, n: n}
	n.subs = append(n.subs, sub)
	return sub
}

// Remove unregisters the subscription. Safe to call more than once, and safe
// to call from inside a Notify dispatch (the subscriber simply stops
// receiving further notifications).
func (s *Subscription) Remove() {
	if s == nil || s.removed {
		return
	}
	s.removed = true

	subs := s.n.subs
	for i, sub := range subs {
		if sub == s {
			s.n.subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

// HasSubscribers reports whether at least one subscription is live.
func (n *Notifier) HasSubscribers() bool {
	return len(n.subs) > 0
}

// Notify invokes every currently-registered subscriber in registration
// order. Subscribers added during dispatch are not invoked until the next
// Notify; subscribers removed during dispatch are skipped.
func (n *Notifier) Notify() {
	if len(n.subs) == 0 {
		return
	}

	// Reentrant Notify from inside a subscriber would re-dispatch the same
	// snapshot; that is a programming error in the subscriber.
	if !n.notifying.CompareAndSwap(false, true) {
		panic("signal: Notify called reentrantly from a subscriber")
	}
	defer n.notifying.Store(false)

	snapshot := make([]*Subscription, len(n.subs))
	copy(snapshot, n.subs)

	for _, sub := range snapshot {
		if sub.removed {
			continue
		}
		invoke(sub.fn)
	}
}

// invoke runs one subscriber, converting a panic into a log entry so the
// remaining subscribers still run.
func invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			internal.Logger().Error("signal subscriber panicked", "panic", r)
		}
	}()
	fn()
}
