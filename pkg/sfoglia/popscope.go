package sfoglia

import "github.com/BrandonKowalski/sfoglia/pkg/sfoglia/signal"

// PopDisposition is a route's answer to a polite pop attempt.
type PopDisposition int

const (
	// PopProceed removes the route as normal.
	PopProceed PopDisposition = iota
	// PopReject leaves the route untouched; registered scopes are told the
	// attempt did not pop.
	PopReject
	// PopBubble means the route cannot decide and defers to an outer scope,
	// used by the bottom-most route so the host environment can decide
	// whether to exit.
	PopBubble
)

func (d PopDisposition) String() string {
	switch d {
	case PopProceed:
		return "proceed"
	case PopReject:
		return "reject"
	case PopBubble:
		return "bubble"
	}
	return "unknown"
}

// PopScope is one registered pop negotiator. A polite pop of the owning
// route succeeds only if every registered scope's CanPop reads true; the
// OnPopInvoked callback reports each attempt's outcome either way.
//
// An unconditional Pop still invokes OnPopInvoked with didPop true, for
// notification, but cannot be vetoed.
type PopScope struct {
	// CanPop gates polite pops. Application code typically flips it to
	// false while there are unsaved changes.
	CanPop *signal.Value[bool]
	// OnPopInvoked fires after every pop attempt that reached negotiation,
	// with whether the route was actually popped and the result value the
	// attempt carried. May be nil.
	OnPopInvoked func(didPop bool, result any)
}

// NewPopScope creates a scope with the given initial CanPop value.
func NewPopScope(canPop bool, onPopInvoked func(didPop bool, result any)) *PopScope {
	return &PopScope{
		CanPop:       signal.NewValue(canPop),
		OnPopInvoked: onPopInvoked,
	}
}

func (s *PopScope) invoke(didPop bool, result any) {
	if s.OnPopInvoked == nil {
		return
	}
	runRecovered("pop scope callback", func() {
		s.OnPopInvoked(didPop, result)
	})
}
