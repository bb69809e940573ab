package sfoglia

import (
	"time"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/anim"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/signal"
)

// Default full-range transition durations, used when options leave them
// zero.
const (
	DefaultForwardDuration = 300 * time.Millisecond
	DefaultReverseDuration = 300 * time.Millisecond
)

// TransitionOptions configures a TransitionRoute.
type TransitionOptions struct {
	Settings        RouteSettings
	ForwardDuration time.Duration
	ReverseDuration time.Duration
	Curve           anim.Curve // nil means anim.NavDecelerate
	// Opaque routes fully obscure the surfaces below them once settled,
	// letting the presenter skip building those surfaces.
	Opaque bool
}

// transitioner is satisfied by every route variant that animates; the
// navigator and sibling routes use it to couple secondary animations.
type transitioner interface {
	primaryController() *anim.Controller
}

// TransitionRoute is a route with an animated enter and exit transition. Its
// primary animation runs 0.0 to 1.0 on push and back to 0.0 on pop; its
// secondary value mirrors the primary animation of whichever route sits
// directly above it, letting a settled route react visually (parallax, dim)
// to a sibling's transition.
type TransitionRoute struct {
	baseRoute

	controller *anim.Controller
	secondary  *signal.Value[float64]
	opaque     bool

	statusSub    *signal.Subscription
	secondarySub *signal.Subscription
}

// NewTransitionRoute creates a route that transitions with the given timing.
func NewTransitionRoute(opts TransitionOptions) *TransitionRoute {
	r := &TransitionRoute{}
	r.init(opts)
	return r
}

func (r *TransitionRoute) init(opts TransitionOptions) {
	if opts.ForwardDuration == 0 {
		opts.ForwardDuration = DefaultForwardDuration
	}
	if opts.ReverseDuration == 0 {
		opts.ReverseDuration = DefaultReverseDuration
	}
	if opts.Curve == nil {
		opts.Curve = anim.NavDecelerate
	}

	r.baseRoute = newBaseRoute(opts.Settings)
	r.controller = anim.NewController(opts.ForwardDuration, opts.ReverseDuration, opts.Curve)
	r.secondary = signal.NewValue(0.0)
	r.opaque = opts.Opaque
}

// Controller exposes the primary animation for presenters and gesture
// drivers. Structural navigation must go through the navigator, never by
// steering the controller directly.
func (r *TransitionRoute) Controller() *anim.Controller { return r.controller }

// PrimaryValue returns the eased primary animation value.
func (r *TransitionRoute) PrimaryValue() float64 { return r.controller.Value() }

// SecondaryValue returns how far the route directly above has transitioned
// in, 0.0 when nothing is entering or leaving above this route.
func (r *TransitionRoute) SecondaryValue() float64 { return r.secondary.Get() }

// Secondary exposes the secondary animation signal.
func (r *TransitionRoute) Secondary() *signal.Value[float64] { return r.secondary }

// Opaque reports whether the route fully obscures lower surfaces once
// settled.
func (r *TransitionRoute) Opaque() bool { return r.opaque }

func (r *TransitionRoute) primaryController() *anim.Controller { return r.controller }

func (r *TransitionRoute) install(nav *Navigator, self Route) {
	r.baseRoute.install(nav, self)
	r.controller.AttachTicker(nav.ticker)
	r.statusSub = r.controller.OnStatus(r.onAnimationStatus)
}

func (r *TransitionRoute) didPush() <-chan struct{} {
	r.assertStatus("didPush", RouteInstalled)
	r.status = RoutePushing
	done := r.controller.Forward()
	if r.controller.Status() == anim.StatusCompleted {
		r.status = RouteIdle
	}
	return done
}

func (r *TransitionRoute) didAdd() {
	r.assertStatus("didAdd", RouteInstalled)
	r.controller.Complete()
	r.status = RouteIdle
}

func (r *TransitionRoute) didPop(result any) bool {
	r.assertStatus("didPop", RouteIdle, RoutePushing)
	r.status = RoutePopping
	r.result.complete(result)
	r.controller.Reverse()
	// A zero-duration or already-dismissed transition finishes synchronously;
	// the navigator finalizes immediately instead of waiting on a tick.
	return r.controller.Status() == anim.StatusDismissed
}

func (r *TransitionRoute) didReplace(old Route) {
	r.assertStatus("didReplace", RouteInstalled)
	r.controller.Complete()
	r.status = RouteIdle
}

func (r *TransitionRoute) didChangeNext(next Route) {
	r.detachSecondary()
	if next == nil {
		r.secondary.Set(0)
		return
	}
	t, ok := next.(transitioner)
	if !ok {
		r.secondary.Set(0)
		return
	}

	// Secondary coupling reaches exactly one level down: this route follows
	// only the route directly above it.
	c := t.primaryController()
	r.secondarySub = c.OnChange(func() {
		r.secondary.Set(c.Value())
	})
	r.secondary.Set(c.Value())
}

func (r *TransitionRoute) onAnimationStatus() {
	switch r.controller.Status() {
	case anim.StatusCompleted:
		if r.status == RoutePushing {
			r.status = RouteIdle
		}
	case anim.StatusDismissed:
		// Exit transition finished; hand the route back to the navigator
		// for overlay detachment and disposal. When the pop itself finished
		// synchronously the navigator already finalized it.
		if r.status == RoutePopping && r.nav != nil && !r.nav.inMutation() {
			r.nav.finalizeRoute(r.self)
		}
	}
}

func (r *TransitionRoute) dispose() {
	r.detachSecondary()
	if r.statusSub != nil {
		r.statusSub.Remove()
		r.statusSub = nil
	}
	r.baseRoute.dispose()
}

func (r *TransitionRoute) detachSecondary() {
	if r.secondarySub != nil {
		r.secondarySub.Remove()
		r.secondarySub = nil
	}
}
