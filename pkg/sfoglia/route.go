package sfoglia

import (
	"fmt"
)

// RouteSettings carries the identity data supplied when a route is created.
type RouteSettings struct {
	// Name is an optional identifier, typically a path-like string.
	Name string
	// Arguments is an optional opaque payload for the destination.
	Arguments any
}

// RouteStatus is the lifecycle state of a route. The navigator is the sole
// authority that moves a route between states; calling lifecycle hooks out
// of order is a programming error and panics.
type RouteStatus int

const (
	// RoutePending is the state between creation and installation.
	RoutePending RouteStatus = iota
	// RouteInstalled means the route is attached to a navigator but has not
	// begun entering.
	RouteInstalled
	// RoutePushing means the enter transition is running.
	RoutePushing
	// RouteIdle means the route is settled in the history.
	RouteIdle
	// RoutePopping means the exit transition is running.
	RoutePopping
	// RouteRemoving means the route was removed without a pop transition
	// (replaced or removed outright) and awaits disposal.
	RouteRemoving
	// RouteDisposed is terminal.
	RouteDisposed
)

func (s RouteStatus) String() string {
	switch s {
	case RoutePending:
		return "pending"
	case RouteInstalled:
		return "installed"
	case RoutePushing:
		return "pushing"
	case RouteIdle:
		return "idle"
	case RoutePopping:
		return "popping"
	case RouteRemoving:
		return "removing"
	case RouteDisposed:
		return "disposed"
	}
	return "unknown"
}

// Result is the one-shot future resolved when a route is finally removed
// from the history, whether by pop, replace, or removal. It resolves exactly
// once; completing it twice is a programming error and panics.
type Result struct {
	done      chan struct{}
	value     any
	completed bool
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

// Done returns a channel closed when the result is resolved.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Value returns the result value. It is the zero value until Done closes.
func (r *Result) Value() any {
	return r.value
}

// Resolved reports whether the result has been delivered.
func (r *Result) Resolved() bool {
	return r.completed
}

func (r *Result) complete(v any) {
	if r.completed {
		panic("sfoglia: route result completed twice")
	}
	r.completed = true
	r.value = v
	close(r.done)
}

// Route is one navigable unit managed by a Navigator. The lifecycle methods
// are unexported: the hierarchy is closed (TransitionRoute and ModalRoute),
// and application behavior is composed in through ModalRoute's build
// callbacks, pop scopes, and local history rather than through subclassing.
type Route interface {
	// Settings returns the identity data the route was created with.
	Settings() RouteSettings
	// Status returns the current lifecycle state.
	Status() RouteStatus
	// Result returns the future resolved on final removal.
	Result() *Result
	// Navigator returns the owning navigator, or nil before installation.
	Navigator() *Navigator
	// IsFirst reports whether the route is the bottom-most live entry.
	IsFirst() bool
	// IsCurrent reports whether the route is the top-most live entry.
	IsCurrent() bool

	install(nav *Navigator, self Route)
	didPush() <-chan struct{}
	didAdd()
	didPop(result any) (finished bool)
	didComplete(result any)
	didReplace(old Route)
	didChangeNext(next Route)
	didChangePrevious(prev Route)
	popDisposition() PopDisposition
	willHandlePop() bool
	handleLocalPop() bool
	popScopes() []*PopScope
	overlayEntries() []*OverlayEntry
	dispose()
}

// baseRoute supplies the state and lifecycle bookkeeping shared by every
// route variant.
type baseRoute struct {
	settings RouteSettings
	status   RouteStatus
	result   *Result
	nav      *Navigator
	self     Route
}

func newBaseRoute(settings RouteSettings) baseRoute {
	return baseRoute{
		settings: settings,
		status:   RoutePending,
		result:   newResult(),
	}
}

func (r *baseRoute) Settings() RouteSettings { return r.settings }
func (r *baseRoute) Status() RouteStatus     { return r.status }
func (r *baseRoute) Result() *Result         { return r.result }
func (r *baseRoute) Navigator() *Navigator   { return r.nav }

// IsFirst reports whether this route is the bottom of its navigator's live
// history.
func (r *baseRoute) IsFirst() bool {
	return r.nav != nil && r.nav.firstRoute() == r.self
}

// IsCurrent reports whether this route is the top of its navigator's live
// history.
func (r *baseRoute) IsCurrent() bool {
	return r.nav != nil && r.nav.TopRoute() == r.self
}

func (r *baseRoute) assertStatus(op string, allowed ...RouteStatus) {
	for _, s := range allowed {
		if r.status == s {
			return
		}
	}
	panic(fmt.Sprintf("sfoglia: %s on route %q in status %s", op, r.settings.Name, r.status))
}

func (r *baseRoute) install(nav *Navigator, self Route) {
	r.assertStatus("install", RoutePending)
	r.nav = nav
	r.self = self
	r.status = RouteInstalled
}

func (r *baseRoute) didPush() <-chan struct{} {
	r.assertStatus("didPush", RouteInstalled)
	r.status = RouteIdle
	return closedSignal
}

func (r *baseRoute) didAdd() {
	r.assertStatus("didAdd", RouteInstalled)
	r.status = RouteIdle
}

func (r *baseRoute) didPop(result any) bool {
	r.assertStatus("didPop", RouteIdle, RoutePushing)
	r.status = RoutePopping
	r.result.complete(result)
	return true
}

func (r *baseRoute) didComplete(result any) {
	r.assertStatus("didComplete", RouteInstalled, RoutePushing, RouteIdle)
	r.status = RouteRemoving
	r.result.complete(result)
}

func (r *baseRoute) didReplace(old Route) {
	r.didAdd()
}

func (r *baseRoute) didChangeNext(next Route)     {}
func (r *baseRoute) didChangePrevious(prev Route) {}

func (r *baseRoute) popDisposition() PopDisposition {
	if r.IsFirst() {
		return PopBubble
	}
	return PopProceed
}

func (r *baseRoute) willHandlePop() bool    { return false }
func (r *baseRoute) handleLocalPop() bool   { return false }
func (r *baseRoute) popScopes() []*PopScope { return nil }
func (r *baseRoute) overlayEntries() []*OverlayEntry {
	return nil
}

func (r *baseRoute) dispose() {
	if r.status == RouteDisposed {
		panic(fmt.Sprintf("sfoglia: route %q disposed twice", r.settings.Name))
	}
	r.status = RouteDisposed
}

var closedSignal = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()
