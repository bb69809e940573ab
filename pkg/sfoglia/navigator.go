package sfoglia

import (
	"fmt"
	"log/slog"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/anim"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/internal"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/signal"
)

// PopResult is the outcome of a polite pop attempt.
type PopResult int

const (
	// PopResultBubbled means no route handled the attempt; the host
	// environment decides what happens (typically app exit or suspension).
	PopResultBubbled PopResult = iota
	// PopResultHandled means the attempt was consumed without removing a
	// route: a local sub-history entry was unwound, or a pop scope vetoed.
	PopResultHandled
	// PopResultPopped means the top route was removed.
	PopResultPopped
)

func (r PopResult) String() string {
	switch r {
	case PopResultBubbled:
		return "bubbled"
	case PopResultHandled:
		return "handled"
	case PopResultPopped:
		return "popped"
	}
	return "unknown"
}

// NavigatorOptions configures a Navigator.
type NavigatorOptions struct {
	// Ticker is the frame-pump registry route animations attach to. A
	// private one is created when nil; hosts that drive frames should pass
	// their own and call Tick on it.
	Ticker *anim.Ticker
	// Overlay is the surface stack routes composite onto. Created when nil.
	Overlay *Overlay
	// Observers receive structural change notifications.
	Observers []NavigatorObserver
	// OnGenerateRoute builds a route for an externally-supplied
	// configuration (deep links via SetNewRoutePath). Optional.
	OnGenerateRoute func(RouteSettings) Route
	// Logger overrides the engine logger.
	Logger *slog.Logger
}

// historyEntry pairs a route with the navigator's transient bookkeeping,
// kept apart from the route's own lifecycle status. A doomed entry was
// popped and is playing its exit transition; it no longer counts as present
// but still holds overlay surfaces.
type historyEntry struct {
	route  Route
	doomed bool
}

// Navigator owns the ordered route history and is the only mutator of the
// shared overlay. All structural operations (push, pop, replace, remove)
// perform their history and lifecycle bookkeeping synchronously and are
// guarded against reentrancy; animation playback proceeds asynchronously via
// the ticker.
//
// Not safe for concurrent use: every method must run on the host event-loop
// thread.
type Navigator struct {
	overlay   *Overlay
	ticker    *anim.Ticker
	history   []*historyEntry
	observers []NavigatorObserver

	onGenerateRoute func(RouteSettings) Route
	log             *slog.Logger

	mutating     atomic.Bool
	gestureDepth int
}

// NewNavigator creates an empty navigator.
func NewNavigator(opts NavigatorOptions) *Navigator {
	if opts.Ticker == nil {
		opts.Ticker = anim.NewTicker()
	}
	if opts.Overlay == nil {
		opts.Overlay = NewOverlay()
	}
	if opts.Logger == nil {
		opts.Logger = internal.Logger()
	}
	return &Navigator{
		overlay:         opts.Overlay,
		ticker:          opts.Ticker,
		observers:       opts.Observers,
		onGenerateRoute: opts.OnGenerateRoute,
		log:             opts.Logger,
	}
}

// Overlay returns the surface stack presenters read from.
func (n *Navigator) Overlay() *Overlay { return n.overlay }

// Ticker returns the registry the host frame pump must advance.
func (n *Navigator) Ticker() *anim.Ticker { return n.ticker }

// BuildContext returns the handle presenters pass to overlay builds.
func (n *Navigator) BuildContext() BuildContext {
	return BuildContext{nav: n}
}

// Length returns the number of live (non-exiting) routes.
func (n *Navigator) Length() int {
	count := 0
	for _, e := range n.history {
		if !e.doomed {
			count++
		}
	}
	return count
}

// TopRoute returns the current route, or nil when the stack is empty.
func (n *Navigator) TopRoute() Route {
	if e := n.topPresent(); e != nil {
		return e.route
	}
	return nil
}

// Routes returns the live history bottom-to-top.
func (n *Navigator) Routes() []Route {
	out := make([]Route, 0, len(n.history))
	for _, e := range n.history {
		if !e.doomed {
			out = append(out, e.route)
		}
	}
	return out
}

// CanPop reports whether an unconditional pop would leave at least one
// route behind.
func (n *Navigator) CanPop() bool {
	return n.Length() > 1
}

// ImpliesBackAffordance reports whether the UI should show a back control:
// either the stack can pop, or the current route's local sub-history asks
// for one.
func (n *Navigator) ImpliesBackAffordance() bool {
	if n.CanPop() {
		return true
	}
	if m, ok := n.TopRoute().(*ModalRoute); ok {
		return m.ImpliesBackAffordance()
	}
	return false
}

// CurrentConfiguration returns an opaque snapshot of the top-of-stack state
// for a host URL/route-information layer.
func (n *Navigator) CurrentConfiguration() RouteSettings {
	if top := n.TopRoute(); top != nil {
		return top.Settings()
	}
	return RouteSettings{}
}

// SetNewRoutePath is the entry point for externally-driven navigation such
// as deep links. The configured OnGenerateRoute factory maps the
// configuration to a route, which is then pushed.
func (n *Navigator) SetNewRoutePath(configuration RouteSettings) (*Result, error) {
	if n.onGenerateRoute == nil {
		return nil, ErrNoRouteFactory
	}
	route := n.onGenerateRoute(configuration)
	if route == nil {
		return nil, fmt.Errorf("%w: %q", ErrRouteNotFound, configuration.Name)
	}
	return n.Push(route), nil
}

// Push installs route above the current top, adds its surfaces to the
// overlay, and starts its enter transition. The returned Result resolves
// when the route is finally removed.
func (n *Navigator) Push(route Route) *Result {
	if route == nil {
		panic("sfoglia: Push of nil route")
	}

	endMutation := n.beginMutation("Push")
	prev := n.topPresent()

	n.history = append(n.history, &historyEntry{route: route})
	route.install(n, route)
	n.overlay.insertAll(route.overlayEntries(), nil)

	if prev != nil {
		prev.route.didChangeNext(route)
		route.didChangePrevious(prev.route)
	} else {
		route.didChangePrevious(nil)
	}
	endMutation()

	route.didPush()

	var prevRoute Route
	if prev != nil {
		prevRoute = prev.route
	}
	n.notifyObservers(func(o NavigatorObserver) { o.DidPush(route, prevRoute) })

	return route.Result()
}

// Add installs route above the current top without a transition, as used
// for an initial route.
func (n *Navigator) Add(route Route) *Result {
	if route == nil {
		panic("sfoglia: Add of nil route")
	}

	endMutation := n.beginMutation("Add")
	prev := n.topPresent()

	n.history = append(n.history, &historyEntry{route: route})
	route.install(n, route)
	n.overlay.insertAll(route.overlayEntries(), nil)
	route.didAdd()

	if prev != nil {
		prev.route.didChangeNext(route)
		route.didChangePrevious(prev.route)
	} else {
		route.didChangePrevious(nil)
	}
	endMutation()

	var prevRoute Route
	if prev != nil {
		prevRoute = prev.route
	}
	n.notifyObservers(func(o NavigatorObserver) { o.DidPush(route, prevRoute) })

	return route.Result()
}

// Pop unconditionally removes the top route, resolving its result with
// result and starting its exit transition. Registered pop scopes are
// notified but cannot veto. Popping an empty navigator panics.
func (n *Navigator) Pop(result any) {
	endMutation := n.beginMutation("Pop")
	entry := n.topPresent()
	if entry == nil {
		endMutation()
		panic("sfoglia: Pop on an empty navigator")
	}

	// Scope callbacks fire before any teardown becomes visible.
	for _, s := range entry.route.popScopes() {
		s.invoke(true, result)
	}

	entry.doomed = true
	finished := entry.route.didPop(result)
	if finished {
		n.finalizeLocked(entry)
	}
	endMutation()

	newTop := n.TopRoute()
	n.notifyObservers(func(o NavigatorObserver) { o.DidPop(entry.route, newTop) })
}

// MaybePop is the polite pop path, the one back intents take. Precedence:
// a non-empty local sub-history on the current route consumes the attempt
// entirely; otherwise any registered pop scope reading CanPop false rejects
// it (scopes are told didPop=false); otherwise the route's disposition
// decides, the bottom-most route bubbling the attempt to the host.
func (n *Navigator) MaybePop(result any) PopResult {
	entry := n.topPresent()
	if entry == nil {
		return PopResultBubbled
	}
	route := entry.route

	if route.willHandlePop() {
		route.handleLocalPop()
		return PopResultHandled
	}

	switch route.popDisposition() {
	case PopBubble:
		return PopResultBubbled
	case PopReject:
		for _, s := range route.popScopes() {
			s.invoke(false, result)
		}
		return PopResultHandled
	default:
		n.Pop(result)
		return PopResultPopped
	}
}

// PopUntil unconditionally pops routes until pred returns true for the
// current top, which stays. A predicate that never matches stops at the
// bottom-most route and leaves it in place; the stack is never popped to
// empty through this path.
func (n *Navigator) PopUntil(pred func(Route) bool) {
	for {
		entry := n.topPresent()
		if entry == nil || pred(entry.route) {
			return
		}
		if n.Length() == 1 {
			n.log.Warn("PopUntil predicate never matched; keeping first route",
				"route", entry.route.Settings().Name)
			return
		}
		n.Pop(nil)
	}
}

// PushAndRemoveUntil pushes route and removes every live route above (and
// not including) the first one pred accepts. The removed routes skip their
// exit transitions; their surfaces stay on the overlay until the new
// route's enter transition settles so the swap reads as one transition, not
// a flicker of pops. A predicate that never matches clears every existing
// route.
func (n *Navigator) PushAndRemoveUntil(route Route, pred func(Route) bool) *Result {
	if route == nil {
		panic("sfoglia: PushAndRemoveUntil of nil route")
	}

	endMutation := n.beginMutation("PushAndRemoveUntil")

	var removed []*historyEntry
	var survivor *historyEntry
	for i := len(n.history) - 1; i >= 0; i-- {
		e := n.history[i]
		if e.doomed {
			continue
		}
		if pred(e.route) {
			survivor = e
			break
		}
		removed = append(removed, e)
	}

	n.history = append(n.history, &historyEntry{route: route})
	route.install(n, route)
	n.overlay.insertAll(route.overlayEntries(), nil)

	for _, e := range removed {
		e.route.didComplete(nil)
		n.removeFromHistory(e)
	}

	if survivor != nil {
		survivor.route.didChangeNext(route)
		route.didChangePrevious(survivor.route)
	} else {
		route.didChangePrevious(nil)
	}
	endMutation()

	route.didPush()

	teardown := func() {
		for _, e := range removed {
			n.overlay.removeAll(e.route.overlayEntries())
			e.route.dispose()
		}
	}
	if t, ok := route.(transitioner); ok && t.primaryController().Animating() {
		c := t.primaryController()
		var sub *signal.Subscription
		sub = c.OnStatus(func() {
			if c.Status() == anim.StatusCompleted || c.Status() == anim.StatusDismissed {
				sub.Remove()
				teardown()
			}
		})
	} else {
		teardown()
	}

	var prevRoute Route
	if survivor != nil {
		prevRoute = survivor.route
	}
	n.notifyObservers(func(o NavigatorObserver) { o.DidPush(route, prevRoute) })
	for _, e := range removed {
		removedRoute := e.route
		n.notifyObservers(func(o NavigatorObserver) { o.DidRemove(removedRoute, prevRoute) })
	}

	return route.Result()
}

// Replace atomically swaps newRoute into oldRoute's history position with
// no transition. oldRoute's result resolves with nil. Replacing a route not
// in the live history panics.
func (n *Navigator) Replace(oldRoute, newRoute Route) {
	if newRoute == nil {
		panic("sfoglia: Replace with nil route")
	}

	endMutation := n.beginMutation("Replace")
	idx := n.indexOf(oldRoute)
	if idx < 0 {
		endMutation()
		panic("sfoglia: Replace of a route not in the history")
	}

	n.history[idx] = &historyEntry{route: newRoute}
	newRoute.install(n, newRoute)

	oldEntries := oldRoute.overlayEntries()
	var anchor *OverlayEntry
	if len(oldEntries) > 0 {
		anchor = oldEntries[0]
	}
	n.overlay.insertAll(newRoute.overlayEntries(), anchor)

	newRoute.didReplace(oldRoute)
	oldRoute.didComplete(nil)
	n.overlay.removeAll(oldEntries)
	oldRoute.dispose()

	below := n.presentBefore(idx)
	above := n.presentAfter(idx)
	if below != nil {
		below.route.didChangeNext(newRoute)
		newRoute.didChangePrevious(below.route)
	} else {
		newRoute.didChangePrevious(nil)
	}
	if above != nil {
		above.route.didChangePrevious(newRoute)
		newRoute.didChangeNext(above.route)
	}
	endMutation()

	n.notifyObservers(func(o NavigatorObserver) { o.DidReplace(newRoute, oldRoute) })
}

// RemoveRoute removes route from anywhere in the live history with no
// transition, resolving its result with nil. Removing a route not in the
// live history panics.
func (n *Navigator) RemoveRoute(route Route) {
	endMutation := n.beginMutation("RemoveRoute")
	idx := n.indexOf(route)
	if idx < 0 {
		endMutation()
		panic("sfoglia: RemoveRoute of a route not in the history")
	}
	entry := n.history[idx]

	entry.route.didComplete(nil)
	n.removeFromHistory(entry)
	n.overlay.removeAll(entry.route.overlayEntries())

	below := n.presentBefore(idx)
	above := n.presentFrom(idx)
	if below != nil {
		var aboveRoute Route
		if above != nil {
			aboveRoute = above.route
		}
		below.route.didChangeNext(aboveRoute)
	}
	if above != nil {
		var belowRoute Route
		if below != nil {
			belowRoute = below.route
		}
		above.route.didChangePrevious(belowRoute)
	}
	entry.route.dispose()
	endMutation()

	var prevRoute Route
	if below != nil {
		prevRoute = below.route
	}
	n.notifyObservers(func(o NavigatorObserver) { o.DidRemove(route, prevRoute) })
}

// Dispose tears the whole stack down without transitions. Routes whose
// result has not resolved yet resolve with no value.
func (n *Navigator) Dispose() {
	endMutation := n.beginMutation("Dispose")
	for i := len(n.history) - 1; i >= 0; i-- {
		route := n.history[i].route
		if !route.Result().Resolved() {
			route.didComplete(nil)
		}
		n.overlay.removeAll(route.overlayEntries())
		if route.Status() != RouteDisposed {
			route.dispose()
		}
	}
	n.history = nil
	endMutation()
}

// finalizeRoute completes a pop whose exit transition has settled: the
// route's surfaces leave the overlay and the route is disposed. Called by
// the route's own animation bookkeeping.
func (n *Navigator) finalizeRoute(route Route) {
	endMutation := n.beginMutation("finalize")
	for _, e := range n.history {
		if e.route == route && e.doomed {
			n.finalizeLocked(e)
			break
		}
	}
	endMutation()
}

// finalizeLocked must run inside an active mutation.
func (n *Navigator) finalizeLocked(entry *historyEntry) {
	idx := -1
	for i, e := range n.history {
		if e == entry {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	n.history = append(n.history[:idx], n.history[idx+1:]...)
	n.overlay.removeAll(entry.route.overlayEntries())

	below := n.presentBefore(idx)
	above := n.presentFrom(idx)
	if below != nil {
		var aboveRoute Route
		if above != nil {
			aboveRoute = above.route
		}
		below.route.didChangeNext(aboveRoute)
	}
	if above != nil {
		var belowRoute Route
		if below != nil {
			belowRoute = below.route
		}
		above.route.didChangePrevious(belowRoute)
	}
	entry.route.dispose()
}

func (n *Navigator) beginMutation(op string) func() {
	if !n.mutating.CompareAndSwap(false, true) {
		panic("sfoglia: reentrant navigator mutation in " + op)
	}
	return func() { n.mutating.Store(false) }
}

func (n *Navigator) inMutation() bool {
	return n.mutating.Load()
}

func (n *Navigator) notifyObservers(fn func(NavigatorObserver)) {
	for _, o := range n.observers {
		observer := o
		runRecovered("navigator observer", func() { fn(observer) })
	}
}

func (n *Navigator) topPresent() *historyEntry {
	for i := len(n.history) - 1; i >= 0; i-- {
		if !n.history[i].doomed {
			return n.history[i]
		}
	}
	return nil
}

func (n *Navigator) firstRoute() Route {
	for _, e := range n.history {
		if !e.doomed {
			return e.route
		}
	}
	return nil
}

// presentBefore returns the closest live entry strictly below index idx.
func (n *Navigator) presentBefore(idx int) *historyEntry {
	if idx > len(n.history) {
		idx = len(n.history)
	}
	for i := idx - 1; i >= 0; i-- {
		if !n.history[i].doomed {
			return n.history[i]
		}
	}
	return nil
}

// presentFrom returns the closest live entry at or above index idx.
func (n *Navigator) presentFrom(idx int) *historyEntry {
	for i := idx; i < len(n.history); i++ {
		if !n.history[i].doomed {
			return n.history[i]
		}
	}
	return nil
}

// presentAfter returns the closest live entry strictly above index idx.
func (n *Navigator) presentAfter(idx int) *historyEntry {
	return n.presentFrom(idx + 1)
}

func (n *Navigator) indexOf(route Route) int {
	for i, e := range n.history {
		if e.route == route && !e.doomed {
			return i
		}
	}
	return -1
}

func (n *Navigator) removeFromHistory(entry *historyEntry) {
	for i, e := range n.history {
		if e == entry {
			n.history = append(n.history[:i], n.history[i+1:]...)
			return
		}
	}
}
