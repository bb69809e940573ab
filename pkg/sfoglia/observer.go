package sfoglia

import "github.com/BrandonKowalski/sfoglia/pkg/sfoglia/internal"

// NavigatorObserver receives side-channel notifications about structural
// history changes. Observers cannot veto anything; they fire only after each
// operation's history mutation is complete, so querying navigator state from
// a callback sees the post-mutation stack.
//
// A panicking observer is recovered and logged; the remaining observers are
// still notified and the navigation itself is unaffected.
type NavigatorObserver interface {
	// DidPush fires after route was pushed above previous (nil when route
	// is the first entry).
	DidPush(route, previous Route)
	// DidPop fires after route was popped, exposing the new top (nil when
	// the stack emptied).
	DidPop(route, previous Route)
	// DidRemove fires after route was removed without a pop transition.
	DidRemove(route, previous Route)
	// DidReplace fires after newRoute took oldRoute's position.
	DidReplace(newRoute, oldRoute Route)
	// DidStartUserGesture fires when an interactive pop gesture begins on
	// route, previous being the route it would reveal.
	DidStartUserGesture(route, previous Route)
	// DidStopUserGesture fires when the gesture ends, committed or not.
	DidStopUserGesture()
}

// BaseObserver is a no-op NavigatorObserver for embedding, so observers only
// implement the callbacks they care about.
type BaseObserver struct{}

func (BaseObserver) DidPush(route, previous Route)             {}
func (BaseObserver) DidPop(route, previous Route)              {}
func (BaseObserver) DidRemove(route, previous Route)           {}
func (BaseObserver) DidReplace(newRoute, oldRoute Route)       {}
func (BaseObserver) DidStartUserGesture(route, previous Route) {}
func (BaseObserver) DidStopUserGesture()                       {}

// RouteAware is implemented by components that want to know when their route
// gains or loses the top of the stack. Register with a RouteObserver.
type RouteAware interface {
	// DidPush fires when the subscribed route is pushed.
	DidPush()
	// DidPushNext fires when another route is pushed above the subscribed
	// route.
	DidPushNext()
	// DidPop fires when the subscribed route is popped.
	DidPop()
	// DidPopNext fires when the route above the subscribed route pops,
	// making it current again.
	DidPopNext()
}

// RouteObserver fans navigator events out to RouteAware subscribers keyed by
// route. Install one RouteObserver on the navigator and let any number of
// components subscribe against their own route.
type RouteObserver struct {
	BaseObserver
	subscribers map[Route][]RouteAware
}

// NewRouteObserver creates an empty aggregator.
func NewRouteObserver() *RouteObserver {
	return &RouteObserver{subscribers: make(map[Route][]RouteAware)}
}

// Subscribe registers aware against route. The DidPush callback fires
// immediately if the route is already current.
func (o *RouteObserver) Subscribe(aware RouteAware, route Route) {
	for _, existing := range o.subscribers[route] {
		if existing == aware {
			return
		}
	}
	o.subscribers[route] = append(o.subscribers[route], aware)
	if route.IsCurrent() {
		runRecovered("route aware callback", aware.DidPush)
	}
}

// Unsubscribe removes aware from every route it was subscribed against.
func (o *RouteObserver) Unsubscribe(aware RouteAware) {
	for route, awares := range o.subscribers {
		kept := awares[:0]
		for _, a := range awares {
			if a != aware {
				kept = append(kept, a)
			}
		}
		if len(kept) == 0 {
			delete(o.subscribers, route)
		} else {
			o.subscribers[route] = kept
		}
	}
}

// DidPush notifies the pushed route's subscribers and tells the previous
// route's subscribers they were covered.
func (o *RouteObserver) DidPush(route, previous Route) {
	o.each(route, RouteAware.DidPush)
	o.each(previous, RouteAware.DidPushNext)
}

// DidPop notifies the popped route's subscribers and tells the revealed
// route's subscribers they are current again.
func (o *RouteObserver) DidPop(route, previous Route) {
	o.each(route, RouteAware.DidPop)
	o.each(previous, RouteAware.DidPopNext)
}

func (o *RouteObserver) each(route Route, fn func(RouteAware)) {
	if route == nil {
		return
	}
	for _, aware := range o.subscribers[route] {
		a := aware
		runRecovered("route aware callback", func() { fn(a) })
	}
}

// runRecovered executes an application callback, converting a panic into a
// log entry so a misbehaving observer cannot abort the structural operation
// in progress.
func runRecovered(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			internal.Logger().Error("recovered panic in "+what, "panic", r)
		}
	}()
	fn()
}
