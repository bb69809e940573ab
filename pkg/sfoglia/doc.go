// Package sfoglia implements a route-stack navigation and transition engine:
// an ordered history of routes, the push/pop/replace operations that mutate
// it, pop negotiation, and the animation plumbing that moves routes on and
// off a shared overlay.
//
// The engine is renderer-agnostic. Routes produce opaque content through
// build callbacks; a platform presenter (see platform/sdlsurface) decides how
// that content reaches the screen. The engine also owns no clock: the host
// frame pump drives an anim.Ticker once per frame.
//
// # Basic Usage
//
//	ticker := anim.NewTicker()
//	nav := sfoglia.NewNavigator(sfoglia.NavigatorOptions{Ticker: ticker})
//
//	home := sfoglia.NewModalRoute(sfoglia.ModalOptions{
//	    Settings:  sfoglia.RouteSettings{Name: "home"},
//	    BuildPage: buildHome,
//	})
//	nav.Push(home)
//
//	// Later, from a menu selection:
//	detail := sfoglia.NewModalRoute(sfoglia.ModalOptions{
//	    Settings:  sfoglia.RouteSettings{Name: "detail", Arguments: item},
//	    BuildPage: buildDetail,
//	})
//	result := nav.Push(detail)
//
//	// Per frame:
//	ticker.Tick(elapsed)
//
//	// When the detail route pops, result carries the value it popped with:
//	<-result.Done()
//	use(result.Value())
//
// # Polite vs unconditional pops
//
// Pop always removes the top route. MaybePop first consults the route: a
// non-empty local sub-history consumes the attempt, a registered PopScope
// with CanPop false vetoes it, and the bottom-most route bubbles the attempt
// to the host so the platform can decide whether to exit. Hardware back
// intents arrive through a RootBackDispatcher and take the MaybePop path.
//
// All mutating methods must be called from the single host event-loop
// thread. The engine enforces this by design rather than locking; a
// reentrant structural mutation panics.
package sfoglia
