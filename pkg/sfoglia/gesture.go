package sfoglia

import "github.com/BrandonKowalski/sfoglia/pkg/sfoglia/anim"

// PopGesture drives a drag-to-go-back affordance. While the gesture is live
// the top route's primary animation follows the drag progress directly
// instead of a timer; on release the transition either commits (the route
// pops, animating out from wherever the finger left it) or cancels (the
// route animates back to fully shown). Obtain one from StartPopGesture.
type PopGesture struct {
	nav        *Navigator
	route      Route
	controller *anim.Controller
	finished   bool
}

// PopGestureEnabled reports whether a back gesture may begin: the stack can
// pop, the top route animates, it is settled, its sub-history is empty, no
// scope vetoes, and no other gesture is in progress.
func (n *Navigator) PopGestureEnabled() bool {
	if !n.CanPop() || n.gestureDepth > 0 {
		return false
	}
	entry := n.topPresent()
	t, ok := entry.route.(transitioner)
	if !ok {
		return false
	}
	if t.primaryController().Status() != anim.StatusCompleted {
		return false
	}
	if entry.route.willHandlePop() {
		return false
	}
	return entry.route.popDisposition() == PopProceed
}

// StartPopGesture begins an interactive pop on the current top route.
// Returns nil when PopGestureEnabled is false.
func (n *Navigator) StartPopGesture() *PopGesture {
	if !n.PopGestureEnabled() {
		return nil
	}
	entry := n.topPresent()
	t := entry.route.(transitioner)

	n.gestureDepth++
	idx := n.indexOf(entry.route)
	var belowRoute Route
	if below := n.presentBefore(idx); below != nil {
		belowRoute = below.route
	}
	n.notifyObservers(func(o NavigatorObserver) { o.DidStartUserGesture(entry.route, belowRoute) })

	return &PopGesture{
		nav:        n,
		route:      entry.route,
		controller: t.primaryController(),
	}
}

// Update feeds drag progress in [0,1], 0 meaning no movement and 1 meaning
// fully dragged off. The primary animation value tracks 1-progress.
func (g *PopGesture) Update(progress float64) {
	if g.finished {
		return
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	g.controller.Drive(1 - progress)
}

// Commit ends the gesture by popping the route. The exit transition resumes
// from the current value over a proportionally scaled duration, so a nearly
// finished drag settles quickly.
func (g *PopGesture) Commit() {
	if g.finished {
		return
	}
	g.finished = true
	g.nav.Pop(nil)
	g.end()
}

// Cancel ends the gesture keeping the route; the transition animates
// forward from the current value back to fully shown, never snapping.
func (g *PopGesture) Cancel() {
	if g.finished {
		return
	}
	g.finished = true
	g.controller.Settle(false)
	g.end()
}

func (g *PopGesture) end() {
	g.nav.gestureDepth--
	g.nav.notifyObservers(func(o NavigatorObserver) { o.DidStopUserGesture() })
}
