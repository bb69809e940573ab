package sfoglia

import (
	"image/color"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/l10n"
)

// ModalOptions configures a ModalRoute.
type ModalOptions struct {
	Settings RouteSettings

	// BuildPage produces the route's page content. Required.
	BuildPage func(BuildContext) Content
	// BuildTransitions optionally wraps the page in transition chrome. It
	// receives the route's primary and secondary animation values so the
	// wrapper can slide, fade, or dim without the page builder knowing
	// about transitions.
	BuildTransitions func(ctx BuildContext, primary, secondary float64, page Content) Content

	// BarrierColor fills the screen behind the page. The zero value means
	// no scrim.
	BarrierColor color.NRGBA
	// BarrierDismissible pops the route when the barrier is activated.
	BarrierDismissible bool
	// BarrierLabel is the accessibility label for the barrier. Empty means
	// the localized default dismiss label.
	BarrierLabel string

	// DiscardWhenInactive lets the presenter tear the page down while it is
	// fully obscured, rebuilding lazily when revealed. The default keeps
	// obscured pages alive.
	DiscardWhenInactive bool

	Transition TransitionOptions
}

// ModalRoute is the workhorse route variant: an animated route rendered on
// the overlay through a dismiss barrier plus a page surface, with a local
// sub-history and pop-scope registry for back-handling.
type ModalRoute struct {
	TransitionRoute

	barrierColor       color.NRGBA
	barrierDismissible bool
	barrierLabel       string
	maintainState      bool

	buildPage        func(BuildContext) Content
	buildTransitions func(BuildContext, float64, float64, Content) Content

	localHistory []*LocalHistoryEntry
	scopes       []*PopScope

	entries []*OverlayEntry
}

// NewModalRoute creates a modal route. BuildPage must be set.
func NewModalRoute(opts ModalOptions) *ModalRoute {
	if opts.BuildPage == nil {
		panic("sfoglia: ModalOptions.BuildPage is required")
	}

	label := opts.BarrierLabel
	if label == "" {
		label = l10n.For().BarrierDismiss
	}

	opts.Transition.Settings = opts.Settings
	m := &ModalRoute{
		barrierColor:       opts.BarrierColor,
		barrierDismissible: opts.BarrierDismissible,
		barrierLabel:       label,
		maintainState:      !opts.DiscardWhenInactive,
		buildPage:          opts.BuildPage,
		buildTransitions:   opts.BuildTransitions,
	}
	m.TransitionRoute.init(opts.Transition)
	return m
}

// BarrierColor returns the scrim color behind the page.
func (m *ModalRoute) BarrierColor() color.NRGBA { return m.barrierColor }

// BarrierDismissible reports whether activating the barrier pops the route.
func (m *ModalRoute) BarrierDismissible() bool { return m.barrierDismissible }

// BarrierLabel returns the barrier's accessibility label.
func (m *ModalRoute) BarrierLabel() string { return m.barrierLabel }

// MaintainState reports whether the page keeps building while fully
// obscured.
func (m *ModalRoute) MaintainState() bool { return m.maintainState }

func (m *ModalRoute) install(nav *Navigator, self Route) {
	m.TransitionRoute.install(nav, self)

	barrier := &OverlayEntry{Owner: self, Build: m.buildBarrier}
	page := &OverlayEntry{Owner: self, Build: m.buildPageSurface, maintainState: m.maintainState}
	m.entries = []*OverlayEntry{barrier, page}
}

func (m *ModalRoute) overlayEntries() []*OverlayEntry {
	return m.entries
}

func (m *ModalRoute) buildBarrier(ctx BuildContext) Content {
	return Barrier{
		Color:       m.barrierColor,
		Opacity:     m.PrimaryValue(),
		Label:       m.barrierLabel,
		Dismissible: m.barrierDismissible,
		Route:       m.self,
	}
}

func (m *ModalRoute) buildPageSurface(ctx BuildContext) Content {
	ctx.route = m.self
	page := m.buildPage(ctx)
	if m.buildTransitions == nil {
		return page
	}
	return m.buildTransitions(ctx, m.PrimaryValue(), m.SecondaryValue(), page)
}

// AddLocalHistoryEntry pushes an undoable UI state onto the route's local
// sub-history. While the sub-history is non-empty, polite pop attempts
// unwind it one entry at a time instead of removing the route.
func (m *ModalRoute) AddLocalHistoryEntry(e *LocalHistoryEntry) {
	if e.owner != nil {
		panic("sfoglia: local history entry added twice")
	}
	e.owner = m
	m.localHistory = append(m.localHistory, e)
}

// RemoveLocalHistoryEntry takes e off the sub-history explicitly, firing its
// OnRemove callback. Removing an entry that already left is a no-op.
func (m *ModalRoute) RemoveLocalHistoryEntry(e *LocalHistoryEntry) {
	if e.owner != m {
		return
	}
	for i, existing := range m.localHistory {
		if existing == e {
			m.localHistory = append(m.localHistory[:i], m.localHistory[i+1:]...)
			break
		}
	}
	e.notifyRemoved()
}

// LocalHistoryDepth returns the number of pending sub-history entries.
func (m *ModalRoute) LocalHistoryDepth() int { return len(m.localHistory) }

// ImpliesBackAffordance reports whether any pending sub-history entry wants
// a back control shown.
func (m *ModalRoute) ImpliesBackAffordance() bool {
	for _, e := range m.localHistory {
		if e.ImpliesBackAffordance {
			return true
		}
	}
	return false
}

// RegisterPopScope adds a pop negotiator. Registering the same scope twice
// is a no-op.
func (m *ModalRoute) RegisterPopScope(s *PopScope) {
	for _, existing := range m.scopes {
		if existing == s {
			return
		}
	}
	m.scopes = append(m.scopes, s)
}

// UnregisterPopScope removes a pop negotiator. Idempotent.
func (m *ModalRoute) UnregisterPopScope(s *PopScope) {
	for i, existing := range m.scopes {
		if existing == s {
			m.scopes = append(m.scopes[:i], m.scopes[i+1:]...)
			return
		}
	}
}

func (m *ModalRoute) willHandlePop() bool {
	return len(m.localHistory) > 0
}

// handleLocalPop removes the top sub-history entry, consuming one polite pop
// attempt.
func (m *ModalRoute) handleLocalPop() bool {
	if len(m.localHistory) == 0 {
		return false
	}
	top := m.localHistory[len(m.localHistory)-1]
	m.localHistory = m.localHistory[:len(m.localHistory)-1]
	top.notifyRemoved()
	return true
}

func (m *ModalRoute) popDisposition() PopDisposition {
	// Negotiators outrank everything, including the bottom-most route's
	// bubble: a veto on the first route must still reject the attempt
	// rather than hand it to the host.
	for _, s := range m.scopes {
		if !s.CanPop.Get() {
			return PopReject
		}
	}
	if m.IsFirst() {
		return PopBubble
	}
	return PopProceed
}

func (m *ModalRoute) popScopes() []*PopScope {
	out := make([]*PopScope, len(m.scopes))
	copy(out, m.scopes)
	return out
}

func (m *ModalRoute) dispose() {
	// Entries that never left the sub-history still owe their callbacks an
	// exactly-once removal notification.
	for i := len(m.localHistory) - 1; i >= 0; i-- {
		m.localHistory[i].notifyRemoved()
	}
	m.localHistory = nil
	m.scopes = nil
	m.entries = nil
	m.TransitionRoute.dispose()
}
