package sfoglia

import (
	"image/color"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/signal"
)

// Content is the opaque visual value a build callback produces. The engine
// never inspects it; presenters define the concrete types they accept.
type Content any

// BuildContext is the handle passed to build callbacks.
type BuildContext struct {
	nav   *Navigator
	route Route
}

// Navigator returns the navigator that owns the building route.
func (c BuildContext) Navigator() *Navigator { return c.nav }

// Route returns the route being built, or nil for presenter-driven builds
// that are not tied to one route.
func (c BuildContext) Route() Route { return c.route }

// Barrier is the content produced by a modal route's barrier surface. A
// presenter fills the screen behind the page with Color scaled by Opacity;
// Dismissible barriers pop the route when activated.
type Barrier struct {
	Color       color.NRGBA
	Opacity     float64
	Label       string
	Dismissible bool
	Route       Route
}

// OverlayEntry is one layered surface on the shared overlay stack.
type OverlayEntry struct {
	// Build produces the surface content. Called by the presenter each
	// frame the entry is visible.
	Build func(BuildContext) Content
	// Owner is the route the surface belongs to, or nil for free-standing
	// entries.
	Owner Route

	maintainState bool
	overlay       *Overlay
}

// MaintainState reports whether the surface must keep building even while
// entirely obscured by an opaque route above it. Surfaces without it may be
// torn down and rebuilt lazily.
func (e *OverlayEntry) MaintainState() bool { return e.maintainState }

// Overlay is the shared z-ordered surface stack routes are composited on.
// Only the owning navigator mutates it; presenters read Entries and
// subscribe to OnChange.
type Overlay struct {
	entries []*OverlayEntry
	changed signal.Notifier
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Entries returns the surfaces bottom-to-top.
func (o *Overlay) Entries() []*OverlayEntry {
	out := make([]*OverlayEntry, len(o.entries))
	copy(out, o.entries)
	return out
}

// OnChange subscribes to overlay mutations.
func (o *Overlay) OnChange(fn func()) *signal.Subscription {
	return o.changed.Add(fn)
}

// insertAll inserts entries (in order) immediately below anchor, or on top
// when anchor is nil.
func (o *Overlay) insertAll(entries []*OverlayEntry, anchor *OverlayEntry) {
	if len(entries) == 0 {
		return
	}
	for _, e := range entries {
		e.overlay = o
	}

	at := len(o.entries)
	if anchor != nil {
		for i, existing := range o.entries {
			if existing == anchor {
				at = i
				break
			}
		}
	}

	o.entries = append(o.entries[:at], append(append([]*OverlayEntry{}, entries...), o.entries[at:]...)...)
	o.changed.Notify()
}

// removeAll detaches entries from the overlay. Entries not present are
// ignored.
func (o *Overlay) removeAll(entries []*OverlayEntry) {
	if len(entries) == 0 {
		return
	}

	doomed := make(map[*OverlayEntry]struct{}, len(entries))
	for _, e := range entries {
		doomed[e] = struct{}{}
		e.overlay = nil
	}

	kept := o.entries[:0]
	for _, e := range o.entries {
		if _, gone := doomed[e]; !gone {
			kept = append(kept, e)
		}
	}
	o.entries = kept
	o.changed.Notify()
}
