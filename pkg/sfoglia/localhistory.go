package sfoglia

// LocalHistoryEntry is one marker on a modal route's local sub-history: an
// undoable UI state (an expanded panel, a selection mode) that a polite pop
// unwinds before the route itself is considered for removal.
type LocalHistoryEntry struct {
	// OnRemove is invoked exactly once, when the entry leaves the
	// sub-history, whether by a local pop or an explicit Remove. May be nil.
	OnRemove func()
	// ImpliesBackAffordance marks states that should surface a back control
	// even when the route itself is the bottom of the stack.
	ImpliesBackAffordance bool

	owner   *ModalRoute
	removed bool
}

// Remove takes the entry off its route's sub-history explicitly, firing
// OnRemove. Idempotent; a no-op for entries never added.
func (e *LocalHistoryEntry) Remove() {
	if e.owner == nil || e.removed {
		return
	}
	e.owner.RemoveLocalHistoryEntry(e)
}

func (e *LocalHistoryEntry) notifyRemoved() {
	if e.removed {
		return
	}
	e.removed = true
	if e.OnRemove != nil {
		runRecovered("local history callback", e.OnRemove)
	}
}
