package sfoglia

// BackDispatcher routes a platform back intent to exactly one handler.
// A RootBackDispatcher listens to the platform directly; nested navigation
// scopes hang ChildBackDispatchers off it and claim priority, most recently
// claimed first.
type BackDispatcher interface {
	// AddCallback registers a handler. Handlers return true when they
	// consumed the intent.
	AddCallback(fn func() bool) *BackRegistration
	// InvokeCallback offers the intent to this dispatcher's subtree.
	// Returns false when nothing handled it, letting the platform fall
	// back to its default behavior (typically app suspension).
	InvokeCallback() bool

	claim(child *ChildBackDispatcher)
	unclaim(child *ChildBackDispatcher)
}

type backCallback struct {
	fn      func() bool
	removed bool
}

// BackRegistration removes a registered back callback. Idempotent.
type BackRegistration struct {
	core *dispatcherCore
	cb   *backCallback
}

// Remove unregisters the callback. When it was the owner's last callback,
// a child dispatcher also unregisters itself from its parent so a torn-down
// scope is never consulted again.
func (r *BackRegistration) Remove() {
	if r == nil || r.cb.removed {
		return
	}
	r.cb.removed = true
	r.core.remove(r.cb)
}

// dispatcherCore holds the callback list and claimed children shared by the
// root and child dispatchers.
type dispatcherCore struct {
	callbacks []*backCallback
	children  []*ChildBackDispatcher
	onEmpty   func()
}

func (c *dispatcherCore) add(fn func() bool) *BackRegistration {
	cb := &backCallback{fn: fn}
	c.callbacks = append(c.callbacks, cb)
	return &BackRegistration{core: c, cb: cb}
}

func (c *dispatcherCore) remove(cb *backCallback) {
	for i, existing := range c.callbacks {
		if existing == cb {
			c.callbacks = append(c.callbacks[:i], c.callbacks[i+1:]...)
			break
		}
	}
	if len(c.callbacks) == 0 && c.onEmpty != nil {
		c.onEmpty()
	}
}

func (c *dispatcherCore) claim(child *ChildBackDispatcher) {
	c.unclaim(child)
	c.children = append([]*ChildBackDispatcher{child}, c.children...)
}

func (c *dispatcherCore) unclaim(child *ChildBackDispatcher) {
	for i, existing := range c.children {
		if existing == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

// invoke offers the intent to claimed children in priority order, then to
// this dispatcher's own most recent callback.
func (c *dispatcherCore) invoke() bool {
	children := make([]*ChildBackDispatcher, len(c.children))
	copy(children, c.children)
	for _, child := range children {
		if child.InvokeCallback() {
			return true
		}
	}
	if len(c.callbacks) == 0 {
		return false
	}
	return c.callbacks[len(c.callbacks)-1].fn()
}

// RootBackDispatcher is the platform-facing end of the hierarchy. Wire the
// platform back-button source (see platform/evdevback) to InvokeCallback.
type RootBackDispatcher struct {
	core dispatcherCore
}

// NewRootBackDispatcher creates a root dispatcher with no handlers.
func NewRootBackDispatcher() *RootBackDispatcher {
	return &RootBackDispatcher{}
}

// AddCallback registers a handler on the root itself; it runs only when no
// claimed child handles the intent.
func (d *RootBackDispatcher) AddCallback(fn func() bool) *BackRegistration {
	return d.core.add(fn)
}

// InvokeCallback dispatches a platform back intent through the hierarchy.
func (d *RootBackDispatcher) InvokeCallback() bool {
	return d.core.invoke()
}

func (d *RootBackDispatcher) claim(child *ChildBackDispatcher)   { d.core.claim(child) }
func (d *RootBackDispatcher) unclaim(child *ChildBackDispatcher) { d.core.unclaim(child) }

// ChildBackDispatcher serves one nested navigation scope. It is consulted
// only while it holds at least one callback and has claimed priority on its
// parent; removing its last callback releases the claim automatically.
type ChildBackDispatcher struct {
	core   dispatcherCore
	parent BackDispatcher
}

// NewChildBackDispatcher creates a dispatcher deferring to parent. The
// parent may itself be a child, nesting arbitrarily deep.
func NewChildBackDispatcher(parent BackDispatcher) *ChildBackDispatcher {
	c := &ChildBackDispatcher{parent: parent}
	c.core.onEmpty = func() { parent.unclaim(c) }
	return c
}

// AddCallback registers a handler and claims priority on the parent, so the
// most recently active scope sees back intents first.
func (d *ChildBackDispatcher) AddCallback(fn func() bool) *BackRegistration {
	reg := d.core.add(fn)
	d.TakePriority()
	return reg
}

// TakePriority moves this child to the front of its parent's consultation
// order.
func (d *ChildBackDispatcher) TakePriority() {
	d.parent.claim(d)
}

// ReleasePriority withdraws the child from its parent's consultation order
// without dropping its callbacks.
func (d *ChildBackDispatcher) ReleasePriority() {
	d.parent.unclaim(d)
}

// InvokeCallback offers the intent to this child's own subtree.
func (d *ChildBackDispatcher) InvokeCallback() bool {
	return d.core.invoke()
}

func (d *ChildBackDispatcher) claim(child *ChildBackDispatcher)   { d.core.claim(child) }
func (d *ChildBackDispatcher) unclaim(child *ChildBackDispatcher) { d.core.unclaim(child) }

// BindNavigator attaches a navigator's polite pop path to a dispatcher: a
// back intent is handled unless the navigator bubbles it. Remove the
// returned registration when the navigator is torn down.
func BindNavigator(d BackDispatcher, n *Navigator) *BackRegistration {
	return d.AddCallback(func() bool {
		return n.MaybePop(nil) != PopResultBubbled
	})
}
