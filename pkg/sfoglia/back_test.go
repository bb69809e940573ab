package sfoglia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootDispatcherInvokesMostRecentCallback(t *testing.T) {
	root := NewRootBackDispatcher()
	assert.False(t, root.InvokeCallback(), "no handlers means the platform keeps the intent")

	var order []string
	root.AddCallback(func() bool {
		order = append(order, "first")
		return true
	})
	second := root.AddCallback(func() bool {
		order = append(order, "second")
		return true
	})

	assert.True(t, root.InvokeCallback())
	assert.Equal(t, []string{"second"}, order)

	second.Remove()
	assert.True(t, root.InvokeCallback())
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestChildDispatcherTakesPriorityOverRoot(t *testing.T) {
	root := NewRootBackDispatcher()

	handled := ""
	root.AddCallback(func() bool {
		handled = "root"
		return true
	})

	child := NewChildBackDispatcher(root)
	child.AddCallback(func() bool {
		handled = "child"
		return true
	})

	assert.True(t, root.InvokeCallback())
	assert.Equal(t, "child", handled)
}

func TestMostRecentlyClaimedChildWins(t *testing.T) {
	root := NewRootBackDispatcher()

	handled := ""
	older := NewChildBackDispatcher(root)
	older.AddCallback(func() bool {
		handled = "older"
		return true
	})
	newer := NewChildBackDispatcher(root)
	newer.AddCallback(func() bool {
		handled = "newer"
		return true
	})

	root.InvokeCallback()
	assert.Equal(t, "newer", handled)

	// Re-claiming moves a scope back to the front, as when its UI regains
	// focus.
	older.TakePriority()
	root.InvokeCallback()
	assert.Equal(t, "older", handled)
}

func TestChildUnclaimsWhenLastCallbackRemoved(t *testing.T) {
	root := NewRootBackDispatcher()

	handled := ""
	root.AddCallback(func() bool {
		handled = "root"
		return true
	})
	child := NewChildBackDispatcher(root)
	reg := child.AddCallback(func() bool {
		handled = "child"
		return true
	})

	root.InvokeCallback()
	assert.Equal(t, "child", handled)

	reg.Remove()
	reg.Remove() // idempotent
	root.InvokeCallback()
	assert.Equal(t, "root", handled)
}

func TestReleasePriorityKeepsCallbacks(t *testing.T) {
	root := NewRootBackDispatcher()

	handled := ""
	root.AddCallback(func() bool {
		handled = "root"
		return true
	})
	child := NewChildBackDispatcher(root)
	child.AddCallback(func() bool {
		handled = "child"
		return true
	})

	child.ReleasePriority()
	root.InvokeCallback()
	assert.Equal(t, "root", handled)

	child.TakePriority()
	root.InvokeCallback()
	assert.Equal(t, "child", handled)
}

func TestDispatchersNestArbitrarilyDeep(t *testing.T) {
	root := NewRootBackDispatcher()
	child := NewChildBackDispatcher(root)
	grandchild := NewChildBackDispatcher(child)

	handled := ""
	child.AddCallback(func() bool {
		handled = "child"
		return true
	})
	grandchild.AddCallback(func() bool {
		handled = "grandchild"
		return true
	})

	assert.True(t, root.InvokeCallback())
	assert.Equal(t, "grandchild", handled)
}

func TestUnhandledIntentFallsThroughChildren(t *testing.T) {
	root := NewRootBackDispatcher()
	child := NewChildBackDispatcher(root)
	child.AddCallback(func() bool { return false })

	assert.False(t, root.InvokeCallback())
}

func TestDecliningChildrenAreConsultedInPriorityOrder(t *testing.T) {
	root := NewRootBackDispatcher()

	var consulted []string
	root.AddCallback(func() bool {
		consulted = append(consulted, "root")
		return true
	})
	c1 := NewChildBackDispatcher(root)
	c1.AddCallback(func() bool {
		consulted = append(consulted, "c1")
		return false
	})
	c2 := NewChildBackDispatcher(root)
	c2.AddCallback(func() bool {
		consulted = append(consulted, "c2")
		return false
	})

	// c2 claimed last, so it is offered the intent first; when every child
	// declines, the root's own callback runs.
	assert.True(t, root.InvokeCallback())
	assert.Equal(t, []string{"c2", "c1", "root"}, consulted)
}

func TestBindNavigatorRoutesBackIntents(t *testing.T) {
	root := NewRootBackDispatcher()
	nav := NewNavigator(NavigatorOptions{})
	reg := BindNavigator(root, nav)
	defer reg.Remove()

	nav.Push(pageRoute("home"))
	pump(nav)
	nav.Push(pageRoute("detail"))
	pump(nav)

	// A back intent pops the top route politely.
	assert.True(t, root.InvokeCallback())
	pump(nav)
	assert.Equal(t, []string{"home"}, routeNames(nav.Routes()))

	// At the bottom of the stack the attempt bubbles, so the platform takes
	// over (typically suspending the app).
	assert.False(t, root.InvokeCallback())
	assert.Equal(t, 1, nav.Length())
}
