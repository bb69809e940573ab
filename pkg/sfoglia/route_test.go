package sfoglia

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResultResolvesOnce(t *testing.T) {
	r := newResult()

	select {
	case <-r.Done():
		t.Fatal("unresolved result must not be done")
	default:
	}
	assert.False(t, r.Resolved())
	assert.Nil(t, r.Value())

	r.complete("value")
	assert.True(t, r.Resolved())
	assert.Equal(t, "value", r.Value())
	select {
	case <-r.Done():
	default:
		t.Fatal("resolved result must be done")
	}

	assert.Panics(t, func() { r.complete("again") })
}

func TestLifecycleHooksOutOfOrderPanic(t *testing.T) {
	// The navigator is the only legal caller of lifecycle hooks; calling
	// them on a route that was never installed is a programming error.
	assert.Panics(t, func() { pageRoute("x").didPush() })
	assert.Panics(t, func() { pageRoute("x").didPop(nil) })
	assert.Panics(t, func() { pageRoute("x").didComplete(nil) })

	nav := NewNavigator(NavigatorOptions{})
	route := pageRoute("x")
	nav.Push(route)
	pump(nav)
	assert.Panics(t, func() { route.install(nav, route) })
}

func TestDisposeTwicePanics(t *testing.T) {
	nav := NewNavigator(NavigatorOptions{})
	route := pageRoute("x")
	nav.Push(route)
	pump(nav)
	nav.Dispose()

	assert.Equal(t, RouteDisposed, route.Status())
	assert.Panics(t, func() { route.dispose() })
}

func TestRoutePositionQueries(t *testing.T) {
	nav := NewNavigator(NavigatorOptions{})
	pending := pageRoute("pending")
	assert.False(t, pending.IsFirst())
	assert.False(t, pending.IsCurrent())
	assert.Nil(t, pending.Navigator())

	home := pageRoute("home")
	detail := pageRoute("detail")
	nav.Push(home)
	pump(nav)
	nav.Push(detail)
	pump(nav)

	assert.Same(t, nav, home.Navigator())
	assert.True(t, home.IsFirst())
	assert.False(t, home.IsCurrent())
	assert.False(t, detail.IsFirst())
	assert.True(t, detail.IsCurrent())
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "pending", RoutePending.String())
	assert.Equal(t, "idle", RouteIdle.String())
	assert.Equal(t, "disposed", RouteDisposed.String())
	assert.Equal(t, "popped", PopResultPopped.String())
	assert.Equal(t, "bubble", PopBubble.String())
}

func TestModalRouteBarrier(t *testing.T) {
	nav := NewNavigator(NavigatorOptions{})
	route := NewModalRoute(ModalOptions{
		Settings:           RouteSettings{Name: "sheet"},
		BuildPage:          func(BuildContext) Content { return "sheet" },
		BarrierDismissible: true,
	})
	nav.Push(route)

	entries := route.overlayEntries()
	assert.Len(t, entries, 2)

	barrier, ok := entries[0].Build(nav.BuildContext()).(Barrier)
	assert.True(t, ok)
	assert.True(t, barrier.Dismissible)
	assert.NotEmpty(t, barrier.Label, "falls back to the localized dismiss label")
	assert.Equal(t, route.PrimaryValue(), barrier.Opacity)

	// Barrier opacity follows the enter transition.
	nav.Ticker().Tick(150 * time.Millisecond)
	mid := entries[0].Build(nav.BuildContext()).(Barrier)
	assert.Greater(t, mid.Opacity, barrier.Opacity)
	pump(nav)
	full := entries[0].Build(nav.BuildContext()).(Barrier)
	assert.Equal(t, 1.0, full.Opacity)
}

func TestModalRouteRequiresPageBuilder(t *testing.T) {
	assert.Panics(t, func() { NewModalRoute(ModalOptions{}) })
}

func TestTransitionsWrapperReceivesAnimationValues(t *testing.T) {
	nav := NewNavigator(NavigatorOptions{})

	var gotPrimary, gotSecondary float64
	route := NewModalRoute(ModalOptions{
		Settings:  RouteSettings{Name: "wrapped"},
		BuildPage: func(BuildContext) Content { return "page" },
		BuildTransitions: func(ctx BuildContext, primary, secondary float64, page Content) Content {
			gotPrimary, gotSecondary = primary, secondary
			return page
		},
	})
	nav.Push(route)
	nav.Ticker().Tick(150 * time.Millisecond)

	page := route.overlayEntries()[1]
	content := page.Build(nav.BuildContext())

	assert.Equal(t, "page", content)
	assert.Equal(t, route.PrimaryValue(), gotPrimary)
	assert.Zero(t, gotSecondary)
	pump(nav)
}

func TestDiscardWhenInactive(t *testing.T) {
	keep := NewModalRoute(ModalOptions{
		Settings:  RouteSettings{Name: "keep"},
		BuildPage: func(BuildContext) Content { return nil },
	})
	discard := NewModalRoute(ModalOptions{
		Settings:            RouteSettings{Name: "discard"},
		BuildPage:           func(BuildContext) Content { return nil },
		DiscardWhenInactive: true,
	})

	nav := NewNavigator(NavigatorOptions{})
	nav.Push(keep)
	pump(nav)
	nav.Push(discard)
	pump(nav)

	assert.True(t, keep.MaintainState())
	assert.True(t, keep.overlayEntries()[1].MaintainState())
	assert.False(t, discard.MaintainState())
	assert.False(t, discard.overlayEntries()[1].MaintainState())
}
