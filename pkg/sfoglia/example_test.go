package sfoglia_test

import (
	"fmt"
	"time"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia"
)

// Example demonstrates a list -> detail flow: push a detail route, deliver a
// result back to the caller, and let a back intent unwind the stack.
func Example() {
	nav := sfoglia.NewNavigator(sfoglia.NavigatorOptions{})
	pump := func() {
		for nav.Ticker().Active() > 0 {
			nav.Ticker().Tick(50 * time.Millisecond)
		}
	}

	list := sfoglia.NewModalRoute(sfoglia.ModalOptions{
		Settings:  sfoglia.RouteSettings{Name: "/games"},
		BuildPage: func(sfoglia.BuildContext) sfoglia.Content { return "game list" },
	})
	nav.Push(list)
	pump()

	detail := sfoglia.NewModalRoute(sfoglia.ModalOptions{
		Settings:  sfoglia.RouteSettings{Name: "/games/portal"},
		BuildPage: func(sfoglia.BuildContext) sfoglia.Content { return "game detail" },
	})
	result := nav.Push(detail)
	pump()
	fmt.Println("showing:", nav.CurrentConfiguration().Name)

	// The detail screen closes itself, handing a value to whoever pushed it.
	nav.Pop("play Portal")
	pump()
	fmt.Println("result:", result.Value())
	fmt.Println("showing:", nav.CurrentConfiguration().Name)

	// A back intent at the bottom of the stack bubbles to the host.
	fmt.Println("back at bottom:", nav.MaybePop(nil))

	// Output:
	// showing: /games/portal
	// result: play Portal
	// showing: /games
	// back at bottom: bubbled
}

// Example_unsavedChanges demonstrates vetoing a polite pop while a form has
// unsaved changes, the way a confirmation dialog flow begins.
func Example_unsavedChanges() {
	nav := sfoglia.NewNavigator(sfoglia.NavigatorOptions{})
	pump := func() {
		for nav.Ticker().Active() > 0 {
			nav.Ticker().Tick(50 * time.Millisecond)
		}
	}

	home := sfoglia.NewModalRoute(sfoglia.ModalOptions{
		Settings:  sfoglia.RouteSettings{Name: "/home"},
		BuildPage: func(sfoglia.BuildContext) sfoglia.Content { return "home" },
	})
	nav.Push(home)
	pump()

	form := sfoglia.NewModalRoute(sfoglia.ModalOptions{
		Settings:  sfoglia.RouteSettings{Name: "/settings"},
		BuildPage: func(sfoglia.BuildContext) sfoglia.Content { return "settings form" },
	})
	nav.Push(form)
	pump()

	scope := sfoglia.NewPopScope(false, func(didPop bool, result any) {
		if !didPop {
			fmt.Println("blocked: ask about unsaved changes")
		}
	})
	form.RegisterPopScope(scope)

	fmt.Println("first back:", nav.MaybePop(nil))

	// The user confirmed discarding; let the next attempt through.
	scope.CanPop.Set(true)
	fmt.Println("second back:", nav.MaybePop(nil))
	pump()
	fmt.Println("showing:", nav.CurrentConfiguration().Name)

	// Output:
	// blocked: ask about unsaved changes
	// first back: handled
	// second back: popped
	// showing: /home
}
