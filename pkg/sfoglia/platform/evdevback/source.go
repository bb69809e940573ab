// Package evdevback turns hardware button presses read from a Linux evdev
// input device into back intents for a navigation back-dispatcher
// hierarchy. It serves devices with a dedicated back button (handheld
// consoles, kiosk panels) where no windowing toolkit delivers the event.
package evdevback

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/internal"
)

// Options configures a Source.
type Options struct {
	// DevicePath is the evdev node to watch, e.g. "/dev/input/event1".
	DevicePath string
	// KeyCode selects the button; the zero value means evdev.KEY_BACK.
	KeyCode evdev.EvCode
	// CoolDown drops presses arriving within this window of the previous
	// one, filtering contact bounce on cheap hardware buttons. Zero
	// disables the filter.
	CoolDown time.Duration

	// Dispatcher receives the back intents.
	Dispatcher *sfoglia.RootBackDispatcher
	// Post hops a function onto the host event-loop thread. The engine is
	// single-threaded; the read goroutine never touches the dispatcher
	// directly. Required.
	Post func(func())
	// OnUnhandled runs (on the event-loop thread) when the dispatcher
	// hierarchy declines the intent, so the host can suspend or exit.
	// Optional.
	OnUnhandled func()
}

// Source reads one evdev device on a background goroutine and forwards
// matching key-down events as back intents.
type Source struct {
	dev    *evdev.InputDevice
	opts   Options
	filter pressFilter

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Open starts watching the device. Close must be called to release it.
func Open(opts Options) (*Source, error) {
	if opts.Dispatcher == nil {
		return nil, errors.New("evdevback: Options.Dispatcher is required")
	}
	if opts.Post == nil {
		return nil, errors.New("evdevback: Options.Post is required")
	}
	if opts.KeyCode == 0 {
		opts.KeyCode = evdev.KEY_BACK
	}

	dev, err := evdev.Open(opts.DevicePath)
	if err != nil {
		return nil, sfoglia.NewPlatformError("open_input_device", fmt.Errorf("%s: %w", opts.DevicePath, err))
	}

	s := &Source{
		dev:    dev,
		opts:   opts,
		filter: pressFilter{coolDown: opts.CoolDown},
	}
	s.wg.Add(1)
	go s.readLoop()
	return s, nil
}

func (s *Source) readLoop() {
	defer s.wg.Done()
	for {
		ev, err := s.dev.ReadOne()
		if err != nil {
			// Closed device or unplugged hardware ends the loop.
			if !errors.Is(err, os.ErrClosed) {
				internal.Logger().Error("evdev read failed", "device", s.opts.DevicePath, "error", err)
			}
			return
		}
		if !s.filter.accept(ev.Type, ev.Code, ev.Value, s.opts.KeyCode, time.Now()) {
			continue
		}

		s.opts.Post(func() {
			if !s.opts.Dispatcher.InvokeCallback() && s.opts.OnUnhandled != nil {
				s.opts.OnUnhandled()
			}
		})
	}
}

// Close releases the device and waits for the read goroutine to exit.
func (s *Source) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.dev.Close()
		s.wg.Wait()
	})
	return err
}

// pressFilter keeps only key-down events for the configured code, applying
// the cool-down window.
type pressFilter struct {
	coolDown time.Duration
	lastDown time.Time
}

func (f *pressFilter) accept(evType evdev.EvType, code evdev.EvCode, value int32, want evdev.EvCode, now time.Time) bool {
	if evType != evdev.EV_KEY || code != want || value != 1 {
		return false
	}
	if f.coolDown > 0 && !f.lastDown.IsZero() && now.Sub(f.lastDown) < f.coolDown {
		return false
	}
	f.lastDown = now
	return true
}
