package evdevback

import (
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPressFilterMatchesKeyDownOnly(t *testing.T) {
	f := pressFilter{}
	now := time.Now()

	assert.True(t, f.accept(evdev.EV_KEY, evdev.KEY_BACK, 1, evdev.KEY_BACK, now))
	assert.False(t, f.accept(evdev.EV_KEY, evdev.KEY_BACK, 0, evdev.KEY_BACK, now), "key-up must not dispatch")
	assert.False(t, f.accept(evdev.EV_KEY, evdev.KEY_ESC, 1, evdev.KEY_BACK, now), "other keys must not dispatch")
	assert.False(t, f.accept(evdev.EV_SYN, evdev.KEY_BACK, 1, evdev.KEY_BACK, now), "non-key events must not dispatch")
}

func TestPressFilterCoolDown(t *testing.T) {
	f := pressFilter{coolDown: 100 * time.Millisecond}
	start := time.Now()

	assert.True(t, f.accept(evdev.EV_KEY, evdev.KEY_BACK, 1, evdev.KEY_BACK, start))
	assert.False(t, f.accept(evdev.EV_KEY, evdev.KEY_BACK, 1, evdev.KEY_BACK, start.Add(50*time.Millisecond)))
	assert.True(t, f.accept(evdev.EV_KEY, evdev.KEY_BACK, 1, evdev.KEY_BACK, start.Add(150*time.Millisecond)))
}

func TestOpenValidatesOptions(t *testing.T) {
	_, err := Open(Options{Post: func(func()) {}})
	assert.Error(t, err, "missing dispatcher")

	_, err = Open(Options{Dispatcher: sfoglia.NewRootBackDispatcher()})
	assert.Error(t, err, "missing post executor")

	_, err = Open(Options{
		DevicePath: "/nonexistent/event999",
		Dispatcher: sfoglia.NewRootBackDispatcher(),
		Post:       func(fn func()) { fn() },
	})
	assert.Error(t, err, "missing device")
}
