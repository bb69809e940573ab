package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierOrder(t *testing.T) {
	var n Notifier
	var order []int

	n.Add(func() { order = append(order, 1) })
	n.Add(func() { order = append(order, 2) })
	n.Add(func() { order = append(order, 3) })

	n.Notify()
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestSubscriptionRemoveIdempotent(t *testing.T) {
	var n Notifier
	calls := 0
	sub := n.Add(func() { calls++ })

	sub.Remove()
	sub.Remove()
	n.Notify()

	assert.Zero(t, calls)
	assert.False(t, n.HasSubscribers())
}

func TestRemoveDuringDispatchSkipsSubscriber(t *testing.T) {
	var n Notifier
	var fired []string

	var second *Subscription
	n.Add(func() {
		fired = append(fired, "first")
		second.Remove()
	})
	second = n.Add(func() { fired = append(fired, "second") })

	n.Notify()
	assert.Equal(t, []string{"first"}, fired)
}

func TestPanickingSubscriberDoesNotStopDispatch(t *testing.T) {
	var n Notifier
	calls := 0

	n.Add(func() { panic("bad observer") })
	n.Add(func() { calls++ })

	require.NotPanics(t, n.Notify)
	assert.Equal(t, 1, calls)
}

func TestValueEqualityGating(t *testing.T) {
	v := NewValue(5)
	calls := 0
	v.Add(func() { calls++ })

	v.Set(5)
	assert.Zero(t, calls, "setting an equal value must not notify")

	v.Set(6)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 6, v.Get())
}

func TestMergedFansOut(t *testing.T) {
	var a, b Notifier
	m := Merge(&a, &b)

	calls := 0
	sub := m.Add(func() { calls++ })

	a.Notify()
	b.Notify()
	assert.Equal(t, 2, calls)

	sub.Remove()
	a.Notify()
	b.Notify()
	assert.Equal(t, 2, calls)
	assert.False(t, a.HasSubscribers())
	assert.False(t, b.HasSubscribers())
}
