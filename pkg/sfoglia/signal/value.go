package signal

// Value is a Notifier that holds exactly one comparable value. Setting the
// value notifies subscribers only when the new value differs from the old
// one.
type Value[T comparable] struct {
	Notifier
	v T
}

// NewValue creates a Value holding v.
func NewValue[T comparable](v T) *Value[T] {
	return &Value[T]{v: v}
}

// Get returns the current value.
func (s *Value[T]) Get() T {
	return s.v
}

// Set stores next and notifies subscribers if next differs from the current
// value. Setting an equal value is a no-op.
func (s *Value[T]) Set(next T) {
	if s.v == next {
		return
	}
	s.v = next
	s.Notify()
}
