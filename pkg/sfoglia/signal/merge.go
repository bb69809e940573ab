package signal

// Merged is a composite signal over several sources. A subscriber added to a
// Merged is registered with every source, so it fires whenever any of them
// does; removing the subscription fans the removal out to every source.
type Merged struct {
	sources []*Notifier
}

// Merge creates a composite signal over sources. The sources are not copied;
// they must outlive the Merged.
func Merge(sources ...*Notifier) *Merged {
	return &Merged{sources: sources}
}

// MergedSubscription removes a subscriber from every underlying source.
type MergedSubscription struct {
	subs []*Subscription
}

// Add registers fn with every source.
func (m *Merged) Add(fn func()) *MergedSubscription {
	ms := &MergedSubscription{subs: make([]*Subscription, 0, len(m.sources))}
	for _, src := range m.sources {
		ms.subs = append(ms.subs, src.Add(fn))
	}
	return ms
}

// Remove unregisters the subscriber from every source. Idempotent.
func (s *MergedSubscription) Remove() {
	for _, sub := range s.subs {
		sub.Remove()
	}
}
