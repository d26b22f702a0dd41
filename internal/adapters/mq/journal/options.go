// Package journal defines the contract for recording and consuming store
// mutation records.
package journal

// Option applies a configuration option to the InMemoryJournal.
type Option func(*InMemoryJournal)

// WithCapacity sets the maximum number of pending changes.
func WithCapacity(capacity int) Option {
	return func(j *InMemoryJournal) {
		if capacity > 0 {
			j.capacity = capacity
		}
	}
}
