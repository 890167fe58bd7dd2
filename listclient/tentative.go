package listclient

import (
	"sync"

	"github.com/cockroachdb/errors"
)

var ErrTentativeChangePending = errors.New("another tentative change is pending")

// Tentative holds a value that can be changed ahead of its confirmation by the server. Only one
// tentative change can be pending at a time.
type Tentative[T any] struct {
	mu       sync.Mutex
	value    T
	snapshot T
	pending  bool
}

func NewTentative[T any](value T) *Tentative[T] {
	return &Tentative[T]{value: value}
}

func (t *Tentative[T]) Value() T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

func (t *Tentative[T]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Apply makes next the current value and keeps the previous one aside. next must not share
// mutable state with the current value, or the revert would not restore it verbatim.
func (t *Tentative[T]) Apply(next T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending {
		return ErrTentativeChangePending
	}
	t.snapshot = t.value
	t.value = next
	t.pending = true
	return nil
}

// Commit ends the pending change, replacing the value with the settled one.
func (t *Tentative[T]) Commit(settled T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero T
	t.value = settled
	t.snapshot = zero
	t.pending = false
}

// Revert restores the value held before Apply.
func (t *Tentative[T]) Revert() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.pending {
		return
	}
	var zero T
	t.value = t.snapshot
	t.snapshot = zero
	t.pending = false
}

// Run applies next, then calls persist. The value settled by persist is committed on success,
// the previous value is restored on failure and the error is returned as is.
func (t *Tentative[T]) Run(next T, persist func() (T, error)) error {
	if err := t.Apply(next); err != nil {
		return err
	}
	settled, err := persist()
	if err != nil {
		t.Revert()
		return err
	}
	t.Commit(settled)
	return nil
}
