// Package observe provides a small observable value used to split shared
// state into slices that can be subscribed to independently.
package observe

import "sync"

// Value holds a value of type T and notifies subscribers when it changes.
// Equality decides what counts as a change; subscribers are called outside
// the lock in subscription order.
type Value[T any] struct {
	mu    sync.Mutex
	value T
	equal func(a, b T) bool
	subs  []subscription[T]
	next  int
}

// Readable is the read side of a Value.
type Readable[T any] interface {
	Get() T
	Subscribe(fn func(T)) (unsubscribe func())
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// New returns a Value holding initial. A nil equal treats every Set as a change.
func New[T any](initial T, equal func(a, b T) bool) *Value[T] {
	return &Value[T]{value: initial, equal: equal}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set stores next and notifies subscribers if it differs from the current
// value. It reports whether subscribers were notified.
func (v *Value[T]) Set(next T) bool {
	_, changed := v.Update(func(T) T { return next })
	return changed
}

// Update computes the next value from the current one under the lock, so
// concurrent updates never lose each other's result. Subscribers are
// notified afterwards, outside the lock, when the value changed.
func (v *Value[T]) Update(fn func(current T) T) (T, bool) {
	v.mu.Lock()
	next := fn(v.value)
	if v.equal != nil && v.equal(v.value, next) {
		v.mu.Unlock()
		return next, false
	}
	v.value = next
	subs := make([]subscription[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
	return next, true
}

// Subscribe registers fn and returns a function that removes it. The
// returned function is safe to call more than once.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mu.Lock()
	id := v.next
	v.next++
	v.subs = append(v.subs, subscription[T]{id: id, fn: fn})
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			for i, s := range v.subs {
				if s.id == id {
					v.subs = append(v.subs[:i], v.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

// Same reports whether two pointers are identical. It is the equality used
// for reference-typed slices whose producers return the same pointer on no-op.
func Same[T any](a, b *T) bool { return a == b }
