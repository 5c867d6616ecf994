package types

import "sync"

// Record holds a single value behind its own lock, so that mutating one
// account or transaction never blocks unrelated records.
type Record[T any] struct {
	mu  sync.Locker
	val T
}

func NewRecord[T any](val T) *Record[T] {
	return &Record[T]{mu: &sync.Mutex{}, val: val}
}

// NewRecordWithLocker guards val with mu instead of a fresh mutex.
func NewRecordWithLocker[T any](val T, mu sync.Locker) *Record[T] {
	return &Record[T]{mu: mu, val: val}
}

// Lock acquires the record and returns the guarded value. The pointer must
// not be used after Unlock.
func (r *Record[T]) Lock() *T {
	r.mu.Lock()
	return &r.val
}

func (r *Record[T]) Unlock() {
	r.mu.Unlock()
}

// Snapshot returns a copy of the value taken under the lock.
func (r *Record[T]) Snapshot() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.val
}
