package entity

import (
	"iter"

	"github.com/elliotchance/orderedmap/v2"
)

// Handle is a stable reference to a record in an Arena. Handles are never reused.
type Handle uint64

// Arena stores records of actors indexed by stable handles. Iteration happens in insertion order, and removing a
// record keeps the order of the remaining ones.
type Arena[T any] struct {
	records *orderedmap.OrderedMap[Handle, T]
	next    Handle
}

// NewArena ...
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{records: orderedmap.NewOrderedMap[Handle, T]()}
}

// Insert adds a record to the end of the arena and returns its handle.
func (a *Arena[T]) Insert(record T) Handle {
	a.next++
	a.records.Set(a.next, record)
	return a.next
}

// Get returns the record for a handle. The second return value is false if the record was removed.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	return a.records.Get(h)
}

// Set replaces the record for a handle in place. It returns false, and does nothing, if the handle is not
// present in the arena.
func (a *Arena[T]) Set(h Handle, record T) bool {
	if _, ok := a.records.Get(h); !ok {
		return false
	}
	a.records.Set(h, record)
	return true
}

// Remove removes the record for a handle, returning false if it was not present.
func (a *Arena[T]) Remove(h Handle) bool {
	return a.records.Delete(h)
}

// Len returns the amount of records in the arena.
func (a *Arena[T]) Len() int {
	return a.records.Len()
}

// Handles returns the handles of all records in insertion order.
func (a *Arena[T]) Handles() []Handle {
	handles := make([]Handle, 0, a.records.Len())
	for el := a.records.Front(); el != nil; el = el.Next() {
		handles = append(handles, el.Key)
	}
	return handles
}

// All iterates over all records in insertion order. A record may only be removed while iterating if the
// iteration stops right after.
func (a *Arena[T]) All() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for el := a.records.Front(); el != nil; el = el.Next() {
			if !yield(el.Key, el.Value) {
				return
			}
		}
	}
}

// Update calls f with a pointer to every record in insertion order, so that records can be modified in place.
func (a *Arena[T]) Update(f func(h Handle, record *T)) {
	for el := a.records.Front(); el != nil; el = el.Next() {
		f(el.Key, &el.Value)
	}
}
