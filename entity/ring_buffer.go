package entity

import (
	"iter"

	"github.com/cargorun/playmode/assert"
	"github.com/cargorun/playmode/oerror"
)

// RingBuffer is a fixed-capacity FIFO queue. Once full, pushing a new item retires the oldest one, so the
// buffer never allocates after creation.
type RingBuffer[T any] struct {
	items []T
	head  int // Points to the oldest item
	size  int // Current number of items
}

// NewRingBuffer creates a new ring buffer with the specified capacity, which must be positive.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	assert.IsTrue(capacity > 0, "ringbuffer: capacity must be positive, got %d", capacity)
	return &RingBuffer[T]{items: make([]T, capacity)}
}

// Push appends an item to the back of the buffer. If the buffer was full, the oldest item is retired to make
// room and returned with true.
func (rb *RingBuffer[T]) Push(item T) (retired T, full bool) {
	if rb.size == len(rb.items) {
		retired = rb.items[rb.head]
		rb.items[rb.head] = item
		rb.head = (rb.head + 1) % len(rb.items)
		return retired, true
	}
	rb.items[rb.index(rb.size)] = item
	rb.size++
	return retired, false
}

// Front returns the oldest item in the buffer, or false if the buffer is empty.
func (rb *RingBuffer[T]) Front() (item T, ok bool) {
	if rb.size == 0 {
		return item, false
	}
	return rb.items[rb.head], true
}

// PopFront removes and returns the oldest item. The boolean ok is false if the buffer is empty.
func (rb *RingBuffer[T]) PopFront() (item T, ok bool) {
	if rb.size == 0 {
		return item, false
	}
	var zero T
	item = rb.items[rb.head]
	rb.items[rb.head] = zero
	rb.head = (rb.head + 1) % len(rb.items)
	rb.size--
	return item, true
}

// At returns the item at logical position index (0 = oldest), or an error if out of range.
func (rb *RingBuffer[T]) At(index int) (T, error) {
	var zero T
	if index < 0 || index >= rb.size {
		return zero, oerror.New("ringbuffer: index %d out of range [0, %d)", index, rb.size)
	}
	return rb.items[rb.index(index)], nil
}

// Set sets the item at logical position index (0 = oldest), or returns an error if out of range.
func (rb *RingBuffer[T]) Set(index int, item T) error {
	if index < 0 || index >= rb.size {
		return oerror.New("ringbuffer: index %d out of range [0, %d)", index, rb.size)
	}
	rb.items[rb.index(index)] = item
	return nil
}

// RemoveAt removes the item at logical position index, keeping the order of the remaining items.
func (rb *RingBuffer[T]) RemoveAt(index int) (T, error) {
	item, err := rb.At(index)
	if err != nil {
		return item, err
	}
	for i := index; i < rb.size-1; i++ {
		rb.items[rb.index(i)] = rb.items[rb.index(i+1)]
	}
	var zero T
	rb.items[rb.index(rb.size-1)] = zero
	rb.size--
	return item, nil
}

// All iterates over the items from oldest to newest.
func (rb *RingBuffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range rb.size {
			if !yield(i, rb.items[rb.index(i)]) {
				return
			}
		}
	}
}

// Len returns the current number of items in the buffer.
func (rb *RingBuffer[T]) Len() int {
	return rb.size
}

// Cap returns the maximum capacity of the buffer.
func (rb *RingBuffer[T]) Cap() int {
	return len(rb.items)
}

// Clear removes all items from the buffer.
func (rb *RingBuffer[T]) Clear() {
	clear(rb.items)
	rb.head = 0
	rb.size = 0
}

func (rb *RingBuffer[T]) index(logical int) int {
	return (rb.head + logical) % len(rb.items)
}
