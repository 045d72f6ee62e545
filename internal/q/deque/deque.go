// Package deque implements a growable ring-buffer double-ended queue.
//
// The zero value is an empty Deque ready to use. A Deque is not safe for concurrent use.
package deque

const minCapacity = 16

// Deque is a double-ended queue backed by a ring buffer that grows as needed and never shrinks.
type Deque[T any] struct {
	buf  []T
	head int // Index of the front element in buf.
	n    int // Number of elements.
}

// Len returns the number of elements in d.
func (d *Deque[T]) Len() int {
	return d.n
}

// PushBack appends v to the back of d.
func (d *Deque[T]) PushBack(v T) {
	d.growIfFull()
	d.buf[(d.head+d.n)%len(d.buf)] = v
	d.n++
}

// PushFront inserts v at the front of d.
func (d *Deque[T]) PushFront(v T) {
	d.growIfFull()
	d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.head] = v
	d.n++
}

// PopFront removes and returns the front element. It returns false if d is empty.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.n == 0 {
		return zero, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = zero // release references held by the slot
	d.head = (d.head + 1) % len(d.buf)
	d.n--
	if d.n == 0 {
		d.head = 0
	}
	return v, true
}

// At returns the i-th element from the front. It panics if i is out of range.
func (d *Deque[T]) At(i int) T {
	if i < 0 || i >= d.n {
		panic("deque: index out of range")
	}
	return d.buf[(d.head+i)%len(d.buf)]
}

// Set replaces the i-th element from the front. It panics if i is out of range.
func (d *Deque[T]) Set(i int, v T) {
	if i < 0 || i >= d.n {
		panic("deque: index out of range")
	}
	d.buf[(d.head+i)%len(d.buf)] = v
}

// Clear removes all elements, keeping the allocated capacity.
func (d *Deque[T]) Clear() {
	var zero T
	for i := 0; i < d.n; i++ {
		d.buf[(d.head+i)%len(d.buf)] = zero
	}
	d.head = 0
	d.n = 0
}

func (d *Deque[T]) growIfFull() {
	if d.n < len(d.buf) {
		return
	}
	newCap := 2 * len(d.buf)
	if newCap < minCapacity {
		newCap = minCapacity
	}
	buf := make([]T, newCap)
	for i := 0; i < d.n; i++ {
		buf[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	d.buf = buf
	d.head = 0
}
