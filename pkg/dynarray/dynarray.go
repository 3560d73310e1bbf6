// Package dynarray implements a growable, contiguous, type-generic sequence
// that manages its own capacity on top of an exclusively owned storage block.
//
// # Growth
//
// Capacity is always a multiple of four.
// Before each Push the target capacity is computed from the current length as ((length/4)+1)*4,
// and the block is reallocated when the target exceeds the current capacity.
// Capacity never shrinks.
//
// # Ownership
//
// An Array owns its block and every live element in it.
// Values leave the Array either by Pop, by consuming iteration, or by being destroyed on Close.
// Elements that implement Destroyer are notified exactly once when the Array tears them down.
//
// # Iteration
//
// Iter walks the elements by reference in insertion order and never mutates the Array.
// IntoIter moves the Array into an OwnerIter that drains it from the end,
// so consuming iteration yields the elements in reverse insertion order.
//
// An Array is not safe for concurrent use.
package dynarray

import (
	"iter"
	"unsafe"

	"go.llib.dev/dynarray/pkg/dynarray/internal/rawbuf"
	"go.llib.dev/frameless/pkg/errorkit"
)

const (
	ErrZeroSizedType errorkit.Error = "ErrZeroSizedType"
	ErrAllocation    errorkit.Error = "ErrAllocation"
)

// Destroyer is implemented by elements that want to observe their teardown.
// Destroy is called at most once per element, and only for elements the Array still owns.
type Destroyer interface {
	Destroy()
}

// Array is a dynamic array.
// The zero value is an empty Array ready to use.
type Array[T any] struct {
	buf    rawbuf.Buffer[T]
	length int
}

// New returns an empty Array. No storage is allocated.
func New[T any]() *Array[T] {
	return &Array[T]{}
}

// GrowthTarget returns the capacity an Array with the given length needs before its next Push.
func GrowthTarget(length int) int {
	return ((length / 4) + 1) * 4
}

// Push appends v to the end of the Array.
//
// Push panics with ErrZeroSizedType when T has no size,
// and with ErrAllocation when the grown block is not addressable.
// A reallocation invalidates pointers previously obtained from Get or Iter.
func (a *Array[T]) Push(v T) {
	a.reserve()
	a.buf.Write(a.length, v)
	a.length++
}

func (a *Array[T]) reserve() {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		panic(ErrZeroSizedType)
	}
	target := GrowthTarget(a.length)
	if target <= a.buf.Cap() {
		return
	}
	if err := a.buf.Realloc(target, a.length); err != nil {
		panic(ErrAllocation.Wrap(err))
	}
}

// Get returns a pointer to the element at index.
// Indexes outside of [0, Len()) yield no value.
func (a *Array[T]) Get(index int) (*T, bool) {
	if !a.inRange(index) {
		return nil, false
	}
	return a.buf.At(index), true
}

// Lookup returns a copy of the element at index.
func (a *Array[T]) Lookup(index int) (T, bool) {
	if !a.inRange(index) {
		var zero T
		return zero, false
	}
	return a.buf.Read(index), true
}

func (a *Array[T]) inRange(index int) bool {
	return a != nil && 0 <= index && index < a.length
}

// Pop removes the last element and hands its ownership to the caller.
// Capacity is left unchanged.
func (a *Array[T]) Pop() (T, bool) {
	if a == nil || a.length == 0 {
		var zero T
		return zero, false
	}
	v := a.buf.Take(a.length - 1)
	a.length--
	return v, true
}

// Len returns the number of live elements.
func (a *Array[T]) Len() int {
	if a == nil {
		return 0
	}
	return a.length
}

// Cap returns the number of allocated slots.
func (a *Array[T]) Cap() int {
	if a == nil {
		return 0
	}
	return a.buf.Cap()
}

// ToSlice returns a copy of the live elements in insertion order.
func (a *Array[T]) ToSlice() []T {
	var out = make([]T, 0, a.Len())
	for i := 0; i < a.Len(); i++ {
		out = append(out, a.buf.Read(i))
	}
	return out
}

// Close destroys every live element, releases the storage block and leaves the Array empty.
// Calling Close on an empty or already closed Array is a no-op.
// The Array counts as empty before the first Destroy call,
// so a panicking hook never leads to a second destruction of the same element.
func (a *Array[T]) Close() error {
	if a == nil {
		return nil
	}
	n := a.length
	a.length = 0
	defer func() {
		if a.buf.Held() {
			a.buf.Release()
		}
	}()
	for i := 0; i < n; i++ {
		destroy(a.buf.At(i))
	}
	return nil
}

func destroy[T any](ptr *T) {
	if d, ok := any(ptr).(Destroyer); ok {
		d.Destroy()
		return
	}
	if d, ok := any(*ptr).(Destroyer); ok {
		d.Destroy()
	}
}

// All returns the elements by reference in insertion order.
func (a *Array[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		itr := a.Iter()
		for itr.Next() {
			if !yield(itr.Value()) {
				return
			}
		}
	}
}

// Drain moves the Array into a consuming iterator and yields its elements from the end.
// Ownership moves when the sequence is ranged over, so an unused sequence leaves the Array intact.
// Elements left behind by an early break are destroyed.
func (a *Array[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		itr := a.IntoIter()
		defer itr.Close()
		for itr.Next() {
			if !yield(itr.Value()) {
				return
			}
		}
	}
}
