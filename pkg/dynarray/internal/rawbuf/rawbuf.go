// Package rawbuf implements an exclusively owned block of typed slots.
//
// A Buffer never exposes its backing storage as a slice,
// only per-slot reads, writes and pointers within [0, Cap()).
// Slots that hold no value are kept at their zero value.
package rawbuf

import (
	"math"
	"unsafe"

	"go.llib.dev/frameless/pkg/errorkit"
)

const (
	ErrOutOfRange errorkit.Error = "rawbuf: offset out of range"
	ErrTooLarge   errorkit.Error = "rawbuf: block size is not addressable"
)

// Buffer is a fixed-size block of slots. The zero value holds no storage.
type Buffer[T any] struct {
	slots []T
}

// Alloc returns a block with n zeroed slots.
// A block of zero slots holds no storage at all.
func Alloc[T any](n int) (Buffer[T], error) {
	if err := checkSize[T](n); err != nil {
		return Buffer[T]{}, err
	}
	if n == 0 {
		return Buffer[T]{}, nil
	}
	return Buffer[T]{slots: make([]T, n)}, nil
}

func checkSize[T any](n int) error {
	if n < 0 {
		return ErrTooLarge.F("negative slot count: %d", n)
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return nil
	}
	if uint64(n) > uint64(math.MaxInt)/uint64(size) {
		return ErrTooLarge.F("%d slots of %d bytes", n, size)
	}
	return nil
}

// Cap is the number of slots in the block.
func (b *Buffer[T]) Cap() int {
	if b == nil {
		return 0
	}
	return len(b.slots)
}

// Held reports whether the block holds storage.
func (b *Buffer[T]) Held() bool {
	return b != nil && b.slots != nil
}

// Realloc moves the first keep slots into a fresh block of n slots and releases the current one.
// The receiver is left untouched when the new block cannot be allocated.
func (b *Buffer[T]) Realloc(n, keep int) error {
	if keep < 0 || keep > b.Cap() || keep > n {
		return ErrOutOfRange.F("keep=%d cap=%d n=%d", keep, b.Cap(), n)
	}
	nb, err := Alloc[T](n)
	if err != nil {
		return err
	}
	copy(nb.slots, b.slots[:keep])
	b.Release()
	*b = nb
	return nil
}

// Write stores v at offset i.
// Whatever the slot held before is overwritten without being observed.
func (b *Buffer[T]) Write(i int, v T) {
	b.check(i)
	b.slots[i] = v
}

// Read copies the value at offset i.
func (b *Buffer[T]) Read(i int) T {
	b.check(i)
	return b.slots[i]
}

// Take moves the value out of offset i and zeroes the slot.
func (b *Buffer[T]) Take(i int) T {
	b.check(i)
	v := b.slots[i]
	var zero T
	b.slots[i] = zero
	return v
}

// At returns a pointer to the slot at offset i.
// The pointer refers to this block only; a Realloc leaves it pointing at the released storage.
func (b *Buffer[T]) At(i int) *T {
	b.check(i)
	return &b.slots[i]
}

// Release zeroes every slot and drops the storage.
func (b *Buffer[T]) Release() {
	if b == nil {
		return
	}
	clear(b.slots)
	b.slots = nil
}

func (b *Buffer[T]) check(i int) {
	if i < 0 || b.Cap() <= i {
		panic(ErrOutOfRange.F("offset=%d cap=%d", i, b.Cap()))
	}
}
