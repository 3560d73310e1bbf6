package dynarray

import "go.llib.dev/frameless/pkg/iterkit"

var (
	_ iterkit.PullIter[*int] = (*Iter[int])(nil)
	_ iterkit.PullIter[int]  = (*OwnerIter[int])(nil)
)

// Iter is a borrowing iterator.
// It yields pointers to the elements of an Array in insertion order,
// and it is valid only while the Array is not mutated.
type Iter[T any] struct {
	array *Array[T]
	index int
	value *T
}

// Iter returns a borrowing iterator over the Array.
func (a *Array[T]) Iter() *Iter[T] {
	return &Iter[T]{array: a}
}

// Next advances the cursor. It returns false once every live element was visited.
func (i *Iter[T]) Next() bool {
	if i.array.Len() <= i.index {
		i.value = nil
		return false
	}
	i.value = i.array.buf.At(i.index)
	i.index++
	return true
}

// Value returns the element the last successful Next moved to.
func (i *Iter[T]) Value() *T { return i.value }

func (i *Iter[T]) Err() error { return nil }

// Close is a no-op, the Array is not owned by the iterator.
func (i *Iter[T]) Close() error { return nil }

// OwnerIter is a consuming iterator.
// It owns the Array it was created from and drains it from the end.
// Close tears down whatever is left in the Array.
type OwnerIter[T any] struct {
	array Array[T]
	value T
}

// IntoIter moves the contents of the Array into a consuming iterator.
// The receiver is left empty and can be reused independently.
func (a *Array[T]) IntoIter() *OwnerIter[T] {
	itr := &OwnerIter[T]{}
	if a == nil {
		return itr
	}
	itr.array = *a
	*a = Array[T]{}
	return itr
}

// Next pops the last remaining element. It returns false once the Array is drained.
func (i *OwnerIter[T]) Next() bool {
	v, ok := i.array.Pop()
	if !ok {
		var zero T
		i.value = zero
		return false
	}
	i.value = v
	return true
}

// Value returns the element popped by the last successful Next.
func (i *OwnerIter[T]) Value() T { return i.value }

func (i *OwnerIter[T]) Err() error { return nil }

// Close destroys the elements that were not yielded.
func (i *OwnerIter[T]) Close() error {
	var zero T
	i.value = zero
	return i.array.Close()
}

// Len returns the number of elements not yet yielded.
func (i *OwnerIter[T]) Len() int { return i.array.Len() }
