package rawbuf_test

import (
	"errors"
	"math"
	"testing"

	"go.llib.dev/dynarray/pkg/dynarray/internal/rawbuf"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/random"
)

func TestAlloc(t *testing.T) {
	t.Run("zero slots hold no storage", func(t *testing.T) {
		b, err := rawbuf.Alloc[int](0)
		assert.NoError(t, err)
		assert.Equal(t, 0, b.Cap())
		assert.False(t, b.Held())
	})
	t.Run("slots start zeroed", func(t *testing.T) {
		b, err := rawbuf.Alloc[string](4)
		assert.NoError(t, err)
		assert.True(t, b.Held())
		assert.Equal(t, 4, b.Cap())
		for i := 0; i < b.Cap(); i++ {
			assert.Equal(t, "", b.Read(i))
		}
	})
	t.Run("negative size", func(t *testing.T) {
		_, err := rawbuf.Alloc[int](-1)
		assert.True(t, errors.Is(err, rawbuf.ErrTooLarge))
	})
	t.Run("unaddressable size", func(t *testing.T) {
		_, err := rawbuf.Alloc[[64]byte](math.MaxInt / 2)
		assert.True(t, errors.Is(err, rawbuf.ErrTooLarge))
	})
}

func TestBuffer(t *testing.T) {
	rnd := random.New(random.CryptoSeed{})

	t.Run("write, read and take", func(t *testing.T) {
		b, err := rawbuf.Alloc[int](4)
		assert.NoError(t, err)
		v := rnd.Int()
		b.Write(2, v)
		assert.Equal(t, v, b.Read(2))
		assert.Equal(t, v, *b.At(2))
		assert.Equal(t, v, b.Take(2))
		assert.Equal(t, 0, b.Read(2))
	})
	t.Run("offsets outside of the block panic", func(t *testing.T) {
		b, err := rawbuf.Alloc[int](4)
		assert.NoError(t, err)
		for _, i := range []int{-1, 4, 5} {
			got := assert.Panic(t, func() { b.Read(i) })
			err, ok := got.(error)
			assert.True(t, ok)
			assert.True(t, errors.Is(err, rawbuf.ErrOutOfRange))
		}
		var empty rawbuf.Buffer[int]
		assert.Panic(t, func() { empty.Write(0, 42) })
	})
	t.Run("realloc keeps the requested prefix", func(t *testing.T) {
		b, err := rawbuf.Alloc[int](4)
		assert.NoError(t, err)
		for i := 0; i < 4; i++ {
			b.Write(i, i+1)
		}
		stale := b.At(0)
		assert.NoError(t, b.Realloc(8, 3))
		assert.Equal(t, 8, b.Cap())
		assert.Equal(t, 1, b.Read(0))
		assert.Equal(t, 2, b.Read(1))
		assert.Equal(t, 3, b.Read(2))
		assert.Equal(t, 0, b.Read(3), "slots past the kept prefix are zeroed")
		assert.True(t, stale != b.At(0), "the block moved")
		assert.Equal(t, 0, *stale, "the released block is cleared")
	})
	t.Run("realloc from an empty block", func(t *testing.T) {
		var b rawbuf.Buffer[int]
		assert.NoError(t, b.Realloc(4, 0))
		assert.Equal(t, 4, b.Cap())
	})
	t.Run("realloc with an invalid prefix leaves the block untouched", func(t *testing.T) {
		b, err := rawbuf.Alloc[int](4)
		assert.NoError(t, err)
		b.Write(0, 42)
		err = b.Realloc(2, 3)
		assert.True(t, errors.Is(err, rawbuf.ErrOutOfRange))
		assert.Equal(t, 4, b.Cap())
		assert.Equal(t, 42, b.Read(0))
	})
	t.Run("release", func(t *testing.T) {
		b, err := rawbuf.Alloc[int](4)
		assert.NoError(t, err)
		b.Release()
		assert.False(t, b.Held())
		assert.Equal(t, 0, b.Cap())
		b.Release()
		var nilb *rawbuf.Buffer[int]
		nilb.Release()
		assert.Equal(t, 0, nilb.Cap())
	})
}
