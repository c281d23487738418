package sysmem

import (
	"testing"
	"unsafe"
)

func TestAllocZeroFilledAndAligned(t *testing.T) {
	t.Run("BasicAllocation", func(t *testing.T) {
		p, ok := Alloc(256)
		if !ok || p == nil {
			t.Fatal("allocation failed")
		}
		defer Free(p, 256)

		if uintptr(p)%Alignment != 0 {
			t.Fatalf("block not %d-byte aligned: %p", Alignment, p)
		}

		b := unsafe.Slice((*byte)(p), 256)
		for i, v := range b {
			if v != 0 {
				t.Fatalf("byte %d not zero-filled: %d", i, v)
			}
		}

		for i := range b {
			b[i] = byte(i)
		}
		for i, v := range b {
			if v != byte(i) {
				t.Fatalf("data corruption at %d", i)
			}
		}
	})

	t.Run("ZeroSizeReturnsNil", func(t *testing.T) {
		p, ok := Alloc(0)
		if !ok {
			t.Fatal("zero-size alloc should report ok")
		}
		if p != nil {
			t.Fatal("zero-size alloc should return nil pointer")
		}
	})
}

func TestPoolRecyclesSameSize(t *testing.T) {
	pool := NewPool()

	p1, ok := pool.Alloc(128)
	if !ok {
		t.Fatal("first alloc failed")
	}

	b := unsafe.Slice((*byte)(p1), 128)
	b[0] = 0xAB

	pool.Free(p1, 128)

	p2, ok := pool.Alloc(128)
	if !ok {
		t.Fatal("second alloc failed")
	}

	b2 := unsafe.Slice((*byte)(p2), 128)
	if b2[0] != 0 {
		t.Fatal("recycled block was not zero-filled")
	}

	pool.Drain(128)
}
