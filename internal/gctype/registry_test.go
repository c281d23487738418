package gctype

import "testing"

func TestRegistryBasic(t *testing.T) {
	r := NewRegistry()

	t.Run("RawTypeHasNoOffsets", func(t *testing.T) {
		id, err := r.New(16, 0)
		if err != nil {
			t.Fatal(err)
		}

		if got := r.Lookup(id).Offsets(); len(got) != 0 {
			t.Fatalf("expected no offsets, got %v", got)
		}
	})

	t.Run("SetOffsetsInAnyOrder", func(t *testing.T) {
		id, err := r.New(32, 2)
		if err != nil {
			t.Fatal(err)
		}

		if err := r.SetOffset(id, 1, 24); err != nil {
			t.Fatal(err)
		}
		if err := r.SetOffset(id, 0, 8); err != nil {
			t.Fatal(err)
		}

		off := r.Lookup(id).Offsets()
		if off[0] != 8 || off[1] != 24 {
			t.Fatalf("unexpected offsets: %v", off)
		}
	})

	t.Run("ReadingBeforeAllOffsetsSetPanics", func(t *testing.T) {
		id, err := r.New(16, 1)
		if err != nil {
			t.Fatal(err)
		}

		defer func() {
			if recover() == nil {
				t.Fatal("expected panic reading incomplete descriptor")
			}
		}()

		_ = r.Lookup(id).Offsets()
	})

	t.Run("OversizedPointerCountRejected", func(t *testing.T) {
		if _, err := r.New(8, 2); err == nil {
			t.Fatal("expected error: 2 pointers do not fit in 8 bytes")
		}
	})

	t.Run("InvalidOffsetRejected", func(t *testing.T) {
		id, err := r.New(16, 1)
		if err != nil {
			t.Fatal(err)
		}

		if err := r.SetOffset(id, 0, 12); err == nil {
			t.Fatal("expected error: offset 12 + 8 > size 16")
		}
	})

	t.Run("RegistryCapacity", func(t *testing.T) {
		small := NewRegistry()
		for i := 0; i < MaxTypes; i++ {
			if _, err := small.New(8, 0); err != nil {
				t.Fatalf("unexpected failure registering type %d: %v", i, err)
			}
		}

		if _, err := small.New(8, 0); err == nil {
			t.Fatal("expected registry-full error")
		}
	})
}
