package trie

import (
	"math/rand"
	"testing"
)

func TestTrieInsertContains(t *testing.T) {
	tr := New(DefaultSource)

	keys := []uint64{0x2, 0x4, 0x6, 0x44, 0x66, 0x88, 0x98, 0x1234, 0x1244}

	for _, k := range keys {
		tr.Insert(k)
	}

	for _, k := range keys {
		if !tr.Contains(k) {
			t.Fatalf("expected trie to contain %#x", k)
		}
	}

	absent := []uint64{0x8, 0x10, 0x46, 0x1246, 0xFFFFFFFE}
	for _, k := range absent {
		if tr.Contains(k) {
			t.Fatalf("expected trie to not contain %#x", k)
		}
	}
}

func TestTrieEmpty(t *testing.T) {
	tr := New(DefaultSource)
	if !tr.IsEmpty() {
		t.Fatal("fresh trie should be empty")
	}

	tr.Insert(0x2)
	if tr.IsEmpty() {
		t.Fatal("trie with one key should not be empty")
	}
}

func TestTrieInsertDuplicateIsNoop(t *testing.T) {
	tr := New(DefaultSource)
	tr.Insert(0x1234)
	tr.Insert(0x1234)

	count := 0
	tr.Visit(func(x uint64) bool {
		count++
		return true
	})

	if count != 1 {
		t.Fatalf("expected one key after duplicate insert, got %d", count)
	}
}

func TestTrieRemove(t *testing.T) {
	tr := New(DefaultSource)

	keys := []uint64{0x2, 0x4, 0x6, 0x44, 0x66, 0x88, 0x98, 0x1234, 0x1244}
	for _, k := range keys {
		tr.Insert(k)
	}

	tr.Remove(0x44)
	if tr.Contains(0x44) {
		t.Fatal("expected 0x44 to be removed")
	}

	for _, k := range keys {
		if k == 0x44 {
			continue
		}
		if !tr.Contains(k) {
			t.Fatalf("removing 0x44 disturbed unrelated key %#x", k)
		}
	}

	for _, k := range keys {
		if k == 0x44 {
			continue
		}
		tr.Remove(k)
	}

	if !tr.IsEmpty() {
		t.Fatal("expected trie to be empty after removing every key")
	}
}

func TestTrieRemoveAbsentIsNoop(t *testing.T) {
	tr := New(DefaultSource)
	tr.Insert(0x2)
	tr.Remove(0x4) // never inserted

	if !tr.Contains(0x2) {
		t.Fatal("removing an absent key should not disturb the trie")
	}
}

func TestTrieVisitDropsRejected(t *testing.T) {
	tr := New(DefaultSource)

	keys := []uint64{0x2, 0x4, 0x6, 0x8, 0xA, 0xC}
	for _, k := range keys {
		tr.Insert(k)
	}

	tr.Visit(func(x uint64) bool {
		return x != 0x6
	})

	if tr.Contains(0x6) {
		t.Fatal("expected 0x6 to be dropped by Visit")
	}

	for _, k := range keys {
		if k == 0x6 {
			continue
		}
		if !tr.Contains(k) {
			t.Fatalf("Visit disturbed unrelated key %#x", k)
		}
	}
}

func TestTrieVisitCollapsesToEmpty(t *testing.T) {
	tr := New(DefaultSource)

	keys := []uint64{0x2, 0x4, 0x6, 0x1234}
	for _, k := range keys {
		tr.Insert(k)
	}

	tr.Visit(func(x uint64) bool { return false })

	if !tr.IsEmpty() {
		t.Fatal("expected trie to be empty after Visit rejects every key")
	}
}

func TestTriePanicsOnOddKey(t *testing.T) {
	tr := New(DefaultSource)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic inserting an odd key")
		}
	}()

	tr.Insert(0x3)
}

func TestTriePanicsOnZeroKey(t *testing.T) {
	tr := New(DefaultSource)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic inserting the zero key")
		}
	}()

	tr.Insert(0)
}

func TestTrieRandomizedRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := New(DefaultSource)
	present := make(map[uint64]bool)

	for i := 0; i < 2000; i++ {
		k := (uint64(rng.Int63())&^1 | 2) // non-zero, even

		switch rng.Intn(3) {
		case 0, 1:
			tr.Insert(k)
			present[k] = true
		case 2:
			tr.Remove(k)
			delete(present, k)
		}
	}

	for k, want := range present {
		if got := tr.Contains(k); got != want {
			t.Fatalf("key %#x: Contains=%v, want %v", k, got, want)
		}
	}

	seen := make(map[uint64]bool)
	tr.Visit(func(x uint64) bool {
		seen[x] = true
		return true
	})

	if len(seen) != len(present) {
		t.Fatalf("Visit saw %d keys, expected %d", len(seen), len(present))
	}

	for k := range present {
		if !seen[k] {
			t.Fatalf("Visit missed key %#x", k)
		}
	}
}
