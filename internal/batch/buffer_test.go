package batch

import "testing"

func TestBufferFillsToCapacity(t *testing.T) {
	b := NewBuffer[int](3)
	if full := b.Add(1); full {
		t.Fatal("buffer reported full after 1/3")
	}
	if full := b.Add(2); full {
		t.Fatal("buffer reported full after 2/3")
	}
	if full := b.Add(3); !full {
		t.Fatal("buffer should report full at capacity")
	}
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}
}

func TestDrainResetsBuffer(t *testing.T) {
	b := NewBuffer[string](2)
	b.Add("a")
	b.Add("b")
	drained := b.Drain()
	if len(drained) != 2 {
		t.Fatalf("drained length = %d, want 2", len(drained))
	}
	if b.Len() != 0 {
		t.Fatalf("buffer should be empty after Drain, Len() = %d", b.Len())
	}
}

func TestDefaultCapacityUsedWhenZero(t *testing.T) {
	b := NewBuffer[int](0)
	if b.capacity != DefaultCapacity {
		t.Fatalf("capacity = %d, want %d", b.capacity, DefaultCapacity)
	}
}
