package connid

import "testing"

func TestNextIsUnique(t *testing.T) {
	a := Next()
	b := Next()
	if a == b {
		t.Fatalf("expected distinct labels, got %q twice", a)
	}
}
