package security

import "testing"

func TestRandIntCoversFullRange(t *testing.T) {
	seen := make(map[int]bool)
	aboveByte := false
	for i := 0; i < 4000; i++ {
		n, err := randInt(300)
		if err != nil {
			t.Fatalf("randInt: %v", err)
		}
		if n < 0 || n >= 300 {
			t.Fatalf("value %d out of range", n)
		}
		if n >= 256 {
			aboveByte = true
		}
		seen[n] = true
	}
	if !aboveByte {
		t.Fatal("expected values above 255")
	}
	if len(seen) < 250 {
		t.Fatalf("expected wide spread of values, saw %d distinct", len(seen))
	}
}

func TestRandIntRejectsNonPositiveMax(t *testing.T) {
	if _, err := randInt(0); err == nil {
		t.Fatal("expected error for zero max")
	}
}
