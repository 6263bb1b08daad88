package crypto1

import "testing"

func TestFilterAgreesWithTableDriven(t *testing.T) {
	for x := uint32(0); x < 1<<20; x += 7 {
		if got, want := filterTableDriven(x), filterBitMath(x); got != want {
			t.Fatalf("filterTableDriven(%#x) = %d, filterBitMath = %d", x, got, want)
		}
	}
	edge := []uint32{0, 0xFFFFF, 0x80000, 0x00001, 0x55555, 0xAAAAA}
	for _, x := range edge {
		if got, want := filterTableDriven(x), filterBitMath(x); got != want {
			t.Errorf("filterTableDriven(%#x) = %d, filterBitMath = %d", x, got, want)
		}
	}
}

func TestFilterOnlyUsesLow20Bits(t *testing.T) {
	base := uint32(0x0ABCDE)
	for high := uint32(0); high < 0x10; high++ {
		x := base | high<<20
		if got, want := Filter(x), Filter(base); got != want {
			t.Errorf("Filter(%#x) = %d, want %d (bits above 19 must not affect output)", x, got, want)
		}
	}
}

func TestFilterIsBooleanValued(t *testing.T) {
	for x := uint32(0); x < 1<<20; x += 131 {
		if v := Filter(x); v != 0 && v != 1 {
			t.Fatalf("Filter(%#x) = %d, want 0 or 1", x, v)
		}
	}
}
