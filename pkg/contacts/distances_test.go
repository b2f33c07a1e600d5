package contacts

import (
	"math"
	"testing"
)

func TestPairMax(t *testing.T) {
	approx := func(a, b float64) bool { return math.Abs(a-b) < 1e-4 }
	if m := pairMax("R", "R"); !approx(m, 20.46) {
		t.Fatalf("arg pair gives %v", m)
	}
	if m := pairMax("A", "A"); !approx(m, 10.80) {
		t.Fatalf("ala pair gives %v", m)
	}
	if m := pairMax("A", "R"); !approx(m, 15.63) || !approx(m, pairMax("R", "A")) {
		t.Fatalf("mixed pair gives %v", m)
	}
	if pairMax("X", "A") != 0 || pairMax("", "A") != 0 || pairMax("RR", "A") != 0 {
		t.Fatal("unknown residues should give 0")
	}
	for _, c1 := range resOrder {
		for _, c2 := range resOrder {
			m := pairMax(string(c1), string(c2))
			if m < 10.8-1e-4 || m > GlobalCA {
				t.Fatalf("%c%c cutoff %v out of sensible bounds", c1, c2, m)
			}
		}
	}
}
