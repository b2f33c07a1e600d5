package contacts

import (
	"strings"
	"testing"
)

// Every residue should carry the four backbone atoms, the amide
// nitrogen should donate everywhere except proline, and nothing
// outside the twenty residue alphabet should appear.
func TestTable(t *testing.T) {
	if len(atomProps) != 167 {
		t.Fatalf("table has %d entries, wanted 167", len(atomProps))
	}
	for k := range atomProps {
		if strings.IndexByte(k, ':') != 1 || ndx(k[:1]) < 0 {
			t.Fatalf("broken table key %q", k)
		}
	}
	for _, c := range resOrder {
		r := string(c)
		for _, at := range []string{"N", "CA", "C", "O"} {
			if _, ok := atomProps[r+":"+at]; !ok {
				t.Fatalf("no %s entry for %s", at, r)
			}
		}
		wantN := Donor
		if r == "P" {
			wantN = 0
		}
		if got := atomProps[r+":N"]; got != wantN {
			t.Fatalf("%s:N is %b, wanted %b", r, got, wantN)
		}
		if got := atomProps[r+":O"]; got != Acceptor {
			t.Fatalf("%s:O is %b, wanted %b", r, got, Acceptor)
		}
		if atomProps[r+":CA"] != 0 || atomProps[r+":C"] != 0 {
			t.Fatalf("%s backbone carbons should carry no properties", r)
		}
	}
}

func TestMatch(t *testing.T) {
	var tests = []struct {
		cat    Category
		k1, k2 string
		p1, p2 Props
		want   bool
	}{
		{HydrogenBond, "S:OG", "S:OG", Donor, Acceptor, true},
		{HydrogenBond, "S:OG", "S:OG", Acceptor, Donor, true},
		{HydrogenBond, "S:OG", "S:OG", Donor, Donor, false},
		{Hydrophobic, "A:CB", "A:CB", Apolar, Apolar, true},
		{Hydrophobic, "A:CB", "A:CB", Apolar, Donor, false},
		{Attractive, "K:NZ", "D:OD1", Donor | Positive, Acceptor | Negative, true},
		{Attractive, "D:OD1", "K:NZ", Acceptor | Negative, Donor | Positive, true},
		{Attractive, "K:NZ", "K:NZ", Donor | Positive, Donor | Positive, false},
		{SaltBridge, "K:NZ", "D:OD1", Donor | Positive, Acceptor | Negative, true},
		{Repulsive, "K:NZ", "K:NZ", Donor | Positive, Donor | Positive, true},
		{Repulsive, "D:OD1", "D:OD2", Acceptor | Negative, Acceptor | Negative, true},
		{Repulsive, "K:NZ", "D:OD1", Donor | Positive, Acceptor | Negative, false},
		{Disulfide, "C:SG", "C:SG", Donor | Acceptor, Donor | Acceptor, true},
		{Disulfide, "C:SG", "M:SD", Donor | Acceptor, Acceptor, false},
		{PolarApolar, "S:OG", "A:CB", Donor | Acceptor, Apolar, true},
		{PolarApolar, "A:CB", "S:OG", Apolar, Donor | Acceptor, true},
		{PolarApolar, "K:NZ", "A:CB", Donor | Positive, Apolar, false},
		{PosApolar, "K:NZ", "A:CB", Donor | Positive, Apolar, true},
		{PosApolar, "A:CB", "K:NZ", Apolar, Donor | Positive, true},
		{NegApolar, "D:OD1", "A:CB", Acceptor | Negative, Apolar, true},
		{NegApolar, "K:NZ", "A:CB", Donor | Positive, Apolar, false},
		{Stacking, "F:CB", "F:CB", Apolar, Apolar, false},
	}
	for i, tc := range tests {
		if got := tc.cat.match(tc.k1, tc.k2, tc.p1, tc.p2); got != tc.want {
			t.Fatalf("case %d (%v): got %v, wanted %v", i, tc.cat, got, tc.want)
		}
	}
}

// The enum order, names, abbreviations and weights are all part of
// the output format, so pin them down.
func TestCategory(t *testing.T) {
	var want = []struct {
		cat      Category
		name     string
		abbrev   string
		strength float64
	}{
		{HydrogenBond, "hydrogen_bond", "HB", 2.6},
		{Hydrophobic, "hydrophobic", "HY", 0.6},
		{Attractive, "attractive", "AT", 10},
		{Repulsive, "repulsive", "RE", 10},
		{SaltBridge, "salt_bridge", "SB", 10},
		{Disulfide, "disulfide_bond", "DS", 85},
		{Stacking, "stacking", "AS", 1.5},
		{PolarApolar, "polar-apolar", "PA", 0},
		{PosApolar, "pos-apolar", "PosA", 0},
		{NegApolar, "neg-apolar", "NegA", 0},
	}
	if len(want) != int(NCategory) {
		t.Fatal("category list out of date")
	}
	for i, w := range want {
		if int(w.cat) != i {
			t.Fatalf("%s misplaced in the enum", w.name)
		}
		if w.cat.String() != w.name || w.cat.Abbrev() != w.abbrev ||
			w.cat.Strength() != w.strength {
			t.Fatalf("%s: got %s %s %v", w.name,
				w.cat, w.cat.Abbrev(), w.cat.Strength())
		}
	}
}

func TestPropKinds(t *testing.T) {
	if !polar(Donor) || !polar(Donor|Acceptor) || polar(Donor|Positive) ||
		polar(Apolar) || polar(Acceptor|Negative) {
		t.Fatal("polar predicate is wrong")
	}
	for c := Category(0); c < NCategory; c++ {
		wantIface := c == PolarApolar || c == PosApolar || c == NegApolar
		wantPh := c == Attractive || c == Repulsive || c == SaltBridge
		if c.ifaceOnly() != wantIface || c.phSensitive() != wantPh {
			t.Fatalf("%v misclassified", c)
		}
	}
}

func TestRanges(t *testing.T) {
	for c := Category(0); c < NCategory; c++ {
		rg := DfltRanges[c]
		if rg.Hi <= rg.Lo || rg.Hi > 6 {
			t.Fatalf("%v range %v broken", c, rg)
		}
	}
	if DfltRanges[HydrogenBond].Hi != 3.9 || DfltRanges[Disulfide].Hi != 2.8 ||
		DfltRanges[Stacking].Lo != 1.5 || DfltRanges[Stacking].Hi != 5 ||
		DfltRanges[Attractive].Hi != 6 {
		t.Fatal("default windows moved")
	}
}
