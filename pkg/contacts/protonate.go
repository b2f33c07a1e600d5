// 22 Mar 2025

package contacts

import "math"

// An ionizable side chain: its pKa and the atoms whose properties
// swing with protonation state.
type ionizable struct {
	res   string
	pka   float64
	acid  bool
	atoms []string
}

var ionizables = []ionizable{
	{"D", 3.65, true, []string{"OD1", "OD2"}},
	{"E", 4.25, true, []string{"OE1", "OE2"}},
	{"H", 6.0, false, []string{"ND1", "NE2"}},
	{"C", 8.3, true, []string{"SG"}},
	{"Y", 10.07, true, []string{"OH"}},
	{"K", 10.53, false, []string{"NZ"}},
	{"R", 12.48, false, []string{"NE", "NH1", "NH2"}},
}

// DfltWindow is how far, in pH units, a pKa may sit from the target
// pH and still be worth adjusting.
const DfltWindow = 6.0

// ambigBand: closer than this to the pKa, both protonation states are
// well populated and we refuse to pick one.
const ambigBand = 2.0

// Protonate returns a copy of the static table adjusted to the given
// pH, along with a registry of atoms whose state was too close to
// call. Those keep their hydrogen bonding flags in the table but lose
// their charges, and the registry holds the charged state, so the
// charge driven categories can be flagged as uncertain rather than
// silently kept or dropped.
func Protonate(ph, window float64) (Table, map[string]Props) {
	tbl := make(Table, len(atomProps))
	for k, v := range atomProps {
		tbl[k] = v
	}
	uncertain := make(map[string]Props)
	for _, ion := range ionizables {
		d := ph - ion.pka
		if math.Abs(d) > window {
			continue
		}
		charged := Donor | Positive
		if ion.acid {
			charged = Acceptor | Negative
		}
		ambig := math.Abs(d) < ambigBand
		var set Props
		switch {
		case ambig:
		case ion.acid && d > 0, !ion.acid && d < 0:
			set = charged
		default:
			set = Donor | Acceptor // the neutral form
		}
		for _, at := range ion.atoms {
			key := ion.res + ":" + at
			if ambig {
				tbl[key] &^= Positive | Negative
				uncertain[key] = charged
			} else {
				tbl[key] = set
			}
		}
	}
	return tbl, uncertain
}
