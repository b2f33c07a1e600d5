// 21 Mar 2025

package contacts

// Props are the electrochemical properties an atom can carry. They
// decide which interaction categories the atom can take part in.
type Props uint8

const (
	Apolar Props = 1 << iota
	Donor
	Acceptor
	Positive
	Negative
)

// polar means the atom can hydrogen bond but carries no charge.
func polar(p Props) bool {
	return p&(Donor|Acceptor) != 0 && p&(Positive|Negative) == 0
}

// A Table maps "residue:atom" keys, with one letter residue codes, to
// atom properties. Detect works from the static table unless it is
// handed a pH adjusted copy from Protonate.
type Table map[string]Props

// sideProps holds the side chain atoms. The backbone entries, shared
// by all twenty residues, are added in init.
var sideProps = map[string]Props{
	"A:CB": Apolar,
	"R:CB": Apolar, "R:CG": Apolar, "R:CD": Apolar, "R:NE": Donor | Positive,
	"R:CZ": 0, "R:NH1": Donor | Positive, "R:NH2": Donor | Positive,
	"N:CB": Apolar, "N:CG": 0, "N:OD1": Acceptor, "N:ND2": Donor,
	"D:CB": Apolar, "D:CG": 0, "D:OD1": Acceptor | Negative, "D:OD2": Acceptor | Negative,
	"C:CB": Apolar, "C:SG": Donor | Acceptor,
	"Q:CB": Apolar, "Q:CG": Apolar, "Q:CD": 0, "Q:OE1": Acceptor, "Q:NE2": Donor,
	"E:CB": Apolar, "E:CG": Apolar, "E:CD": 0, "E:OE1": Acceptor | Negative,
	"E:OE2": Acceptor | Negative,
	"H:CB": Apolar, "H:CG": 0, "H:ND1": Donor | Acceptor, "H:CD2": 0,
	"H:CE1": 0, "H:NE2": Donor | Acceptor,
	"I:CB": Apolar, "I:CG1": Apolar, "I:CG2": Apolar, "I:CD1": Apolar,
	"L:CB": Apolar, "L:CG": Apolar, "L:CD1": Apolar, "L:CD2": Apolar,
	"K:CB": Apolar, "K:CG": Apolar, "K:CD": Apolar, "K:CE": 0, "K:NZ": Donor | Positive,
	"M:CB": Apolar, "M:CG": Apolar, "M:SD": Apolar | Acceptor, "M:CE": Apolar,
	"F:CB": Apolar, "F:CG": Apolar, "F:CD1": Apolar, "F:CD2": Apolar,
	"F:CE1": Apolar, "F:CE2": Apolar, "F:CZ": Apolar,
	"P:CB": Apolar, "P:CG": Apolar, "P:CD": Apolar,
	"S:CB": Apolar, "S:OG": Donor | Acceptor,
	"T:CB": Apolar, "T:OG1": Donor | Acceptor, "T:CG2": Apolar,
	"W:CB": Apolar, "W:CG": Apolar, "W:CD1": Apolar, "W:CD2": Apolar, "W:NE1": Donor,
	"W:CE2": Apolar, "W:CE3": Apolar, "W:CZ2": Apolar, "W:CZ3": Apolar, "W:CH2": Apolar,
	"Y:CB": Apolar, "Y:CG": Apolar, "Y:CD1": Apolar, "Y:CD2": Apolar,
	"Y:CE1": Apolar, "Y:CE2": Apolar, "Y:CZ": Apolar, "Y:OH": Donor | Acceptor,
	"V:CB": Apolar, "V:CG1": Apolar, "V:CG2": Apolar,
}

// atomProps is the static table. The ring centroid pseudo-atom has no
// entry, which is what keeps it out of the atom pair scan.
var atomProps = make(Table, 180)

func init() {
	for _, c := range resOrder {
		r := string(c)
		atomProps[r+":N"] = Donor
		atomProps[r+":CA"] = 0
		atomProps[r+":C"] = 0
		atomProps[r+":O"] = Acceptor
	}
	atomProps["P:N"] = 0 // proline has no amide hydrogen
	for k, v := range sideProps {
		atomProps[k] = v
	}
}

// A Category is one kind of interaction. The order fixes how counts
// are reported.
type Category int

const (
	HydrogenBond Category = iota
	Hydrophobic
	Attractive
	Repulsive
	SaltBridge
	Disulfide
	Stacking
	PolarApolar
	PosApolar
	NegApolar
	NCategory
)

var catName = [NCategory]string{
	"hydrogen_bond", "hydrophobic", "attractive", "repulsive",
	"salt_bridge", "disulfide_bond", "stacking", "polar-apolar",
	"pos-apolar", "neg-apolar",
}

var catAbbrev = [NCategory]string{
	"HB", "HY", "AT", "RE", "SB", "DS", "AS", "PA", "PosA", "NegA",
}

// catStrength weights each category when scoring an interface.
var catStrength = [NCategory]float64{
	2.6, 0.6, 10, 10, 10, 85, 1.5, 0, 0, 0,
}

func (c Category) String() string    { return catName[c] }
func (c Category) Abbrev() string    { return catAbbrev[c] }
func (c Category) Strength() float64 { return catStrength[c] }

// ifaceOnly categories only mean anything between two molecules, so
// they are skipped outside interface mode.
func (c Category) ifaceOnly() bool {
	return c == PolarApolar || c == PosApolar || c == NegApolar
}

// phSensitive categories depend on charges, which protonation state
// can change.
func (c Category) phSensitive() bool {
	return c == Attractive || c == Repulsive || c == SaltBridge
}

// A Range is the distance window, in Angstrom, within which a
// category applies. Both ends are inclusive.
type Range struct {
	Lo, Hi float64
}

// DfltRanges is the standard window per category, indexed by Category.
// A different set can go in through Config.Ranges.
var DfltRanges = [NCategory]Range{
	{0, 3.9}, {2, 4.5}, {2, 6}, {2, 6}, {0, 3.9},
	{0, 2.8}, {1.5, 5}, {2, 4.5}, {2, 4.5}, {2, 4.5},
}

const cysSG = "C:SG"

// match says whether two atoms, described by their table keys and
// resolved properties, satisfy the chemical condition of a category.
// Distance windows are the caller's business.
func (c Category) match(k1, k2 string, p1, p2 Props) bool {
	switch c {
	case HydrogenBond:
		return p1&Donor != 0 && p2&Acceptor != 0 ||
			p1&Acceptor != 0 && p2&Donor != 0
	case Hydrophobic:
		return p1&Apolar != 0 && p2&Apolar != 0
	case Attractive, SaltBridge:
		return p1&Positive != 0 && p2&Negative != 0 ||
			p1&Negative != 0 && p2&Positive != 0
	case Repulsive:
		return p1&Positive != 0 && p2&Positive != 0 ||
			p1&Negative != 0 && p2&Negative != 0
	case Disulfide:
		return k1 == cysSG && k2 == cysSG
	case PolarApolar:
		return polar(p1) && p2&Apolar != 0 || p1&Apolar != 0 && polar(p2)
	case PosApolar:
		return p1&Positive != 0 && p2&Apolar != 0 ||
			p1&Apolar != 0 && p2&Positive != 0
	case NegApolar:
		return p1&Negative != 0 && p2&Apolar != 0 ||
			p1&Apolar != 0 && p2&Negative != 0
	}
	return false
}
