// Package pdb/cmmn has the protein model that the coordinate file
// readers build up and everything downstream walks over.
package cmmn

import (
	"github.com/rplemos/COCaDA-speed/pdb/geom"
)

// Xyz is an alias, so code which only wants the model does not have
// to import the geometry package as well.
type Xyz = geom.Xyz

// RingName is the name given to the pseudo-atom placed at the
// centroid of an aromatic ring.
const RingName = "RNG"

// An Atom is one atom site from a coordinate file. Res points back to
// the residue it sits in, which saves carrying (chain, residue)
// pairs around separately.
type Atom struct {
	Name string
	Xyz
	Occ    float32
	Res    *Residue
	Entity string
}

// A Residue collects the atoms read for one residue number within a
// chain. Name is the one letter code. If the side chain has an
// aromatic ring and we saw all its members, Ring is set, Normal holds
// the unit normal of the ring plane and the last atom is the ring
// centroid pseudo-atom.
type Residue struct {
	Num    int
	Name   string
	Atoms  []*Atom
	Ring   bool
	Normal Xyz
	Chain  *Chain
}

type Chain struct {
	ID       string
	Residues []*Residue
}

// A Protein is one structure, restricted to its first model. PH comes
// from the file if it says anything, otherwise DfltPH.
type Protein struct {
	ID     string
	Title  string
	PH     float64
	Chains []*Chain
}

// Residues returns the residues of all chains, flattened, in file
// order.
func (p *Protein) Residues() []*Residue {
	var ret []*Residue
	for _, c := range p.Chains {
		ret = append(ret, c.Residues...)
	}
	return ret
}

func (p *Protein) ResidueCount() (n int) {
	for _, c := range p.Chains {
		n += len(c.Residues)
	}
	return n
}

// one2three gets filled in from three2one on first use
var three2one = map[string]string{
	"ALA": "A", "ARG": "R", "ASN": "N", "ASP": "D", "CYS": "C",
	"GLN": "Q", "GLU": "E", "GLY": "G", "HIS": "H", "ILE": "I",
	"LEU": "L", "LYS": "K", "MET": "M", "PHE": "F", "PRO": "P",
	"SER": "S", "THR": "T", "TRP": "W", "TYR": "Y", "VAL": "V",
	// protonation variants of histidine, common in files written
	// by simulation packages
	"HID": "H", "HIE": "H", "HIP": "H",
	"HSD": "H", "HSE": "H", "HSP": "H",
}

var one2three map[string]string

func init() {
	one2three = make(map[string]string, 20)
	for k, v := range three2one {
		if _, ok := one2three[v]; !ok {
			one2three[v] = k
		}
	}
	one2three["H"] = "HIS"
}

// OneLetter maps a three letter residue name to its one letter code.
// Anything that is not one of the twenty standard residues, such as
// water, ligands or modified residues, comes back as "".
func OneLetter(res3 string) string { return three2one[res3] }

// ThreeLetter is the way back, used when writing output.
func ThreeLetter(res1 string) string { return one2three[res1] }

// ringInfo says when a residue type is complete (natom heavy atoms
// seen) and which of its atoms make up the aromatic ring. For
// tryptophan we take both rings together.
type ringInfo struct {
	natom int
	atoms []string
}

var rings = map[string]ringInfo{
	"H": {10, []string{"CG", "ND1", "CE1", "NE2", "CD2"}},
	"F": {11, []string{"CG", "CD1", "CE1", "CZ", "CE2", "CD2"}},
	"W": {14, []string{"CG", "CD1", "NE1", "CE2", "CZ2", "CH2", "CZ3", "CE3", "CD2"}},
	"Y": {12, []string{"CG", "CD1", "CE1", "CZ", "CE2", "CD2"}},
}
