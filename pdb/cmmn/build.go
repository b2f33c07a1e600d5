package cmmn

import (
	"strings"

	"github.com/rplemos/COCaDA-speed/pdb/geom"
)

// DfltPH is assumed when a structure does not state its own pH.
const DfltPH = 7.4

// An AtomRec is one raw atom line, already pulled apart by a reader
// but not yet filtered or grouped. Both file formats reduce to this.
type AtomRec struct {
	ChainID string
	ResNum  int
	ResName string // three letter, as read
	AtName  string
	X, Y, Z float32
	Occ     float32
	Entity  string
}

// A RecBuilder eats atom records one at a time and groups them into
// residues, chains and finally a protein. It does the filtering both
// readers want. Hydrogens are dropped, as are atoms from minor
// conformers, and a residue goes on to its chain exactly once, even
// when an OXT closes it early and more atom lines follow.
type RecBuilder struct {
	prot   *Protein
	chn    *Chain
	res    *Residue
	closed bool
}

func NewRecBuilder(id string) *RecBuilder {
	return &RecBuilder{prot: &Protein{ID: id, PH: DfltPH}}
}

func (b *RecBuilder) SetID(id string)   { b.prot.ID = id }
func (b *RecBuilder) SetTitle(t string) { b.prot.Title = t }
func (b *RecBuilder) SetPH(ph float64)  { b.prot.PH = ph }

// closeRes puts the residue being collected on to its chain, unless
// it has already gone there or ended up with no atoms.
func (b *RecBuilder) closeRes() {
	if b.res == nil || b.closed {
		return
	}
	if len(b.res.Atoms) > 0 {
		c := b.res.Chain
		c.Residues = append(c.Residues, b.res)
	}
	b.closed = true
}

// Add files one atom record. Records must arrive in file order, since
// chain and residue boundaries are recognised by change of name or
// number.
func (b *RecBuilder) Add(rec AtomRec) {
	name1 := OneLetter(rec.ResName)
	if name1 == "" {
		return
	}
	if b.chn == nil || b.chn.ID != rec.ChainID {
		b.closeRes()
		b.chn = &Chain{ID: rec.ChainID}
		b.prot.Chains = append(b.prot.Chains, b.chn)
		b.res = nil
	}
	if b.res != nil && b.res.Num != rec.ResNum {
		b.closeRes()
		b.res = nil
	}
	if b.res == nil {
		b.res = &Residue{Num: rec.ResNum, Name: name1, Chain: b.chn}
		b.closed = false
	}
	if rec.AtName == "OXT" { // terminal oxygen marks the end
		b.closeRes()
		return
	}
	if strings.HasPrefix(rec.AtName, "H") {
		return
	}
	if rec.Occ != 0 && rec.Occ < 0.5 {
		return // minor conformer
	}
	if n := len(b.res.Atoms); n > 0 && b.res.Atoms[n-1].Name == rec.AtName {
		return // second conformer at full columns, keep the first
	}
	a := &Atom{
		Name:   rec.AtName,
		Xyz:    Xyz{X: rec.X, Y: rec.Y, Z: rec.Z},
		Occ:    rec.Occ,
		Res:    b.res,
		Entity: rec.Entity,
	}
	b.res.Atoms = append(b.res.Atoms, a)
	b.maybeRing(rec.Entity)
}

// maybeRing fires when an aromatic residue has just reached its full
// heavy atom count. It adds a pseudo-atom at the ring centroid and
// stores the normal of the ring plane for stacking geometry later.
func (b *RecBuilder) maybeRing(entity string) {
	ri, ok := rings[b.res.Name]
	if !ok || b.res.Ring || len(b.res.Atoms) != ri.natom {
		return
	}
	var pts []Xyz
	for _, want := range ri.atoms {
		for _, a := range b.res.Atoms {
			if a.Name == want {
				if a.Occ != 1 {
					return // partial ring, no use to us
				}
				pts = append(pts, a.Xyz)
				break
			}
		}
	}
	if len(pts) != len(ri.atoms) {
		return
	}
	nrm, err := geom.PlaneNormal(pts)
	if err != nil {
		return
	}
	cen := geom.Centroid(pts)
	rng := &Atom{Name: RingName, Xyz: cen, Occ: 1, Res: b.res, Entity: entity}
	b.res.Atoms = append(b.res.Atoms, rng)
	b.res.Ring = true
	b.res.Normal = nrm
}

// Flush closes whatever residue is still open. Call it when the atom
// records run out.
func (b *RecBuilder) Flush() { b.closeRes() }

// Protein flushes and hands over the finished structure. Chains that
// ended up empty, say a chain holding only water, are dropped.
func (b *RecBuilder) Protein() *Protein {
	b.Flush()
	kept := b.prot.Chains[:0]
	for _, c := range b.prot.Chains {
		if len(c.Residues) > 0 {
			kept = append(kept, c)
		}
	}
	b.prot.Chains = kept
	return b.prot
}
