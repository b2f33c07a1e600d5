// Picking apart the atom_site table. The scanner side batches raw
// lines into a channel and the code here, running in its own
// goroutine, turns them into atom records for the builder.

package mmcif

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/rplemos/COCaDA-speed/pdb/cmmn"
	"github.com/rplemos/COCaDA-speed/pdb/geom"
)

const bust = -99.0 // returned for coordinates when something breaks

// A cifCol is one column we may want from the atom_site table. Some
// columns have a stand-in, so label_seq_id can answer for
// auth_seq_id when a file lacks the latter.
type cifCol struct {
	cifName string // name in the mmcif file, like label_asym_id
	altName string // acceptable substitute, "" when there is none
	n       int8   // where to find the column, -1 when absent
}

// acn holds the column layout of the atom_site table. The starting
// indices are the order the protein data bank writes, which is
// nearly always what arrives. Columns we never read are listed
// anyway, since they pin down the positions of the ones we do.
type acn struct {
	group_PDB,
	id,
	typeSymbol,
	labelAtomId,
	labelAltId,
	labelCompId,
	labelAsymId,
	labelEntityId,
	labelSeqId,
	pdbxPDBInsCode,
	cartnX,
	cartnY,
	cartnZ,
	occupancy,
	BIsoOrEquiv,
	pdbxFormalCharge,
	authSeqId,
	authCompId,
	authAsymId,
	authAtomId,
	pdbxPDBModelNum cifCol
}

func newAcn() *acn {
	return &acn{
		cifCol{"group_PDB", "", 0},
		cifCol{"id", "", 1},
		cifCol{"type_symbol", "", 2},
		cifCol{"label_atom_id", "auth_atom_id", 3},
		cifCol{"label_alt_id", "", 4},
		cifCol{"label_comp_id", "auth_comp_id", 5},
		cifCol{"label_asym_id", "", 6},
		cifCol{"label_entity_id", "", 7},
		cifCol{"label_seq_id", "", 8},
		cifCol{"pdbx_PDB_ins_code", "", 9},
		cifCol{"Cartn_x", "", 10},
		cifCol{"Cartn_y", "", 11},
		cifCol{"Cartn_z", "", 12},
		cifCol{"occupancy", "", 13},
		cifCol{"B_iso_or_equiv", "", 14},
		cifCol{"pdbx_formal_charge", "", 15},
		cifCol{"auth_seq_id", "label_seq_id", 16},
		cifCol{"auth_comp_id", "label_comp_id", 17},
		cifCol{"auth_asym_id", "label_asym_id", 18},
		cifCol{"auth_atom_id", "label_atom_id", 19},
		cifCol{"pdbx_PDB_model_num", "", 20},
	}
}

// sliceAfterASite cuts "_atom_site." off the front of a header, so
// what is left is just the column name.
func sliceAfterASite(s bSlice) bSlice {
	const slen = len("atom_site.") + 1
	if len(s) < slen {
		return nil
	}
	return s[slen:]
}

// checkName says whether the header at a column's guessed position
// really carries that column's name.
func checkName(headers []bSlice, cf cifCol) bool {
	if int(cf.n) >= len(headers) {
		return false
	}
	return string(sliceAfterASite(headers[cf.n])) == cf.cifName
}

// isDotOrQ spots the two mmcif ways of writing no-value, a dot or a
// question mark.
func isDotOrQ(s bSlice) bool {
	return len(s) == 1 && (s[0] == '.' || s[0] == '?')
}

// dflt_headers reports whether the column names sit at the usual
// protein data bank positions. Usually they do, and then there is no
// need to go looking for each label.
func dflt_headers(acn *acn, headers []bSlice) bool {
	for _, cf := range []cifCol{
		acn.typeSymbol, acn.labelAtomId, acn.labelCompId,
		acn.occupancy, acn.pdbxPDBModelNum, acn.cartnX} {
		if !checkName(headers, cf) {
			return false
		}
	}
	return true
}

// getxyz pulls the three coordinates from a line. Checking each
// conversion is tedious, so a little closure remembers the first
// failure and turns the rest into no-ops.
func getxyz(cmpnt []bSlice, acn *acn) (geom.Xyz, error) {
	var err error
	ff := func(index int8) float32 {
		if err != nil {
			return bust
		}
		var xx float64
		if xx, err = strconv.ParseFloat(string(cmpnt[index]), 32); err != nil {
			return bust
		}
		return float32(xx)
	}
	var xyz geom.Xyz
	xyz.X = ff(acn.cartnX.n)
	xyz.Y = ff(acn.cartnY.n)
	xyz.Z = ff(acn.cartnZ.n)
	return xyz, err
}

// getColPos hunts for a column by name, then by its substitute name.
// Finding neither sets the caller's error. Once that error is set,
// further calls do nothing, so a run of lookups only needs one check
// at the end.
func (cf *cifCol) getColPos(headers []bSlice, err *error) {
	if *err != nil {
		return
	}
	for _, name := range []string{cf.cifName, cf.altName} {
		if name == "" {
			continue
		}
		for i, h := range headers {
			if name == string(sliceAfterASite(h)) {
				cf.n = int8(i)
				return
			}
		}
	}
	*err = errors.New("Could not find atomsite column: " + cf.cifName)
}

// getColPosOpt is for columns we can live without. Absence is
// recorded as -1 rather than an error.
func (cf *cifCol) getColPosOpt(headers []bSlice) {
	var err error
	if cf.getColPos(headers, &err); err != nil {
		cf.n = -1
	}
}

// searchColNames runs when the headers are not at their default
// positions. The first block must all be found. The second block is
// optional, with sensible fallbacks handled at read time.
func searchColNames(acn *acn, headers []bSlice) error {
	var err error
	acn.labelAtomId.getColPos(headers, &err)
	acn.labelCompId.getColPos(headers, &err)
	acn.labelAsymId.getColPos(headers, &err)
	acn.authSeqId.getColPos(headers, &err)
	acn.cartnX.getColPos(headers, &err)
	acn.cartnY.getColPos(headers, &err)
	acn.cartnZ.getColPos(headers, &err)
	acn.typeSymbol.getColPosOpt(headers)
	acn.occupancy.getColPosOpt(headers)
	acn.labelEntityId.getColPosOpt(headers)
	acn.authAsymId.getColPosOpt(headers)
	acn.pdbxPDBModelNum.getColPosOpt(headers)
	return err
}

// A chanWrap sits on the batch channel and gives back one line at a
// time. Spent batches go back into the pool shared with the scanner
// side.
type chanWrap struct {
	c       chan []bSlice
	cs      []bSlice   // the batch currently being walked
	bufPool *sync.Pool // created by the caller, shared here
	scrtch  [40]bSlice // scratch for splitting a line into fields
	ndx     int
}

// linechan returns the next line, refilling from the channel when
// the current batch is used up.
func (cw *chanWrap) linechan() bSlice {
	if cw.ndx == len(cw.cs) {
		if len(cw.cs) > 0 {
			cw.bufPool.Put(cw.cs)
		}
		cw.cs = <-cw.c
		cw.ndx = 0
		if len(cw.cs) == 0 {
			return nil
		}
	}
	cw.ndx++
	return cw.cs[cw.ndx-1]
}

// closePool gives the last batch back.
func (cw *chanWrap) closePool() {
	cw.bufPool.Put(cw.cs)
}

// cmpntChan hands out the next line already broken into components.
// A component like "C5'" arrives from the file with quotes around
// it, which go away here.
func (cw *chanWrap) cmpntChan() (cmpnt []bSlice) {
	s := cw.linechan()
	if s == nil {
		return nil
	}
	cmpnt = fields(s, cw.scrtch[:])
	for i := range cmpnt {
		s = cmpnt[i]
		first := s[0]
		last := s[len(s)-1]
		if first == dquote && last == dquote ||
			first == squote && last == squote {
			if len(s) > 1 {
				cmpnt[i] = s[1 : len(s)-1]
			}
		}
	}
	return cmpnt
}

// cmpntTooSmall complains when a line has fewer components than the
// columns we are about to index.
func cmpntTooSmall(acn *acn, n int) error {
	const msg = "Too few components (%d)"
	i := int8(n)
	for _, c := range []int8{
		acn.labelAtomId.n, acn.labelCompId.n, acn.labelAsymId.n,
		acn.authSeqId.n, acn.cartnX.n, acn.cartnY.n, acn.cartnZ.n,
		acn.typeSymbol.n, acn.occupancy.n, acn.labelEntityId.n,
		acn.authAsymId.n, acn.pdbxPDBModelNum.n} {
		if c >= 0 && i <= c {
			return fmt.Errorf(msg, n)
		}
	}
	return nil
}

// wantElement keeps nitrogen, carbon, oxygen and sulphur. Everything
// else, hydrogens aside, is not a protein atom we use.
func wantElement(s bSlice) bool {
	if len(s) != 1 {
		return false
	}
	switch s[0] {
	case 'N', 'C', 'O', 'S':
		return true
	}
	return false
}

// feed walks the atom rows and gives each surviving one to the
// builder. We stop taking rows at the first change of model number,
// but keep eating lines so the reader at the other end of the channel
// never blocks.
func feed(cw *chanWrap, acn *acn, bld *cmmn.RecBuilder) error {
	var firstMdl []byte
	done := false
	for cmpnt := cw.cmpntChan(); cmpnt != nil; cmpnt = cw.cmpntChan() {
		if done {
			continue
		}
		if err := cmpntTooSmall(acn, len(cmpnt)); err != nil {
			return fmt.Errorf("%s on line %v", err.Error(), cmpnt)
		}
		if acn.pdbxPDBModelNum.n >= 0 {
			m := cmpnt[acn.pdbxPDBModelNum.n]
			if firstMdl == nil { // copy, the line buffer gets recycled
				firstMdl = append(firstMdl, m...)
			} else if !bytes.Equal(firstMdl, m) {
				done = true // second model, we only keep the first
				continue
			}
		}
		if acn.typeSymbol.n >= 0 && !wantElement(cmpnt[acn.typeSymbol.n]) {
			continue
		}
		rs := cmpnt[acn.authSeqId.n]
		if isDotOrQ(rs) {
			continue
		}
		resnum, err := strconv.Atoi(string(rs))
		if err != nil {
			return fmt.Errorf("%s: converting residue number %s", err.Error(), rs)
		}
		chain := cmpnt[acn.labelAsymId.n]
		if isDotOrQ(chain) && acn.authAsymId.n >= 0 {
			chain = cmpnt[acn.authAsymId.n]
		}
		ent := chain
		if acn.labelEntityId.n >= 0 {
			if e := cmpnt[acn.labelEntityId.n]; !isDotOrQ(e) {
				ent = e
			}
		}
		occ := float32(1)
		if acn.occupancy.n >= 0 {
			if o := cmpnt[acn.occupancy.n]; !isDotOrQ(o) {
				f, err := strconv.ParseFloat(string(o), 32)
				if err != nil {
					return fmt.Errorf("%s: converting occupancy %s", err.Error(), o)
				}
				occ = float32(f)
			}
		}
		xyz, err := getxyz(cmpnt, acn)
		if err != nil {
			return err
		}
		bld.Add(cmmn.AtomRec{
			ChainID: string(chain),
			ResNum:  resnum,
			ResName: string(cmpnt[acn.labelCompId.n]),
			AtName:  string(cmpnt[acn.labelAtomId.n]),
			X:       xyz.X, Y: xyz.Y, Z: xyz.Z,
			Occ:    occ,
			Entity: string(ent),
		})
	}
	return nil
}

// drain discards anything left in the channel
func drain(c chan []bSlice) {
	for range c {
	}
}

// atomSite is the goroutine end of the batch channel. The first
// thing it gets is the header lines, from which it works out the
// column layout. Rows that survive the element and model filters go
// to the builder, which does the rest of the bookkeeping. rChan
// carries back one string, empty for success.
func atomSite(headers []bSlice, bld *cmmn.RecBuilder,
	c chan []bSlice, rChan chan string, bufPool *sync.Pool) {
	defer close(rChan)

	acn := newAcn()
	if !dflt_headers(acn, headers) {
		if err := searchColNames(acn, headers); err != nil {
			drain(c)
			rChan <- err.Error()
			return
		}
	}
	cw := &chanWrap{c: c, bufPool: bufPool}
	defer cw.closePool()
	if err := feed(cw, acn, bld); err != nil {
		drain(c)
		rChan <- err.Error()
		return
	}
}
