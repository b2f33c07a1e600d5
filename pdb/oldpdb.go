// Reader for the old fixed-column PDB format. Everything interesting
// sits at known byte offsets, so this is mostly slicing and a bit of
// bookkeeping for the header records.

package pdb

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/rplemos/COCaDA-speed/pdb/cmmn"
)

// phRegex pulls a pH value out of a remark line. Crystallographers
// write "PH : 7.5", "PH 7.5" and worse.
var phRegex = regexp.MustCompile(`\bPH\b\s*[:\s]\s*([-+]?\d*\.\d+|\d+)`)

// phFromRemark digs a pH value out of a remark line. Ranges like
// "7.0-7.5" and entries saying NULL are not worth guessing about, so
// they give (0, false).
func phFromRemark(line string) (float64, bool) {
	if strings.Contains(line, "NULL") {
		return 0, false
	}
	loc := phRegex.FindStringSubmatchIndex(line)
	if loc == nil {
		return 0, false
	}
	end := loc[3]
	if end < len(line) && (line[end] == '-' || line[end] == '/') {
		return 0, false
	}
	ph, err := strconv.ParseFloat(line[loc[2]:loc[3]], 64)
	if err != nil {
		return 0, false
	}
	return ph, true
}

// compndEnt handles the COMPND records, which map chains to the
// molecule they belong to. MOL_ID lines name the current molecule and
// CHAIN lines list its chains.
type compndEnt struct {
	cur    string
	chains map[string]string
}

func (c *compndEnt) line(s string) {
	if i := strings.Index(s, "MOL_ID:"); i != -1 {
		v := strings.TrimSpace(s[i+len("MOL_ID:"):])
		c.cur = strings.TrimSuffix(v, ";")
		return
	}
	if i := strings.Index(s, "CHAIN:"); i != -1 {
		v := strings.TrimSuffix(strings.TrimSpace(s[i+len("CHAIN:"):]), ";")
		for _, ch := range strings.Split(v, ",") {
			ch = strings.TrimSpace(ch)
			if ch != "" && c.cur != "" {
				if c.chains == nil {
					c.chains = make(map[string]string)
				}
				c.chains[ch] = c.cur
			}
		}
	}
}

func (c *compndEnt) entity(chain string) string {
	if e, ok := c.chains[chain]; ok {
		return e
	}
	return chain
}

// atomFields are the byte offsets of an ATOM record. The format is
// fixed, which is the one good thing about it.
const (
	atNameBeg, atNameEnd   = 12, 16
	resNameBeg, resNameEnd = 17, 20
	chainPos               = 21
	resNumBeg, resNumEnd   = 22, 26
	xBeg, xEnd             = 30, 38
	yBeg, yEnd             = 38, 46
	zBeg, zEnd             = 46, 54
	occBeg, occEnd         = 55, 60
)

func atomFloat(line string, beg, end int) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(line[beg:end]), 32)
	return float32(f), err
}

// ReadPdb reads old format coordinates. name seeds the structure id
// and is overridden if a HEADER record names the entry. Only the
// first model of a multi-model file is kept.
func ReadPdb(rdr io.Reader, name string) (*cmmn.Protein, error) {
	bld := cmmn.NewRecBuilder(name)
	var ents compndEnt
	var title strings.Builder
	phSet := false

	scnnr := bufio.NewScanner(rdr)
	buf := make([]byte, 0, 1024)
	scnnr.Buffer(buf, 1024*1024)
	nline := 0
scanning:
	for scnnr.Scan() {
		nline++
		line := scnnr.Text()
		switch {
		case strings.HasPrefix(line, "ATOM  "):
			if len(line) < occEnd {
				return nil, fmt.Errorf("%s line %d: short atom record", name, nline)
			}
			rec := cmmn.AtomRec{
				ChainID: strings.TrimSpace(line[chainPos : chainPos+1]),
				ResName: strings.TrimSpace(line[resNameBeg:resNameEnd]),
				AtName:  strings.TrimSpace(line[atNameBeg:atNameEnd]),
			}
			n, err := strconv.Atoi(strings.TrimSpace(line[resNumBeg:resNumEnd]))
			if err != nil {
				return nil, fmt.Errorf("%s line %d: residue number: %v", name, nline, err)
			}
			rec.ResNum = n
			for _, fl := range []struct {
				dst      *float32
				beg, end int
				what     string
			}{
				{&rec.X, xBeg, xEnd, "x"},
				{&rec.Y, yBeg, yEnd, "y"},
				{&rec.Z, zBeg, zEnd, "z"},
				{&rec.Occ, occBeg, occEnd, "occupancy"},
			} {
				if *fl.dst, err = atomFloat(line, fl.beg, fl.end); err != nil {
					return nil, fmt.Errorf("%s line %d: %s: %v", name, nline, fl.what, err)
				}
			}
			rec.Entity = ents.entity(rec.ChainID)
			bld.Add(rec)
		case strings.HasPrefix(line, "ENDMDL"):
			bld.Flush()
			break scanning
		case strings.HasPrefix(line, "COMPND"):
			ents.line(line)
		case strings.HasPrefix(line, "HEADER"):
			if len(line) > 62 {
				if id := strings.TrimSpace(line[62:]); id != "" {
					bld.SetID(strings.ToLower(id))
				}
			}
		case strings.HasPrefix(line, "TITLE "):
			if len(line) > 10 {
				if title.Len() > 0 {
					title.WriteByte(' ')
				}
				title.WriteString(strings.TrimSpace(line[10:]))
			}
		case strings.HasPrefix(line, "REMARK 200"),
			strings.HasPrefix(line, "REMARK 21"):
			if !phSet {
				if ph, ok := phFromRemark(line); ok {
					bld.SetPH(ph)
					phSet = true
				}
			}
		case strings.HasPrefix(line, "END"):
			bld.Flush()
		}
	}
	if err := scnnr.Err(); err != nil {
		return nil, fmt.Errorf("%s line %d: %v", name, nline, err)
	}
	if title.Len() > 0 {
		bld.SetTitle(title.String())
	}
	return bld.Protein(), nil
}
