// 18 Mar 2025

// Package contacts finds and classifies the noncovalent interactions
// within a protein structure. The residue pair loop is pruned on
// alpha carbon separation before any atom pair is looked at, which is
// where nearly all the time is saved.
package contacts

import (
	"bufio"
	"errors"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rplemos/COCaDA-speed/pdb/cmmn"
	"github.com/rplemos/COCaDA-speed/pdb/geom"
)

// Config steers a Detect run. The zero value classifies everything
// with the static table and standard distance windows.
type Config struct {
	Region    map[int]bool    // residue numbers to keep, empty keeps all
	Chains    map[string]bool // chain ids to keep, empty keeps all
	Interface bool            // only look between different entities
	IfaceRes  map[string]bool // restrict first residues to these keys
	Ranges    *[NCategory]Range
	Epsilon   float64 // widens every upper distance bound
	Table     Table   // nil means the static table
	Uncertain map[string]Props

	Cluster     bool   // keep only the biggest patch of second residues
	LinkerChain string // chain searched for GGS linker runs
	MaxGap      int    // largest hole within a patch, 0 means DfltMaxGap
	MinSpan     int    // smallest worthwhile patch extent, 0 means DfltMinSpan
}

// An Endpoint is one side of a contact, named the way output wants
// it, with the three letter residue code.
type Endpoint struct {
	Chain   string
	ResNum  int
	ResName string
	Atom    string
}

// A Contact is one classified interaction. Dist is rounded to two
// decimals. Label is the category name, possibly carrying a stacking
// geometry suffix or an uncertain_ prefix.
type Contact struct {
	A, B  Endpoint
	Dist  float64
	Label string
}

// A Result is everything one Detect run found.
type Result struct {
	Contacts  []Contact
	Counts    [NCategory]int
	IfaceRes  map[string]bool // "chain,num,name" keys, interface mode only
	Strength  float64         // weighted sum, interface mode only
	Uncertain []string        // atom keys left ambiguous by Protonate
	Cluster   []int           // residue numbers kept by clustering
}

type cand struct {
	cat Category
	con Contact
}

type pairKey struct {
	c1 string
	n1 int
	c2 string
	n2 int
}

// Detect walks all residue pairs of p once and returns the classified
// contacts, in the order the pair loop met them.
func Detect(p *cmmn.Protein, cfg *Config) (*Result, error) {
	if p == nil {
		return nil, errors.New("no structure to look for contacts in")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	tbl := cfg.Table
	if tbl == nil {
		tbl = atomProps
	}
	ranges := DfltRanges
	if cfg.Ranges != nil {
		ranges = *cfg.Ranges
	}
	eps := cfg.Epsilon

	var resList []*cmmn.Residue
	for _, ch := range p.Chains {
		if len(cfg.Chains) > 0 && !cfg.Chains[ch.ID] {
			continue
		}
		for _, r := range ch.Residues {
			if len(cfg.Region) > 0 && !cfg.Region[r.Num] {
				continue
			}
			if len(r.Atoms) < 2 { // no alpha carbon to prune on
				continue
			}
			resList = append(resList, r)
		}
	}

	bufs := make(map[pairKey][]cand)
	var order []pairKey
	add := func(k pairKey, cd cand) {
		if _, ok := bufs[k]; !ok {
			order = append(order, k)
		}
		bufs[k] = append(bufs[k], cd)
	}

	for i := 0; i < len(resList); i++ {
		r1 := resList[i]
		ca1 := r1.Atoms[1]
		key1ok := !cfg.Interface || len(cfg.IfaceRes) == 0 || cfg.IfaceRes[resKey(r1)]
		for j := i + 1; j < len(resList); j++ {
			r2 := resList[j]
			if r1.Chain.ID == r2.Chain.ID && r1.Num == r2.Num {
				continue
			}
			dCA := geom.Dist(ca1.Xyz, r2.Atoms[1].Xyz)
			if dCA > GlobalCA+eps {
				continue
			}
			if m := pairMax(r1.Name, r2.Name); m > 0 && dCA > m+eps {
				continue
			}
			pk := pairKey{r1.Chain.ID, r1.Num, r2.Chain.ID, r2.Num}

			if r1.Ring && r2.Ring {
				rng1 := r1.Atoms[len(r1.Atoms)-1]
				rng2 := r2.Atoms[len(r2.Atoms)-1]
				if !cfg.Interface || rng1.Entity != rng2.Entity {
					d := geom.Dist(rng1.Xyz, rng2.Xyz)
					if rg := ranges[Stacking]; d >= rg.Lo && d <= rg.Hi+eps {
						if ang, err := geom.VecAngle(r1.Normal, r2.Normal); err == nil {
							con := Contact{endpoint(rng1), endpoint(rng2),
								round2(d), "stacking-" + stackSubtype(ang)}
							add(pk, cand{Stacking, con})
						}
					}
				}
			}

			if !key1ok {
				continue
			}
			near := r1.Chain.ID == r2.Chain.ID && abs(r1.Num-r2.Num) <= 3
			for _, a1 := range r1.Atoms {
				k1 := r1.Name + ":" + a1.Name
				p1, ok := tbl[k1] // drops the ring pseudo-atom too
				if !ok {
					continue
				}
				for _, a2 := range r2.Atoms {
					if cfg.Interface && a1.Entity == a2.Entity {
						continue
					}
					k2 := r2.Name + ":" + a2.Name
					p2, ok := tbl[k2]
					if !ok {
						continue
					}
					d := geom.Dist(a1.Xyz, a2.Xyz)
					if d > atomCap+eps {
						continue
					}
					for cat := Category(0); cat < NCategory; cat++ {
						if cat == Stacking {
							continue
						}
						if rg := ranges[cat]; d < rg.Lo || d > rg.Hi+eps {
							continue
						}
						if cat == HydrogenBond && near {
							continue // backbone neighbours bond trivially
						}
						if cat.ifaceOnly() && !cfg.Interface {
							continue
						}
						q1, q2, unc := p1, p2, false
						if cat.phSensitive() {
							if u, ok := cfg.Uncertain[k1]; ok {
								q1, unc = u, true
							}
							if u, ok := cfg.Uncertain[k2]; ok {
								q2, unc = u, true
							}
						}
						if !cat.match(k1, k2, q1, q2) {
							continue
						}
						label := cat.String()
						if unc {
							label = "uncertain_" + label
						}
						add(pk, cand{cat,
							Contact{endpoint(a1), endpoint(a2), round2(d), label}})
					}
				}
			}
		}
	}

	var final []cand
	for _, k := range order {
		final = append(final, resolve(bufs[k])...)
	}

	res := &Result{}
	if cfg.Cluster {
		final = clusterPass(p, cfg, final, res)
	}
	if cfg.Interface {
		res.IfaceRes = make(map[string]bool)
	}
	for _, cd := range final {
		res.Contacts = append(res.Contacts, cd.con)
		res.Counts[cd.cat]++
		if cfg.Interface {
			res.Strength += cd.cat.Strength()
			if cd.cat != Stacking {
				res.IfaceRes[epKey(cd.con.A)] = true
			}
		}
	}
	for k := range cfg.Uncertain {
		res.Uncertain = append(res.Uncertain, k)
	}
	sort.Strings(res.Uncertain)
	return res, nil
}

// resolve applies the per pair precedence rules to the buffered
// candidates. A salt bridge beats attractive and appears once, plain
// attraction and repulsion appear at most once, the rest go through
// untouched.
func resolve(cands []cand) []cand {
	var kept []cand
	var hasSB, hasAT, hasRE bool
	for _, cd := range cands {
		switch cd.cat {
		case SaltBridge:
			if hasSB {
				continue
			}
			if hasAT {
				tmp := kept[:0]
				for _, k := range kept {
					if k.cat != Attractive {
						tmp = append(tmp, k)
					}
				}
				kept = tmp
				hasAT = false
			}
			hasSB = true
			kept = append(kept, cd)
		case Attractive:
			if hasAT || hasSB {
				continue
			}
			hasAT = true
			kept = append(kept, cd)
		case Repulsive:
			if hasRE {
				continue
			}
			hasRE = true
			kept = append(kept, cd)
		default:
			kept = append(kept, cd)
		}
	}
	return kept
}

// clusterPass keeps only the contacts whose second residue falls in
// the biggest patch of contacted residue numbers. No patch wide
// enough means no contacts at all.
func clusterPass(p *cmmn.Protein, cfg *Config, final []cand, res *Result) []cand {
	maxGap := cfg.MaxGap
	if maxGap == 0 {
		maxGap = DfltMaxGap
	}
	minSpan := cfg.MinSpan
	if minSpan == 0 {
		minSpan = DfltMinSpan
	}
	linker := map[int]bool{}
	if cfg.LinkerChain != "" {
		for _, ch := range p.Chains {
			if ch.ID == cfg.LinkerChain {
				linker = linkerRuns(ch)
				break
			}
		}
	}
	var nums []int
	for _, cd := range final {
		nums = append(nums, cd.con.B.ResNum)
	}
	best := Longest(BuildClusters(nums, maxGap, linker))
	if len(best) == 0 || best[len(best)-1]-best[0]+1 < minSpan {
		return nil
	}
	keep := make(map[int]bool, len(best))
	for _, n := range best {
		keep[n] = true
	}
	kept := final[:0]
	for _, cd := range final {
		if keep[cd.con.B.ResNum] {
			kept = append(kept, cd)
		}
	}
	res.Cluster = best
	return kept
}

// stackSubtype turns the angle between two ring planes into the
// stacking geometry name.
func stackSubtype(deg float64) string {
	switch {
	case deg >= 160 && deg < 180, deg >= 0 && deg < 20:
		return "parallel"
	case deg >= 80 && deg < 100:
		return "perpendicular"
	}
	return "other"
}

func endpoint(a *cmmn.Atom) Endpoint {
	r := a.Res
	return Endpoint{
		Chain: r.Chain.ID, ResNum: r.Num,
		ResName: cmmn.ThreeLetter(r.Name), Atom: a.Name,
	}
}

// resKey and epKey write the "chain,number,name" form used for the
// interface residue set and its files.
func resKey(r *cmmn.Residue) string {
	return r.Chain.ID + "," + strconv.Itoa(r.Num) + "," + cmmn.ThreeLetter(r.Name)
}

func epKey(e Endpoint) string {
	return e.Chain + "," + strconv.Itoa(e.ResNum) + "," + e.ResName
}

func round2(d float64) float64 { return math.Round(d*100) / 100 }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// LoadIfaceRes reads a file with one interface residue key per line,
// "chain,number,name", as written by an earlier interface run. Blank
// lines and # comments are skipped.
func LoadIfaceRes(fname string) (map[string]bool, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	ret := make(map[string]bool)
	scn := bufio.NewScanner(fp)
	for scn.Scan() {
		line := strings.TrimSpace(scn.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ret[line] = true
	}
	if err := scn.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}
