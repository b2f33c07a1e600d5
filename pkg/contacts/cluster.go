// 2 Apr 2025

package contacts

import (
	"sort"

	"github.com/rplemos/COCaDA-speed/pdb/cmmn"
)

// Clustering defaults. A patch may contain holes up to DfltMaxGap
// residues wide and must stretch over at least DfltMinSpan positions
// to be worth reporting.
const (
	DfltMaxGap  = 3
	DfltMinSpan = 4
)

// BuildClusters groups residue numbers into runs where neighbours are
// no more than maxGap apart. Numbers in the linker set are left out
// before grouping. Input order does not matter and duplicates
// collapse.
func BuildClusters(nums []int, maxGap int, linker map[int]bool) [][]int {
	seen := make(map[int]bool, len(nums))
	srt := make([]int, 0, len(nums))
	for _, n := range nums {
		if linker[n] || seen[n] {
			continue
		}
		seen[n] = true
		srt = append(srt, n)
	}
	sort.Ints(srt)
	var ret [][]int
	var cur []int
	for i, n := range srt {
		if i > 0 && n-srt[i-1] > maxGap {
			ret = append(ret, cur)
			cur = nil
		}
		cur = append(cur, n)
	}
	if len(cur) > 0 {
		ret = append(ret, cur)
	}
	return ret
}

// Longest returns the cluster with the most members, the first one on
// a tie.
func Longest(clusters [][]int) []int {
	var best []int
	for _, c := range clusters {
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

// linkerRuns finds glycine-glycine-serine windows, the classic
// flexible linker, on a chain and returns their residue numbers.
func linkerRuns(ch *cmmn.Chain) map[int]bool {
	ret := make(map[int]bool)
	if ch == nil {
		return ret
	}
	rs := ch.Residues
	for i := 0; i+2 < len(rs); i++ {
		if rs[i].Name == "G" && rs[i+1].Name == "G" && rs[i+2].Name == "S" {
			ret[rs[i].Num] = true
			ret[rs[i+1].Num] = true
			ret[rs[i+2].Num] = true
		}
	}
	return ret
}
