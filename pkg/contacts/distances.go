// 20 Mar 2025

package contacts

import (
	"github.com/andrew-torda/matrix"
)

// resOrder is the one letter residue alphabet used to index the
// distance table.
const resOrder = "ACDEFGHIKLMNPQRSTVWY"

// reach is how far, in Angstrom, a residue's most distant side chain
// atom can sit from its alpha carbon, in resOrder order.
var reach = [20]float64{
	2.40, 2.80, 3.70, 4.98, 5.12, 2.40, 4.55, 3.95, 6.34, 3.90,
	5.41, 3.78, 2.45, 5.03, 7.23, 2.43, 2.53, 2.57, 6.02, 6.47,
}

// GlobalCA is the alpha carbon separation beyond which no two
// residues can touch, however extended. It is 0.01 above the
// arginine-arginine pair maximum.
const GlobalCA = 20.47

// atomCap is the atom to atom distance beyond which nothing is
// classified.
const atomCap = 6.0

// maxCA[i][j] is the largest alpha carbon separation at which residue
// types i and j can still have atoms within contact range.
var maxCA *matrix.FMatrix2d

var resNdx [26]int8

func init() {
	for i := range resNdx {
		resNdx[i] = -1
	}
	for i, c := range resOrder {
		resNdx[c-'A'] = int8(i)
	}
	maxCA = matrix.NewFMatrix2d(len(reach), len(reach))
	for i := range reach {
		for j := range reach {
			maxCA.Mat[i][j] = float32(reach[i] + reach[j] + atomCap)
		}
	}
}

func ndx(name string) int8 {
	if len(name) != 1 {
		return -1
	}
	c := name[0]
	if c < 'A' || c > 'Z' {
		return -1
	}
	return resNdx[c-'A']
}

// pairMax is the residue type specific alpha carbon cutoff, or 0 for
// anything outside the twenty standard residues.
func pairMax(n1, n2 string) float64 {
	i := ndx(n1)
	j := ndx(n2)
	if i < 0 || j < 0 {
		return 0
	}
	return float64(maxCA.Mat[i][j])
}
