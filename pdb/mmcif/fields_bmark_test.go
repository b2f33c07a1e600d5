// Breaking atom lines into words is the inner loop of cif reading,
// so it is worth knowing what the splitting costs. Candidates are
// a. bytes.Fields from the library
// b. fields, which fills caller scratch instead of allocating
// The scratch version wins by a wide margin, entirely because of the
// allocations. splitCifLine is benchmarked too, since titles and
// chemical component names go through it, but it is off the hot path.

package mmcif

import (
	"bytes"
	"testing"
)

var atomLines = []string{
	"ATOM 2 C CA . GLY A 1 1 ? 12.000 12.000 13.000 1.00 10.00 ? 1 GLY A CA 1",
	"ATOM 9 C CB . ALA A 1 2 ? 16.000 13.000 13.000 1.00 10.00 ? 2 ALA A CB 1",
	"ATOM 12 C CA . SER B 2 1 ? 21.000 12.000 13.000 1.00 10.00 ? 1 SER B CA 1",
	"HETATM 17 O O . HOH D 4 . ? 30.000 30.000 30.000 1.00 10.00 ? 101 HOH D O 1",
}

const quotedLine = `GLN 'L-peptide linking' y GLUTAMINE ? 'C5 H10 N2 O3' 146.144`

var fsink []bSlice
var lsink [][]byte

func BenchmarkLibFields(b *testing.B) {
	for i := 0; i < b.N; i++ {
		for _, s := range atomLines {
			lsink = bytes.Fields([]byte(s))
		}
	}
}

func BenchmarkFields(b *testing.B) {
	var scrtch [40]bSlice
	for i := 0; i < b.N; i++ {
		for _, s := range atomLines {
			fsink = fields([]byte(s), scrtch[:])
		}
	}
}

func BenchmarkSplitCifLine(b *testing.B) {
	scratch := make([][]byte, 0, 40)
	in := []byte(quotedLine)
	for i := 0; i < b.N; i++ {
		lsink, _ = splitCifLine(in, scratch)
	}
}
