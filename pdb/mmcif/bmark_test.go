// Every atom line has its element checked, so it is worth knowing the
// cheapest way to do it. Candidates are
// a. use a map / hash
// b. use simple string comparison
// c. switch on the single byte
// The winner is the byte switch, which is what wantElement does.
// String comparison is second. The map never wins on a set this small.

package mmcif

import (
	"fmt"
	"io"
	"math/rand"
	"testing"
)

const rndSize = 2000000

var rndElem [rndSize]bSlice
var elemMap map[string]bool

func init() {
	pool := []string{"C", "N", "O", "S", "P", "H", "FE", "ZN", "MG"}
	r := rand.New(rand.NewSource(1637))
	for i := range rndElem {
		rndElem[i] = bSlice(pool[r.Intn(len(pool))])
	}
	elemMap = map[string]bool{"C": true, "N": true, "O": true, "S": true}
}

func wantElementStr(s bSlice) bool {
	switch string(s) {
	case "C", "N", "O", "S":
		return true
	}
	return false
}

func wantElementMap(s bSlice) bool {
	return elemMap[string(s)]
}

const nRep int = 50

func BenchmarkElemSwtch(b *testing.B) {
	var t bool
	for j := 0; j < nRep; j++ {
		for _, s := range rndElem {
			t = wantElement(s)
		}
	}
	fmt.Fprintln(io.Discard, t)
}

func BenchmarkElemStr(b *testing.B) {
	var t bool
	for j := 0; j < nRep; j++ {
		for _, s := range rndElem {
			t = wantElementStr(s)
		}
	}
	fmt.Fprintln(io.Discard, t)
}

func BenchmarkElemMap(b *testing.B) {
	var t bool
	for j := 0; j < nRep; j++ {
		for _, s := range rndElem {
			t = wantElementMap(s)
		}
	}
	fmt.Fprintln(io.Discard, t)
}
