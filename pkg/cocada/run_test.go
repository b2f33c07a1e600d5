package cocada

import (
	"os"
	"testing"

	"github.com/rplemos/COCaDA-speed/pdb/cmmn"
	. "github.com/rplemos/COCaDA-speed/pkg/common"
)

// Two serines on different chains with their side chain oxygens
// 3 Angstrom apart, one hydrogen bond.
const tinyPdb = `ATOM      1  N   SER A   1      10.000  10.000  20.000  1.00 10.00           N
ATOM      2  CA  SER A   1      10.000  10.000  19.000  1.00 10.00           C
ATOM      3  OG  SER A   1      10.000  10.000  10.000  1.00 10.00           O
ATOM      4  N   SER B   2      13.000  10.000  20.000  1.00 10.00           N
ATOM      5  CA  SER B   2      13.000  10.000  19.000  1.00 10.00           C
ATOM      6  OG  SER B   2      13.000  10.000  10.000  1.00 10.00           O
END
`

func TestSkipBig(t *testing.T) {
	mkprot := func(n int) *cmmn.Protein {
		ch := &cmmn.Chain{ID: "A"}
		for i := 1; i <= n; i++ {
			ch.Residues = append(ch.Residues, &cmmn.Residue{Num: i, Name: "A", Chain: ch})
		}
		return &cmmn.Protein{ID: "big", Chains: []*cmmn.Chain{ch}}
	}
	if skipBig(mkprot(MaxRes)) {
		t.Error("exactly", MaxRes, "residues must be processed")
	}
	if !skipBig(mkprot(MaxRes + 1)) {
		t.Error(MaxRes+1, "residues must be skipped")
	}
}

func TestOneFile(t *testing.T) {
	fname, err := WrtTemp(tinyPdb)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	fr, err := oneFile(&CmdFlag{}, nil, fname)
	if err != nil {
		t.Fatal(err)
	}
	if fr == nil {
		t.Fatal("no result for a healthy file")
	}
	if fr.size != 2 {
		t.Error("size, wanted 2 got", fr.size)
	}
	if len(fr.res.Contacts) != 1 || fr.res.Contacts[0].Label != "hydrogen_bond" {
		t.Errorf("contacts %v", fr.res.Contacts)
	}
	if fr.secs < 0 {
		t.Error("negative processing time", fr.secs)
	}

	if _, err := oneFile(&CmdFlag{}, nil, "no_such_file.pdb"); err == nil {
		t.Error("missing file should be an error")
	}
}
