package pdb_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/rplemos/COCaDA-speed/pdb"
)

// TestBrokenFile checks if we get sensible error messages when we open
// something that is not a coordinate file at all.
func TestBrokenFile(t *testing.T) {
	testfiles := []string{
		"/proc",
		"/does/not/exist",
		"/dev/zero",
		"mmcif/testerrors/rubbish.cif",
	}
	for _, s := range testfiles {
		prot, err := ReadCoord(s, "")
		if prot != nil {
			t.Error("protein should be nil for", s)
		}
		if err == nil {
			t.Error("Did not get expected error on", s)
		}
	}
}

var fnameTypes = []struct {
	fname string
	ftype byte
}{
	{"boo.mmcif", Mmcif_fmt},
	{"boo.mmcif.gz", Mmcif_fmt},
	{"a/b/c.ent", Old_fmt},
	{"a\\b.ent.gz", Old_fmt},
	{"a.pdb", Old_fmt},
	{"a.pdb.gz", Old_fmt},
	{"testdata/ememcif1.gz", Mmcif_fmt},
	{"testdata/ememcif2", Mmcif_fmt},
	{"testdata/peedeebee1", Old_fmt},
}

func TestOldOrMmcif(t *testing.T) {
	for _, f := range fnameTypes {
		r, err := OldOrMmcif(f.fname)
		if err != nil {
			t.Error("unexpected problem in ", t.Name())
		}
		if r != f.ftype {
			t.Error("in", t.Name(), "working on ", f.fname)
		}
	}
}

func TestBaseID(t *testing.T) {
	var ss = []struct{ in, out string }{
		{"b/5pti.cif.gz", "5pti"},
		{"/x/y/1abc.pdb", "1abc"},
		{"plain", "plain"},
		{"a.b.c", "a"},
	}
	for _, x := range ss {
		if got := BaseID(x.in); got != x.out {
			t.Error("base id of", x.in, "wanted", x.out, "got", got)
		}
	}
}

// checkTiny looks at the structure we get from testdata/tiny.pdb, in
// both its plain and compressed form.
func checkTiny(t *testing.T, fname string) {
	prot, err := ReadCoord(fname, "")
	if err != nil {
		t.Fatal(err, "file", fname)
	}
	if prot.ID != "1tst" {
		t.Error("id, wanted 1tst got", prot.ID)
	}
	want := "A TINY TEST STRUCTURE"
	if prot.Title != want {
		t.Errorf("title, wanted %q got %q", want, prot.Title)
	}
	if prot.PH != 6.8 { // first remark wins, the 3.00 must not
		t.Error("pH, wanted 6.8 got", prot.PH)
	}
	if len(prot.Chains) != 2 {
		t.Fatal("wanted 2 chains, got", len(prot.Chains))
	}
	chainwant := []struct {
		id    string
		name  string
		natom int
		ent   string
	}{
		{"A", "G", 4, "1"},
		{"B", "A", 5, "2"}, // hydrogen and OXT are not stored
	}
	for i, want := range chainwant {
		chn := prot.Chains[i]
		if chn.ID != want.id {
			t.Error("chain id, wanted", want.id, "got", chn.ID)
		}
		if len(chn.Residues) != 1 {
			t.Fatal("chain", want.id, "wanted 1 residue, got", len(chn.Residues))
		}
		res := chn.Residues[0]
		if res.Name != want.name {
			t.Error("residue name, wanted", want.name, "got", res.Name)
		}
		if len(res.Atoms) != want.natom {
			t.Error("chain", want.id, "wanted", want.natom, "atoms, got",
				len(res.Atoms))
		}
		if e := res.Atoms[0].Entity; e != want.ent {
			t.Error("chain", want.id, "wanted entity", want.ent, "got", e)
		}
	}
	ca := prot.Chains[0].Residues[0].Atoms[1]
	if ca.Name != "CA" || ca.X != 12 || ca.Y != 12 || ca.Z != 13 {
		t.Error("CA is wrong:", ca.Name, ca.Xyz)
	}
}

func TestReadCoordPdb(t *testing.T) {
	checkTiny(t, filepath.FromSlash("testdata/tiny.pdb"))
}

// The same entry, gzipped. Nothing in the result should change.
func TestReadCoordPdbGz(t *testing.T) {
	checkTiny(t, filepath.FromSlash("testdata/tiny.pdb.gz"))
}

func TestReadCoordCif(t *testing.T) {
	fname := filepath.FromSlash("mmcif/testdata/small.cif")
	prot, err := ReadCoord(fname, "")
	if err != nil {
		t.Fatal(err, "file", fname)
	}
	if prot.ID != "1xyz" {
		t.Error("id, wanted 1xyz got", prot.ID)
	}
	if len(prot.Chains) != 2 || prot.ResidueCount() != 3 {
		t.Error("wanted 2 chains with 3 residues, got", len(prot.Chains),
			"and", prot.ResidueCount())
	}
}

// TestReadPdbEndmdl checks we stop at the end of the first model.
func TestReadPdbEndmdl(t *testing.T) {
	in := strings.Join([]string{
		"ATOM      1  N   GLY A   1      11.000  12.000  13.000  1.00 10.00           N",
		"ATOM      2  CA  GLY A   1      12.000  12.000  13.000  1.00 10.00           C",
		"ENDMDL",
		"ATOM      3  N   GLY A   2      99.000  12.000  13.000  1.00 10.00           N",
		"END",
	}, "\n")
	prot, err := ReadPdb(strings.NewReader(in), "twomod")
	if err != nil {
		t.Fatal(err)
	}
	if prot.ID != "twomod" { // no header record, the seed name stays
		t.Error("id, wanted twomod got", prot.ID)
	}
	if prot.ResidueCount() != 1 {
		t.Fatal("wanted 1 residue from the first model, got", prot.ResidueCount())
	}
	res := prot.Chains[0].Residues[0]
	if len(res.Atoms) != 2 || res.Atoms[0].X != 11 {
		t.Error("atoms from the wrong model, got", len(res.Atoms))
	}
}

func TestReadPdbErrors(t *testing.T) {
	var files = []struct {
		line string
		emsg string
	}{
		{"ATOM      1  N   GLY", "short atom record"},
		{"ATOM      1  N   GLY A  xx      11.000  12.000  13.000  1.00 10.00           N",
			"residue number"},
		{"ATOM      1  N   GLY A   1      1x.000  12.000  13.000  1.00 10.00           N",
			"x:"},
		{"ATOM      1  N   GLY A   1      11.000  12.000  13.000  x.xx 10.00           N",
			"occupancy"},
	}
	for _, f := range files {
		_, err := ReadPdb(strings.NewReader(f.line+"\nEND\n"), "broken")
		if err == nil {
			t.Error("should have error on line", f.line)
			continue
		}
		if !strings.Contains(err.Error(), f.emsg) {
			t.Error("wanted", f.emsg, "got", err)
		}
	}
}

func TestLogWhere(t *testing.T) {
	if _, err := LogWhere(""); err != nil {
		t.Error("quiet logger:", err)
	}
	fname := filepath.Join(t.TempDir(), "log")
	lg, err := LogWhere(fname)
	if err != nil {
		t.Fatal("log to file:", err)
	}
	lg.Println("hello")
	if fi, err := os.Stat(fname); err != nil || fi.Size() == 0 {
		t.Error("log file should exist and have content")
	}
}
