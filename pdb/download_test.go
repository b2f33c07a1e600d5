package pdb

import (
	"io"
	"net"
	"testing"
	"time"
)

const nPDBsites = 3

// netReachable checks we can talk to the main pdb site at all, so the
// download tests can be skipped rather than fail on a machine with no
// network.
func netReachable() bool {
	conn, err := net.DialTimeout("tcp", "files.rcsb.org:443", 3*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func testSite(acq string, siteNum int, t *testing.T) {
	rdr, err := getHTTP(acq, siteNum)
	if err != nil {
		t.Fatal(err)
	}

	c, err := io.ReadAll(rdr)
	defer rdr.Close()
	if len(c) < 100 || err != nil {
		t.Errorf("Reading from http got %v bytes, err = %v", len(c), err)
	}
}

func Test_get_http(t *testing.T) {
	if testing.Short() {
		t.Skip("no downloads in short mode")
	}
	if !netReachable() {
		t.Skip("protein data bank not reachable")
	}
	for i := 0; i < nPDBsites; i++ {
		testSite("5zck", i, t)
	}
}

func TestGetHTTPBadCode(t *testing.T) {
	if _, err := getHTTP("toolong", 0); err == nil {
		t.Error("a code that is not four characters should be refused")
	}
}

func TestGetByCode(t *testing.T) {
	if testing.Short() {
		t.Skip("no downloads in short mode")
	}
	if !netReachable() {
		t.Skip("protein data bank not reachable")
	}
	prot, err := GetByCode("5ZCK")
	if err != nil {
		t.Fatal(err)
	}
	if prot.ID != "5zck" {
		t.Error("id, wanted 5zck got", prot.ID)
	}
	if prot.ResidueCount() == 0 {
		t.Error("downloaded structure has no residues")
	}
}
