// Go to a pdb website and download coordinates.
// pdb europe files are at http://www.ebi.ac.uk/pdbe/entry-files/download/5pti.cif
// or maybe http://www.ebi.ac.uk/pdbe/entry-files/download/5pti_updated.cif
// The main point is to visit the web page and return a reader that
// can be used like the file readers.

package pdb

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rplemos/COCaDA-speed/pdb/cmmn"
	"github.com/rplemos/COCaDA-speed/pdb/mmcif"
	"github.com/rplemos/COCaDA-speed/pdb/zwrap"
)

// the sites we know that serve mmcif entries. Some of them hand back
// gzipped data, so we note it and decompress on the way through.
var dwnldSites = []struct {
	urlBase   string
	urlSuffix string
	gzipped   bool
}{
	{"https://files.rcsb.org/download/",
		".cif.gz",
		true},
	{"http://www.ebi.ac.uk/pdbe/entry-files/download/",
		".cif",
		false},
	{"http://ftp.pdbj.org/mmcif/",
		".cif.gz",
		true},
}

// getHTTP is given a four letter pdb code. It goes to the protein data
// bank and should return a reader.
// There are three sites for structures. You can pick which one you want
// with siteNum. If you give a value that is too big, we use a modulo to
// wrap it around, rather than generate an error. This makes it easier
// to cycle through them or pick one at random.
func getHTTP(acqCode string, siteNum int) (io.ReadCloser, error) {
	if siteNum >= len(dwnldSites) {
		siteNum = siteNum % len(dwnldSites)
	}

	if len(acqCode) != 4 {
		return nil, errors.New("acq code should be four char, not " + acqCode)
	}

	url := dwnldSites[siteNum].urlBase + acqCode + dwnldSites[siteNum].urlSuffix

	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		s := "Wanted " + acqCode + " using " + url
		t := ", got " + resp.Status
		err = errors.New(s + t)
		return nil, err
	}

	if dwnldSites[siteNum].gzipped {
		if resp.Body, err = zwrap.Wrap(resp.Body); err != nil {
			return nil, err
		}
	}

	return resp.Body, nil
}

// GetByCode downloads the entry for a four letter code and parses it.
// We walk through the known sites until one answers. Nothing is
// written to disk, the stream feeds the reader directly.
func GetByCode(acqCode string) (*cmmn.Protein, error) {
	acqCode = strings.ToLower(acqCode)
	var rdr io.ReadCloser
	var err error
	for i := range dwnldSites {
		if rdr, err = getHTTP(acqCode, i); err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	return mmcif.ReadCif(rdr, acqCode)
}
