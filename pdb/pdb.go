// The upper level for reading coordinate files. Work out whether a
// file is compressed and which format it is in, then hand it to the
// old pdb or mmcif reader. Callers get back the same protein either
// way.

package pdb

import (
	"bufio"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rplemos/COCaDA-speed/pdb/cmmn"
	"github.com/rplemos/COCaDA-speed/pdb/mmcif"
	"github.com/rplemos/COCaDA-speed/pdb/zwrap"
)

const (
	old_fmt byte = iota
	mmcif_fmt
	unk_fmt
)

// lookInFile peeks at the first few thousand lines and guesses the
// format from characteristic line starts. The mmcif words are tried
// first, since an mmcif file contains ATOM rows too, but a data_
// block or loop_ comes long before them.
func lookInFile(fname string) (byte, error) {
	mmcifWords := []string{"data_", "entry.id", "loop_"}
	pdbWords := []string{"COMPND", "SOURCE", "REMARK", "SEQRES", "HETATM", "ATOM"}
	fp, err := zwrap.MmapOpen(fname)
	if err != nil {
		return unk_fmt, err
	}
	defer fp.Close()

	rdr, e2 := zwrap.WrapMaybe(fp)
	if e2 != nil {
		return unk_fmt, errors.New("reading " + fname + " " + e2.Error())
	}

	const maxTestLines = 5000
	scnnr := bufio.NewScanner(bufio.NewReader(rdr))
	for i := 0; scnnr.Scan() && i < maxTestLines; i++ {
		s := scnnr.Text()
		for _, w := range mmcifWords {
			if strings.HasPrefix(s, w) {
				return mmcif_fmt, nil
			}
		}
		for _, w := range pdbWords {
			if strings.HasPrefix(s, w) {
				return old_fmt, nil
			}
		}
	}
	return unk_fmt, errors.New(fname + ": cannot recognise format")
}

// oldOrMmcif decides which reader a file needs. The name usually
// says, and then we do not even open the file. filepath.Ext is no
// use here, since it answers ".gz" for a.pdb.gz, so we take
// everything after the first dot.
func oldOrMmcif(fname string) (byte, error) {
	s := filepath.Base(fname)
	if i := strings.IndexByte(s, '.'); i != -1 {
		s = strings.ToLower(s[i+1:])
		switch {
		case strings.Contains(s, "pdb") || strings.Contains(s, "ent"):
			return old_fmt, nil
		case strings.Contains(s, "mmcif") || strings.Contains(s, "cif"):
			return mmcif_fmt, nil
		}
	}
	return lookInFile(fname)
}

// LogWhere decides where to send debugging output. "" means throw it
// away, "stdout" is taken literally and anything else is a file we
// append to.
func LogWhere(outinfo string) (*log.Logger, error) {
	var iowriter io.Writer
	switch outinfo {
	case "":
		iowriter = io.Discard
	case "stdout":
		iowriter = os.Stdout
	default:
		var err error
		iowriter, err = os.OpenFile(outinfo, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0777)
		if err != nil {
			return nil, err
		}
	}
	return log.New(iowriter, "", log.Lshortfile), nil
}

// baseID is the file name with directories and anything after the
// first dot removed. It seeds the structure id, so b/5pti.cif.gz
// starts life as 5pti.
func baseID(fname string) string {
	s := filepath.Base(fname)
	if i := strings.IndexByte(s, '.'); i != -1 {
		s = s[:i]
	}
	return s
}

// ReadCoord takes a filename and reads it as either an old format or
// an mmcif file, whichever it turns out to be. Compressed files are
// fine. During debugging there can be a lot of output. This goes to a
// file called outinfo. If outinfo is "", it will be trashed. If
// outinfo is "stdout", we write to standard output.
func ReadCoord(fname string, outinfo string) (*cmmn.Protein, error) {
	outlog, err := LogWhere(outinfo)
	if err != nil {
		return nil, errors.New(err.Error() + " creating log file")
	}
	var typ byte
	if typ, err = oldOrMmcif(fname); err != nil {
		return nil, err
	}
	fp, err := zwrap.MmapOpen(fname)
	if err != nil {
		return nil, err
	}
	rdr, err := zwrap.WrapMaybe(fp)
	if err != nil {
		return nil, errors.New("reading " + fname + " " + err.Error())
	}
	defer rdr.Close()

	var prot *cmmn.Protein
	switch typ {
	case old_fmt:
		prot, err = ReadPdb(rdr, baseID(fname))
	case mmcif_fmt:
		prot, err = mmcif.ReadCif(rdr, baseID(fname))
	default:
		err = errors.New(fname + ": cannot recognise format")
	}
	if err != nil {
		return nil, err
	}
	outlog.Println(fname, "chains", len(prot.Chains), "residues", prot.ResidueCount())
	return prot, nil
}
