// Package mmcif reads an mmcif formatted file. Build a reader around
// your input and call ReadCif. Most of a coordinate file is of no
// interest here, so the reader is a small state machine which jumps
// over whatever it does not recognise as one of the few things we
// want: the entry id, the title, a pH and the atom_site table.
package mmcif

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rplemos/COCaDA-speed/pdb/cmmn"
)

const (
	squote byte = '\''
	dquote byte = '"'
)

type bSlice []byte // byte slice

// A CifReader walks an mmcif file and fills a record builder with
// atoms plus the few bits of metadata we keep. The comment scanner
// is embedded, so the error plumbing in mmciferror.go is reachable
// from both.
type CifReader struct {
	cmmtScanner
	bld         *cmmn.RecBuilder
	scrtchBytes [][]byte
	headers     []bSlice
	phSet       bool
}

// newCifReader wants a reader, not a filename. The caller has
// already decided whether the source is a file, a compressed file or
// an http stream.
func newCifReader(r io.Reader, name string) *CifReader {
	if r == nil {
		return nil
	}
	return &CifReader{
		cmmtScanner: newCmmtScanner(r, '#'),
		bld:         cmmn.NewRecBuilder(name),
		scrtchBytes: make([][]byte, 25),
	}
}

// A cmmtScanner wraps bufio.Scanner. It hides blank lines and
// comment lines and counts newlines, so error messages can say where
// the trouble was.
type cmmtScanner struct {
	*bufio.Scanner
	l_err  readError // filled out as soon as something goes wrong
	ctoken []byte    // what cbytes() will hand back
	n      int       // line number in the input
	cmmt   byte      // comment character
	Ok     bool      // false after any error
}

func newCmmtScanner(r io.Reader, cmmt byte) cmmtScanner {
	return cmmtScanner{
		Scanner: bufio.NewScanner(r),
		cmmt:    cmmt,
		Ok:      true,
	}
}

// cscan wraps the library Scan. It counts lines, skips blanks and
// skips lines whose first character is the comment character. The
// comment character is only special in column one, since hashes and
// the like appear legitimately inside quoted values.
// On clean end of input it returns true with a nil token. The
// return is only false when something actually broke.
func (s *cmmtScanner) cscan() (ok bool) {
	if !s.Ok { // an earlier error that nobody acted on
		s.ctoken = nil
		s.fill("pre-existing error missed. Small bug ?", false)
		return false
	}
	var b []byte
	for len(b) == 0 {
		if !s.Scan() {
			s.ctoken = nil
			if s.Err() != nil {
				s.fill(s.Err().Error(), true)
				return false
			}
			return true // end of input, no drama
		}
		s.n++
		b = s.Bytes()
		if len(b) > 0 && b[0] == s.cmmt {
			b = nil
		}
	}
	s.ctoken = b
	return true
}

// cbytes hands back the token cscan left behind.
func (s *cmmtScanner) cbytes() []byte {
	return s.ctoken
}

// stateFn is one state of the reader. It acts on the current line
// and says which state comes next. nil means stop.
type stateFn func(*CifReader, *cmmn.RecBuilder) stateFn

// stateData jumps over a data_xxxx block header.
func stateData(mr *CifReader, _ *cmmn.RecBuilder) stateFn {
	if !mr.cscan() {
		return nil
	}
	return stateTop
}

// stateUnknown means the line fits nothing we know. Stop rather
// than guess.
func stateUnknown(mr *CifReader, _ *cmmn.RecBuilder) stateFn {
	mr.fill("In Unknown state", true)
	return nil
}

// stateLoopHdr collects the header lines of a loop and decides what
// the table is. The atom table and the nmr conditions table have
// their own states. Everything else gets jumped over.
func stateLoopHdr(mr *CifReader, _ *cmmn.RecBuilder) stateFn {
	if len(mr.headers) != 0 {
		mr.fill("probable bug, headers slice not empty", false)
		return nil
	}
	for ok := true; ok && len(mr.cbytes()) > 0 && mr.cbytes()[0] == '_'; ok = mr.cscan() {
		h := append(bSlice(nil), mr.cbytes()...) // scanner reuses its buffer
		mr.headers = append(mr.headers, bytes.TrimRight(h, " "))
	}
	if len(mr.headers) < 1 {
		mr.fill("no contents found while reading loop headers", true)
		mr.headers = mr.headers[:0]
		return nil
	}
	switch {
	case bytes.HasPrefix(mr.headers[0], []byte("_atom_site.")):
		return stateAtomTable
	case bytes.HasPrefix(mr.headers[0], []byte(nmrCondPrefix)):
		return stateNmrTable
	}
	mr.headers = mr.headers[:0]
	return stateSkipLoopTable
}

// isSpecial says the line is not more rows of a table. Usually that
// means a new directive is starting. End of input counts too, so
// table walkers know to stop. We do not treat "data" as special,
// since the word turns up inside tables.
func isSpecial(inline []byte) bool {
	switch {
	case inline == nil:
		return true
	case bytes.HasPrefix(inline, []byte("_")):
		return true
	case bytes.HasPrefix(inline, []byte("loop_")):
		return true
	default:
		return false
	}
}

const nmrCondPrefix = "_pdbx_nmr_exptl_sample_conditions."

// stateNmrTable reads the nmr sample conditions loop. Solution
// structures record their pH here rather than in the crystal growth
// item, and all we want is the pH of the first conditions set.
func stateNmrTable(mr *CifReader, bld *cmmn.RecBuilder) stateFn {
	iPh := -1
	for i, h := range mr.headers {
		if string(h) == nmrCondPrefix+"pH" {
			iPh = i
		}
	}
	ncol := len(mr.headers)
	mr.headers = mr.headers[:0]
	row, ok := getNpieces(mr, ncol)
	if !ok {
		return nil
	}
	if len(row) == ncol && iPh != -1 && !mr.phSet {
		if ph, err := strconv.ParseFloat(row[iPh], 64); err == nil {
			bld.SetPH(ph)
			mr.phSet = true
		}
	}
	for ; !isSpecial(mr.cbytes()); mr.cscan() { // later condition sets
	}
	return stateTop
}

const line_siz = 92 // an atom line from the pdb is 88 bytes
const sl_siz = 50   // lines per batch, from benchmarking

// newLineBuf makes one batch of line buffers, carved from a single
// allocation. The sync.Pool hands these back and forth between the
// scanner side and the parsing goroutine.
func newLineBuf() interface{} {
	var tmp [sl_siz * line_siz]byte
	var x [sl_siz]bSlice
	for i, start, end := 0, 0, line_siz; i < sl_siz; i++ {
		x[i] = tmp[start:end:end]
		start = end
		end += line_siz
	}
	return x[:]
}

// stateAtomTable handles the one table that matters. It is far
// bigger than everything else in the file put together, so the rows
// are batched up and pushed down a channel to atomSite, which picks
// them apart and feeds the record builder while we keep reading.
func stateAtomTable(mr *CifReader, bld *cmmn.RecBuilder) stateFn {
	c := make(chan []bSlice, 3) // channel depth from benchmarking
	rChan := make(chan string)
	bufPool := sync.Pool{New: newLineBuf}

	{ // the goroutine gets its own copy of the headers
		var headers []bSlice
		for _, h := range mr.headers {
			headers = append(headers, append(bSlice(nil), h...))
		}
		go atomSite(headers, bld, c, rChan, &bufPool)
	}
	mr.headers = nil

	batch := bufPool.Get().([]bSlice)
	n := 0
	for {
		t := mr.cbytes()
		if len(t) > cap(batch[n]) { // a rare long line gets its own space
			batch[n] = make([]byte, len(t))
		}
		batch[n] = batch[n][:len(t)]
		copy(batch[n], t)
		n++

		if n == sl_siz {
			c <- batch
			batch = bufPool.Get().([]bSlice)
			for i := range batch {
				batch[i] = batch[i][:0]
			}
			n = 0
		}
		if !mr.cscan() {
			break
		}
		if isSpecial(mr.cbytes()) {
			break
		}
	}
	if n > 0 {
		c <- batch[:n]
	}
	close(c)
	if s := <-rChan; s != "" { // anything on this channel is an error
		mr.fill(s, false)
		return nil
	}
	bld.Flush() // table finished, close the last residue
	return stateTop
}

// stateSkipLoopTable walks over the rows of a table nobody wants.
func stateSkipLoopTable(mr *CifReader, _ *cmmn.RecBuilder) stateFn {
	found := false
	for ; !isSpecial(mr.cbytes()); mr.cscan() {
		found = true
	}
	if !found {
		mr.fill("empty table", true)
		return nil
	}
	return stateTop
}

// stateLoop has seen the loop_ directive. Step over it and read the
// headers.
func stateLoop(mr *CifReader, _ *cmmn.RecBuilder) stateFn {
	if !mr.cscan() {
		return nil
	}
	return stateLoopHdr
}

// prettyTitle cleans a title up for storage. Quotes around the
// outside go away and commas become periods, since a comma would
// upset anything reading our csv output later.
func prettyTitle(s string) string {
	s = strings.Trim(s, "'\"")
	s = strings.ReplaceAll(s, ",", ".")
	return cases.Title(language.Und).String(s)
}

// saveItem stores a data item if it is one we keep. Missing values,
// dot or question mark, are not worth anything. The entry id gets
// squeezed down to the familiar four character code. For the pH,
// first writer wins, so a crystal growth item cannot overwrite what
// an nmr conditions table already said.
func (mr *CifReader) saveItem(name, value string, bld *cmmn.RecBuilder) {
	if value == "" || value == "?" || value == "." {
		return
	}
	switch name {
	case "_entry.id":
		v := strings.ToLower(value)
		if len(v) > 4 {
			v = v[len(v)-4:]
		}
		bld.SetID(v)
	case "_struct.title":
		bld.SetTitle(prettyTitle(value))
	case "_exptl_crystal_grow.pH", nmrCondPrefix + "pH":
		if !mr.phSet {
			if ph, err := strconv.ParseFloat(value, 64); err == nil {
				bld.SetPH(ph)
				mr.phSet = true
			}
		}
	}
}

// stateDItem reads one data item. Usually name and value sit on one
// line. If the name stands alone, the value follows on the next
// lines, possibly as a semicolon delimited block which we join back
// into one string.
func stateDItem(mr *CifReader, bld *cmmn.RecBuilder) stateFn {
	var value string
	t, err := splitCifLine(mr.cbytes(), mr.scrtchBytes)
	if err != nil {
		mr.fill(err.Error(), true)
		return nil
	}

	itemName := string(t[0])
	switch {
	case len(t) >= 2 && t[1][0] != ';': // value on the same line
		value = string(t[1])
		for _, u := range t[2:] { // unquoted multi-word values happen
			value = value + " " + string(u)
		}
		if !mr.cscan() {
			mr.fill("looking for data item", true)
			return nil
		}
	case len(t) == 1:
		const msg = "data split on two lines"
		if !mr.cscan() {
			mr.fill(msg, true)
			return nil
		}
		b_in := mr.cbytes()
		if len(b_in) > 0 && b_in[0] == ';' {
			ok := true
			tmp := string(b_in[1:])
			for ok = mr.cscan(); len(mr.cbytes()) > 0 && ok; ok = mr.cscan() {
				if mr.cbytes()[0] == ';' {
					break
				}
				if tmp != "" {
					tmp += " "
				}
				tmp += string(mr.cbytes())
			}
			if !ok {
				mr.fill(msg, true)
				return nil
			}
			value = tmp
		} else {
			value = string(b_in)
		}
		mr.cscan() // any error here gets picked up by the next state
	default:
		mr.fill("odd data item layout", true)
		return nil
	}

	mr.saveItem(itemName, value, bld)
	return stateTop
}

// stateTop looks at the current line and picks the state that should
// handle it. It does not advance the scanner itself.
func stateTop(mr *CifReader, _ *cmmn.RecBuilder) stateFn {
	b := mr.cbytes()
	if !mr.Ok {
		return nil
	}
	switch {
	case b == nil:
		return nil
	case bytes.HasPrefix(b, []byte("loop_")):
		return stateLoop
	case bytes.HasPrefix(b, []byte("data")):
		return stateData
	case b[0] == '_':
		return stateDItem
	default:
		return stateUnknown
	}
}

// getNpieces collects npiece values, walking over as many lines as
// that takes. The values come back as fresh strings, since the
// scanner recycles its buffer underneath us.
func getNpieces(mr *CifReader, npiece int) (ret []string, ok bool) {
	for ok = true; len(ret) < npiece && ok; ok = mr.cscan() {
		b_in := mr.cbytes()
		if isSpecial(b_in) {
			return nil, ok
		}
		if b_in[0] == ';' { // a semicolon block is one value
			tmp := string(b_in[1:])
			for ok = mr.cscan(); ok; ok = mr.cscan() {
				x := mr.cbytes()
				if len(x) < 1 || x[0] == ';' {
					break
				}
				tmp += string(x)
			}
			if !ok {
				mr.fill("getNpieces", true)
				return nil, false
			}
			ret = append(ret, tmp)
			continue
		}
		if !bytes.ContainsAny(b_in, "'\"") { // clean line, library split will do
			for _, u := range bytes.Fields(b_in) {
				ret = append(ret, string(u))
			}
			continue
		}
		t, err := splitCifLine(b_in, mr.scrtchBytes)
		if err != nil {
			mr.fill(err.Error(), true)
			return nil, false
		}
		for _, u := range t {
			ret = append(ret, string(u))
		}
	}
	return
}

// ReadCif parses mmcif data down to a protein. name seeds the
// structure id and is overridden if the file carries an _entry.id.
// Only the first model of a multi-model entry is kept.
func ReadCif(r io.Reader, name string) (*cmmn.Protein, error) {
	mr := newCifReader(r, name)
	if mr == nil {
		return nil, readError{desc: "nil reader"}
	}
	if !mr.cscan() {
		return nil, mr.l_err
	}
	for state := stateTop; (state != nil) && mr.Ok; {
		state = state(mr, mr.bld)
	}
	if !mr.Ok {
		return nil, mr.l_err
	}
	if mr.n == 0 {
		mr.fill("zero length file", false)
		return nil, mr.l_err
	}
	return mr.bld.Protein(), nil
}
