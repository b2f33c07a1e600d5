// brokenio is a wrapper around an io.ReadCloser. It lets a test plant
// read failures at a known place.
// Typical use: You get a file pointer, a reader from a compressed
// source or an http source. You write
// reader = NewReader(reader) to wrap the old reader. Everything then
// functions as before, until the planted error fires.
// A zero length file is a rather common accident, so there is also a
// switch which makes the first read return nothing at all. That case
// comes back without an error, just end of file.

package brokenio

import (
	"fmt"
	"io"
)

// A BrknRdrClsr is modelled on the various Readers in the standard
// library, but it stops working when told to. failAfter is the number
// of bytes to deliver before the planted error. A negative value means
// never fail.
// If verbose is true, print out the amount of data when the file is closed.
type BrknRdrClsr struct {
	rdr_orig  io.ReadCloser // Wrapped reader
	failAfter int
	zeroFile  bool
	nCalled   int
	nByte     int
	verbose   bool
}

// SetVerbose sets the verbosity flag to true or false
func (r *BrknRdrClsr) SetVerbose(newV bool) { r.verbose = newV }

// SetZeroFile makes the first read pretend the file is empty.
func (r *BrknRdrClsr) SetZeroFile(z bool) { r.zeroFile = z }

// FailAfter plants an error which fires once n bytes have been
// delivered. The bytes up to n arrive as normal.
func (r *BrknRdrClsr) FailAfter(n int) { r.failAfter = n }

// NewReader returns a new Reader - a wrapper around the old one
func NewReader(rIn io.ReadCloser) *BrknRdrClsr {
	return &BrknRdrClsr{rdr_orig: rIn, failAfter: -1}
}

// Read wraps the original reader and sums up the amount of data that
// has gone through. When the total passes failAfter, the read is
// truncated at the boundary and our planted error comes back with it.
func (r *BrknRdrClsr) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.zeroFile {
		r.nCalled++
		return 0, io.EOF
	}
	n, err = r.rdr_orig.Read(p)
	r.nCalled++
	if r.failAfter >= 0 && r.nByte+n > r.failAfter {
		n = r.failAfter - r.nByte
		err = fmt.Errorf("planted read failure after %d bytes", r.failAfter)
	}
	r.nByte += n
	return n, err
}

// Close wraps the original Close method.
func (r *BrknRdrClsr) Close() error {
	if r.verbose {
		fmt.Println("Closing", r.nCalled, "calls and", r.nByte, "bytes")
	}
	return r.rdr_orig.Close()
}
