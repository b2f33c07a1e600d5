// Package zwrap takes a file pointer and optionally wraps it so upon
// calling Close, the decompressor will be closed, followed by the
// underlying file. It also knows how to open a file through a memory
// mapping, which is the cheapest way to walk a big coordinate file.

package zwrap

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// An FpGzip is what callers get back. The source may be a file or an
// http stream, and zrdr is nil when there was no compression.
type FpGzip struct {
	fp   io.ReadCloser
	zrdr *gzip.Reader
}

// Close closes the decompressor, then the backing reader. Both get
// their chance, whatever the first one said.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	return errors.Join(fc.zrdr.Close(), fc.fp.Close())
}

// Read comes from the compressed stream when there is one and
// straight from the source when not.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Wrap puts the gzip reader around a source. The error from gzip is
// handed back undisturbed, so WrapMaybe can treat it as "not
// compressed" rather than a failure.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	fpz := FpGzip{fp: fp}
	var err error
	fpz.zrdr, err = gzip.NewReader(fp)
	return &fpz, err
}

// WrapMaybe decides whether the underlying stream is compressed and
// wraps it if so. You do lose something. Whatever seeking the input
// could do, the result cannot, which is the price of reading through
// a decompressor.
func WrapMaybe(fpIn io.ReadSeekCloser) (*FpGzip, error) {
	if out, err := Wrap(fpIn); err == nil {
		return out, nil // it was compressed
	}
	_, err := fpIn.Seek(0, io.SeekStart) // put back what Wrap consumed
	return &FpGzip{fp: fpIn}, err
}

// A mappedFile reads from a memory mapping. Closing unmaps and then
// closes the file underneath.
type mappedFile struct {
	*bytes.Reader
	mm mmap.MMap
	fp *os.File
}

func (m *mappedFile) Close() error {
	return errors.Join(m.mm.Unmap(), m.fp.Close())
}

// MmapOpen opens a file for reading through a memory mapping. If the
// mapping is refused, which happens on empty files and some
// filesystems, we fall back to the plain file pointer. Either way the
// caller gets something that can read, seek and close.
func MmapOpen(fname string) (io.ReadSeekCloser, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return fp, nil
	}
	return &mappedFile{Reader: bytes.NewReader(mm), mm: mm, fp: fp}, nil
}
