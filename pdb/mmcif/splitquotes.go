// Splitting lines of cif input. Plain values are separated by white
// space. A value with spaces inside arrives wrapped in matching
// single or double quotes and counts as one piece. The rules are at
// https://www.iucr.org/resources/cif/spec/version1.1/cifsyntax and
// the wrinkle is that a quote only closes a value when the next
// character is white space. A name like don't is one piece.

package mmcif

import (
	"errors"
)

// asciiSpace is the set of bytes treated as white space. Coordinate
// files are ascii, so there is no unicode machinery.
var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

func iswhite(b byte) bool { return asciiSpace[b] }

// fields breaks a line at white space, like the library version, but
// it fills the scratch slice the caller hands in instead of
// allocating. It runs once per atom line, where the allocations of
// bytes.Fields used to show up at the top of the profile. The
// scratch capacity is a hard limit. Words beyond it are dropped, so
// callers size scratch for the widest table they expect.
func fields(s bSlice, scrtch []bSlice) []bSlice {
	if cap(scrtch) == 0 {
		return nil
	}
	n := 0
	start := -1 // -1 means we are between words
	for i := 0; i <= len(s); i++ {
		if i < len(s) && !iswhite(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			scrtch[n] = s[start:i]
			n++
			start = -1
			if n == cap(scrtch) {
				break
			}
		}
	}
	if n == 0 {
		return nil
	}
	return scrtch[:n]
}

// States for splitCifLine. A quote opens a quoted piece only as the
// first character of a piece, and inside one we have to look ahead
// past the closing quote, since only quote-then-white really ends it.
const (
	inSpace = iota
	inWord
	inQuote
	afterQuote
)

// splitCifLine breaks a line into pieces, respecting quotes. The
// returned slices point into the input, so they are only good until
// the scanner moves on. retIn is caller scratch, used the same way
// fields uses its scratch, except that here we append, so a slice
// with spare capacity just saves allocations.
// A quote still open when the line runs out is an error.
func splitCifLine(byteIn []byte, retIn [][]byte) ([]([]byte), error) {
	if len(byteIn) < 1 {
		return nil, nil
	}
	ret := retIn[:0]
	state := inSpace
	var start int
	var qtype byte // which quote character opened the current piece
	for i := 0; i <= len(byteIn); i++ {
		c := byte(' ') // a step past the end closes whatever is pending
		if i < len(byteIn) {
			c = byteIn[i]
		}
		switch state {
		case inSpace:
			switch {
			case iswhite(c):
			case c == squote || c == dquote:
				qtype = c
				start = i + 1
				state = inQuote
			default:
				start = i
				state = inWord
			}
		case inWord: // quotes inside a word are just characters
			if iswhite(c) {
				ret = append(ret, byteIn[start:i])
				state = inSpace
			}
		case inQuote:
			if c == qtype {
				state = afterQuote
			} else if i == len(byteIn) {
				return nil, errors.New("unclosed quote in line: " + string(byteIn))
			}
		case afterQuote:
			if iswhite(c) {
				ret = append(ret, byteIn[start:i-1])
				state = inSpace
			} else {
				state = inQuote // the quote was internal after all
			}
		}
	}
	return ret, nil
}
