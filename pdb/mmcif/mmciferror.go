// The error type for the cif reader. A broken file should name the
// line it broke on and show the line itself, so the scanner records
// both as soon as anything goes wrong. Call xxxx.fill() where xxxx
// is the comment scanner or, via embedding, the cif reader.

package mmcif

import (
	"fmt"
)

const maxMsgLen = 70 // never echo more than this much of a bad line

type readError struct {
	n      int    // line number where it happened
	inline string // the line that provoked the error
	desc   string
}

// fill stores the problem for printing out when it is convenient.
// It lives in the scanner, so the reader sees it by inclusion. The
// Ok flag is what the rest of the machinery checks, rather than
// threading error returns through every state. If fill runs again
// before anyone looked at the first error, the messages are chained,
// since the first one is usually the real story.
func (m *cmmtScanner) fill(desc string, saveLine bool) {
	if !m.Ok {
		desc = fmt.Sprintf(
			"%s\nNew error, but there was already an error from line %d:\n%s\n",
			m.l_err.desc, m.n, desc)
	}
	m.Ok = false
	if saveLine {
		m.l_err.n = m.n
	}
	m.l_err.inline = string(m.cbytes())
	m.l_err.desc = desc
}

// Error turns whatever fill collected into one printable string. If
// no line number was saved, the description stands alone.
func (e readError) Error() string {
	if e.n == 0 {
		return e.desc
	}
	in := e.inline
	if len(in) > maxMsgLen {
		in = in[:maxMsgLen]
	}
	return fmt.Sprintf("Line: %d %s\nLine starting with\n%s", e.n, e.desc, in)
}
