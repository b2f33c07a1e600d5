// 7 Apr 2025

package cocada

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rplemos/COCaDA-speed/pkg/contacts"
)

// outDir is where -o puts the per structure files.
const outDir = "outputs"

// csvHdr names the columns of the contact block.
const csvHdr = "Chain1,Res1,ResName1,Atom1,Chain2,Res2,ResName2,Atom2,Distance,Type"

// summary is the one line per file that always goes to the console
// and heads the output file.
func summary(fr *fresult) string {
	return fmt.Sprintf("ID: %s | Size: %-7d | Contacts: %-7d | Time: %.3fs",
		fr.id, fr.size, len(fr.res.Contacts), fr.secs)
}

// contactReport formats everything we know about one structure: the
// summary line, the csv contact block and the per category counts.
func contactReport(line string, res *contacts.Result) string {
	var bld strings.Builder
	bld.WriteString(line)
	bld.WriteByte('\n')
	bld.WriteString(csvHdr)
	bld.WriteByte('\n')
	for _, c := range res.Contacts {
		fmt.Fprintf(&bld, "%s,%d,%s,%s,%s,%d,%s,%s,%.2f,%s\n",
			c.A.Chain, c.A.ResNum, c.A.ResName, c.A.Atom,
			c.B.Chain, c.B.ResNum, c.B.ResName, c.B.Atom, c.Dist, c.Label)
	}
	bld.WriteByte('\n')
	for cat := contacts.Category(0); cat < contacts.NCategory; cat++ {
		fmt.Fprintf(&bld, "%s: %d\n", cat.Abbrev(), res.Counts[cat])
	}
	if res.Strength != 0 {
		fmt.Fprintf(&bld, "Strength: %.1f\n", res.Strength)
	}
	return bld.String()
}

// ifaceReport lists the interface residue keys one per line, sorted,
// in the form LoadIfaceRes reads back.
func ifaceReport(res *contacts.Result) string {
	keys := make([]string, 0, len(res.IfaceRes))
	for k := range res.IfaceRes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\n") + "\n"
}

func wrtFile(fname, content string) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(fp, content); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// report prints the per file line and, with -o, writes the contact
// list and any interface residue set next to it. Skipped files hand
// in a nil result and say nothing here.
func report(flags *CmdFlag, fr *fresult) {
	if fr == nil {
		return
	}
	line := summary(fr)
	fmt.Println(line)
	if !flags.Output {
		return
	}
	fname := filepath.Join(outDir, fr.id+"_contacts.txt")
	if err := wrtFile(fname, contactReport(line, fr.res)); err != nil {
		fmt.Fprintln(os.Stderr, "writing", fname, err)
		return
	}
	if fr.res.IfaceRes != nil {
		fname := filepath.Join(outDir, fr.id+"_iface.txt")
		if err := wrtFile(fname, ifaceReport(fr.res)); err != nil {
			fmt.Fprintln(os.Stderr, "writing", fname, err)
		}
	}
}
