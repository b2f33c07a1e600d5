// 6 Apr 2025

package cocada

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/rplemos/COCaDA-speed/pdb"
	"github.com/rplemos/COCaDA-speed/pdb/cmmn"
	"github.com/rplemos/COCaDA-speed/pkg/contacts"
)

// A fresult is what one file task hands back for reporting.
type fresult struct {
	id   string
	size int
	res  *contacts.Result
	secs float64
}

// skipBig applies the size policy and says so on the console.
func skipBig(p *cmmn.Protein) bool {
	if n := p.ResidueCount(); n > MaxRes {
		fmt.Printf("Skipping ID '%s'. Size: %d residues\n", p.ID, n)
		return true
	}
	return false
}

// oneFile takes a file name or entry code all the way to a contact
// list. Oversized structures come back as a nil result, before any
// classification is paid for. A failed file returns only the error,
// never a partial result.
func oneFile(flags *CmdFlag, cfg *contacts.Config, fname string) (*fresult, error) {
	start := time.Now()
	var prot *cmmn.Protein
	var err error
	if flags.Fetch {
		prot, err = pdb.GetByCode(fname)
	} else {
		prot, err = pdb.ReadCoord(fname, "")
	}
	if err != nil {
		return nil, err
	}
	if skipBig(prot) {
		return nil, nil
	}
	res, err := contacts.Detect(prot, cfg)
	if err != nil {
		return nil, err
	}
	return &fresult{prot.ID, prot.ResidueCount(), res, time.Since(start).Seconds()}, nil
}

// runSingle is the plain sequential loop over the input files.
func runSingle(flags *CmdFlag, cfg *contacts.Config, files []string) {
	for _, f := range files {
		fr, err := oneFile(flags, cfg, f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", f, err)
			continue
		}
		report(flags, fr)
	}
}

// runMulti farms the files out to a bounded worker pool. Results
// print in completion order and only the reporting goroutine touches
// the output, so lines never interleave.
func runMulti(flags *CmdFlag, cfg *contacts.Config, files []string) {
	n := flags.NCores
	if n <= 0 {
		n = runtime.NumCPU()
	}
	jobs := make(chan string, len(files))
	results := make(chan *fresult)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range jobs {
				fr, err := oneFile(flags, cfg, f)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", f, err)
					continue
				}
				if fr != nil {
					results <- fr
				}
			}
		}()
	}
	for _, f := range files {
		jobs <- f
	}
	close(jobs)
	go func() {
		wg.Wait()
		close(results)
	}()
	for fr := range results {
		report(flags, fr)
	}
}
