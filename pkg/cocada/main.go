// 5 Apr 2025

// Package cocada is the orchestration behind the cocada command. It
// turns the command line into a classifier configuration, maps
// contact detection over the input files, one file per task, and
// formats the results. Everything per structure is done by pdb and
// pkg/contacts, so this package is mostly plumbing.
package cocada

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strconv"
	"strings"
	"time"

	. "github.com/rplemos/COCaDA-speed/pkg/common"
	"github.com/rplemos/COCaDA-speed/pkg/contacts"
)

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Mode    string // Single or Multi
	NCores  int    // worker count in Multi mode, 0 means all cores
	SelCore string // cores to pin the process to, "0-3" or "0,2,4"
	Output  bool   // write per structure files under ./outputs
	Fetch   bool   // arguments are entry codes to download, not files

	PH      float64 // classify at this pH, negative keeps the static table
	Epsilon float64 // widens every distance cutoff
	Region  string  // residue number selection, "12-20,30"
	Chains  string  // chain selection, "A,B"

	Iface     bool   // only contacts between different entities
	IfaceFile string // restrict to the residues listed in this file
	Cluster   bool   // keep only the largest contacted patch
	Linker    string // chain to search for GGS linker runs

	CPUProfile string
	MemProfile string
	TraceFile  string
}

// MaxRes is the size policy. A structure with more residues is
// skipped before classification, one with exactly this many is
// processed.
const MaxRes = 25000

// validName says whether a file name carries one of the coordinate
// formats we read, compressed or not.
func validName(fname string) bool {
	s := strings.TrimSuffix(fname, ".gz")
	return strings.HasSuffix(s, ".pdb") || strings.HasSuffix(s, ".cif")
}

// SplitList breaks a comma separated argument up, dropping empty
// pieces. The file list and the chain selection both arrive this way.
func SplitList(s string) []string {
	var ret []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			ret = append(ret, f)
		}
	}
	return ret
}

// parseRegion reads a residue number selection like "12-20,30" into
// a set. An empty string means no restriction.
func parseRegion(s string) (map[int]bool, error) {
	if s == "" {
		return nil, nil
	}
	ret := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bad := errors.New("cannot read region " + part)
		if i := strings.IndexByte(part, '-'); i > 0 {
			lo, err1 := strconv.Atoi(part[:i])
			hi, err2 := strconv.Atoi(part[i+1:])
			if err1 != nil || err2 != nil || hi < lo {
				return nil, bad
			}
			for n := lo; n <= hi; n++ {
				ret[n] = true
			}
		} else {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, bad
			}
			ret[n] = true
		}
	}
	return ret, nil
}

// buildConfig turns the command line settings into the classifier
// configuration shared by every file of the run.
func buildConfig(flags *CmdFlag) (*contacts.Config, error) {
	cfg := &contacts.Config{
		Interface:   flags.Iface,
		Epsilon:     flags.Epsilon,
		Cluster:     flags.Cluster,
		LinkerChain: flags.Linker,
	}
	var err error
	if cfg.Region, err = parseRegion(flags.Region); err != nil {
		return nil, err
	}
	if flags.Chains != "" {
		cfg.Chains = make(map[string]bool)
		for _, c := range SplitList(flags.Chains) {
			cfg.Chains[c] = true
		}
	}
	if flags.PH >= 0 {
		cfg.Table, cfg.Uncertain = contacts.Protonate(flags.PH, contacts.DfltWindow)
	}
	if flags.IfaceFile != "" {
		if cfg.IfaceRes, err = contacts.LoadIfaceRes(flags.IfaceFile); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Mymain is the main function for contact detection, called with the
// parsed flags and the list of files or entry codes. The return value
// is the exit code. Argument problems are reported before any file is
// touched; a single bad file later on only costs that file.
func Mymain(flags *CmdFlag, files []string) int {
	start := time.Now()
	if flags.Mode != "Single" && flags.Mode != "Multi" {
		fmt.Fprintln(os.Stderr, "invalid mode", flags.Mode, `- want "Single" or "Multi"`)
		return ExitUsageError
	}
	if !flags.Fetch {
		for _, f := range files {
			if !validName(f) {
				fmt.Fprintln(os.Stderr, f,
					"is not a valid file. File must end with '.pdb' or '.cif'")
				return ExitUsageError
			}
		}
	}
	cfg, err := buildConfig(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitUsageError
	}
	if flags.SelCore != "" {
		if err := setAffinity(flags.SelCore); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitFailure
		}
	}
	if flags.Output {
		if err := os.MkdirAll(outDir, 0777); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitFailure
		}
	}

	if flags.CPUProfile != "" {
		fprof, err := os.Create(flags.CPUProfile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitFailure
		}
		if err := pprof.StartCPUProfile(fprof); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitFailure
		}
		defer fprof.Close()
		defer pprof.StopCPUProfile()
	}
	if flags.TraceFile != "" {
		tprof, err := os.Create(flags.TraceFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitFailure
		}
		if err := trace.Start(tprof); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitFailure
		}
		defer tprof.Close()
		defer trace.Stop()
	}

	if flags.Mode == "Multi" {
		runMulti(flags, cfg, files)
	} else {
		runSingle(flags, cfg, files)
	}

	if flags.MemProfile != "" {
		runtime.GC()
		mprof, err := os.Create(flags.MemProfile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitFailure
		}
		if err := pprof.WriteHeapProfile(mprof); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitFailure
		}
		mprof.Close()
	}
	fmt.Printf("Total time elapsed: %.3fs\n\n", time.Since(start).Seconds())
	return ExitSuccess
}
