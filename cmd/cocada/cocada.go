// 5 Apr 2025

// Read coordinate files, old pdb or mmcif format, plain or gzipped,
// and list the atomic contacts in each one with their types. All the
// work happens in pkg/cocada, this just collects the flags.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/rplemos/COCaDA-speed/pkg/cocada"
	. "github.com/rplemos/COCaDA-speed/pkg/common"
)

// usage
func usage() int {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]),
		"[opts] -f file.pdb[,file2.cif,...]")
	flag.PrintDefaults()
	return (ExitUsageError)
}

// main
func main() {
	var flags cocada.CmdFlag
	var files string
	flag.StringVar(&files, "f", "", "input files, comma separated")
	flag.StringVar(&flags.Mode, "m", "Single", `processing mode, "Single" or "Multi"`)
	flag.IntVar(&flags.NCores, "c", 0, "worker count in Multi mode, 0 means all cores")
	flag.StringVar(&flags.SelCore, "s", "", `pin the process to these cores, "0-3" or "0,2,4"`)
	flag.BoolVar(&flags.Output, "o", false, "write results to files under ./outputs")
	flag.BoolVar(&flags.Fetch, "fetch", false, "arguments are entry codes to download")
	flag.Float64Var(&flags.PH, "ph", -1, "classify at this pH, negative uses the static table")
	flag.Float64Var(&flags.Epsilon, "epsilon", 0, "widen every distance cutoff by this much")
	flag.StringVar(&flags.Region, "region", "", `only these residue numbers, "12-20,30"`)
	flag.StringVar(&flags.Chains, "chains", "", `only these chains, "A,B"`)
	flag.BoolVar(&flags.Iface, "i", false, "only contacts between different entities")
	flag.StringVar(&flags.IfaceFile, "ifile", "", "restrict to interface residues listed in this file")
	flag.BoolVar(&flags.Cluster, "cluster", false, "keep only the largest contacted patch")
	flag.StringVar(&flags.Linker, "linker", "", "chain to search for GGS linker runs")
	flag.StringVar(&flags.CPUProfile, "cpuprofile", "", "write cpu profile to file")
	flag.StringVar(&flags.MemProfile, "memprofile", "", "write memory profile to file")
	flag.StringVar(&flags.TraceFile, "trace", "", "write execution trace to file")

	flag.Parse()

	list := append(cocada.SplitList(files), flag.Args()...)
	if len(list) == 0 {
		os.Exit(usage())
	}
	os.Exit(cocada.Mymain(&flags, list))
}
