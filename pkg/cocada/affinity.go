// 8 Apr 2025

package cocada

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// setAffinity pins the process to the cores named by s and reports
// what it did, since benchmark runs want that on record.
func setAffinity(s string) error {
	cores, err := parseCores(s)
	if err != nil {
		return err
	}
	if err := pinCores(cores); err != nil {
		return err
	}
	last := cores[len(cores)-1]
	switch {
	case len(cores) == 1:
		fmt.Printf("Running on core %d.\n", cores[0])
	case last-cores[0] == len(cores)-1:
		fmt.Printf("Running on cores %d to %d\nTotal number of cores: %d.\n",
			cores[0], last, len(cores))
	default:
		strs := make([]string, len(cores))
		for i, c := range cores {
			strs[i] = strconv.Itoa(c)
		}
		fmt.Printf("Running on cores: %s\nTotal number of cores: %d.\n",
			strings.Join(strs, ", "), len(cores))
	}
	return nil
}

// parseCores reads a range "0-3" or a list "0,2,4" into a sorted
// list without duplicates.
func parseCores(s string) ([]int, error) {
	bad := func(part string) error {
		return errors.New("cannot read core selection " + part)
	}
	seen := make(map[int]bool)
	var ret []int
	add := func(n int) {
		if !seen[n] {
			seen[n] = true
			ret = append(ret, n)
		}
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i := strings.IndexByte(part, '-'); i > 0 {
			lo, err1 := strconv.Atoi(part[:i])
			hi, err2 := strconv.Atoi(part[i+1:])
			if err1 != nil || err2 != nil || lo < 0 || hi < lo {
				return nil, bad(part)
			}
			for n := lo; n <= hi; n++ {
				add(n)
			}
		} else {
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 {
				return nil, bad(part)
			}
			add(n)
		}
	}
	if len(ret) == 0 {
		return nil, bad(s)
	}
	sort.Ints(ret)
	return ret, nil
}
