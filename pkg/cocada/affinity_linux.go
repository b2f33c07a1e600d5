//go:build linux

// 8 Apr 2025

package cocada

import "golang.org/x/sys/unix"

// pinCores restricts the whole process to the given cpu numbers.
func pinCores(cores []int) error {
	var set unix.CPUSet
	for _, c := range cores {
		set.Set(c)
	}
	return unix.SchedSetaffinity(0, &set)
}
