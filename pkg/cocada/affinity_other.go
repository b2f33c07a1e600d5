//go:build !linux

// 8 Apr 2025

package cocada

import "errors"

// pinCores needs the linux scheduler calls.
func pinCores([]int) error {
	return errors.New("core selection is only available on linux")
}
