// 14 Mar 2025

// Package common holds the little pieces shared by the command line
// layer and the tests. It should stay small.
package common

import (
	"fmt"
	"io"
	"os"
)

// Exit codes for the cocada command. Argument and flag problems exit
// with 1, failures at run time with 2.
const (
	ExitSuccess = iota
	ExitUsageError
	ExitFailure
)

// WrtTemp writes a string to a temporary file and returns the
// filename. Tests use it for little fixture files. Removing the
// file afterwards is the caller's problem.
func WrtTemp(s string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail")
	}
	defer f_tmp.Close()
	if _, err := io.WriteString(f_tmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v", f_tmp.Name())
	}
	return f_tmp.Name(), nil
}
