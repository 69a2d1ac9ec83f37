//go:build !windows

package output

import "os"

// enableANSI reports whether f accepts ANSI codes.
// Unix terminals do without setup.
func enableANSI(_ *os.File) bool {
	return true
}
