package config

import (
	"fmt"
	"io"
	"os"
)

// ExitCodeFailure is returned for any failed invocation.
const ExitCodeFailure = 1

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(ExitCodeFailure)
}
