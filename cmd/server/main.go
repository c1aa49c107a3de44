// Package main is the oetprep command: the HTTP server of the OET practice
// core plus maintenance commands that work on the same storage.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
