// Package main provides the entry point for the auditor CLI.
package main

import (
	"os"

	"github.com/flightschool/auditor/cmd/auditor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
