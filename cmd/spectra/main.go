// ABOUTME: Entry point for the spectra command line
// ABOUTME: Generates spectrograms, trains and evaluates the detector and runs predictions
package main

import (
	"fmt"
	"os"

	"github.com/harperreed/spectra/cmd/spectra/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
