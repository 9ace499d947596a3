package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/temirov/gitpair/cmd/cli"
	"github.com/temirov/gitpair/internal/ui"
)

const (
	exitErrorTemplateConstant = "%v"
)

// main executes the gitpair command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		ui.NewPrinter(os.Stderr, !color.NoColor).Failure(exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
