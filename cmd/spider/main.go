package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"
)

// Version is the spider build version, overridable at link time the way
// the teacher's own version.go stamps a build-time value.
var Version = "0.1.0"

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ui := newUi()
	initCommands(ui)

	args := os.Args[1:]
	runner := &cli.CLI{
		Name:       "spider",
		Args:       args,
		Commands:   commands,
		HelpFunc:   helpFunc,
		HelpWriter: os.Stdout,
	}

	exitCode, err := runner.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error executing CLI: %s\n", err)
		return 1
	}
	return exitCode
}
