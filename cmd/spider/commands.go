package main

import (
	"os"

	"github.com/mitchellh/cli"
)

// commands is the top-level command table, mirroring the teacher's own
// package-level commands map built once by initCommands.
var commands map[string]cli.CommandFactory

func initCommands(ui cli.Ui) {
	meta := Meta{Ui: ui}

	commands = map[string]cli.CommandFactory{
		"run": func() (cli.Command, error) {
			return &RunCommand{Meta: meta}, nil
		},
		"version": func() (cli.Command, error) {
			return &VersionCommand{Meta: meta, Version: Version}, nil
		},
	}
}

func helpFunc(cmds map[string]cli.CommandFactory) string {
	return cli.BasicHelpFunc("spider")(cmds)
}

func newUi() cli.Ui {
	return &cli.BasicUi{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Reader:      os.Stdin,
	}
}
