package main

import "strings"

// VersionCommand prints the spider build version.
type VersionCommand struct {
	Meta
	Version string
}

func (c *VersionCommand) Help() string {
	helpText := `
Usage: spider version

  Displays the version of this spider build.
`
	return strings.TrimSpace(helpText)
}

func (c *VersionCommand) Run(args []string) int {
	c.Ui.Output("spider v" + c.Version)
	return 0
}

func (c *VersionCommand) Synopsis() string {
	return "Show the current spider version"
}
