package main

import (
	"github.com/davdmx/statuswatch/cmd"
)

var (
	version string
	commit  string
	date    string
)

func main() {
	cmd.Execute(version, commit, date)
}
