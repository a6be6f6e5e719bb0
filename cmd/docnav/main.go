package main

import (
	"os"

	"github.com/grovetools/docnav/cli"
	"github.com/grovetools/docnav/cmd"
)

func main() {
	os.Exit(cli.Execute(cmd.NewRootCmd()))
}
