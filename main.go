package main

import (
	"os"

	"github.com/rabadin/mise-tasks-discover-action/cli"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
