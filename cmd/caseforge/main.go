package main

import (
	"os"

	"github.com/caseforge/caseforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
