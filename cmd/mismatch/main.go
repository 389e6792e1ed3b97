package main

import (
	"fmt"
	"os"

	"github.com/roach88/mismatch/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Invalid documents and failed scenarios have already been reported on
	// stdout.
	code := cli.GetExitCode(err)
	if code != cli.ExitFailure {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(code)
}
