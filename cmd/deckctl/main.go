// Command deckctl manages a persistent slide deck registry.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/slidedeck/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Reported {
			fmt.Fprintf(os.Stderr, "deckctl: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
