// Command stabdecomp decomposes ZX diagrams into sums of stabilizer terms.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/stabdecomp/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
