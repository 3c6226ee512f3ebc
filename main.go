// main is the entry point for the blamescope CLI.
package main

import (
	"os"

	"github.com/huangsam/blamescope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
