// Package main is the entry point for the hanzitree CLI.
package main

import (
	"os"

	"github.com/f3rmion/hanzitree/cmd/hanzitree/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
