package main

import (
	"os"

	"github.com/katalvlaran/dsm/cmd/dsm/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
