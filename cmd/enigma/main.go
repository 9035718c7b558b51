package main

import (
	"os"

	"enigmasim/cmd/enigma/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
