package main

import (
	"os"

	"github.com/fzipp/pl0-recognizer/cmd/plrec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
