package main

import (
	"os"

	"github.com/Iron-Ham/cascade/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
