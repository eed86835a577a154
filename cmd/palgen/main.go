package main

import (
	"os"

	"github.com/neonfuzz/palette-generator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
