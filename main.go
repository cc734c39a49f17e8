package main

import (
	"os"

	"github.com/sorgerlab/indra-sub002/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
