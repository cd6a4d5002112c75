package main

import (
	"os"

	"github.com/medcomply/fmv-calc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
