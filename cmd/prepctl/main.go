package main

import (
	"os"

	"github.com/noah-isme/mockprep-api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
