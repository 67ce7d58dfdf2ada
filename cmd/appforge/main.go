package main

import (
	"os"

	"github.com/appforge-dev/appforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
