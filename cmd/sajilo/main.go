package main

import (
	"os"

	"github.com/sajilokaam/client-core/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
