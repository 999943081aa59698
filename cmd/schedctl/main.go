package main

import (
	"os"

	"github.com/dallyp22/Scheduler-VS/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
