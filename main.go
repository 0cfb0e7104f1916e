package main

import (
	"os"

	"github.com/jobmatch-ai/jobmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
