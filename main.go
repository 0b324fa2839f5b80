package main

import (
	"os"

	"github.com/sortinghat-ai/sortinghat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
