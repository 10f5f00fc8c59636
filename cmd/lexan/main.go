package main

import (
	"os"

	"github.com/msto63/lexan/cmd/lexan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
