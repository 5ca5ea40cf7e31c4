package main

import (
	"os"

	"github.com/LearnWithSuryaa/analyzer-app/cmd/krama/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
