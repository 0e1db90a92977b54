package main

import (
	"os"

	"github.com/kuhyx/kinoplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
