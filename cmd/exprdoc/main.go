package main

import (
	"os"

	"github.com/ava12/exprdoc/cmd/exprdoc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
