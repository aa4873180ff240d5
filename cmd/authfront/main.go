package main

import (
	"os"

	"github.com/kbukum/authfront/cmd/authfront/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
