package main

import (
	"os"

	"github.com/alexdcox/deso-go/cmd/deso/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
