package main

import (
	"fmt"
	"os"

	"github.com/kumul-digital/capdash/backend/cmd/capdash/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
