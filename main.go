package main

import (
	"os"

	"github.com/nkapoor/mathex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
