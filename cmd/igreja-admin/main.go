package main

import (
	"fmt"
	"os"

	"igreja/internal/admincli"
	"igreja/internal/cli"
)

func main() {
	cli.LoadEnvFile()
	if err := admincli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
