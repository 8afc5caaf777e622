package main

import (
	"fmt"
	"os"

	"homekeeper/internal/cli"
)

func main() {
	cli.LoadEnvFile()

	if err := cli.NewToDoCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
