package main

import (
	"os"

	"github.com/sakiengine/saki/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
