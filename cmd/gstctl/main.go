package main

import (
	"os"

	"gstcore/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
