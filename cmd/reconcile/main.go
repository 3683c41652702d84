package main

import (
	"os"

	"partsync/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
