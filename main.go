package main

import (
	"os"

	"confsync/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
