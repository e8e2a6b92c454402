package main

import (
	"os"

	"gridfix/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
