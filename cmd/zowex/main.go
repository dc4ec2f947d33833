package main

import (
	"os"

	"github.com/lydakis/zowex/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
