package main

import (
	"os"

	"github.com/bayleafwalker/depgraph/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
