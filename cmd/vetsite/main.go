// Package main is the vetsite entrypoint.
package main

import (
	"os"

	"github.com/greenpaws/vetsite/internal/adapters/driving/cli"
)

// version is stamped at build time through -ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
