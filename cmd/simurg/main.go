package main

import (
	"os"

	"github.com/simurg/simurg-desktop/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
