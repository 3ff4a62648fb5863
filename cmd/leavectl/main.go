package main

import (
	"os"

	"github.com/hrmstack/leavectl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
