package main

import (
	"os"

	"github.com/sievetools/diffsieve/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
