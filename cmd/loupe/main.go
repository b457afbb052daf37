package main

import (
	"os"

	"github.com/aliGhadyani/loupe/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
