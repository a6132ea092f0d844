// Package main is the gophtasks server executable.
package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/gophtasks/internal/command"
)

func main() { os.Exit(run()) }

func run() int {
	if err := command.RootCommand().ExecuteContext(context.Background()); err != nil {
		return 1
	}
	return 0
}
