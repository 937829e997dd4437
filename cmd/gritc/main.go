package main

import (
	"os"

	"github.com/urbit-pilled/gritql/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
