package main

import (
	"os"

	"github.com/yielddrive/fleetyield/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
