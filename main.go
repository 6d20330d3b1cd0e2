package main

import (
	"os"

	"github.com/udem-connect/campus-connect/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
