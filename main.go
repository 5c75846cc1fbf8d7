package main

import (
	"os"

	"github.com/csfund/crowdfund-system/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
