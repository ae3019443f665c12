// Package main is the entry point for the card value backend.
package main

import (
	"os"

	"github.com/jessysellshomes/card-value-backend/cmd/card-value-backend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
