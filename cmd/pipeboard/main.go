// Package main provides the pipeboard CLI, a local-first sales pipeline
// tracker over the persistence layer.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
