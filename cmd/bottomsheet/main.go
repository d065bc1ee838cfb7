// Command bottomsheet hosts the interactive terminal demo and renders
// PNG frame sequences of scripted sheet scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/bottomsheet/cmd/bottomsheet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
