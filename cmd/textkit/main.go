// Command textkit inspects the layout attribute presets of a project.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/textkit/cmd/textkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
