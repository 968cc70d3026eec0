// main is the entry point for the sizegate CLI.
package main

import (
	"fmt"
	"os"

	"github.com/sizegate/sizegate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
