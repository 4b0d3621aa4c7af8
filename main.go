// Command gemforge generates parametric jewelry models.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gemforge:", describeError(err))
		os.Exit(1)
	}
}
