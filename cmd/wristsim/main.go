// Command wristsim runs the menu on a terminal, drawing the display with half blocks and reading buttons from the
// keyboard.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
