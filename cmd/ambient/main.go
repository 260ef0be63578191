// Command ambient renders the animated particle backdrop in a window, a
// terminal or headless.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
