// Command ccdtool inspects, verifies and extracts CloneCD disc images.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
