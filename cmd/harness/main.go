// SPDX-License-Identifier: MIT

// Command harness checks, converts and routes wiring harness designs
// stored as YAML, JSON or SQLite projects.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
