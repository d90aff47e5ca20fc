// SPDX-License-Identifier: MIT

// Command geosolver trains and runs the geometry semantic parser.
//
//	geosolver catalog
//	geosolver train  --config geosolver.yaml --out trained.yaml corpus.yaml
//	geosolver decode --config trained.yaml --top 3 corpus.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "geosolver:", err)
		os.Exit(1)
	}
}
