// SPDX-License-Identifier: MIT

// Command pairalign computes pairwise alignment penalties.
//
//	pairalign pairs [file]   all pairs of k sequences, distributed over ranks
//	pairalign align [file]   one pair, wavefront-parallel fill
//	pairalign version
package main

import (
	"os"

	"github.com/katalvlaran/pairalign/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
