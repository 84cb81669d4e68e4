// gosc is a command line utility around a pedagogical seed-derived bit
// cipher: key expansion, encryption, decryption, and a statistical
// evaluation harness.
package main

import (
	"os"

	"github.com/mvbarbosa/gosc/internal/commands"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := commands.Execute(version); err != nil {
		os.Exit(1)
	}
}
