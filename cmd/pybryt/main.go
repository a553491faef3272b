// Command pybryt checks student submissions against reference
// implementations and compares submissions for plagiarism.
package main

import (
	"fmt"
	"os"

	"github.com/ZabehCruz/pybryt/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
