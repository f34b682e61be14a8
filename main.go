// Command gopherseo-od scrapes and downloads content from open directories.
package main

import (
	"fmt"
	"os"

	"github.com/tariktz/gopherseo-od/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
