// Package main provides the entry point for the mandate-scan CLI.
package main

import (
	"os"

	"upisubs/mandate-scan/cmd/root"
	"upisubs/mandate-scan/cmd/scan"
	"upisubs/mandate-scan/cmd/suggest"
)

func main() {
	root.Cmd.AddCommand(scan.Cmd)
	root.Cmd.AddCommand(suggest.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err)
		os.Exit(1)
	}
}
