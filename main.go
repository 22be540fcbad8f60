// Package main is the entry point for the docvet CLI.
package main

import "docvet.dev/pkg/docvet/cmd"

func main() {
	cmd.Execute()
}
