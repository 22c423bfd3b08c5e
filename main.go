// Package main is the entry point for the steeze-fc runtime.
package main

import "github.com/joeydtaylor/steeze-fc/cmd"

func main() {
	cmd.Execute()
}
