// Package main provides the rewind CLI entry point.
package main

import "github.com/mesh-intelligence/rewind/internal/cli"

func main() {
	cli.Execute()
}
