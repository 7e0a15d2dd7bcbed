// Package main is the entry point for the unrealctl CLI.
package main

import "unrealctl.dev/pkg/unrealctl/cmd"

func main() {
	cmd.Execute()
}
