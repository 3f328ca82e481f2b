// Package main provides the entry point for the upkeep CLI.
package main

import "os"

func main() {
	os.Exit(Execute())
}
