// Package main is the entry point for the paulitrace CLI.
package main

import "paulitrace/cmd"

func main() {
	cmd.Execute()
}
