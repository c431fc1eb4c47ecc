// Package main provides the entry point for the watcherctl CLI.
package main

import "github.com/martinferreira/elasticsearch-net/cmd"

func main() {
	cmd.Execute()
}
