// Package main is the entry point for the nhlmetrics CLI tool, which fetches
// NHL play-by-play feeds and computes team/player behavioral metrics.
package main

import "github.com/pable/go-nhl-metrics/cmd"

func main() {
	cmd.Execute()
}
