package main

import "github.com/prooflib/declgen/internal/cli"

func main() {
	cli.Execute()
}
