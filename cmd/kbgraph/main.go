package main

import "github.com/lasige-bio/kbgraph/internal/cli"

func main() {
	cli.Execute()
}
