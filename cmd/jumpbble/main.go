package main

import "github.com/mcoot/jumpbble/internal/cli"

func main() {
	cli.Execute()
}
