package main

import "github.com/mcoot/torosvacas/internal/cli"

func main() {
	cli.Execute()
}
