package main

import "github.com/mcoot/tournament/internal/cli"

func main() {
	cli.Execute()
}
