package main

import "github.com/aree6/LiftShift-sub002/internal/cli"

func main() {
	cli.Execute()
}
