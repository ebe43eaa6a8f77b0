package main

import "github.com/OpenTraceLab/gatecount/cmd/gatecount/cmd"

func main() {
	cmd.Execute()
}
