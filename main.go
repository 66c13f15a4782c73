package main

import "ashdl/cmd"

func main() {
	cmd.Execute()
}
