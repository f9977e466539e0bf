package main

import "github.com/silverline-robotics/interlock/cmd/interlock/cmd"

func main() {
	cmd.Execute()
}
