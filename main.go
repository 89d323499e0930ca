package main

import "github.com/aerolex/termgate/cmd"

func main() {
	cmd.Execute()
}
