package main

import "leap-bridge/cmd"

func main() {
	cmd.Execute()
}
