package main

import "github.com/motorent/rentweb/cmd/rentweb/command"

func main() {
	command.Execute()
}
