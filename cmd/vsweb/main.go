package main

import "github.com/movrlab/vsweb/cmd/vsweb/command"

func main() {
	command.Execute()
}
