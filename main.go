package main

import "github.com/lepinkainen/botd/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
