package main

import "github.com/mcoot/chatlogin/internal/cli"

func main() {
	cli.Execute()
}
