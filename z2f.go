package main

import "github.com/zshtools/z2f/client/cmd"

func main() {
	cmd.Execute()
}
