package main

import "github.com/brandkit/brandkit/cmd"

func main() {
	cmd.Execute()
}
