package main

import "github.com/wkalt/tileland/cli/cmd"

func main() {
	cmd.Execute()
}
