package main

import "github.com/angelospk/streailer/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
