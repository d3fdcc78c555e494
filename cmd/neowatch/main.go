package main

import "github.com/stwalsh4118/neowatch/internal/cli"

func main() {
	cli.Execute()
}
