package main

import (
	"os"

	"github.com/hashicorp-forge/canvas-mcp/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
