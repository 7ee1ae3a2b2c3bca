package main

import (
	"os"

	"github.com/vezinbastien/devtools/internal/lsp"
)

var version = "dev"

func main() {
	s := lsp.NewServer(version)
	if err := s.Run(1); err != nil {
		os.Exit(1)
	}
}
