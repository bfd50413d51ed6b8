package main

import (
	"os"

	_ "simpleclaw-keeper/cmd"
	"simpleclaw-keeper/cmd/root"
)

func main() {
	if err := root.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
