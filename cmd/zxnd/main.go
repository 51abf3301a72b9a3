package main

import (
	"os"

	"github.com/zxnprotocol/zxn/cmd/zxnd/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
