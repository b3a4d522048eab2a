package main

import (
	"os"

	"github.com/funningboy/PyTradeLib/cmd/pytradelib/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
