package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/jo-hoe/proteinlens/internal/client"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, client.UserMessage(err))
		os.Exit(1)
	}
}
