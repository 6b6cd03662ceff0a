package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/rosedna/gen-dna/internal/cli"
	"github.com/rosedna/gen-dna/internal/encode"
	"github.com/rosedna/gen-dna/internal/inspect"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	p := inspect.New()
	w := encode.NewFileWriter()

	runner := cli.NewRunner(p, w)
	if err := runner.Run(cfg); err != nil {
		log.Print(err)
		os.Exit(exitCode(err))
	}
}

// exitCode keeps output open failures, short writes and everything else
// independently distinguishable to callers.
func exitCode(err error) int {
	switch {
	case errors.Is(err, encode.ErrOpen):
		return 2
	case errors.Is(err, encode.ErrShortWrite):
		return 3
	default:
		return 1
	}
}
