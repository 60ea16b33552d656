// Command zipperd is the sample entry point for the zipper decompression
// library: a greeting (kept from the original command-line tool), plus
// single-file, batch, and HTTP-service decode modes built on the rest of
// the module.
package main

import (
	"fmt"
	"os"

	"github.com/pvigilev/zipper/capnslog"
)

var plog = capnslog.NewPackageLogger("github.com/pvigilev/zipper", "zipperd")

func main() {
	capnslog.SetFormatter(capnslog.NewStringFormatter(os.Stderr))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "greet":
		greet()
	case "decode":
		err = runDecode(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		plog.Errorf("%s: %v", os.Args[1], err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: zipperd <greet|decode|batch|serve> [flags]")
}

// greet reproduces the original command-line tool's startup message.
func greet() {
	plog.Infof("Hello world %p", (*int)(nil))
}
