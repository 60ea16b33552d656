package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pvigilev/zipper/container/gzip"
	"github.com/pvigilev/zipper/container/zlib"
	"github.com/pvigilev/zipper/deflate"
	"github.com/pvigilev/zipper/flagutil"
	"github.com/pvigilev/zipper/progressutil"
	"github.com/pvigilev/zipper/yamlutil"
)

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	format := fs.String("format", "raw", "input framing: raw, gzip, or zlib")
	output := fs.String("output", "", "output file path (required)")
	config := fs.String("config", "", "YAML file supplying defaults for flags not passed on the command line")
	var size flagutil.ByteSizeFlag
	fs.Var(&size, "size", "decompressed size (required for raw and zlib)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *config != "" {
		raw, err := os.ReadFile(*config)
		if err != nil {
			return err
		}
		if err := yamlutil.SetFlagsFromYaml(fs, raw); err != nil {
			return err
		}
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file, got %d", fs.NArg())
	}
	if *output == "" {
		return fmt.Errorf("--output is required")
	}

	in, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	var out []byte
	switch *format {
	case "raw":
		if size.Bytes() <= 0 {
			return fmt.Errorf("--size is required for raw input")
		}
		out = make([]byte, size.Bytes())
		dec := deflate.NewDecoder(in, 0).SetLogger(plog)
		if _, err := dec.Decode(out); err != nil {
			return err
		}
	case "gzip":
		out, _, err = gzip.Decode(in)
		if err != nil {
			return err
		}
	case "zlib":
		if size.Bytes() <= 0 {
			return fmt.Errorf("--size is required for zlib input")
		}
		out, err = zlib.Decode(in, int(size.Bytes()))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer f.Close()

	cpp := progressutil.NewCopyProgressPrinter()
	if err := cpp.AddCopy(bytes.NewReader(out), fs.Arg(0), int64(len(out)), f); err != nil {
		return err
	}
	return cpp.PrintAndWait(os.Stderr, 200*time.Millisecond, nil)
}
