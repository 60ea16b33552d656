package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/pvigilev/zipper/batchconfig"
	"github.com/pvigilev/zipper/container/gzip"
	"github.com/pvigilev/zipper/container/zlib"
	"github.com/pvigilev/zipper/deflate"
)

type jobResult struct {
	name string
	size int
	err  error
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	configPath := fs.String("config", "", "batch job list YAML file (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return fmt.Errorf("--config is required")
	}

	raw, err := os.ReadFile(*configPath)
	if err != nil {
		return err
	}
	cfg, err := batchconfig.Parse(raw)
	if err != nil {
		return err
	}

	results := make([]jobResult, len(cfg.Jobs))
	g, _ := errgroup.WithContext(context.Background())
	for i, job := range cfg.Jobs {
		i, job := i, job
		g.Go(func() error {
			n, err := runOneJob(job)
			results[i] = jobResult{name: job.Name, size: n, err: err}
			return nil
		})
	}
	// Errors are captured per-job in results rather than propagated
	// through the group, so a single failing job doesn't cancel the
	// others; g.Wait() only reports an unexpected errgroup-internal error.
	if err := g.Wait(); err != nil {
		return err
	}

	slices.SortFunc(results, func(a, b jobResult) int {
		switch {
		case a.name < b.name:
			return -1
		case a.name > b.name:
			return 1
		default:
			return 0
		}
	})

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			plog.Errorf("%s: %v", r.name, r.err)
			continue
		}
		plog.Infof("%s: %d bytes", r.name, r.size)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}

func runOneJob(job batchconfig.Job) (int, error) {
	in, err := os.ReadFile(job.Input)
	if err != nil {
		return 0, err
	}

	var out []byte
	switch job.Format {
	case batchconfig.FormatGzip:
		out, _, err = gzip.Decode(in)
	case batchconfig.FormatZlib:
		out, err = zlib.Decode(in, int(job.Size))
	default:
		if job.Size <= 0 {
			return 0, fmt.Errorf("raw input requires a positive size")
		}
		out = make([]byte, job.Size)
		dec := deflate.NewDecoder(in, 0).SetLogger(plog)
		_, err = dec.Decode(out)
	}
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(job.Output, out, 0o644); err != nil {
		return 0, err
	}
	return len(out), nil
}
