// Package batchconfig parses the YAML job list a batch decode run reads:
// untyped YAML in, a validated Config out, the same shape yamlutil uses
// for flag defaults but retargeted at a list of decode jobs instead of a
// single flat key/value map.
package batchconfig

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// Format names the container framing a job's input uses.
type Format string

const (
	FormatRaw  Format = "raw"
	FormatGzip Format = "gzip"
	FormatZlib Format = "zlib"
)

// Job describes one file to decode as part of a batch run.
type Job struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Format Format `yaml:"format"`
	// Size is the exact decompressed size in bytes. Raw deflate and RFC
	// 1950 zlib streams carry no size field, so both need it: Parse rejects
	// a "zlib" job without a positive Size, and a "raw" job without one
	// fails when it runs. It's ignored for "gzip" (gzip's trailer carries
	// its own ISIZE).
	Size int64 `yaml:"size"`
}

// Config is the top-level batch decode job list.
type Config struct {
	Jobs []Job `yaml:"jobs"`
}

// Parse unmarshals raw as a Config and validates every job, defaulting an
// empty Format to FormatRaw.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("batchconfig: %v", err)
	}
	for i := range cfg.Jobs {
		j := &cfg.Jobs[i]
		if j.Input == "" {
			return Config{}, fmt.Errorf("batchconfig: job %d (%q): input path required", i, j.Name)
		}
		if j.Output == "" {
			return Config{}, fmt.Errorf("batchconfig: job %d (%q): output path required", i, j.Name)
		}
		switch j.Format {
		case "":
			j.Format = FormatRaw
		case FormatRaw, FormatGzip:
		case FormatZlib:
			if j.Size <= 0 {
				return Config{}, fmt.Errorf("batchconfig: job %d (%q): zlib input requires a positive size", i, j.Name)
			}
		default:
			return Config{}, fmt.Errorf("batchconfig: job %d (%q): unknown format %q", i, j.Name, j.Format)
		}
	}
	return cfg, nil
}
