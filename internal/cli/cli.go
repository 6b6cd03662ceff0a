package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// DefaultOutput is the DNA file written when --output is not given.
const DefaultOutput = "rose.dna"

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var typesRaw string

	fs := pflag.NewFlagSet("gen-dna", pflag.ContinueOnError)
	fs.StringSliceVarP(&cfg.Packages, "pkg", "p", nil, "package pattern to scan (repeatable)")
	fs.StringVar(&typesRaw, "types", "", "comma-separated struct names to keep (default: all)")
	fs.StringVarP(&cfg.Output, "output", "o", DefaultOutput, "output DNA file")
	fs.BoolVar(&cfg.Dump, "dump", false, "dump the catalog to stderr before encoding")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	if len(cfg.Packages) == 0 {
		return nil, fmt.Errorf("--pkg is required")
	}
	if strings.TrimSpace(cfg.Output) == "" {
		return nil, fmt.Errorf("--output must not be empty")
	}

	cfg.Types = splitCommaList(typesRaw)
	return cfg, nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
