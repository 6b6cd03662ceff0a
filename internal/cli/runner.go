package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/rosedna/gen-dna/internal/catalog"
	"github.com/rosedna/gen-dna/internal/classify"
	"github.com/rosedna/gen-dna/internal/encode"
	"github.com/rosedna/gen-dna/internal/inspect"
)

// Runner orchestrates provider/classifier/builder/encoder layers.
type Runner interface {
	Run(cfg *Config) error
}

type runnerImpl struct {
	provider inspect.Provider
	writer   encode.FileWriter
}

// NewRunner creates a default runner implementation.
func NewRunner(p inspect.Provider, w encode.FileWriter) Runner {
	return &runnerImpl{
		provider: p,
		writer:   w,
	}
}

// Run executes a single catalog run: describe every requested package, build
// and classify the catalog, then encode and write it. Any builder failure
// aborts the run; no partial catalog is serialized.
func (r *runnerImpl) Run(cfg *Config) error {
	var records []inspect.Record
	for _, pattern := range cfg.Packages {
		recs, err := r.provider.Describe(pattern)
		if err != nil {
			return fmt.Errorf("describe %q: %w", pattern, err)
		}
		records = append(records, recs...)
	}

	records = filterRecords(records, cfg.Types)
	if len(records) == 0 {
		return fmt.Errorf("no struct types found in %v", cfg.Packages)
	}

	cat, err := buildCatalog(records)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	logValidationFindings(cat)

	if cfg.Dump {
		spew.Fdump(os.Stderr, cat.Structs())
	}

	if err := r.writer.Write(cfg.OutputFilename(), encode.Encode(cat)); err != nil {
		return err
	}
	return nil
}

func buildCatalog(records []inspect.Record) (*catalog.Catalog, error) {
	cat := catalog.New()
	for _, rec := range records {
		sh, err := cat.AddStruct(rec.Name)
		if err != nil {
			return nil, err
		}
		cat.SetStructSize(sh, rec.Size)

		for _, f := range rec.Fields {
			fh, err := cat.AddField(sh, f.Name)
			if err != nil {
				return nil, err
			}

			res := classify.Classify(f.Facts)
			cat.SetFieldInfo(fh, catalog.FieldInfo{
				Type:   res.Type,
				Offset: f.Offset,
				Size:   f.Facts.Size,
				Align:  f.Align,
				Array:  res.Array,
				Flags:  res.Flags,
			})
		}
	}
	return cat, nil
}

func filterRecords(records []inspect.Record, only []string) []inspect.Record {
	if len(only) == 0 {
		return records
	}

	want := make(map[string]bool, len(only))
	for _, name := range only {
		want[name] = true
	}

	out := make([]inspect.Record, 0, len(only))
	found := map[string]bool{}
	for _, rec := range records {
		if !want[rec.Name] {
			continue
		}
		out = append(out, rec)
		found[rec.Name] = true
	}

	for _, name := range only {
		if !found[name] {
			log.Printf("gen-dna: warning: struct %q not found, skipped", name)
		}
	}
	return out
}

func logValidationFindings(cat *catalog.Catalog) {
	for _, finding := range cat.Validate() {
		log.Printf("gen-dna: warning: %s", finding)
	}
}
