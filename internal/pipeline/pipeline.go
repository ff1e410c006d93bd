// Package pipeline orchestrates one file's transform: read, reconcile,
// enrich, write. Files are independent; a failure in one never corrupts
// another's output.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/intelligrit/listnorm/internal/enrich"
	"github.com/intelligrit/listnorm/internal/reconcile"
	"github.com/intelligrit/listnorm/internal/table"
)

// Result summarizes one processed file.
type Result struct {
	Input  string
	Output string
	Rows   int
	Stats  enrich.Stats
}

// Discover returns the CSV files directly under dir, sorted by name.
// An empty result is the caller's "nothing to process" condition.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// OutputName derives the output path for an input file: the input's stem
// plus a _cleaned suffix, under outputDir.
func OutputName(outputDir, inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+"_cleaned.csv")
}

// Process transforms one input file and writes the normalized CSV.
func Process(inputPath, outputDir string, rec *reconcile.Reconciler, enr *enrich.Enricher) (*Result, error) {
	t, err := table.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}

	rows := rec.Reconcile(t)

	var stats enrich.Stats
	for _, row := range rows {
		stats.Add(enr.Enrich(row))
	}

	fields := rec.Fields()
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = row.Values(fields)
	}

	out := OutputName(outputDir, inputPath)
	if err := table.WriteFile(out, fields, records); err != nil {
		return nil, err
	}

	return &Result{
		Input:  inputPath,
		Output: out,
		Rows:   len(rows),
		Stats:  stats,
	}, nil
}
