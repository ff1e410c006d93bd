package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/intelligrit/listnorm/internal/catalog"
	"github.com/intelligrit/listnorm/internal/enrich"
	"github.com/intelligrit/listnorm/internal/model"
	"github.com/intelligrit/listnorm/internal/pipeline"
	"github.com/intelligrit/listnorm/internal/reconcile"
	"github.com/intelligrit/listnorm/internal/refindex"
	"github.com/spf13/cobra"
)

var (
	processInput     string
	processOutput    string
	processReference string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Normalize all raw listing CSVs into the canonical schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("input") {
			processInput = cfg.Input.Dir
		}
		if !cmd.Flags().Changed("output") {
			processOutput = cfg.Output.Dir
		}
		if !cmd.Flags().Changed("reference") {
			processReference = cfg.Reference.Path
		}

		idx, err := refindex.Build(processReference)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: reference table unavailable (%v); enrichment degraded\n", err)
		}
		logVerbose("reference index: %d pincodes", idx.Size())

		files, err := pipeline.Discover(processInput)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no CSV files found in %s", processInput)
		}

		// The catalog is observability only; never let it block processing.
		var runID int64
		cat, catErr := catalog.New(dataDir)
		if catErr != nil {
			fmt.Fprintf(os.Stderr, "WARNING: run catalog unavailable: %v\n", catErr)
			cat = nil
		} else {
			defer cat.Close()
			if runID, err = cat.BeginRun(processInput); err != nil {
				fmt.Fprintf(os.Stderr, "WARNING: %v\n", err)
				cat = nil
			}
		}

		reconcileCfg := reconcile.DefaultConfig()
		if cfg.Defaults.Country != "" {
			reconcileCfg.Country = cfg.Defaults.Country
		}
		rec := reconcile.New(reconcileCfg)
		enr := enrich.New(idx)

		fmt.Printf("Processing %d files from %s...\n", len(files), processInput)

		var ok, failed int
		for i, f := range files {
			name := filepath.Base(f)
			fmt.Printf("  [%d/%d] %s...", i+1, len(files), name)

			res, err := pipeline.Process(f, processOutput, rec, enr)
			if err != nil {
				fmt.Fprintf(os.Stderr, " ERROR: %v\n", err)
				failed++
				if cat != nil {
					cat.RecordFailure(runID, name, err)
				}
				continue
			}
			ok++

			fmt.Printf(" %d rows (%d pincodes, %d coords, %d emails)\n",
				res.Rows, res.Stats.Pincodes, res.Stats.Coordinates, res.Stats.Emails)
			if res.Stats.PlusCodes > 0 {
				logVerbose("    %d plus codes flagged for manual follow-up", res.Stats.PlusCodes)
			}

			if cat != nil {
				if err := cat.RecordFile(model.FileRecord{
					RunID:       runID,
					Name:        name,
					Output:      res.Output,
					Rows:        res.Rows,
					Pincodes:    res.Stats.Pincodes,
					Cities:      res.Stats.Cities,
					States:      res.Stats.States,
					Coordinates: res.Stats.Coordinates,
					Emails:      res.Stats.Emails,
					PlusCodes:   res.Stats.PlusCodes,
				}); err != nil {
					fmt.Fprintf(os.Stderr, "WARNING: %v\n", err)
				}
			}
		}

		if cat != nil {
			if err := cat.FinishRun(runID, ok, failed); err != nil {
				fmt.Fprintf(os.Stderr, "WARNING: %v\n", err)
			}
		}

		fmt.Printf("\nDone. %d processed, %d failed.\n", ok, failed)
		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&processInput, "input", "data/raw", "Directory of raw listing CSVs")
	processCmd.Flags().StringVar(&processOutput, "output", "data/processed", "Directory for normalized CSVs")
	processCmd.Flags().StringVar(&processReference, "reference", "data/reference/pincodes.csv", "Pincode reference CSV")
	rootCmd.AddCommand(processCmd)
}
