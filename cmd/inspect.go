package cmd

import (
	"fmt"

	"github.com/intelligrit/listnorm/internal/reconcile"
	"github.com/intelligrit/listnorm/internal/table"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.csv>",
	Short: "Show how a raw file's columns would map onto the canonical schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := table.ReadFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Raw columns (%d):\n", len(t.Headers))
		for i, h := range t.Headers {
			fmt.Printf("  %2d. %q\n", i+1, h)
		}

		rec := reconcile.New(reconcile.DefaultConfig())
		bindings := rec.Mapping(t)

		fmt.Printf("\nBindings (%d):\n", len(bindings))
		bySource := make(map[string]bool)
		for _, b := range bindings {
			fmt.Printf("  %-16s <- %q\n", b.Field, b.Source)
			bySource[b.Source] = true
		}

		var unclaimed []string
		for _, h := range t.Headers {
			if !bySource[h] {
				unclaimed = append(unclaimed, h)
			}
		}
		if len(unclaimed) > 0 {
			fmt.Printf("\nUnclaimed columns (%d):\n", len(unclaimed))
			for _, h := range unclaimed {
				fmt.Printf("  %q\n", h)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
