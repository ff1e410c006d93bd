package cmd

import (
	"fmt"

	"github.com/intelligrit/listnorm/internal/catalog"
	"github.com/spf13/cobra"
)

var statusRecent int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show processing history from the run catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.New(dataDir)
		if err != nil {
			return err
		}
		defer cat.Close()

		sum := cat.ReadSummary()

		fmt.Printf("Catalog Status\n")
		fmt.Printf("==============\n")
		fmt.Printf("Runs:            %d\n", sum.Runs)
		fmt.Printf("Files processed: %d\n", sum.Files)
		fmt.Printf("Rows normalized: %d\n", sum.Rows)
		fmt.Printf("Failures:        %d\n", sum.Failures)

		files, err := cat.RecentFiles(statusRecent)
		if err != nil {
			return err
		}
		if len(files) > 0 {
			fmt.Printf("\nRecent Files\n")
			fmt.Printf("------------\n")
			for _, f := range files {
				if f.Error != "" {
					fmt.Printf("  %-30s FAILED: %s\n", f.Name, f.Error)
					continue
				}
				fmt.Printf("  %-30s rows: %5d  pincodes: %4d  coords: %4d  emails: %4d\n",
					f.Name, f.Rows, f.Pincodes, f.Coordinates, f.Emails)
			}
		}

		return nil
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusRecent, "recent", 10, "How many recent files to list")
	rootCmd.AddCommand(statusCmd)
}
