package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, store, err := openStore()
		if err != nil {
			return err
		}

		stats, err := store.Stats()
		if err != nil {
			return fmt.Errorf("failed to read stats: %w", err)
		}

		fmt.Println(renderTable(
			[]string{"Entity", "Count"},
			[][]string{
				{"Platforms", fmt.Sprint(stats.Platforms)},
				{"Companies", fmt.Sprint(stats.Companies)},
				{"Works", fmt.Sprint(stats.Works)},
				{"Releases", fmt.Sprint(stats.Releases)},
				{"Media", fmt.Sprint(stats.Media)},
				{"Overrides", fmt.Sprint(stats.Overrides)},
				{"Disagreements", fmt.Sprint(stats.Disagreements)},
				{"Unresolved disagreements", fmt.Sprint(stats.Unresolved)},
				{"Import logs", fmt.Sprint(stats.ImportLogs)},
			},
			[]columnAlignment{alignLeft, alignRight},
		))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(statsCmd)
}
