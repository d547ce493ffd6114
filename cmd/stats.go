package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/mixle/internal/stats"
)

func (c *cli) statsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show play statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, b, err := c.loadHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			st := stats.Compute(h.Entries())
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}

			fmt.Fprintf(out, "Played          %d\n", st.PlayedCount)
			fmt.Fprintf(out, "Win %%           %d\n", st.WonPercent)
			fmt.Fprintf(out, "Current streak  %d\n", st.TodayStreak)
			fmt.Fprintf(out, "Longest streak  %d\n", st.LongestStreak)
			fmt.Fprintf(out, "Average guesses %.1f\n", st.AverageGuesses)
			fmt.Fprintln(out, "Guess distribution")
			for i, n := range st.BreakDown {
				fmt.Fprintf(out, "  %d %s %d\n", i+1, strings.Repeat("#", n), n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print statistics as JSON")
	return cmd
}
