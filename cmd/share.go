package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/mixle/internal/daily"
	"github.com/robalobadob/mixle/internal/game"
)

func (c *cli) shareCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print the share text for today (or --date)",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := daily.DayKey(now())
			if date != "" {
				k, err := daily.ParseDate(date)
				if err != nil {
					return err
				}
				key = k
			}

			h, b, err := c.loadHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			e, ok := h.Find(key)
			if !ok {
				return fmt.Errorf("no game recorded on %s", daily.DateKey(daily.FromKey(key)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), game.ShareText(c.cfg.ShareHost, e))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to share, YYYY-MM-DD (UTC)")
	return cmd
}
