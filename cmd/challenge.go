package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/mixle/internal/daily"
	"github.com/robalobadob/mixle/internal/paint"
)

// challengeCmd reveals a past day's challenge. It never opens storage.
func (c *cli) challengeCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Reveal a past day's challenge (default yesterday)",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := daily.DayKey(now())
			key := today - daily.OneDay
			if date != "" {
				k, err := daily.ParseDate(date)
				if err != nil {
					return err
				}
				key = k
			}
			if key >= today {
				return errors.New("only past challenges can be revealed")
			}

			ch := daily.Generate(key)
			names := make([]string, 0, len(ch.Composition))
			for _, part := range ch.Composition {
				if b, ok := paint.BaseOf(part); ok {
					names = append(names, b.Name)
				} else {
					names = append(names, part.Hex())
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s #%s %s\n", daily.DateKey(daily.FromKey(key)), ch.Hex(), ch.RGBString())
			fmt.Fprintln(out, strings.Join(names, " "))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to reveal, YYYY-MM-DD (UTC)")
	return cmd
}
