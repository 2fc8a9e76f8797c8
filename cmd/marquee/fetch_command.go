package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"marquee/internal/textutil"
)

func newFetchCommand(cmdCtx *commandContext) *cobra.Command {
	var asJSON bool
	var refresh bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and print the current schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := cmdCtx.newPipeline()
			if err != nil {
				return err
			}
			defer p.Close()

			schedule := p.Schedule
			if refresh {
				schedule = p.Refresh
			}
			movies, err := schedule(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(movies)
			}

			rows := make([][]string, 0, len(movies))
			showtimes := 0
			for _, movie := range movies {
				title := textutil.DisplayTitle(movie.Title)
				for _, st := range movie.Showtimes {
					rows = append(rows, []string{
						title,
						st.FormattedDate,
						st.FormattedTime,
						yesNo(st.SoldOut),
					})
					showtimes++
				}
				if len(movie.Showtimes) == 0 {
					rows = append(rows, []string{title, "-", "-", "-"})
				}
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Title", "Date", "Time", "Sold Out"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%s movies, %s showtimes\n",
				strconv.Itoa(len(movies)), strconv.Itoa(showtimes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the schedule as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the snapshot cache")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
