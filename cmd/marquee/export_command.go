package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newExportCommand(cmdCtx *commandContext) *cobra.Command {
	var all bool
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export [title ...]",
		Short: "Export selected movies as an iCalendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("name at least one movie title or pass --all")
			}

			p, _, err := cmdCtx.newPipeline()
			if err != nil {
				return err
			}
			defer p.Close()

			selected := args
			if all {
				movies, err := p.Schedule(cmd.Context())
				if err != nil {
					return err
				}
				selected = make([]string, 0, len(movies))
				for _, movie := range movies {
					selected = append(selected, movie.ID)
				}
			}

			filename, body, err := p.ExportCalendar(cmd.Context(), selected)
			if err != nil {
				return err
			}

			target := filepath.Join(outputDir, filename)
			if err := os.WriteFile(target, []byte(body), 0o644); err != nil {
				return fmt.Errorf("write calendar file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Export every movie on the schedule")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory for the exported file")
	return cmd
}
