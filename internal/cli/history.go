package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tatianab/rover-rescue/internal/config"
	"github.com/tatianab/rover-rescue/internal/history"
	"github.com/tatianab/rover-rescue/internal/models"
)

func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded robot runs",
		Long:  "Show every recorded robot run per mission, with statistics comparing the runs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mission, _ := cmd.Flags().GetInt("mission")

			missions := models.Missions
			if mission != 0 {
				id := models.MissionID(mission)
				if !id.Valid() {
					return fmt.Errorf("invalid mission %d\nValid missions: 1, 2, 3", mission)
				}
				missions = []models.MissionID{id}
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			store, closeStore := openHistory(cfg, cmd.ErrOrStderr())
			defer closeStore()

			printHistory(cmd.OutOrStdout(), store, missions)
			return nil
		},
	}
	cmd.Flags().IntP("mission", "m", 0, "show only this mission (1-3)")
	cmd.AddCommand(historyClearCmd())
	return cmd
}

func historyClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase every recorded run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return fmt.Errorf("this erases every recorded run for every mission\nHint: run again with --yes to confirm")
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			store, closeStore := openHistory(cfg, cmd.ErrOrStderr())
			defer closeStore()

			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "🗑️  Run history cleared.")
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "confirm erasing the history")
	return cmd
}

func printHistory(out io.Writer, store *history.Store, missions []models.MissionID) {
	heading := color.New(color.FgHiRed, color.Bold)
	dim := color.New(color.FgHiBlack)

	for _, m := range missions {
		recs := store.Runs(m)
		heading.Fprintf(out, "MISSION %d: %s\n", int(m), strings.ToUpper(m.String()))
		if len(recs) == 0 {
			dim.Fprintln(out, "  No runs recorded yet.")
			fmt.Fprintln(out)
			continue
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  "+strings.Join(history.Columns(m), "\t"))
		for _, r := range recs {
			fmt.Fprintln(w, "  "+strings.Join(history.Row(r), "\t"))
		}
		w.Flush()

		for _, line := range history.Comparison(m, recs) {
			fmt.Fprintln(out, "  "+line)
		}
		fmt.Fprintln(out)
	}
	color.New(color.Bold).Fprintln(out, history.Totals(store.Snapshot()))
}
