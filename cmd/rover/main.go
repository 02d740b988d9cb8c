package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tatianab/rover-rescue/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rover",
		Short: "Mars Rover Rescue - program rovers to keep Mark Watney alive",
		Long: `Mars Rover Rescue is a three-mission coding unit played alongside a real
Sphero robot. Each mission ends with the robot's run data, which is scored
and kept in a run history.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.PlayCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.PracticeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
