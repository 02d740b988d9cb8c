package cli

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tatianab/rover-rescue/internal/coach"
	"github.com/tatianab/rover-rescue/internal/config"
	"github.com/tatianab/rover-rescue/internal/engine"
	"github.com/tatianab/rover-rescue/internal/models"
	"github.com/tatianab/rover-rescue/internal/tui"
)

func PlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the three rover missions",
		Long: `Play Mars Rover Rescue in the terminal.

A classroom session can start partway through the unit: --mission 2 unlocks
mission 2 and brings the rover's comms online.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mission, _ := cmd.Flags().GetInt("mission")
			name, _ := cmd.Flags().GetString("name")

			id := models.MissionID(mission)
			if !id.Valid() {
				return fmt.Errorf("invalid mission %d\nValid missions: 1, 2, 3", mission)
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			f, err := tea.LogToFile(cfg.LogFile, "rover")
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()

			store, closeStore := openHistory(cfg, cmd.ErrOrStderr())
			defer closeStore()

			var opts []engine.Option
			if name = strings.TrimSpace(name); name != "" || id != models.MissionSurvey {
				opts = append(opts, engine.WithPlayer(models.PlayerForMission(name, id)))
			}
			eng, err := engine.New(store, opts...)
			if err != nil {
				return fmt.Errorf("failed to load missions: %w", err)
			}

			tuiOpts := tui.Options{TypingSpeed: cfg.TypingSpeed}
			if cfg.CoachEnabled() {
				c, err := coach.New(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiModel)
				if err != nil {
					log.Printf("coach: %v", err)
				} else {
					defer c.Close()
					tuiOpts.Coach = c
				}
			}
			return tui.Run(eng, tuiOpts)
		},
	}
	cmd.Flags().IntP("mission", "m", 1, "unlock missions up to this one (classroom start)")
	cmd.Flags().StringP("name", "n", "", "engineer name (skips the name prompt)")
	return cmd
}
