package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cardgrift/shenzhen/engine"
	"github.com/cardgrift/shenzhen/game"
)

var playSeed int64

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a deal interactively in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := playSeed
		if seed == 0 {
			seed = engine.RandomSeed()
		}
		log.Debug().Int64("seed", seed).Msg("dealing")

		_, err := tea.NewProgram(game.NewModel(seed), tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "deal seed (0 = derive from clock)")
	rootCmd.AddCommand(playCmd)
}
