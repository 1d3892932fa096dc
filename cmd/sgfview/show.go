package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"sgfview/internal/board"
	"sgfview/internal/domain"
	"sgfview/internal/navigator"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var alternate bool
	var move, width int

	cmd := &cobra.Command{
		Use:   "show <month> <record>",
		Short: "Print the board of a record",
		Long:  `Print the position of a record after a move; the final position by default.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			player := board.NewPlayer()
			ctrl := navigator.New(navConfig(cfg), openSource(), player, logger)
			if alternate {
				ctrl.SetMode(domain.Alternate)
			}

			// The month listing is not needed to open a known record
			ctrl.SelectMonth(args[0])
			if err := ctrl.Run(cmd.Context(), ctrl.OpenFile(args[1])); err != nil {
				return fmt.Errorf("%s: %w", ctrl.State().Alert, err)
			}
			if err := player.Err(); err != nil {
				return err
			}

			player.SetSize(width, 0)
			if move < 0 {
				move = player.Steps()
			}
			player.Seek(move)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, lipgloss.NewStyle().Bold(true).Render(ctrl.State().Title))
			fmt.Fprintln(out, player.View())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&alternate, "alternate", "a", false, "read the variation tree instead of the main-line tree")
	cmd.Flags().IntVarP(&move, "move", "m", -1, "show the position after this many moves")
	cmd.Flags().IntVarP(&width, "width", "w", 80, "terminal width to fit the board into")

	return cmd
}
