package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sgfview/internal/domain"
	"sgfview/internal/listing"
	"sgfview/internal/navigator"
)

// NewLsCmd creates the ls command
func NewLsCmd() *cobra.Command {
	var alternate bool
	var filter string

	cmd := &cobra.Command{
		Use:   "ls [month]",
		Short: "List the months of the collection or the records of a month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := navigator.New(navConfig(cfg), openSource(), nil, logger)
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				if err := step(ctx, ctrl, ctrl.Initialize()); err != nil {
					return err
				}
				s := ctrl.State()
				for _, m := range s.Months {
					fmt.Fprintln(out, m)
				}
				return nil
			}

			if alternate {
				ctrl.SetMode(domain.Alternate)
			}
			if err := step(ctx, ctrl, ctrl.SelectMonth(args[0])); err != nil {
				return err
			}
			ctrl.FilterFiles(filter)
			for _, f := range ctrl.State().Visible {
				fmt.Fprintln(out, listing.DisplayName(f))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&alternate, "alternate", "a", false, "list the variation tree instead of the main-line tree")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only list records whose name contains this text")

	return cmd
}

// step performs a single effect and reports a failed listing as an error.
// Follow-up effects, such as opening the first record, are not run.
func step(ctx context.Context, ctrl *navigator.Controller, e navigator.Effect) error {
	if e == nil {
		return nil
	}
	ctrl.Apply(ctrl.Perform(ctx, e))
	s := ctrl.State()
	if s.Phase != navigator.Error {
		return nil
	}
	switch e.Region() {
	case navigator.RegionMonths:
		return errors.New(s.MonthsMessage)
	case navigator.RegionFiles:
		return errors.New(s.FilesMessage)
	}
	return errors.New(s.Alert)
}
