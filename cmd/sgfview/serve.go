package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sgfview/internal/serve"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var addr, root string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Publish a local collection over HTTP",
		Long: `Serve a local collection tree with directory index pages, so that
sgfview can browse it from another machine with --base http://host:port.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.Serve.Addr
			}
			if root == "" {
				root = cfg.Serve.Root
			}
			if _, err := os.Stat(root); err != nil {
				return fmt.Errorf("collection root: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			fmt.Fprintf(cmd.OutOrStdout(), "serving %s on http://%s/\n", root, addr)
			return serve.Run(ctx, addr, serve.Handler(root, cfg.RecordExt, logger), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&root, "root", "", "collection directory to serve (default from config)")

	return cmd
}
