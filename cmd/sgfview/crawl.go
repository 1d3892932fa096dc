package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sgfview/internal/crawl"
	"sgfview/internal/eventbus"
)

// NewCrawlCmd creates the crawl command
func NewCrawlCmd() *cobra.Command {
	var saveRoot, dbPath string

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Download new records into the collection",
		Long: `Read the record list page, download every record not downloaded before
and store it twice under the save root: in full in the variation tree and
with its variations removed in the main-line tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if saveRoot == "" {
				saveRoot = cfg.Crawl.SaveRoot
			}
			if dbPath == "" {
				dbPath = cfg.Crawl.DBPath
			}

			ledger, err := crawl.OpenLedger(dbPath)
			if err != nil {
				return err
			}
			defer ledger.Close()

			out := cmd.OutOrStdout()
			bus := eventbus.New(logger)
			defer bus.Close()
			bus.Subscribe(eventbus.EventRecordSaved, func(e eventbus.DomainEvent) {
				if ev, ok := e.(eventbus.RecordSavedEvent); ok {
					fmt.Fprintf(out, "saved  %s/%s\n", ev.Month, ev.Filename)
				}
			})
			bus.Subscribe(eventbus.EventRecordFailed, func(e eventbus.DomainEvent) {
				if ev, ok := e.(eventbus.RecordFailedEvent); ok {
					fmt.Fprintf(out, "failed %s: %v\n", ev.ID, ev.Err)
				}
			})

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			crawler := crawl.New(crawl.Options{
				ListURL:    cfg.Crawl.ListURL,
				RecordURL:  cfg.Crawl.RecordURL,
				UserAgent:  cfg.Crawl.UserAgent,
				Retries:    cfg.Crawl.Retries,
				RetryPause: crawl.DefaultRetryPause,
				Delay:      cfg.Crawl.Delay.Duration,
				SaveRoot:   saveRoot,
				Dirs:       cfg.Modes,
				RecordExt:  cfg.RecordExt,
			}, &http.Client{Timeout: cfg.Crawl.Timeout.Duration}, ledger, bus, logger)

			sum, err := crawler.Run(ctx)
			// Flush the progress lines before the summary
			bus.Close()
			if err != nil {
				logger.Error("crawl failed", zap.Error(err))
				return err
			}

			fmt.Fprintf(out, "%s: %d found, %d saved, %d already known, %d failed\n",
				sum.Month, sum.Found, sum.Saved, sum.Skipped, sum.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&saveRoot, "save-root", "", "directory receiving both record trees (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "download ledger database (default from config)")

	return cmd
}
