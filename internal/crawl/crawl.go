// Package crawl fills a collection with records taken from a game server's
// public record pages. Every record is written twice: in full to the
// alternate tree and with its variations removed to the primary tree.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"sgfview/internal/domain"
	"sgfview/internal/eventbus"
	"sgfview/internal/sgf"
)

const maxPageBytes = 16 << 20

// DefaultRetryPause is the wait between attempts at one record page
const DefaultRetryPause = 2 * time.Second

// ErrNoRecord is returned for a record page without an embedded record
var ErrNoRecord = errors.New("no record on page")

// Options configure a crawl
type Options struct {
	ListURL    string
	RecordURL  string // %s is replaced by the record id
	UserAgent  string
	Retries    int
	RetryPause time.Duration
	Delay      time.Duration // pause after each saved record
	SaveRoot   string
	Dirs       domain.ModeDirs
	RecordExt  string
}

// Summary counts what a crawl did
type Summary struct {
	Month   string
	Found   int
	Saved   int
	Skipped int
	Failed  int
}

// Crawler downloads new records into the collection
type Crawler struct {
	opts   Options
	client *http.Client
	ledger *Ledger
	bus    eventbus.EventBus
	logger *zap.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a crawler. bus may be nil.
func New(opts Options, client *http.Client, ledger *Ledger, bus eventbus.EventBus, logger *zap.Logger) *Crawler {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Retries < 1 {
		opts.Retries = 1
	}
	if opts.RecordExt == "" {
		opts.RecordExt = ".sgf"
	}
	return &Crawler{
		opts:   opts,
		client: client,
		ledger: ledger,
		bus:    bus,
		logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Crawler) publish(e domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

// Run reads the list page and saves every record the ledger does not know
// yet. Records that cannot be fetched are counted and skipped; Run only
// fails when the list page is unreadable, the trees cannot be written or
// ctx ends.
func (c *Crawler) Run(ctx context.Context) (Summary, error) {
	sum := Summary{Month: c.now().Format("2006-01")}

	list, err := c.get(ctx, c.opts.ListURL)
	if err != nil {
		c.publish(domain.ErrorEvent{Message: "cannot read list page", Err: err})
		return sum, fmt.Errorf("read list page: %w", err)
	}
	ids := ExtractIDs(list)
	sum.Found = len(ids)
	c.logger.Info("crawl started", zap.String("month", sum.Month), zap.Int("ids", len(ids)))
	c.publish(domain.CrawlStartedEvent{Month: sum.Month, IDs: len(ids)})

	fullDir := filepath.Join(c.opts.SaveRoot, c.opts.Dirs.Alternate, sum.Month)
	mainDir := filepath.Join(c.opts.SaveRoot, c.opts.Dirs.Primary, sum.Month)
	for _, dir := range []string{fullDir, mainDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return sum, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		done, err := c.ledger.Downloaded(ctx, id)
		if err != nil {
			return sum, err
		}
		if done {
			sum.Skipped++
			c.publish(domain.RecordSkippedEvent{ID: id})
			continue
		}

		c.logger.Info("downloading", zap.String("id", id))
		record, page, err := c.fetchRecord(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			sum.Failed++
			c.logger.Warn("record failed", zap.String("id", id), zap.Error(err))
			if err := c.ledger.MarkFailed(ctx, id); err != nil {
				return sum, err
			}
			c.publish(domain.RecordFailedEvent{ID: id, Err: err})
			continue
		}

		name := Filename(ParseTitle(page, id), c.opts.RecordExt)
		if err := os.WriteFile(filepath.Join(fullDir, name), []byte(record), 0644); err != nil {
			return sum, fmt.Errorf("write %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(mainDir, name), []byte(sgf.StripVariations(record)), 0644); err != nil {
			return sum, fmt.Errorf("write %s: %w", name, err)
		}
		if err := c.ledger.MarkDownloaded(ctx, id); err != nil {
			return sum, err
		}

		sum.Saved++
		c.logger.Info("record saved", zap.String("id", id), zap.String("file", name))
		c.publish(domain.RecordSavedEvent{ID: id, Filename: name, Month: sum.Month})

		if err := c.sleep(ctx, c.opts.Delay); err != nil {
			return sum, err
		}
	}

	c.logger.Info("crawl completed", zap.Int("saved", sum.Saved), zap.Int("failed", sum.Failed))
	c.publish(domain.CrawlCompletedEvent{Saved: sum.Saved, Failed: sum.Failed})
	return sum, nil
}

// fetchRecord retrieves the page of id and extracts its record, retrying
// with a pause between attempts
func (c *Crawler) fetchRecord(ctx context.Context, id string) (record, page string, err error) {
	url := strings.Replace(c.opts.RecordURL, "%s", id, 1)
	for attempt := 1; attempt <= c.opts.Retries; attempt++ {
		page, err = c.get(ctx, url)
		if err == nil {
			var ok bool
			if record, ok = ExtractRecord(page); ok {
				return record, page, nil
			}
			err = ErrNoRecord
		}

		c.logger.Debug("retrying record",
			zap.String("id", id),
			zap.Int("attempt", attempt),
			zap.Int("retries", c.opts.Retries),
			zap.Error(err))
		if attempt < c.opts.Retries {
			if serr := c.sleep(ctx, c.opts.RetryPause); serr != nil {
				return "", "", serr
			}
		}
	}
	return "", "", err
}

func (c *Crawler) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if c.opts.UserAgent != "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(body), nil
}
