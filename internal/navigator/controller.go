// Package navigator holds the browse state machine: which month and record
// are selected under which mode, and what each display surface shows.
//
// Operations never block. Anything that needs the network comes back as an
// Effect; the caller performs it (Perform) and hands the Outcome to Apply,
// which may in turn return the next Effect. Every effect carries a token and
// outcomes whose token is no longer the latest for their region are dropped,
// so a slow response for an abandoned month cannot overwrite newer state.
package navigator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"sgfview/internal/domain"
	"sgfview/internal/listing"
	"sgfview/internal/source"
)

// Renderer is the board widget the selected record is handed to. Reset
// replaces whatever it showed before; malformed records are its concern.
type Renderer interface {
	Reset(record string, opts domain.DisplayOptions)
}

// Config fixes the collection layout the controller browses
type Config struct {
	Base      string
	Dirs      domain.ModeDirs
	RecordExt string
	Display   domain.DisplayOptions
}

// Controller owns the browse state. It is not safe for concurrent use; the
// UI loop is its only caller. Perform is the exception and may run anywhere.
type Controller struct {
	cfg      Config
	src      *source.Source
	renderer Renderer
	logger   *zap.Logger

	state  State
	tokens [regionCount]uint64
	listed bool // Files holds a successful listing of the active month
}

// New creates a controller in the Idle phase
func New(cfg Config, src *source.Source, renderer Renderer, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		cfg:      cfg,
		src:      src,
		renderer: renderer,
		logger:   logger,
	}
	c.state.ModeLabel = c.modeLabel()
	return c
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	return c.state.clone()
}

// Initialize discovers the months of the primary tree
func (c *Controller) Initialize() Effect {
	// Nothing issued before now is still wanted
	for r := range c.tokens {
		c.tokens[r]++
	}
	c.state.Phase = MonthsLoading
	c.state.Month = ""
	c.state.File = ""
	c.state.Months = nil
	c.state.MonthsMessage = LoadingMessage
	// The cached records belong to a month that is no longer selected
	c.listed = false
	c.state.Files = nil
	c.state.Visible = nil
	c.state.FilesMessage = ""
	return ListMonths{
		Token: c.tokens[RegionMonths],
		URL:   source.Dir(c.cfg.Base, c.cfg.Dirs.Dir(domain.Primary)),
	}
}

// SelectMonth makes month active and lists its records under the current mode
func (c *Controller) SelectMonth(month string) Effect {
	c.state.File = ""
	c.state.Month = month
	// A record still loading for the previous month must not land
	c.tokens[RegionRecord]++
	return c.refreshFiles()
}

// refreshFiles re-lists the active month
func (c *Controller) refreshFiles() Effect {
	if c.state.Month == "" {
		return nil
	}
	c.tokens[RegionFiles]++
	c.listed = false
	c.state.Phase = FilesLoading
	c.state.FilesMessage = LoadingMessage
	return ListFiles{
		Token: c.tokens[RegionFiles],
		URL:   source.Dir(c.cfg.Base, c.cfg.Dirs.Dir(c.state.Mode), c.state.Month),
		Month: c.state.Month,
	}
}

// SetMode switches tree. An open record is reopened under the new mode;
// otherwise the active month is re-listed.
func (c *Controller) SetMode(mode domain.Mode) Effect {
	c.state.Mode = mode
	c.state.ModeLabel = c.modeLabel()
	c.logger.Debug("mode changed", zap.Stringer("mode", mode))

	if c.state.File != "" {
		return c.OpenFile(c.state.File)
	}
	return c.refreshFiles()
}

// ToggleMode flips between the primary and alternate trees
func (c *Controller) ToggleMode() Effect {
	return c.SetMode(c.state.Mode.Other())
}

// FilterFiles narrows the visible file list to names containing query,
// ignoring case. The file selection is left alone even when it is filtered
// out of view.
func (c *Controller) FilterFiles(query string) {
	c.state.Query = query
	if !c.listed {
		// Keep the loading or error message in place
		return
	}
	c.applyFilter()
}

func (c *Controller) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(c.state.Query))
	visible := make([]string, 0, len(c.state.Files))
	for _, f := range c.state.Files {
		if strings.Contains(strings.ToLower(listing.DisplayName(f)), q) {
			visible = append(visible, f)
		}
	}
	c.state.Visible = visible
	if len(visible) == 0 {
		c.state.FilesMessage = EmptyFilesMessage
	} else {
		c.state.FilesMessage = ""
	}
}

// OpenFile selects file and fetches its text
func (c *Controller) OpenFile(file string) Effect {
	if c.state.Month == "" {
		return nil
	}
	c.state.File = file
	c.state.Phase = RecordLoading
	c.tokens[RegionRecord]++
	return FetchRecord{
		Token: c.tokens[RegionRecord],
		URL:   source.Join(c.cfg.Base, c.cfg.Dirs.Dir(c.state.Mode), c.state.Month, file),
		File:  file,
	}
}

// DismissAlert clears the blocking notification
func (c *Controller) DismissAlert() {
	c.state.Alert = ""
}

// Current reports whether token is still the latest issued for region
func (c *Controller) Current(region Region, token uint64) bool {
	return c.tokens[region] == token
}

// Apply folds the outcome of an effect into the state and returns the
// follow-up effect, if any. Stale outcomes change nothing.
func (c *Controller) Apply(o Outcome) Effect {
	switch o := o.(type) {
	case MonthsListed:
		if !c.Current(RegionMonths, o.Token) {
			c.logger.Debug("dropping stale month listing", zap.String("url", o.URL))
			return nil
		}
		return c.monthsListed(o)
	case FilesListed:
		if !c.Current(RegionFiles, o.Token) {
			c.logger.Debug("dropping stale file listing", zap.String("url", o.URL))
			return nil
		}
		return c.filesListed(o)
	case RecordFetched:
		if !c.Current(RegionRecord, o.Token) {
			c.logger.Debug("dropping stale record", zap.String("url", o.URL))
			return nil
		}
		c.recordFetched(o)
		return nil
	}
	return nil
}

func (c *Controller) monthsListed(o MonthsListed) Effect {
	if o.Err != nil {
		c.logger.Warn("month listing failed", zap.String("url", o.URL), zap.Error(o.Err))
		c.state.Phase = Error
		c.state.Months = nil
		c.state.MonthsMessage = unreadableDirectory(o.URL)
		return nil
	}

	months := listing.Folders(o.Entries)
	// Month names are opaque; newest first only holds for names that sort
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	c.state.Phase = MonthsReady
	c.state.Months = months
	c.state.MonthsMessage = ""
	c.state.MonthHint = fmt.Sprintf("%d months", len(months))
	if len(months) == 0 {
		return nil
	}
	return c.SelectMonth(months[0])
}

func (c *Controller) filesListed(o FilesListed) Effect {
	if o.Err != nil {
		c.logger.Warn("file listing failed", zap.String("url", o.URL), zap.Error(o.Err))
		c.state.Phase = Error
		c.listed = false
		c.state.Files = nil
		c.state.Visible = nil
		c.state.FilesMessage = unreadableDirectory(o.URL)
		return nil
	}

	c.state.Phase = FilesReady
	c.listed = true
	c.state.Files = listing.WithExt(o.Entries, c.cfg.RecordExt)
	c.applyFilter()
	if len(c.state.Files) == 0 {
		return nil
	}
	// Resolver order, not the filtered view
	return c.OpenFile(c.state.Files[0])
}

func (c *Controller) recordFetched(o RecordFetched) {
	if o.Err != nil {
		c.logger.Warn("record fetch failed", zap.String("url", o.URL), zap.Error(o.Err))
		c.state.Phase = Error
		c.state.Alert = "cannot load record: " + o.URL
		return
	}

	if c.renderer != nil {
		c.renderer.Reset(o.Text, c.cfg.Display)
	}
	c.state.Phase = RecordReady
	c.state.Record = o.Text
	c.state.RecordURL = o.URL
	c.state.Title = fmt.Sprintf("[%s] %s", c.cfg.Dirs.Label(c.state.Mode), listing.DisplayName(o.File))
}

func (c *Controller) modeLabel() string {
	return "mode: " + c.cfg.Dirs.Dir(c.state.Mode)
}

func unreadableDirectory(url string) string {
	return "cannot read directory: " + url
}

// Perform runs e against the collection source. It reads no controller
// state and is safe to call from any goroutine.
func (c *Controller) Perform(ctx context.Context, e Effect) Outcome {
	switch e := e.(type) {
	case ListMonths:
		entries, err := c.src.Resolver.ListEntries(ctx, e.URL)
		return MonthsListed{Token: e.Token, URL: e.URL, Entries: entries, Err: err}
	case ListFiles:
		entries, err := c.src.Resolver.ListEntries(ctx, e.URL)
		return FilesListed{Token: e.Token, URL: e.URL, Entries: entries, Err: err}
	case FetchRecord:
		text, err := c.src.Fetcher.FetchRecord(ctx, e.URL)
		return RecordFetched{Token: e.Token, URL: e.URL, File: e.File, Text: text, Err: err}
	}
	return nil
}

// Run performs e and every effect that follows from it, in order. It
// returns the error of the step that ended the chain, if that step failed.
func (c *Controller) Run(ctx context.Context, e Effect) error {
	for e != nil {
		o := c.Perform(ctx, e)
		if o == nil {
			return nil
		}
		e = c.Apply(o)
		if err := outcomeErr(o); err != nil {
			return err
		}
	}
	return nil
}

func outcomeErr(o Outcome) error {
	switch o := o.(type) {
	case MonthsListed:
		return o.Err
	case FilesListed:
		return o.Err
	case RecordFetched:
		return o.Err
	}
	return nil
}
