// newshound/services/collector/collector.go
package collector

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"newshound/newshound/config"
	"newshound/newshound/utils/types"

	"go.uber.org/zap"
)

// Collector sequences one crawl run: open site, search, sort, filter,
// paginate, finalize. All renderer interaction is serialized on the
// caller's goroutine because every step depends on the DOM state the
// previous step left behind.
type Collector struct {
	renderer     Renderer
	sinks        []Sink
	blobs        BlobStore
	sel          config.Selectors
	siteURL      string
	outputDir    string
	faultCeiling int
	waitTimeout  time.Duration
	now          func() time.Time
	onProgress   func(types.ProgressEvent)
	log          *zap.Logger
}

type Options struct {
	Renderer       Renderer
	Sinks          []Sink
	Blobs          BlobStore
	Selectors      config.Selectors
	SiteURL        string
	OutputDir      string
	FaultTolerance int
	WaitTimeout    time.Duration
	Now            func() time.Time // test override
	OnProgress     func(types.ProgressEvent)
	Logger         *zap.Logger
}

func New(opts Options) *Collector {
	if opts.FaultTolerance <= 0 {
		opts.FaultTolerance = 10
	}
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = 10 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "output"
	}
	return &Collector{
		renderer:     opts.Renderer,
		sinks:        opts.Sinks,
		blobs:        opts.Blobs,
		sel:          opts.Selectors,
		siteURL:      opts.SiteURL,
		outputDir:    opts.OutputDir,
		faultCeiling: opts.FaultTolerance,
		waitTimeout:  opts.WaitTimeout,
		now:          opts.Now,
		onProgress:   opts.OnProgress,
		log:          opts.Logger,
	}
}

// Collect runs the whole crawl. Setup-phase failures (open, search,
// sort) are the only errors surfaced; everything inside the crawl loop
// degrades per-field or per-node instead. The diagnostic screenshot is
// attempted regardless of outcome, and partial results are flushed even
// when the run stops early.
func (c *Collector) Collect(ctx context.Context, runID string, session types.SearchSession) (types.CrawlSummary, error) {
	sum := types.CrawlSummary{RunID: runID, StopReason: "completed"}

	if strings.TrimSpace(session.Phrase) == "" {
		sum.StopReason = "no search phrase"
		return sum, nil
	}

	defer c.flushAll()
	defer c.snapshot("listing.png")

	if err := c.openSite(); err != nil {
		c.snapshot("open_website_exception.png")
		sum.StopReason = "open site failed"
		return sum, fmt.Errorf("open site: %w", err)
	}

	if err := c.searchNews(session.Phrase); err != nil {
		c.snapshot("search_news_exception.png")
		sum.StopReason = "search failed"
		return sum, fmt.Errorf("search news: %w", err)
	}

	if err := c.filterNews(session); err != nil {
		c.snapshot("filter_news_exception.png")
		sum.StopReason = "filter failed"
		return sum, fmt.Errorf("filter news: %w", err)
	}

	c.crawlPages(ctx, session, &sum)

	c.emit(types.ProgressEvent{RunID: runID, Phase: "done", Accepted: sum.Accepted})
	c.log.Info("crawl finished",
		zap.String("run_id", runID),
		zap.Int("accepted", sum.Accepted),
		zap.Int("pages", sum.PagesScanned),
		zap.String("stop_reason", sum.StopReason))
	return sum, nil
}

// openSite navigates to the listing and dismisses the cookie consent
// overlay when present. A missing consent button is not an error.
func (c *Collector) openSite() error {
	c.emit(types.ProgressEvent{Phase: "open"})
	if err := c.renderer.LoadPage(c.siteURL); err != nil {
		return err
	}
	if node, err := c.renderer.FindOne(nil, c.sel.ConsentAccept); err == nil {
		if err := c.renderer.Click(node); err != nil {
			c.log.Warn("consent dismissal failed", zap.Error(err))
		}
	}
	return nil
}

func (c *Collector) searchNews(phrase string) error {
	c.emit(types.ProgressEvent{Phase: "search"})
	if err := c.renderer.ClickSelector(c.sel.SearchButton); err != nil {
		return fmt.Errorf("open search overlay (%s): %w", c.sel.SearchButton, err)
	}
	if err := c.renderer.TypeText(c.sel.SearchInput, phrase); err != nil {
		return fmt.Errorf("type phrase (%s): %w", c.sel.SearchInput, err)
	}
	if err := c.renderer.ClickSelector(c.sel.SearchSubmit); err != nil {
		return fmt.Errorf("submit search (%s): %w", c.sel.SearchSubmit, err)
	}
	return nil
}

// filterNews applies the sort order, then negotiates the category
// facets. A failing sort is a setup failure; unmatched categories are
// dropped silently per the best-effort contract.
func (c *Collector) filterNews(session types.SearchSession) error {
	c.emit(types.ProgressEvent{Phase: "filter"})
	if session.SortBy != "" {
		if err := c.renderer.SelectOption(c.sel.SortSelect, session.SortBy); err != nil {
			return fmt.Errorf("apply sort %q (%s): %w", session.SortBy, c.sel.SortSelect, err)
		}
	}
	pending := session.CategorySet()
	if len(pending) == 0 {
		return nil
	}
	applied := c.applyCategories(pending)
	c.log.Info("categories applied",
		zap.Int("applied", applied),
		zap.Int("unmatched", len(pending)))
	return nil
}

func (c *Collector) persist(ctx context.Context, rec types.Record) {
	for _, sink := range c.sinks {
		if err := sink.AppendRecord(ctx, rec); err != nil {
			c.log.Error("sink append failed", zap.String("title", rec.Title), zap.Error(err))
		}
	}
}

func (c *Collector) flushAll() {
	for _, sink := range c.sinks {
		if err := sink.Flush(); err != nil {
			c.log.Error("sink flush failed", zap.Error(err))
		}
	}
}

// snapshot captures a diagnostic screenshot on a best-effort basis; its
// own failure is swallowed.
func (c *Collector) snapshot(name string) {
	if err := c.renderer.CaptureScreenshot(filepath.Join(c.outputDir, name)); err != nil {
		c.log.Warn("screenshot failed", zap.String("name", name), zap.Error(err))
	}
}

func (c *Collector) emit(ev types.ProgressEvent) {
	if c.onProgress != nil {
		c.onProgress(ev)
	}
}
