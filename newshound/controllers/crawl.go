// newshound/controllers/crawl.go
package controllers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"newshound/newshound/config"
	"newshound/newshound/services/collector"
	"newshound/newshound/services/renderer"
	"newshound/newshound/sources/output"
	"newshound/newshound/sources/psql"
	"newshound/newshound/sources/psql/dao"
	"newshound/newshound/sources/storage"
	"newshound/newshound/utils/logging"
	"newshound/newshound/utils/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CrawlController owns crawl runs triggered over HTTP. Runs are
// serialized: the renderer session is a single DOM state machine and
// cannot be shared between concurrent crawls.
type CrawlController struct {
	cfg config.Config
	sel config.Selectors
	db  *psql.Database // nil when no database is configured

	blobs collector.BlobStore

	runMu sync.Mutex // one browser session at a time

	subMu sync.Mutex
	subs  map[chan types.ProgressEvent]struct{}
}

func NewCrawlController(cfg config.Config, db *psql.Database) (*CrawlController, error) {
	sel, err := config.LoadSelectors(cfg.SelectorFile)
	if err != nil {
		return nil, fmt.Errorf("load selectors: %w", err)
	}

	var blobs collector.BlobStore
	if cfg.MinIOEnabled() {
		blobs, err = storageClient(cfg)
	} else {
		blobs, err = localStore(cfg)
	}
	if err != nil {
		return nil, err
	}

	return &CrawlController{
		cfg:   cfg,
		sel:   sel,
		db:    db,
		blobs: blobs,
		subs:  map[chan types.ProgressEvent]struct{}{},
	}, nil
}

// RunCrawl executes one crawl for the request and returns its summary.
func (c *CrawlController) RunCrawl(ctx context.Context, req types.CrawlRequest) (*types.CrawlResponse, error) {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	runID := fmt.Sprintf("run-%s", uuid.New().String()[:8])
	ctx = context.WithValue(ctx, "run_id", runID)
	defer logging.LogDuration(ctx, "RunCrawl")()
	session := buildSession(req)

	if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}
	csvPath := filepath.Join(c.cfg.OutputDir, runID+".csv")
	csvSink, err := output.NewCSVSink(csvPath)
	if err != nil {
		return nil, err
	}
	defer csvSink.Close()

	sinks := []collector.Sink{csvSink}
	if c.db != nil {
		sinks = append(sinks, psql.NewNewsSink(dao.NewNewsDAO(c.db.DB), runID))
	}

	rend, err := renderer.NewPlaywright(c.cfg.Headless, time.Duration(c.cfg.RenderTimeout)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("start renderer: %w", err)
	}
	defer rend.Close()

	col := collector.New(collector.Options{
		Renderer:       rend,
		Sinks:          sinks,
		Blobs:          c.blobs,
		Selectors:      c.sel,
		SiteURL:        c.cfg.SiteURL,
		OutputDir:      c.cfg.OutputDir,
		FaultTolerance: c.cfg.FaultTolerance,
		WaitTimeout:    time.Duration(c.cfg.RenderTimeout) * time.Second,
		OnProgress:     c.broadcast,
		Logger:         logging.AppLogger,
	})

	sum, err := col.Collect(ctx, runID, session)
	if err != nil {
		c.broadcast(types.ProgressEvent{RunID: runID, Phase: "failed", Error: err.Error()})
		logging.ErrorLogger.Error("crawl failed", zap.String("run_id", runID), zap.Error(err))
		return &types.CrawlResponse{Summary: sum, CSVPath: csvPath, Message: err.Error()}, err
	}
	return &types.CrawlResponse{Summary: sum, CSVPath: csvPath, Message: "crawl completed"}, nil
}

// Subscribe registers a progress listener; the returned func must be
// called to detach it.
func (c *CrawlController) Subscribe() (chan types.ProgressEvent, func()) {
	ch := make(chan types.ProgressEvent, 16)
	c.subMu.Lock()
	c.subs[ch] = struct{}{}
	c.subMu.Unlock()
	return ch, func() {
		c.subMu.Lock()
		delete(c.subs, ch)
		c.subMu.Unlock()
	}
}

func (c *CrawlController) broadcast(ev types.ProgressEvent) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for ch := range c.subs {
		select {
		case ch <- ev:
		default:
			// slow subscriber, drop the event rather than stall the crawl
		}
	}
}

func storageClient(cfg config.Config) (collector.BlobStore, error) {
	return storage.NewMinIOClient(cfg)
}

func localStore(cfg config.Config) (collector.BlobStore, error) {
	return storage.NewFileStore(filepath.Join(cfg.OutputDir, "photos"))
}

func buildSession(req types.CrawlRequest) types.SearchSession {
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "Newest"
	}
	var deadline time.Time
	if req.TimeoutMinutes > 0 {
		deadline = time.Now().Add(time.Duration(req.TimeoutMinutes) * time.Minute)
	}
	return types.SearchSession{
		Phrase:     strings.TrimSpace(req.SearchPhrase),
		Categories: strings.Split(req.Categories, ","),
		Months:     req.Months,
		SortBy:     sortBy,
		Deadline:   deadline,
	}
}
