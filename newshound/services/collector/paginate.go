// newshound/services/collector/paginate.go
package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"newshound/newshound/utils/types"

	"go.uber.org/zap"
)

// crawlPages is the crawl state machine: scan the current page's result
// nodes, feed survivors to the sinks, then advance or stop. The fault
// budget is the only signal that the tail of the listing has left the
// requested window; the optional deadline bounds the whole walk.
func (c *Collector) crawlPages(ctx context.Context, session types.SearchSession, sum *types.CrawlSummary) {
	budget := NewFaultBudget(c.faultCeiling)
	now := c.now()

	for {
		if err := c.renderer.WaitVisible(c.sel.PageCounts, c.waitTimeout); err != nil {
			sum.StopReason = "page counter missing"
			return
		}
		sum.PagesScanned++
		c.emit(types.ProgressEvent{
			RunID: sum.RunID, Phase: "scanning",
			Page: sum.PagesScanned, Accepted: sum.Accepted, FaultsLeft: budget.Remaining(),
		})

		// Snapshot of the nodes rendered right now; items the page adds
		// later in the same view are not revisited.
		nodes, err := c.renderer.FindAll(nil, c.sel.ResultItem)
		if err != nil {
			c.log.Warn("result scan failed", zap.Int("page", sum.PagesScanned), zap.Error(err))
			nodes = nil
		}

		for _, node := range nodes {
			if c.pastDeadline(session) {
				sum.StopReason = "deadline reached"
				return
			}
			if budget.Exhausted() {
				sum.StopReason = "fault budget exhausted"
				return
			}

			rec := c.extractRecord(ctx, node, session.Phrase)
			if rec.PublishedAt == nil {
				budget.Spend()
				sum.DiscardedNoDate++
				continue
			}
			if !InWindow(*rec.PublishedAt, now, session.Months) {
				budget.Spend()
				sum.DiscardedOutdated++
				continue
			}

			c.persist(ctx, rec)
			sum.Accepted++
			budget.Reset()
		}

		if budget.Exhausted() {
			sum.StopReason = "fault budget exhausted"
			return
		}
		if c.pastDeadline(session) {
			sum.StopReason = "deadline reached"
			return
		}

		current, total, err := c.readPageCounts()
		if err != nil {
			c.log.Warn("page counter unreadable", zap.Error(err))
			sum.StopReason = "page counter unreadable"
			return
		}
		if current >= total {
			sum.StopReason = "listing exhausted"
			return
		}
		if err := c.renderer.ClickSelector(c.sel.NextPage); err != nil {
			c.log.Warn("next page unreachable", zap.Int("page", current), zap.Error(err))
			sum.StopReason = "next page unreachable"
			return
		}
	}
}

func (c *Collector) pastDeadline(session types.SearchSession) bool {
	return !session.Deadline.IsZero() && !c.now().Before(session.Deadline)
}

// readPageCounts parses the "current of total" indicator. Both sides
// compare numerically; totals can carry thousands separators.
func (c *Collector) readPageCounts() (int, int, error) {
	text, err := retryOnStale(func() (string, error) {
		node, err := c.renderer.FindOne(nil, c.sel.PageCounts)
		if err != nil {
			return "", err
		}
		return c.renderer.ReadText(node)
	})
	if err != nil {
		return 0, 0, err
	}
	parts := strings.SplitN(strings.TrimSpace(text), " of ", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected page counter %q", text)
	}
	current, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(parts[0]), ",", ""))
	if err != nil {
		return 0, 0, fmt.Errorf("page counter current %q: %w", parts[0], err)
	}
	total, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(parts[1]), ",", ""))
	if err != nil {
		return 0, 0, fmt.Errorf("page counter total %q: %w", parts[1], err)
	}
	return current, total, nil
}
