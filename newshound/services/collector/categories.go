// newshound/services/collector/categories.go
package collector

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// panelOpenAttempts bounds retries against transient staleness when
// opening the filter panel.
const panelOpenAttempts = 2

// applyCategories drives the one-facet-at-a-time selection protocol:
// open the panel, scan the rendered checkbox labels, activate the first
// label still pending, then restart from a freshly opened panel.
// Activating a facet re-renders the panel, so the remaining label
// handles from the same scan are never reused. Unmatched categories are
// dropped silently after a full scan finds nothing.
func (c *Collector) applyCategories(pending map[string]struct{}) int {
	applied := 0
	for len(pending) > 0 {
		if !c.openFilterPanel() {
			c.log.Warn("filter panel unreachable, dropping remaining categories",
				zap.Int("remaining", len(pending)))
			return applied
		}

		matched := false
		labels, err := c.renderer.FindAll(nil, c.sel.CategoryLabel)
		if err != nil {
			return applied
		}
		for _, label := range labels {
			text, err := c.renderer.ReadText(label)
			if err != nil {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(text))
			if _, want := pending[key]; !want {
				continue
			}
			if err := c.renderer.Click(label); err != nil {
				c.log.Warn("category click failed", zap.String("category", key), zap.Error(err))
				continue
			}
			delete(pending, key)
			applied++
			matched = true
			break
		}
		if !matched {
			return applied
		}
	}
	return applied
}

func (c *Collector) openFilterPanel() bool {
	var err error
	for attempt := 0; attempt < panelOpenAttempts; attempt++ {
		if err = c.renderer.WaitVisible(c.sel.FilterHeading, c.waitTimeout); err != nil {
			continue
		}
		if err = c.renderer.ClickSelector(c.sel.FilterHeading); err == nil {
			return true
		}
		if !errors.Is(err, ErrStale) {
			break
		}
	}
	c.log.Warn("open filter panel failed",
		zap.String("selector", c.sel.FilterHeading),
		zap.Int("attempts", panelOpenAttempts),
		zap.Error(err))
	return false
}
