package collector

import (
	"testing"
	"time"
)

func labelSet(texts ...string) []*fakeLabel {
	labels := make([]*fakeLabel, 0, len(texts))
	for _, s := range texts {
		labels = append(labels, &fakeLabel{text: s})
	}
	return labels
}

func categoryCollector(r *fakeRenderer) *Collector {
	return newTestCollector(r, &fakeSink{}, newFakeBlobs(), 5, time.Now())
}

func TestApplyCategoriesCaseInsensitiveOrderIndependent(t *testing.T) {
	r := newFakeRenderer()
	r.labels = labelSet("world", "POLITICS", "Sports")
	c := categoryCollector(r)

	pending := map[string]struct{}{"politics": {}, "world": {}}
	applied := c.applyCategories(pending)

	if applied != 2 {
		t.Fatalf("expected 2 applied categories, got %d", applied)
	}
	if len(pending) != 0 {
		t.Errorf("pending set should be drained, %d left", len(pending))
	}
	// one facet per panel pass: the panel is reopened for each pick
	if r.panelOpens != 2 {
		t.Errorf("expected a fresh panel per pick, opened %d times", r.panelOpens)
	}
	if len(r.clickedLabels) != 2 {
		t.Errorf("expected 2 label clicks, got %v", r.clickedLabels)
	}
}

func TestApplyCategoriesDropsUnmatchedSilently(t *testing.T) {
	r := newFakeRenderer()
	r.labels = labelSet("world", "science")
	c := categoryCollector(r)

	pending := map[string]struct{}{"world": {}, "finance": {}}
	applied := c.applyCategories(pending)

	if applied != 1 {
		t.Errorf("expected 1 applied, got %d", applied)
	}
	if _, left := pending["finance"]; !left {
		t.Error("unmatched category should remain pending (and be dropped)")
	}
}

func TestApplyCategoriesPanelOpenRetriedOnStale(t *testing.T) {
	r := newFakeRenderer()
	r.labels = labelSet("world")
	r.panelFailures = 1 // first open attempt is stale, second works
	c := categoryCollector(r)

	pending := map[string]struct{}{"world": {}}
	if applied := c.applyCategories(pending); applied != 1 {
		t.Errorf("one stale panel open should be retried, applied %d", applied)
	}
}

func TestApplyCategoriesGivesUpWhenPanelUnreachable(t *testing.T) {
	r := newFakeRenderer()
	r.labels = labelSet("world")
	r.panelFailures = panelOpenAttempts // every open attempt fails
	c := categoryCollector(r)

	pending := map[string]struct{}{"world": {}}
	if applied := c.applyCategories(pending); applied != 0 {
		t.Errorf("unreachable panel should drop remaining categories, applied %d", applied)
	}
}
