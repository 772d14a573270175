package collector

import (
	"context"
	"testing"
	"time"
)

// pngBytes is a minimal valid PNG signature plus padding, enough for
// content-type sniffing.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)

func TestExtractRecordFieldsAreIndependent(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	node := &fakeNode{
		title:    "Storm hits the coast",
		hasTitle: true,
		// no summary and no timestamp on this node
	}
	r := newFakeRenderer(&fakePage{counter: "1 of 1", nodes: []*fakeNode{node}})
	c := newTestCollector(r, &fakeSink{}, newFakeBlobs(), 5, now)

	rec := c.extractRecord(context.Background(), node, "storm")
	if rec.Title != "Storm hits the coast" {
		t.Errorf("title lost: %q", rec.Title)
	}
	if rec.Description != "" {
		t.Errorf("missing summary should degrade to empty, got %q", rec.Description)
	}
	if rec.PublishedAt != nil {
		t.Errorf("missing stamp should leave PublishedAt nil, got %v", rec.PublishedAt)
	}
	if rec.PhraseCount != 1 {
		t.Errorf("expected phrase count 1, got %d", rec.PhraseCount)
	}
}

func TestExtractRecordRetriesStaleOnce(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	node := resultNode("Flaky headline", now)
	node.staleTitle = 1 // first read stale, second succeeds
	r := newFakeRenderer(&fakePage{counter: "1 of 1", nodes: []*fakeNode{node}})
	c := newTestCollector(r, &fakeSink{}, newFakeBlobs(), 5, now)

	rec := c.extractRecord(context.Background(), node, "")
	if rec.Title != "Flaky headline" {
		t.Errorf("one stale read should be retried, got title %q", rec.Title)
	}
}

func TestExtractRecordStaleBeyondBudgetDegrades(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	node := resultNode("Never readable", now)
	node.staleTitle = staleAttempts // every attempt fails
	r := newFakeRenderer(&fakePage{counter: "1 of 1", nodes: []*fakeNode{node}})
	c := newTestCollector(r, &fakeSink{}, newFakeBlobs(), 5, now)

	rec := c.extractRecord(context.Background(), node, "")
	if rec.Title != "" {
		t.Errorf("exhausted stale retries should degrade to empty, got %q", rec.Title)
	}
	// the date was still extracted: one field's failure never aborts the rest
	if rec.PublishedAt == nil {
		t.Error("timestamp extraction should be unaffected by title failure")
	}
}

func TestExtractRecordMoneyAndCount(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	node := resultNode("Budget deal", now)
	node.summary = "The budget deal is worth $111,111.11 overall"
	r := newFakeRenderer(&fakePage{counter: "1 of 1", nodes: []*fakeNode{node}})
	c := newTestCollector(r, &fakeSink{}, newFakeBlobs(), 5, now)

	rec := c.extractRecord(context.Background(), node, "budget")
	if !rec.HasMoney {
		t.Error("expected money flag for dollar amount in summary")
	}
	if rec.PhraseCount != 2 {
		t.Errorf("expected phrase count 2 across title and summary, got %d", rec.PhraseCount)
	}
}

func TestExtractRecordDeduplicatesSharedPhoto(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	a := resultNode("first article", now)
	b := resultNode("second article", now)
	a.img = pngBytes
	b.img = pngBytes // same photo reused across articles
	r := newFakeRenderer(&fakePage{counter: "1 of 1", nodes: []*fakeNode{a, b}})
	blobs := newFakeBlobs()
	c := newTestCollector(r, &fakeSink{}, blobs, 5, now)

	recA := c.extractRecord(context.Background(), a, "")
	recB := c.extractRecord(context.Background(), b, "")

	if recA.Picture == "" || recA.Picture != recB.Picture {
		t.Errorf("identical bytes must share one content address: %q vs %q", recA.Picture, recB.Picture)
	}
	if blobs.writes != 1 {
		t.Errorf("expected exactly one blob write, got %d", blobs.writes)
	}
}

func TestPhotoNameUsesContentType(t *testing.T) {
	name := photoName(pngBytes)
	if len(name) != 64+len(".png") {
		t.Errorf("unexpected content-address length: %q", name)
	}
	if name[len(name)-4:] != ".png" {
		t.Errorf("expected .png suffix, got %q", name)
	}
	if name != photoName(pngBytes) {
		t.Error("content address must be deterministic")
	}
}

func TestReadPageCountsNumericWithThousands(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	page := &fakePage{counter: "2 of 1,341"}
	r := newFakeRenderer(page)
	c := newTestCollector(r, &fakeSink{}, newFakeBlobs(), 5, now)

	current, total, err := c.readPageCounts()
	if err != nil {
		t.Fatalf("readPageCounts: %v", err)
	}
	// lexically "2" > "1,341"; the comparison has to be numeric
	if current != 2 || total != 1341 {
		t.Errorf("got %d of %d, want 2 of 1341", current, total)
	}
	if current >= total {
		t.Error("page 2 of 1341 must advance")
	}
}
