// newshound/utils/types/news.go
package types

import (
	"strings"
	"time"
)

// Record is one crawled search result. It is built once per result node
// and never mutated after construction; a nil PublishedAt means the date
// could not be extracted at all.
type Record struct {
	Title       string
	PublishedAt *time.Time
	Description string
	Picture     string // content-address filename of the saved photo, empty if none
	PhraseCount int
	HasMoney    bool
}

// SearchSession holds the immutable parameters of one crawl run.
type SearchSession struct {
	Phrase     string
	Categories []string
	Months     int // 0 means unbounded window
	SortBy     string
	Deadline   time.Time // zero means no deadline
}

// CategorySet returns the requested categories lower-cased as a set.
func (s SearchSession) CategorySet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Categories))
	for _, c := range s.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}

// CrawlSummary reports what a finished (or aborted) run did.
type CrawlSummary struct {
	RunID             string `json:"run_id"`
	Accepted          int    `json:"accepted"`
	DiscardedNoDate   int    `json:"discarded_no_date"`
	DiscardedOutdated int    `json:"discarded_outdated"`
	PagesScanned      int    `json:"pages_scanned"`
	StopReason        string `json:"stop_reason"`
}

type CrawlRequest struct {
	SearchPhrase   string `json:"search_phrase"`
	Categories     string `json:"categories"` // comma-separated
	Months         int    `json:"months"`
	SortBy         string `json:"sort_by"`
	TimeoutMinutes int    `json:"timeout_minutes"`
}

type CrawlResponse struct {
	Summary CrawlSummary `json:"summary"`
	CSVPath string       `json:"csv_path"`
	Message string       `json:"message"`
}

// ProgressEvent is pushed to websocket subscribers while a run is active.
type ProgressEvent struct {
	RunID      string `json:"run_id"`
	Phase      string `json:"phase"`
	Page       int    `json:"page,omitempty"`
	Accepted   int    `json:"accepted"`
	FaultsLeft int    `json:"faults_left,omitempty"`
	Error      string `json:"error,omitempty"`
}
