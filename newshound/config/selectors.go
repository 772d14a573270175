// newshound/config/selectors.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Selectors is the CSS selector set the crawl evaluates against the
// target site. The zero-config defaults match apnews.com; a yaml file
// can override any of them when the site markup drifts.
type Selectors struct {
	ConsentAccept string `yaml:"consent_accept"`
	SearchButton  string `yaml:"search_button"`
	SearchInput   string `yaml:"search_input"`
	SearchSubmit  string `yaml:"search_submit"`
	SortSelect    string `yaml:"sort_select"`
	FilterHeading string `yaml:"filter_heading"`
	CategoryLabel string `yaml:"category_label"`
	ResultItem    string `yaml:"result_item"`
	ResultTitle   string `yaml:"result_title"`
	ResultSummary string `yaml:"result_summary"`
	ResultStamp   string `yaml:"result_stamp"`
	StampAttr     string `yaml:"stamp_attr"`
	ResultImage   string `yaml:"result_image"`
	PageCounts    string `yaml:"page_counts"`
	NextPage      string `yaml:"next_page"`
}

func DefaultSelectors() Selectors {
	return Selectors{
		ConsentAccept: "button#onetrust-accept-btn-handler",
		SearchButton:  "button.SearchOverlay-search-button",
		SearchInput:   `input.SearchOverlay-search-input[name="q"]`,
		SearchSubmit:  "button.SearchOverlay-search-submit",
		SortSelect:    `select.Select-input[name="s"]`,
		FilterHeading: "div.SearchFilter-heading",
		CategoryLabel: "div.SearchFilterInput div.CheckboxInput label.CheckboxInput-label",
		ResultItem:    "div.SearchResultsModule-results div.PageList-items-item",
		ResultTitle:   "div.PagePromo-title span.PagePromoContentIcons-text",
		ResultSummary: "div.PagePromo-description span.PagePromoContentIcons-text",
		ResultStamp:   "bsp-timestamp",
		StampAttr:     "data-timestamp",
		ResultImage:   "img.Image",
		PageCounts:    "div.Pagination-pageCounts",
		NextPage:      "div.Pagination-nextPage",
	}
}

// LoadSelectors reads a yaml override file on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()
	if path == "" {
		return sel, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return sel, err
	}
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return sel, err
	}
	return sel, nil
}
