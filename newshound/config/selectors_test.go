package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSelectorsComplete(t *testing.T) {
	sel := DefaultSelectors()
	fields := map[string]string{
		"SearchButton":  sel.SearchButton,
		"SearchInput":   sel.SearchInput,
		"SearchSubmit":  sel.SearchSubmit,
		"FilterHeading": sel.FilterHeading,
		"CategoryLabel": sel.CategoryLabel,
		"ResultItem":    sel.ResultItem,
		"ResultTitle":   sel.ResultTitle,
		"ResultSummary": sel.ResultSummary,
		"ResultStamp":   sel.ResultStamp,
		"StampAttr":     sel.StampAttr,
		"PageCounts":    sel.PageCounts,
		"NextPage":      sel.NextPage,
	}
	for name, value := range fields {
		if value == "" {
			t.Errorf("default selector %s is empty", name)
		}
	}
}

func TestLoadSelectorsOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	override := "result_item: li.custom-result\npage_counts: span.pager\n"
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	sel, err := LoadSelectors(path)
	if err != nil {
		t.Fatalf("LoadSelectors: %v", err)
	}
	if sel.ResultItem != "li.custom-result" {
		t.Errorf("override not applied: %q", sel.ResultItem)
	}
	if sel.PageCounts != "span.pager" {
		t.Errorf("override not applied: %q", sel.PageCounts)
	}
	if sel.SearchButton != DefaultSelectors().SearchButton {
		t.Errorf("untouched field should keep its default, got %q", sel.SearchButton)
	}
}

func TestLoadSelectorsEmptyPathReturnsDefaults(t *testing.T) {
	sel, err := LoadSelectors("")
	if err != nil {
		t.Fatalf("LoadSelectors: %v", err)
	}
	if sel != DefaultSelectors() {
		t.Error("empty path should return the defaults")
	}
}

func TestLoadSelectorsMissingFileReturnsError(t *testing.T) {
	if _, err := LoadSelectors(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing selector file")
	}
}
