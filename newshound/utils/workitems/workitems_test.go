package workitems

import (
	"os"
	"path/filepath"
	"testing"
)

func writeWorkItem(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "work-item.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write work item: %v", err)
	}
	return path
}

func TestGetVariableFromPayload(t *testing.T) {
	path := writeWorkItem(t, `{"payload":{"search_phrase":"climate","months":3,"categories":"World,Politics"}}`)
	src := Load(path)

	if got := src.GetVariable("search_phrase", ""); got != "climate" {
		t.Errorf("search_phrase = %q", got)
	}
	if got := src.GetVariable("categories", ""); got != "World,Politics" {
		t.Errorf("categories = %q", got)
	}
	if got := src.GetIntVariable("months", 0); got != 3 {
		t.Errorf("months = %d", got)
	}
}

func TestGetVariableFallsBackToEnvThenDefault(t *testing.T) {
	src := Load("")
	t.Setenv("SEARCH_PHRASE", "from-env")
	if got := src.GetVariable("search_phrase", "dflt"); got != "from-env" {
		t.Errorf("env fallback failed: %q", got)
	}
	if got := src.GetVariable("sort_by", "Newest"); got != "Newest" {
		t.Errorf("default fallback failed: %q", got)
	}
	t.Setenv("MONTHS", "6")
	if got := src.GetIntVariable("months", 0); got != 6 {
		t.Errorf("int env fallback failed: %d", got)
	}
}

func TestPayloadWinsOverEnv(t *testing.T) {
	path := writeWorkItem(t, `{"payload":{"search_phrase":"payload-phrase"}}`)
	src := Load(path)
	t.Setenv("SEARCH_PHRASE", "env-phrase")
	if got := src.GetVariable("search_phrase", ""); got != "payload-phrase" {
		t.Errorf("payload should win over env, got %q", got)
	}
}

func TestMissingFileYieldsEnvOnlySource(t *testing.T) {
	src := Load(filepath.Join(t.TempDir(), "absent.json"))
	if got := src.GetVariable("search_phrase", "fallback"); got != "fallback" {
		t.Errorf("missing file should degrade to defaults, got %q", got)
	}
}

func TestMalformedIntFallsBack(t *testing.T) {
	path := writeWorkItem(t, `{"payload":{"months":"not-a-number"}}`)
	src := Load(path)
	if got := src.GetIntVariable("months", 2); got != 2 {
		t.Errorf("malformed int should fall back, got %d", got)
	}
}
