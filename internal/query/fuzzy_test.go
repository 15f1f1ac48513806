package query_test

import (
	"testing"

	"github.com/nikbrunner/dm/internal/model"
	"github.com/nikbrunner/dm/internal/query"
)

func TestFuzzyMatch(t *testing.T) {
	store := model.NewStore()
	store.Put("dotfiles", model.Bookmark{Path: "/home/u/.dotfiles", Category: "config"})
	store.Put("downloads", model.Bookmark{Path: "/home/u/Downloads", Category: "general"})
	store.Put("work-api", model.Bookmark{Path: "/code/api", Category: "work"})

	matches := query.FuzzyMatch(store, "dot")
	if len(matches) == 0 {
		t.Fatal("expected matches for 'dot'")
	}
	if matches[0].Name != "dotfiles" {
		t.Errorf("expected best match dotfiles, got %q", matches[0].Name)
	}
	for _, m := range matches {
		if m.Name == "work-api" {
			t.Error("work-api should not match 'dot'")
		}
	}
}

func TestFuzzyMatch_EmptyQuery(t *testing.T) {
	store := model.NewStore()
	store.Put("proj", model.Bookmark{Path: "/tmp/x", Category: "general"})

	if matches := query.FuzzyMatch(store, ""); matches != nil {
		t.Errorf("expected nil for empty query, got %v", matches)
	}
}

func TestFuzzyMatchEntries_EmptyQueryReturnsAll(t *testing.T) {
	entries := []query.Entry{
		{Name: "a", Bookmark: model.Bookmark{Path: "/tmp/a"}},
		{Name: "b", Bookmark: model.Bookmark{Path: "/tmp/b"}},
	}

	matches := query.FuzzyMatchEntries(entries, "")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Name != "a" || matches[1].Name != "b" {
		t.Error("empty query should preserve entry order")
	}
}
