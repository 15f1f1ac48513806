package doctor_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nikbrunner/dm/internal/doctor"
	"github.com/nikbrunner/dm/internal/model"
	"github.com/nikbrunner/dm/internal/query"
)

func TestCheckPaths(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "plain-file")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	entries := []query.Entry{
		{Name: "good", Bookmark: model.Bookmark{Path: tmpDir}},
		{Name: "gone", Bookmark: model.Bookmark{Path: filepath.Join(tmpDir, "missing")}},
		{Name: "file", Bookmark: model.Bookmark{Path: filePath}},
	}

	results := doctor.CheckPaths(entries, 2, nil)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Results keep entry order
	if results[0].Entry.Name != "good" || results[0].Status != doctor.Healthy {
		t.Errorf("expected good/Healthy, got %s/%v", results[0].Entry.Name, results[0].Status)
	}
	if results[1].Status != doctor.Missing {
		t.Errorf("expected Missing for vanished dir, got %v", results[1].Status)
	}
	if results[1].Error == "" {
		t.Error("expected a stat error message for missing path")
	}
	if results[2].Status != doctor.NotADir {
		t.Errorf("expected NotADir for plain file, got %v", results[2].Status)
	}

	if results[0].Stale() {
		t.Error("healthy result must not be stale")
	}
	if !results[1].Stale() || !results[2].Stale() {
		t.Error("missing and not-a-dir results must be stale")
	}
}

func TestCheckPaths_Empty(t *testing.T) {
	if results := doctor.CheckPaths(nil, 4, nil); results != nil {
		t.Errorf("expected nil for no entries, got %v", results)
	}
}

func TestCheckPaths_Progress(t *testing.T) {
	tmpDir := t.TempDir()
	entries := make([]query.Entry, 5)
	for i := range entries {
		entries[i] = query.Entry{Name: "e", Bookmark: model.Bookmark{Path: tmpDir}}
	}

	var mu sync.Mutex
	calls := 0
	last := 0
	doctor.CheckPaths(entries, 3, func(completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		last = completed
		if total != 5 {
			t.Errorf("expected total 5, got %d", total)
		}
	})

	if calls != 5 {
		t.Errorf("expected 5 progress calls, got %d", calls)
	}
	if last != 5 {
		t.Errorf("expected final completed 5, got %d", last)
	}
}
