package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/nikbrunner/dm/internal/model"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestNewBookmark_Defaults(t *testing.T) {
	b := model.NewBookmark(model.NewBookmarkParams{Path: "/tmp/x"})

	if b.Category != model.DefaultCategory {
		t.Errorf("expected default category %q, got %q", model.DefaultCategory, b.Category)
	}
	if b.AccessCount != 0 {
		t.Errorf("expected access count 0, got %d", b.AccessCount)
	}
	if b.LastAccessed != nil {
		t.Error("expected nil LastAccessed for new bookmark")
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain name", "proj", false},
		{"with dashes", "my-project", false},
		{"empty", "", true},
		{"contains pipe", "pro|j", true},
		{"contains newline", "pro\nj", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestStore_Add(t *testing.T) {
	dir := t.TempDir()
	store := model.NewStore()

	if err := store.Add("proj", model.NewBookmarkParams{Path: dir, Category: "work"}); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	b, ok := store.Get("proj")
	if !ok {
		t.Fatal("bookmark not found after add")
	}
	if b.Path != dir {
		t.Errorf("expected path %q, got %q", dir, b.Path)
	}
	if b.Category != "work" {
		t.Errorf("expected category %q, got %q", "work", b.Category)
	}
	if b.AccessCount != 0 || b.LastAccessed != nil {
		t.Error("new bookmark should have no usage metadata")
	}
}

func TestStore_Add_Conflict(t *testing.T) {
	dir := t.TempDir()
	store := model.NewStore()

	if err := store.Add("proj", model.NewBookmarkParams{Path: dir}); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	err := store.Add("proj", model.NewBookmarkParams{Path: dir})
	if !errors.Is(err, model.ErrNameConflict) {
		t.Errorf("expected ErrNameConflict, got %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("store changed on failed add: len %d", store.Len())
	}
}

func TestStore_Add_InvalidPath(t *testing.T) {
	store := model.NewStore()

	err := store.Add("gone", model.NewBookmarkParams{Path: "/nonexistent/dm/test/dir"})
	if !errors.Is(err, model.ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath for missing dir, got %v", err)
	}
}

func TestStore_Add_RejectsDelimiter(t *testing.T) {
	dir := t.TempDir()
	store := model.NewStore()

	if err := store.Add("bad|name", model.NewBookmarkParams{Path: dir}); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for pipe in name, got %v", err)
	}
	if err := store.Add("ok", model.NewBookmarkParams{Path: dir, Category: "a|b"}); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for pipe in category, got %v", err)
	}
	if store.Len() != 0 {
		t.Error("store mutated by rejected add")
	}
}

func TestStore_Navigate(t *testing.T) {
	dir := t.TempDir()
	store := model.NewStore()
	if err := store.Add("proj", model.NewBookmarkParams{Path: dir}); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	before := time.Now()
	path, err := store.Navigate("proj", before)
	if err != nil {
		t.Fatalf("navigate failed: %v", err)
	}
	if path != dir {
		t.Errorf("expected path %q, got %q", dir, path)
	}

	b, _ := store.Get("proj")
	if b.AccessCount != 1 {
		t.Errorf("expected access count 1, got %d", b.AccessCount)
	}
	if b.LastAccessed == nil || b.LastAccessed.Before(before) {
		t.Errorf("LastAccessed not advanced: %v", b.LastAccessed)
	}

	// Second navigation strictly increases the count and never moves
	// the timestamp backwards.
	later := before.Add(time.Minute)
	if _, err := store.Navigate("proj", later); err != nil {
		t.Fatalf("second navigate failed: %v", err)
	}
	b, _ = store.Get("proj")
	if b.AccessCount != 2 {
		t.Errorf("expected access count 2, got %d", b.AccessCount)
	}
	if b.LastAccessed.Before(before) {
		t.Error("LastAccessed moved backwards")
	}
}

func TestStore_Navigate_NotFound(t *testing.T) {
	store := model.NewStore()

	_, err := store.Navigate("ghost", time.Now())
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Navigate_Stale(t *testing.T) {
	store := model.NewStore()
	// Bypass Add's validation to simulate a directory that vanished
	// after bookmarking.
	store.Put("gone", model.Bookmark{Path: "/nonexistent/dm/test/dir", Category: "general"})

	_, err := store.Navigate("gone", time.Now())
	if !errors.Is(err, model.ErrStaleBookmark) {
		t.Errorf("expected ErrStaleBookmark, got %v", err)
	}

	// The stale bookmark stays; cleanup is the user's call.
	if _, ok := store.Get("gone"); !ok {
		t.Error("stale bookmark was removed by navigate")
	}
}

func TestStore_Rename(t *testing.T) {
	visited := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		newName     string
		newCategory string
		wantErr     error
		wantName    string
		wantCat     string
	}{
		{"rename only", "project1", "", nil, "project1", "work"},
		{"recategorize only", "", "personal", nil, "proj", "personal"},
		{"both", "project1", "personal", nil, "project1", "personal"},
		{"neither", "", "", model.ErrInvalidArgument, "", ""},
		{"conflict", "other", "", model.ErrNameConflict, "", ""},
		{"same name keeps record", "proj", "", nil, "proj", "work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := model.NewStore()
			store.Put("proj", model.Bookmark{
				Path:         "/tmp/x",
				Category:     "work",
				LastAccessed: timePtr(visited),
				AccessCount:  3,
			})
			store.Put("other", model.Bookmark{Path: "/tmp/y", Category: "work"})

			err := store.Rename("proj", tt.newName, tt.newCategory)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("rename failed: %v", err)
			}

			b, ok := store.Get(tt.wantName)
			if !ok {
				t.Fatalf("expected bookmark under %q", tt.wantName)
			}
			if tt.wantName != "proj" {
				if _, old := store.Get("proj"); old {
					t.Error("old name still present after rename")
				}
			}
			if b.Category != tt.wantCat {
				t.Errorf("expected category %q, got %q", tt.wantCat, b.Category)
			}
			if b.Path != "/tmp/x" || b.AccessCount != 3 || b.LastAccessed == nil || !b.LastAccessed.Equal(visited) {
				t.Error("rename did not preserve path/count/timestamp")
			}
		})
	}
}

func TestStore_Rename_NotFound(t *testing.T) {
	store := model.NewStore()

	err := store.Rename("ghost", "new", "")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := model.NewStore()
	store.Put("proj", model.Bookmark{Path: "/tmp/x", Category: "general"})

	if !store.Delete("proj") {
		t.Error("expected delete to report found")
	}
	if store.Delete("proj") {
		t.Error("expected second delete to report not found")
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d", store.Len())
	}
}

func TestStore_Names_Sorted(t *testing.T) {
	store := model.NewStore()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		store.Put(name, model.Bookmark{Path: "/tmp/x", Category: "general"})
	}

	names := store.Names()
	want := []string{"alpha", "mid", "zeta"}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("expected %q at %d, got %q", name, i, names[i])
		}
	}
}

func TestStore_ImportMerge(t *testing.T) {
	store := model.NewStore()
	store.Put("existing", model.Bookmark{Path: "/tmp/a", Category: "general"})

	added, skipped := store.ImportMerge(map[string]model.Bookmark{
		"existing": {Path: "/tmp/other", Category: "general"}, // duplicate
		"fresh":    {Path: "/tmp/b", Category: "work"},
		"nocat":    {Path: "/tmp/c"},   // gets default category
		"bad|name": {Path: "/tmp/d"},   // delimiter in name
		"badpath":  {Path: "/tmp/e|f"}, // delimiter in path
	})

	if added != 2 {
		t.Errorf("expected 2 added, got %d", added)
	}
	if skipped != 3 {
		t.Errorf("expected 3 skipped, got %d", skipped)
	}

	if b, _ := store.Get("existing"); b.Path != "/tmp/a" {
		t.Error("import overwrote an existing bookmark")
	}
	if b, _ := store.Get("nocat"); b.Category != model.DefaultCategory {
		t.Errorf("expected default category, got %q", b.Category)
	}
}
