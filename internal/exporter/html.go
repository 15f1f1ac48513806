// Package exporter writes the store as Netscape bookmark HTML with
// file:// links, one folder per category. The output imports cleanly
// into browsers and round-trips through the importer package.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nikbrunner/dm/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/dm-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("dm-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the store to Netscape bookmark HTML format.
// Categories and names are sorted so the output is deterministic.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Directory Bookmarks</TITLE>\n")
	b.WriteString("<H1>Directory Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, category := range categories(store) {
		fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(category))
		b.WriteString("    <DL><p>\n")

		for _, name := range store.Names() {
			bm, _ := store.Get(name)
			if bm.Category != category {
				continue
			}
			writeBookmark(&b, name, bm)
		}

		b.WriteString("    </DL><p>\n")
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeBookmark writes one bookmark anchor. LAST_VISIT is omitted for
// bookmarks that have never been navigated to.
func writeBookmark(b *strings.Builder, name string, bm model.Bookmark) {
	attrs := fmt.Sprintf("HREF=\"file://%s\"", html.EscapeString(bm.Path))
	if bm.LastAccessed != nil {
		attrs += fmt.Sprintf(" LAST_VISIT=\"%d\"", bm.LastAccessed.Unix())
	}
	attrs += fmt.Sprintf(" VISIT_COUNT=\"%d\"", bm.AccessCount)

	fmt.Fprintf(b, "        <DT><A %s>%s</A>\n", attrs, html.EscapeString(name))
}

// categories returns all distinct categories, sorted ascending.
func categories(store *model.Store) []string {
	seen := map[string]bool{}
	for _, name := range store.Names() {
		bm, _ := store.Get(name)
		seen[bm.Category] = true
	}

	result := make([]string, 0, len(seen))
	for c := range seen {
		result = append(result, c)
	}
	sort.Strings(result)
	return result
}
