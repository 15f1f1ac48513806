package storage

import (
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/dm/internal/model"
)

// recordFields is the fixed field count of one store line:
// name|path|category|last_accessed|access_count
const recordFields = 5

// encodeRecord serializes one bookmark to its store line.
// last_accessed is empty until the first navigation.
func encodeRecord(name string, b model.Bookmark) string {
	lastAccessed := ""
	if b.LastAccessed != nil {
		lastAccessed = strconv.FormatInt(b.LastAccessed.Unix(), 10)
	}

	return strings.Join([]string{
		name,
		b.Path,
		b.Category,
		lastAccessed,
		strconv.Itoa(b.AccessCount),
	}, "|")
}

// parseRecord parses one store line. Reports ok=false for lines that
// should be skipped: empty names, missing path, or a field count that
// no version of the format ever produced. Fields beyond name and path
// are tolerated when absent so a hand-edited file still loads.
func parseRecord(line string) (string, model.Bookmark, bool) {
	fields := strings.Split(line, "|")
	if len(fields) < 2 || len(fields) > recordFields {
		return "", model.Bookmark{}, false
	}

	name := fields[0]
	path := fields[1]
	if name == "" || path == "" {
		return "", model.Bookmark{}, false
	}

	b := model.Bookmark{
		Path:     path,
		Category: model.DefaultCategory,
	}

	if len(fields) > 2 && fields[2] != "" {
		b.Category = fields[2]
	}

	if len(fields) > 3 && fields[3] != "" {
		if epoch, err := strconv.ParseInt(fields[3], 10, 64); err == nil {
			t := time.Unix(epoch, 0)
			b.LastAccessed = &t
		}
	}

	if len(fields) > 4 {
		if count, err := strconv.Atoi(fields[4]); err == nil && count >= 0 {
			b.AccessCount = count
		}
	}

	return name, b, true
}
