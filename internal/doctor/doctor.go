// Package doctor verifies that bookmarked directories still exist.
package doctor

import (
	"os"
	"sync"

	"github.com/nikbrunner/dm/internal/query"
)

// Status represents the health of a bookmarked path.
type Status int

const (
	Healthy Status = iota // path exists and is a directory
	Missing               // path no longer exists
	NotADir               // path exists but is a regular file
)

// Result holds the check result for a single bookmark.
type Result struct {
	Entry  query.Entry
	Status Status
	Error  string // stat error for missing paths
}

// Stale reports whether the bookmark should be flagged for cleanup.
func (r Result) Stale() bool {
	return r.Status != Healthy
}

// ProgressFunc is called after each path is checked.
// completed is the number of paths checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// CheckPaths stats all bookmarked paths concurrently and returns results
// in the same order as entries.
func CheckPaths(entries []query.Entry, concurrency int, onProgress ProgressFunc) []Result {
	if len(entries) == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(entries))
	jobs := make(chan int, len(entries))
	var wg sync.WaitGroup

	// Progress tracking
	var progressMu sync.Mutex
	completed := 0

	// Start workers
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = checkPath(entries[idx])

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(entries))
					progressMu.Unlock()
				}
			}
		}()
	}

	// Send jobs
	for i := range entries {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// checkPath checks a single bookmarked path.
func checkPath(entry query.Entry) Result {
	result := Result{Entry: entry}

	info, err := os.Stat(entry.Bookmark.Path)
	switch {
	case err != nil:
		result.Status = Missing
		result.Error = err.Error()
	case !info.IsDir():
		result.Status = NotADir
	default:
		result.Status = Healthy
	}

	return result
}
