package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/dm/internal/doctor"
	"github.com/nikbrunner/dm/internal/exporter"
	"github.com/nikbrunner/dm/internal/history"
	"github.com/nikbrunner/dm/internal/importer"
	"github.com/nikbrunner/dm/internal/model"
	"github.com/nikbrunner/dm/internal/picker"
	"github.com/nikbrunner/dm/internal/query"
	"github.com/nikbrunner/dm/internal/storage"
)

var (
	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	args := os.Args[2:]

	switch os.Args[1] {
	case "help", "--help", "-h":
		printHelp()
	case "add":
		runAdd(args)
	case "set":
		runSet(args)
	case "to":
		runTo(args)
	case "list":
		runList(args)
	case "stats":
		runStats()
	case "recent":
		runRecent()
	case "frequent":
		runFrequent()
	case "remove":
		runRemove(args)
	case "rename":
		runRename(args)
	case "clear":
		runClear()
	case "doctor":
		runDoctor(args)
	case "history":
		runHistory(args)
	case "import":
		runImport(args)
	case "export":
		runExport(args)
	default:
		fail("unknown command %q (see 'dm help')", os.Args[1])
	}
}

func printHelp() {
	help := `dm - directory bookmark manager

Usage:
  dm add <name> [path] [category]   Bookmark a directory (default: cwd)
  dm set <name> [category]          Bookmark the current directory
  dm to <name> [-p] [-y]            Jump: start a shell in the directory
                                    -p/--print  print the path instead
                                    -y/--copy   copy the path instead
  dm list [word]                    List bookmarks matching word
  dm list -c <category>             List bookmarks in a category
  dm stats                          Full table with usage metadata
  dm recent                         Most recently used bookmarks
  dm frequent                       Most frequently used bookmarks
  dm remove <name>                  Delete one bookmark
  dm rename <old> [new] [-c cat]    Rename and/or recategorize
  dm clear                          Delete all bookmarks (asks first)
  dm doctor [--prune]               Check for vanished directories
  dm history [n]                    Show the last n jumps
  dm export [path]                  Export to bookmark HTML (file:// links)
  dm import <file.html>             Merge bookmarks from an export
  dm help                           Show this help

Use 'dm to <name> -p' with cd in a shell function to change the calling
shell's directory:

  d() { cd "$(dm to "$1" -p)"; }

Data Storage:
  ~/.config/dm/bookmarks
`
	fmt.Print(help)
}

// fail reports an error and exits with status 1. All command errors
// funnel through here; nothing is retried.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "dm: "+format+"\n", args...)
	os.Exit(1)
}

// loadAll loads config and store; every command starts here so no state
// survives between invocations except the files.
func loadAll() (*storage.Config, *storage.FileStorage, *model.Store) {
	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		fail("resolving config path: %v", err)
	}
	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		fail("loading config: %v", err)
	}

	storePath, err := storage.DefaultStorePath()
	if err != nil {
		fail("resolving store path: %v", err)
	}
	fileStorage := storage.NewFileStorage(storePath)
	store, err := fileStorage.Load()
	if err != nil {
		fail("loading bookmarks: %v", err)
	}

	return cfg, fileStorage, store
}

func save(fileStorage *storage.FileStorage, store *model.Store) {
	if err := fileStorage.Save(store); err != nil {
		fail("saving bookmarks: %v", err)
	}
}

// splitFlag pulls `-flag value` (or its long form) out of args and
// returns the remaining positionals. No heuristics: every command has
// fixed positions plus explicit flags.
func splitFlag(args []string, short, long string) (value string, rest []string, err error) {
	for i := 0; i < len(args); i++ {
		if args[i] == short || args[i] == long {
			if i+1 >= len(args) {
				return "", nil, fmt.Errorf("%s needs a value", args[i])
			}
			value = args[i+1]
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	return value, rest, nil
}

func hasFlag(args []string, short, long string) (found bool, rest []string) {
	for _, a := range args {
		if a == short || a == long {
			found = true
			continue
		}
		rest = append(rest, a)
	}
	return found, rest
}

func runAdd(args []string) {
	category, positional, err := splitFlag(args, "-c", "--category")
	if err != nil {
		fail("%v", err)
	}
	if len(positional) < 1 || len(positional) > 3 {
		fail("usage: dm add <name> [path] [category]")
	}

	name := positional[0]
	path := ""
	if len(positional) >= 2 {
		path = positional[1]
	}
	if len(positional) == 3 {
		if category != "" {
			fail("category given twice")
		}
		category = positional[2]
	}

	addBookmark(name, path, category)
}

func runSet(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fail("usage: dm set <name> [category]")
	}
	category := ""
	if len(args) == 2 {
		category = args[1]
	}
	addBookmark(args[0], "", category)
}

// addBookmark is the shared body of add and set. An empty path means
// the current directory.
func addBookmark(name, path, category string) {
	cfg, fileStorage, store := loadAll()

	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fail("getting current directory: %v", err)
		}
		path = cwd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fail("resolving path %q: %v", path, err)
	}

	if category == "" {
		category = cfg.DefaultCategory
	}

	if err := store.Add(name, model.NewBookmarkParams{Path: abs, Category: category}); err != nil {
		fail("%v", err)
	}
	save(fileStorage, store)

	fmt.Printf("Added %s %s %s\n",
		nameStyle.Render(name),
		pathStyle.Render(abs),
		categoryStyle.Render("("+category+")"))
}

func runTo(args []string) {
	printOnly, args := hasFlag(args, "-p", "--print")
	copyOnly, args := hasFlag(args, "-y", "--copy")
	if len(args) != 1 {
		fail("usage: dm to <name> [-p|--print] [-y|--copy]")
	}
	q := args[0]

	cfg, fileStorage, store := loadAll()

	name, ok := resolveName(store, q)
	if !ok {
		os.Exit(0) // picker cancelled
	}

	now := time.Now()
	path, err := store.Navigate(name, now)
	if err != nil {
		fail("%v", err)
	}

	// Persist the access bump before handing control anywhere, so an
	// exited subshell can never lose it.
	save(fileStorage, store)
	recordJump(cfg, name, path, now)

	switch {
	case printOnly:
		fmt.Println(path)
	case copyOnly:
		if err := clipboard.WriteAll(path); err != nil {
			fail("copying to clipboard: %v", err)
		}
		fmt.Printf("Copied %s\n", pathStyle.Render(path))
	default:
		startShell(cfg, name, path)
	}
}

// resolveName maps a jump query to a bookmark name. Exact names win;
// otherwise fuzzy matching kicks in, with the picker for ambiguity.
// ok=false means the user cancelled the picker.
func resolveName(store *model.Store, q string) (string, bool) {
	if _, exists := store.Get(q); exists {
		return q, true
	}

	matches := query.FuzzyMatch(store, q)
	switch len(matches) {
	case 0:
		fail("%q: %v", q, model.ErrNotFound)
	case 1:
		return matches[0].Name, true
	}

	p := picker.New(query.Filter(store, query.All), q)
	program := tea.NewProgram(p)
	finalModel, err := program.Run()
	if err != nil {
		fail("running picker: %v", err)
	}

	finalPicker := finalModel.(picker.Picker)
	entry, ok := finalPicker.Selected()
	if !ok {
		return "", false
	}
	return entry.Name, true
}

// recordJump appends to the history log. Best-effort: the jump already
// succeeded, a logging failure must not fail it.
func recordJump(cfg *storage.Config, name, path string, at time.Time) {
	if cfg.DisableHistory {
		return
	}
	historyPath, err := history.DefaultHistoryPath()
	if err != nil {
		return
	}
	log, err := history.Open(historyPath)
	if err != nil {
		return
	}
	defer log.Close()
	_ = log.Record(name, path, at)
}

// startShell hands control to an interactive shell in the target
// directory and blocks until the user exits it.
func startShell(cfg *storage.Config, name, path string) {
	shell := cfg.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}

	fmt.Printf("%s %s %s\n",
		dimStyle.Render("Entering"),
		nameStyle.Render(name),
		dimStyle.Render("("+path+", exit shell to return)"))

	cmd := exec.Command(shell)
	cmd.Dir = path
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if _, isExit := err.(*exec.ExitError); !isExit {
			fail("starting %s: %v", shell, err)
		}
	}
}

func runList(args []string) {
	category, positional, err := splitFlag(args, "-c", "--category")
	if err != nil {
		fail("%v", err)
	}
	if len(positional) > 1 || (category != "" && len(positional) > 0) {
		fail("usage: dm list [word] | dm list -c <category>")
	}

	_, _, store := loadAll()

	pred := query.All
	switch {
	case category != "":
		pred = query.ByCategory(category)
	case len(positional) == 1:
		pred = query.ByNameSubstring(positional[0])
	}

	entries := query.Filter(store, pred)
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("No bookmarks found."))
		return
	}
	printEntries(entries)
}

func runStats() {
	_, _, store := loadAll()

	entries := query.Filter(store, query.All)
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("No bookmarks yet. Try 'dm add'."))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-16s %-12s %6s  %-16s %s",
		"NAME", "CATEGORY", "COUNT", "LAST ACCESS", "PATH")))
	for _, e := range entries {
		fmt.Printf("%-16s %-12s %6d  %-16s %s\n",
			e.Name,
			e.Bookmark.Category,
			e.Bookmark.AccessCount,
			formatLastAccess(e.Bookmark),
			e.Bookmark.Path)
	}
}

func runRecent() {
	cfg, _, store := loadAll()
	entries := query.TopByRecency(store, cfg.ListLimit)
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("No bookmarks navigated to yet."))
		return
	}
	printEntries(entries)
}

func runFrequent() {
	cfg, _, store := loadAll()
	entries := query.TopByFrequency(store, cfg.ListLimit)
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("No bookmarks yet. Try 'dm add'."))
		return
	}
	printEntries(entries)
}

func printEntries(entries []query.Entry) {
	for _, e := range entries {
		fmt.Printf("%s %s\n   %s\n",
			nameStyle.Render(e.Name),
			categoryStyle.Render("("+e.Bookmark.Category+")"),
			pathStyle.Render(e.Bookmark.Path))
	}
}

func formatLastAccess(b model.Bookmark) string {
	if b.LastAccessed == nil {
		return "never"
	}
	return b.LastAccessed.Format("2006-01-02 15:04")
}

func runRemove(args []string) {
	if len(args) != 1 {
		fail("usage: dm remove <name>")
	}
	name := args[0]

	_, fileStorage, store := loadAll()
	if !store.Delete(name) {
		fail("%q: %v", name, model.ErrNotFound)
	}
	save(fileStorage, store)
	fmt.Printf("Removed %s\n", nameStyle.Render(name))
}

func runRename(args []string) {
	category, positional, err := splitFlag(args, "-c", "--category")
	if err != nil {
		fail("%v", err)
	}
	if len(positional) < 1 || len(positional) > 2 {
		fail("usage: dm rename <old> [new] [-c <category>]")
	}

	oldName := positional[0]
	newName := ""
	if len(positional) == 2 {
		newName = positional[1]
	}

	_, fileStorage, store := loadAll()
	if err := store.Rename(oldName, newName, category); err != nil {
		fail("%v", err)
	}
	save(fileStorage, store)

	shown := newName
	if shown == "" {
		shown = oldName
	}
	fmt.Printf("Renamed %s\n", nameStyle.Render(shown))
}

func runClear() {
	_, fileStorage, store := loadAll()

	if store.Len() == 0 {
		fmt.Println(dimStyle.Render("Nothing to clear."))
		return
	}

	fmt.Printf("This removes all %d bookmarks. Type 'yes' to confirm: ", store.Len())
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "yes" {
		fmt.Println("Aborted.")
		return
	}

	n := store.Clear()
	save(fileStorage, store)
	fmt.Printf("Removed %d bookmarks\n", n)
}

func runDoctor(args []string) {
	prune, rest := hasFlag(args, "-P", "--prune")
	if len(rest) != 0 {
		fail("usage: dm doctor [--prune]")
	}

	_, fileStorage, store := loadAll()
	entries := query.Filter(store, query.All)
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("No bookmarks to check."))
		return
	}

	results := doctor.CheckPaths(entries, 8, func(completed, total int) {
		fmt.Fprintf(os.Stderr, "\rChecking %d/%d", completed, total)
	})
	fmt.Fprint(os.Stderr, "\r")

	var stale []doctor.Result
	for _, r := range results {
		if r.Stale() {
			stale = append(stale, r)
		}
	}

	if len(stale) == 0 {
		fmt.Printf("All %d bookmarks healthy.\n", len(results))
		return
	}

	for _, r := range stale {
		reason := "missing"
		if r.Status == doctor.NotADir {
			reason = "not a directory"
		}
		fmt.Printf("%s %s\n   %s\n",
			nameStyle.Render(r.Entry.Name),
			dimStyle.Render("("+reason+")"),
			pathStyle.Render(r.Entry.Bookmark.Path))
	}

	if !prune {
		fmt.Printf("\n%d stale bookmarks. Run 'dm doctor --prune' to remove them.\n", len(stale))
		return
	}

	for _, r := range stale {
		store.Delete(r.Entry.Name)
	}
	save(fileStorage, store)
	fmt.Printf("\nRemoved %d stale bookmarks\n", len(stale))
}

func runHistory(args []string) {
	n := 10
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			fail("usage: dm history [n]")
		}
		n = parsed
	} else if len(args) > 1 {
		fail("usage: dm history [n]")
	}

	historyPath, err := history.DefaultHistoryPath()
	if err != nil {
		fail("resolving history path: %v", err)
	}
	log, err := history.Open(historyPath)
	if err != nil {
		fail("opening history: %v", err)
	}
	defer log.Close()

	entries, err := log.Recent(n)
	if err != nil {
		fail("reading history: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("No jumps recorded yet."))
		return
	}

	for _, e := range entries {
		fmt.Printf("%s  %s %s\n",
			dimStyle.Render(e.JumpedAt.Format("2006-01-02 15:04")),
			nameStyle.Render(e.Name),
			pathStyle.Render(e.Path))
	}
}

func runImport(args []string) {
	if len(args) != 1 {
		fail("usage: dm import <file.html>")
	}

	_, fileStorage, store := loadAll()

	file, err := os.Open(args[0])
	if err != nil {
		fail("opening file: %v", err)
	}
	defer file.Close()

	imported, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		fail("parsing HTML: %v", err)
	}

	added, skipped := store.ImportMerge(imported)
	save(fileStorage, store)

	fmt.Printf("Imported %d bookmarks", added)
	if skipped > 0 {
		fmt.Printf(" (%d skipped)", skipped)
	}
	fmt.Println()
}

func runExport(args []string) {
	if len(args) > 1 {
		fail("usage: dm export [path]")
	}

	outputPath := ""
	if len(args) == 1 {
		outputPath = args[0]
	}
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fail("resolving export path: %v", err)
		}
	}

	_, _, store := loadAll()

	html := exporter.ExportHTML(store)
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fail("writing file: %v", err)
	}

	fmt.Printf("Exported %d bookmarks to %s\n", store.Len(), outputPath)
}
