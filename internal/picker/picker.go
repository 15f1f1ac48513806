// Package picker implements the interactive selection UI used when a
// jump query matches more than one bookmark.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/dm/internal/query"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Picker is a small TUI for narrowing down and selecting a bookmark.
type Picker struct {
	input     textinput.Model
	entries   []query.Entry
	matches   []query.Match
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a Picker over the given entries, pre-filtered by q.
func New(entries []query.Entry, q string) Picker {
	input := textinput.New()
	input.Prompt = "jump> "
	input.SetValue(q)
	input.Focus()

	p := Picker{
		input:   input,
		entries: entries,
		width:   80,
		height:  24,
	}
	p.refilter()
	return p
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			if len(p.matches) > 0 {
				p.selected = true
				return p, tea.Quit
			}
			return p, nil

		case tea.KeyDown, tea.KeyCtrlN:
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return p, nil

		case tea.KeyUp, tea.KeyCtrlP:
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		}

		// Everything else edits the filter input
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		p.refilter()
		return p, cmd
	}

	return p, nil
}

// refilter recomputes the match list from the current input value.
func (p *Picker) refilter() {
	p.matches = query.FuzzyMatchEntries(p.entries, p.input.Value())
	if p.cursor >= len(p.matches) {
		p.cursor = 0
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%d of %d bookmarks", len(p.matches), len(p.entries))))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	for i, m := range p.matches {
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		b.WriteString(fmt.Sprintf("%s%s\n", cursor, style.Render(m.Name)))
		b.WriteString(fmt.Sprintf("   %s\n", pathStyle.Render(m.Bookmark.Path)))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓: move  Enter: jump  Esc: cancel"))

	return b.String()
}

// Selected returns the chosen entry, if any.
func (p Picker) Selected() (query.Entry, bool) {
	if p.cancelled || !p.selected {
		return query.Entry{}, false
	}
	if p.cursor < len(p.matches) {
		return p.matches[p.cursor].Entry, true
	}
	return query.Entry{}, false
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
