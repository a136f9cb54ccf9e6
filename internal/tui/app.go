// Package tui is the interactive search screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xtruder/bookmarks-search/internal/session"
)

// Searcher is the part of a session the screen drives.
type Searcher interface {
	Query(text string) []session.DisplayItem
	Select(item session.DisplayItem)
}

// App is the bubbletea model of the search screen.
type App struct {
	searcher Searcher
	keys     KeyMap
	styles   Styles
	total    int

	input    textinput.Model
	items    []session.DisplayItem
	cursor   int
	offset   int
	selected *session.DisplayItem

	width  int
	height int
}

// NewApp creates the search screen. total is the number of indexed
// bookmarks, shown while the query is empty.
func NewApp(searcher Searcher, total int) App {
	input := textinput.New()
	input.Placeholder = "Search bookmarks"
	input.Prompt = "❯ "
	input.CharLimit = 256
	input.Focus()

	styles := DefaultStyles()
	input.PromptStyle = styles.Prompt

	return App{
		searcher: searcher,
		keys:     DefaultKeyMap(),
		styles:   styles,
		total:    total,
		input:    input,
		width:    80,
		height:   24,
	}
}

// Selected returns the item chosen with enter, nil if the user quit.
func (a App) Selected() *session.DisplayItem {
	return a.selected
}

// Items returns the current result list.
func (a App) Items() []session.DisplayItem {
	return a.items
}

// Cursor returns the highlighted result index.
func (a App) Cursor() int {
	return a.cursor
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(msg.Width-4, 10)
		a.clampOffset()
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Select):
			if len(a.items) == 0 {
				return a, nil
			}
			item := a.items[a.cursor]
			a.selected = &item
			a.searcher.Select(item)
			return a, tea.Quit
		case key.Matches(msg, a.keys.Up):
			if a.cursor > 0 {
				a.cursor--
				a.clampOffset()
			}
			return a, nil
		case key.Matches(msg, a.keys.Down):
			if a.cursor < len(a.items)-1 {
				a.cursor++
				a.clampOffset()
			}
			return a, nil
		}
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() != before {
		a.items = a.searcher.Query(a.input.Value())
		a.cursor = 0
		a.offset = 0
	}
	return a, cmd
}

// visibleRows is how many results fit below the input and status lines.
// Each result takes two lines.
func (a App) visibleRows() int {
	return max((a.height-3)/2, 1)
}

func (a *App) clampOffset() {
	rows := a.visibleRows()
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+rows {
		a.offset = a.cursor - rows + 1
	}
}

// View implements tea.Model.
func (a App) View() string {
	var sb strings.Builder

	sb.WriteString(a.input.View())
	sb.WriteString("\n")

	switch {
	case strings.TrimSpace(a.input.Value()) == "":
		sb.WriteString(a.styles.Status.Render(fmt.Sprintf("%d bookmarks indexed", a.total)))
	case len(a.items) == 0:
		sb.WriteString(a.styles.Status.Render("no matches"))
	default:
		sb.WriteString(a.styles.Status.Render(fmt.Sprintf("%d matches", len(a.items))))
	}
	sb.WriteString("\n")

	end := min(a.offset+a.visibleRows(), len(a.items))
	for i := a.offset; i < end; i++ {
		item := a.items[i]

		marker, title := "  ", a.styles.Title
		if i == a.cursor {
			marker, title = "> ", a.styles.Selected
		}

		name := item.Title
		if name == "" {
			name = item.URL
		}
		sb.WriteString(marker)
		sb.WriteString(title.Render(truncate(name, a.width-14)))
		sb.WriteString(" ")
		sb.WriteString(a.styles.Browser.Render("[" + string(item.Browser) + "]"))
		sb.WriteString("\n  ")
		sb.WriteString(a.styles.Description.Render(truncate(item.Description, a.width-4)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
