// Package picker is a small bubbletea list for choosing one of several
// groups, bookmarks or import modes.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Item is one choice in the list.
type Item struct {
	Title  string
	Detail string
}

// Picker is a simple TUI for selecting one item.
type Picker struct {
	title     string
	items     []Item
	keys      KeyMap
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker showing items under title.
func New(title string, items []Item) Picker {
	return Picker{
		title:  title,
		items:  items,
		keys:   DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

// WithDimensions returns the picker sized to width x height.
func (p Picker) WithDimensions(width, height int) Picker {
	p.width = width
	p.height = height
	return p
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Cancel):
			p.cancelled = true
			return p, tea.Quit
		case key.Matches(msg, p.keys.Select):
			if len(p.items) > 0 {
				p.selected = true
				return p, tea.Quit
			}
		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.items)-1 {
				p.cursor++
			}
		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		}
	}

	return p, nil
}

// maxVisible is how many two-line items fit below the header and above the help line.
func (p Picker) maxVisible() int {
	n := (p.height - 4) / 2
	if n < 1 {
		return 1
	}
	return n
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", p.title, len(p.items))))
	b.WriteString("\n\n")

	start, end := visibleRange(p.maxVisible(), p.cursor, len(p.items))
	for i := start; i < end; i++ {
		item := p.items[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		b.WriteString(cursor + style.Render(truncateText(item.Title, p.width-2)) + "\n")
		if item.Detail != "" {
			b.WriteString("   " + detailStyle.Render(truncateText(item.Detail, p.width-3)) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(p.helpLine()))

	return b.String()
}

func (p Picker) helpLine() string {
	var parts []string
	for _, binding := range p.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// Selected returns the index of the chosen item, or false if cancelled.
func (p Picker) Selected() (int, bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.items) {
		return -1, false
	}
	return p.cursor, true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// Run shows the picker on the terminal and returns the chosen index, or
// false when the user cancels.
func Run(title string, items []Item) (int, bool, error) {
	program := tea.NewProgram(New(title, items))
	finalModel, err := program.Run()
	if err != nil {
		return -1, false, err
	}
	idx, ok := finalModel.(Picker).Selected()
	return idx, ok, nil
}
