package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pyprac/profilesvg/pkg/profile"
)

// chromeLines is the number of view lines outside the table body.
const chromeLines = 10

var (
	styleCursorRow = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleDetail    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(colorDim).Foreground(colorWhite)
)

// KeyListModel is the bubbletea model behind "store browse". It lists store
// entries, shows the full value of the entry under the cursor, and quits
// with Selected set when enter is pressed.
type KeyListModel struct {
	Entries  []profile.KeyValue
	Cursor   int
	Selected *profile.KeyValue

	// Height is the number of table rows shown; Offset is the first one.
	Height int
	Offset int
	Width  int
}

// NewKeyListModel creates a browser over entries.
func NewKeyListModel(entries []profile.KeyValue) KeyListModel {
	return KeyListModel{Entries: entries, Height: 12, Width: 80}
}

func (m KeyListModel) Init() tea.Cmd { return nil }

func (m KeyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = max(msg.Height-chromeLines, 3)
		m.moveTo(m.Cursor)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if len(m.Entries) > 0 {
				e := m.Entries[m.Cursor]
				m.Selected = &e
			}
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.Cursor - 1)
		case "down", "j":
			m.moveTo(m.Cursor + 1)
		case "pgup":
			m.moveTo(m.Cursor - m.Height)
		case "pgdown":
			m.moveTo(m.Cursor + m.Height)
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.Entries) - 1)
		}
	}
	return m, nil
}

// moveTo places the cursor at i, clamped to the entries, and scrolls so the
// cursor stays visible.
func (m *KeyListModel) moveTo(i int) {
	m.Cursor = max(min(i, len(m.Entries)-1), 0)
	switch {
	case m.Cursor < m.Offset:
		m.Offset = m.Cursor
	case m.Cursor >= m.Offset+m.Height:
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m KeyListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Profile Store"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ move  g/G first/last  ⏎ print value  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(StyleDim.Render("  (empty)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Entries))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		marker := " "
		if i == m.Cursor {
			marker = "▸"
		}
		rows = append(rows, []string{marker, m.Entries[i].Key, preview(m.Entries[i].Value, 40)})
	}
	t := newTable([]string{"", "Key", "Value"}, rows, func(row, col int) lipgloss.Style {
		switch {
		case m.Offset+row == m.Cursor:
			return styleCursorRow
		case col == 2:
			return StyleDim
		}
		return lipgloss.NewStyle()
	})
	b.WriteString(t.Render())
	b.WriteString("\n")

	cur := m.Entries[m.Cursor]
	b.WriteString(styleDetail.Width(max(m.Width-2, 20)).Render(cur.Value))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s [%d/%d]", cur.Key, m.Cursor+1, len(m.Entries))))
	return b.String()
}
