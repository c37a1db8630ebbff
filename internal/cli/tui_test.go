package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pyprac/profilesvg/pkg/profile"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m KeyListModel, keys ...string) (KeyListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(KeyListModel)
	}
	return m, cmd
}

var testEntries = []profile.KeyValue{
	{Key: "classRoll", Value: "42"},
	{Key: "classSec", Value: "B"},
	{Key: "fullName", Value: "Ann Lee"},
	{Key: "stuEmail", Value: "ann@example.com"},
}

func TestKeyListModelNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"down", []string{"down"}, 1},
		{"vim keys", []string{"j", "j", "k"}, 1},
		{"stops at top", []string{"up", "up"}, 0},
		{"stops at bottom", []string{"down", "down", "down", "down", "down"}, 3},
		{"last", []string{"G"}, 3},
		{"first", []string{"G", "g"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := press(NewKeyListModel(testEntries), tt.keys...)
			if m.Cursor != tt.want {
				t.Errorf("Cursor = %d, want %d", m.Cursor, tt.want)
			}
			if m.Selected != nil {
				t.Error("Selected set without enter")
			}
		})
	}
}

func TestKeyListModelSelect(t *testing.T) {
	m, cmd := press(NewKeyListModel(testEntries), "down", "down", "enter")
	if m.Selected == nil || m.Selected.Key != "fullName" || m.Selected.Value != "Ann Lee" {
		t.Fatalf("Selected = %+v, want fullName", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}

	m, cmd = press(NewKeyListModel(testEntries), "q")
	if m.Selected != nil || cmd == nil {
		t.Errorf("q: Selected = %+v, cmd = %v, want nil selection and quit", m.Selected, cmd)
	}

	m, cmd = press(NewKeyListModel(nil), "enter")
	if m.Selected != nil || cmd == nil {
		t.Error("enter on an empty list should quit without a selection")
	}
}

func TestKeyListModelScroll(t *testing.T) {
	m := NewKeyListModel(testEntries)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 4})
	m = next.(KeyListModel)
	if m.Height != 3 || m.Width != 60 {
		t.Fatalf("Height, Width = %d, %d, want minimum 3, 60", m.Height, m.Width)
	}

	m.Height = 2
	m, _ = press(m, "down", "down", "down")
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
	m, _ = press(m, "up", "up", "up")
	if m.Offset != 0 || m.Cursor != 0 {
		t.Errorf("Offset, Cursor = %d, %d, want 0, 0", m.Offset, m.Cursor)
	}

	// Shrinking the window keeps the cursor on screen.
	m, _ = press(m, "G")
	m.Height = 4
	m.Offset = 0
	next, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 1})
	m = next.(KeyListModel)
	if m.Offset != 1 {
		t.Errorf("Offset after resize = %d, want 1", m.Offset)
	}
}

func TestKeyListModelView(t *testing.T) {
	long := strings.Repeat("x", 60)
	entries := append([]profile.KeyValue{}, testEntries...)
	entries[1].Value = long

	m, _ := press(NewKeyListModel(entries), "down")
	view := m.View()

	for _, want := range []string{"Profile Store", "classSec", "Ann Lee", "classSec [2/4]", "▸", long} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	if empty := NewKeyListModel(nil).View(); !strings.Contains(empty, "(empty)") {
		t.Errorf("empty View() = %q", empty)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"two\n  lines", 20, "two lines"},
		{"abcdefghij", 5, "abcd…"},
		{"ääääää", 4, "äää…"},
	}
	for _, tt := range tests {
		if got := preview(tt.in, tt.n); got != tt.want {
			t.Errorf("preview(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
