package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nkapoor/mathex/internal/ui/theme"
)

// CheckItem is one toggleable entry in a CheckList.
type CheckItem struct {
	Label   string
	Checked bool
}

// CheckList is a multi-select list toggled with space. It only reacts
// to input while focused, so several lists can share a screen.
type CheckList struct {
	Items   []CheckItem
	Cursor  int
	Focused bool
}

// NewCheckList creates a check list with the given labels, checking
// the labels listed in checked.
func NewCheckList(labels []string, checked ...string) CheckList {
	on := make(map[string]bool, len(checked))
	for _, c := range checked {
		on[c] = true
	}
	items := make([]CheckItem, len(labels))
	for i, l := range labels {
		items[i] = CheckItem{Label: l, Checked: on[l]}
	}
	return CheckList{Items: items}
}

// Update handles cursor movement and toggling while focused.
func (c CheckList) Update(msg tea.Msg) (CheckList, tea.Cmd) {
	if !c.Focused {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Cursor >= 0 && c.Cursor < len(c.Items) {
			c.Items[c.Cursor].Checked = !c.Items[c.Cursor].Checked
		}
	}
	return c, nil
}

// CheckedLabels returns the labels of all checked items, in order.
func (c CheckList) CheckedLabels() []string {
	var out []string
	for _, item := range c.Items {
		if item.Checked {
			out = append(out, item.Label)
		}
	}
	return out
}

// View renders the check list.
func (c CheckList) View() string {
	var s string
	for i, item := range c.Items {
		box := "[ ]"
		if item.Checked {
			box = "[x]"
		}
		line := box + " " + item.Label

		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if c.Focused && i == c.Cursor {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			prefix = "▸ "
		}
		s += style.Render(prefix+line) + "\n"
	}
	return s
}
