package components

import (
	"fmt"
	"strings"

	"setpriority/internal/models"
	"setpriority/internal/ui"
	"setpriority/internal/view"

	"github.com/charmbracelet/lipgloss"
)

// EntryList shows the projection's rows with a name and a priority column
type EntryList struct {
	Projection *view.Projection
	Width      int
	Height     int
	Focused    bool
	Title      string
}

// NewEntryList creates a list over p
func NewEntryList(p *view.Projection) *EntryList {
	return &EntryList{
		Projection: p,
		Width:      60,
		Height:     15,
		Focused:    true,
		Title:      "Applications",
	}
}

// visibleHeight is the number of rows that fit below the title and header
func (l *EntryList) visibleHeight() int {
	h := l.Height - 4
	if h < 1 {
		return 1
	}
	return h
}

func (l *EntryList) cursor() int {
	return l.Projection.SelectedIndex()
}

func (l *EntryList) moveTo(i int) {
	n := l.Projection.Len()
	if n == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	l.Projection.Select(i)
	l.Projection.EnsureVisible(l.visibleHeight())
}

// MoveUp moves the selection up; with nothing selected it selects the first row
func (l *EntryList) MoveUp() {
	if l.cursor() < 0 {
		l.moveTo(0)
		return
	}
	l.moveTo(l.cursor() - 1)
}

// MoveDown moves the selection down
func (l *EntryList) MoveDown() {
	l.moveTo(l.cursor() + 1)
}

// PageUp moves the selection up by a page
func (l *EntryList) PageUp() {
	l.moveTo(l.cursor() - l.visibleHeight())
}

// PageDown moves the selection down by a page
func (l *EntryList) PageDown() {
	if l.cursor() < 0 {
		l.moveTo(l.visibleHeight() - 1)
		return
	}
	l.moveTo(l.cursor() + l.visibleHeight())
}

// GoToFirst selects the first row
func (l *EntryList) GoToFirst() {
	l.moveTo(0)
}

// GoToLast selects the last row
func (l *EntryList) GoToLast() {
	l.moveTo(l.Projection.Len() - 1)
}

// Current returns the selected entry
func (l *EntryList) Current() (models.Entry, bool) {
	return l.Projection.Selected()
}

// View renders the list
func (l *EntryList) View() string {
	var b strings.Builder
	rows := l.Projection.Rows()

	title := l.Title
	if len(rows) > 0 {
		title = fmt.Sprintf("%s (%d)", l.Title, len(rows))
	}
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.ColumnHeaderStyle.Render(l.columns("Name", "Priority")))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(ui.MutedStyle.Render("  No apps to show"))
		return l.wrapInPanel(b.String())
	}

	visible := l.visibleHeight()
	start := l.Projection.Offset()
	end := min(start+visible, len(rows))

	if start > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	selected := l.cursor()
	for i := start; i < end; i++ {
		b.WriteString(l.renderRow(rows[i], i == selected))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end < len(rows) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	return l.wrapInPanel(b.String())
}

func (l *EntryList) nameWidth() int {
	w := l.Width - 22
	if w < 12 {
		return 12
	}
	return w
}

func (l *EntryList) columns(name, prio string) string {
	return fmt.Sprintf("%-*s %s", l.nameWidth(), truncate(name, l.nameWidth()), prio)
}

// renderRow renders a single entry
func (l *EntryList) renderRow(e models.Entry, isCursor bool) string {
	if isCursor && l.Focused {
		return ui.SelectedItemStyle.Width(l.Width - 4).Render(l.columns(e.Name, e.PriorityLabel()))
	}

	name := ui.NameStyle(e).Render(fmt.Sprintf("%-*s", l.nameWidth(), truncate(e.Name, l.nameWidth())))
	prio := ui.PriorityStyle(e.Priority).Render(e.PriorityLabel())
	return ui.ItemStyle.Render(name + " " + prio)
}

// wrapInPanel wraps content in a panel border
func (l *EntryList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Height(l.Height).Render(content)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width || width < 4 {
		return s
	}
	return s[:width-3] + "..."
}
