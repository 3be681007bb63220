package components

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"setpriority/internal/ui"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Preview shows a snapshot file or a snapshot diff in a scrollable viewport
type Preview struct {
	viewport    viewport.Model
	highlighter *ui.Highlighter

	Title      string
	Subtitle   string
	TotalLines int

	Width  int
	Height int

	lineNumStyle lipgloss.Style
	headerStyle  lipgloss.Style
	infoStyle    lipgloss.Style
	borderStyle  lipgloss.Style
}

// NewPreview creates an empty preview
func NewPreview() *Preview {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &Preview{
		viewport:    vp,
		highlighter: ui.NewHighlighter(),
		Width:       80,
		Height:      20,
		lineNumStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")).
			Width(5).
			Align(lipgloss.Right),
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89b4fa")),
		infoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")),
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#89b4fa")).
			Padding(0, 1),
	}
}

// SetSize updates the viewport dimensions
func (p *Preview) SetSize(width, height int) {
	p.Width = width
	p.Height = height

	// Account for header (3 lines) and border (2 lines)
	p.viewport.Height = max(height-5, 5)
	p.viewport.Width = max(width-4, 20)
}

// LoadFile shows a snapshot or config file with syntax highlighting
func (p *Preview) LoadFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	var b strings.Builder
	for i, line := range lines {
		lineNum := p.lineNumStyle.Render(fmt.Sprintf("%d", i+1))
		b.WriteString(lineNum + " │ " + p.highlighter.HighlightLine(line, path))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}

	p.Title = filepath.Base(path)
	p.Subtitle = fmt.Sprintf("%s  %s  %d lines", ui.GetFileType(path), humanize.Bytes(uint64(info.Size())), len(lines))
	p.TotalLines = len(lines)
	p.viewport.SetContent(b.String())
	p.viewport.GotoTop()
	return nil
}

// SetDiff shows a unified diff between the live configuration and a snapshot
func (p *Preview) SetDiff(title, summary, unified string) {
	p.Title = title
	p.Subtitle = summary
	if unified == "" {
		unified = "  (no entries)\n"
	}
	p.TotalLines = strings.Count(unified, "\n")
	p.viewport.SetContent(p.highlighter.HighlightDiff(unified))
	p.viewport.GotoTop()
}

// Update handles messages for viewport scrolling
func (p *Preview) Update(msg tea.Msg) (*Preview, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the preview
func (p *Preview) View() string {
	var b strings.Builder

	b.WriteString(p.headerStyle.Render(p.Title) + "\n")
	b.WriteString(p.infoStyle.Render(p.Subtitle) + "\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color("#313244")).
		Render(strings.Repeat("─", max(p.Width-4, 1))) + "\n")

	b.WriteString(p.viewport.View())

	if p.TotalLines > p.viewport.Height {
		scrollInfo := fmt.Sprintf("─── %.0f%% ───", p.viewport.ScrollPercent()*100)
		b.WriteString("\n" + p.infoStyle.Render(scrollInfo))
	}

	return p.borderStyle.Width(p.Width).Height(p.Height).Render(b.String())
}

// GoToTop goes to the beginning
func (p *Preview) GoToTop() {
	p.viewport.GotoTop()
}

// GoToBottom goes to the end
func (p *Preview) GoToBottom() {
	p.viewport.GotoBottom()
}

// AtTop reports whether the viewport shows the first line
func (p *Preview) AtTop() bool {
	return p.viewport.AtTop()
}
