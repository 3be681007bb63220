package components

import (
	"os"
	"path/filepath"
	"strings"

	"setpriority/internal/ui"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
)

// Browser lets the operator pick an executable from disk. Only the file
// name is kept.
type Browser struct {
	Selected string
	Width    int
	Visible  bool

	picker filepicker.Model
}

// NewBrowser creates a hidden browser starting in dir, or the working
// directory when dir is empty
func NewBrowser(dir string) *Browser {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".exe", ".EXE"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	if dir == "" {
		dir, _ = os.Getwd()
	}
	fp.CurrentDirectory = dir

	return &Browser{Width: 70, picker: fp}
}

// Show opens the browser and starts reading the directory
func (b *Browser) Show() tea.Cmd {
	b.Selected = ""
	b.Visible = true
	return b.picker.Init()
}

// Hide hides the browser
func (b *Browser) Hide() {
	b.Visible = false
}

// IsVisible returns whether the browser is visible
func (b *Browser) IsVisible() bool {
	return b.Visible
}

// Dir returns the directory being browsed
func (b *Browser) Dir() string {
	return b.picker.CurrentDirectory
}

// Update forwards msg to the picker. It reports OutcomeConfirmed once a
// file is chosen and OutcomeCancelled on Esc.
func (b *Browser) Update(msg tea.Msg) (Outcome, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return OutcomeCancelled, nil
	}

	var cmd tea.Cmd
	b.picker, cmd = b.picker.Update(msg)

	if ok, path := b.picker.DidSelectFile(msg); ok {
		b.Selected = baseName(path)
		return OutcomeConfirmed, cmd
	}
	return OutcomePending, cmd
}

// View renders the browser
func (b *Browser) View() string {
	if !b.Visible {
		return ""
	}

	var s strings.Builder
	s.WriteString(ui.PanelTitleStyle.Render("Select executable"))
	s.WriteString("\n")
	s.WriteString(ui.MutedStyle.Render(b.picker.CurrentDirectory))
	s.WriteString("\n\n")
	s.WriteString(b.picker.View())
	s.WriteString("\n")
	s.WriteString(strings.Join([]string{
		ui.RenderHelpItem("Enter", "open/select"),
		ui.RenderHelpItem("Backspace", "up"),
		ui.RenderHelpItem("Esc", "cancel"),
	}, "  "))

	return ui.DialogStyle.Width(b.Width).Render(s.String())
}

// baseName strips directories using either separator
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		return path[i+1:]
	}
	return filepath.Base(path)
}
