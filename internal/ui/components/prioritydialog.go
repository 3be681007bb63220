package components

import (
	"fmt"
	"strings"

	"setpriority/internal/models"
	"setpriority/internal/priority"
	"setpriority/internal/ui"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DialogMode selects between adding a new entry and editing one
type DialogMode int

const (
	ModeAdd DialogMode = iota
	ModeEdit
)

type dialogFocus int

const (
	focusName dialogFocus = iota
	focusChoices
)

// PriorityDialog asks for an executable name (add only) and a priority
type PriorityDialog struct {
	Mode    DialogMode
	Entry   models.Entry // Edit target
	Cursor  int          // Index into priority.Choices
	Width   int
	Visible bool
	Err     string // Validation message shown under the name

	input textinput.Model
	focus dialogFocus
	keys  ui.KeyMap
}

// NewPriorityDialog creates a hidden dialog
func NewPriorityDialog() *PriorityDialog {
	ti := textinput.New()
	ti.Placeholder = "game.exe"
	ti.CharLimit = 260
	ti.Width = 40
	ti.Prompt = "> "

	return &PriorityDialog{
		Width: 60,
		input: ti,
		keys:  ui.DefaultKeyMap(),
	}
}

// ShowAdd opens the dialog for a new entry
func (d *PriorityDialog) ShowAdd() tea.Cmd {
	d.Mode = ModeAdd
	d.Entry = models.Entry{}
	d.Cursor = priority.ChoiceIndex(priority.Default)
	d.Err = ""
	d.input.SetValue("")
	d.focus = focusName
	d.Visible = true
	return d.input.Focus()
}

// ShowEdit opens the dialog for an existing entry
func (d *PriorityDialog) ShowEdit(e models.Entry) {
	d.Mode = ModeEdit
	d.Entry = e
	d.Cursor = priority.ChoiceIndex(e.Priority) // unknown codes land on Default
	d.Err = ""
	d.input.Blur()
	d.focus = focusChoices
	d.Visible = true
}

// Hide hides the dialog
func (d *PriorityDialog) Hide() {
	d.Visible = false
	d.input.Blur()
}

// IsVisible returns whether the dialog is visible
func (d *PriorityDialog) IsVisible() bool {
	return d.Visible
}

// SetName fills the name field, e.g. from the file browser
func (d *PriorityDialog) SetName(name string) {
	d.input.SetValue(name)
	d.input.CursorEnd()
}

// Name returns the entered name, or the edited entry's name
func (d *PriorityDialog) Name() string {
	if d.Mode == ModeEdit {
		return d.Entry.Name
	}
	return d.input.Value()
}

// Choice returns the selected priority
func (d *PriorityDialog) Choice() priority.Class {
	if d.Cursor < 0 || d.Cursor >= len(priority.Choices) {
		return priority.Default
	}
	return priority.Choices[d.Cursor]
}

// MoveUp selects the previous priority
func (d *PriorityDialog) MoveUp() {
	if d.Cursor > 0 {
		d.Cursor--
	}
}

// MoveDown selects the next priority
func (d *PriorityDialog) MoveDown() {
	if d.Cursor < len(priority.Choices)-1 {
		d.Cursor++
	}
}

// HandleKey processes a key and reports what the operator asked for
func (d *PriorityDialog) HandleKey(msg tea.KeyMsg) (Outcome, tea.Cmd) {
	switch {
	case key.Matches(msg, d.keys.Escape):
		return OutcomeCancelled, nil
	case key.Matches(msg, d.keys.Enter):
		return OutcomeConfirmed, nil
	case key.Matches(msg, d.keys.Tab) && d.Mode == ModeAdd:
		return OutcomePending, d.toggleFocus()
	case key.Matches(msg, d.keys.Browse) && d.Mode == ModeAdd:
		return OutcomeBrowseRequested, nil
	}

	if d.Mode == ModeEdit {
		switch {
		case key.Matches(msg, d.keys.Unmanage) && d.Entry.Managed:
			return OutcomeUnmanageRequested, nil
		case key.Matches(msg, d.keys.Delete):
			return OutcomeDeleteRequested, nil
		}
	}

	if d.focus == focusName {
		// Up/down still pick a priority while typing
		switch msg.Type {
		case tea.KeyUp:
			d.MoveUp()
			return OutcomePending, nil
		case tea.KeyDown:
			d.MoveDown()
			return OutcomePending, nil
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		d.Err = ""
		return OutcomePending, cmd
	}

	switch {
	case key.Matches(msg, d.keys.Up):
		d.MoveUp()
	case key.Matches(msg, d.keys.Down):
		d.MoveDown()
	case key.Matches(msg, d.keys.Home):
		d.Cursor = 0
	case key.Matches(msg, d.keys.End):
		d.Cursor = len(priority.Choices) - 1
	}
	return OutcomePending, nil
}

// Update forwards non-key messages (cursor blink) to the text input
func (d *PriorityDialog) Update(msg tea.Msg) tea.Cmd {
	if d.focus != focusName {
		return nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

func (d *PriorityDialog) toggleFocus() tea.Cmd {
	if d.focus == focusName {
		d.focus = focusChoices
		d.input.Blur()
		return nil
	}
	d.focus = focusName
	return d.input.Focus()
}

// View renders the dialog
func (d *PriorityDialog) View() string {
	if !d.Visible {
		return ""
	}

	var b strings.Builder

	if d.Mode == ModeAdd {
		b.WriteString(ui.PanelTitleStyle.Render("Add app"))
		b.WriteString("\n\n")
		b.WriteString(ui.MutedStyle.Render("Executable name:"))
		b.WriteString("\n")
		b.WriteString(d.input.View())
		b.WriteString("\n")
		if d.Err != "" {
			b.WriteString(ui.ErrorTextStyle.Render(d.Err))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(ui.PanelTitleStyle.Render(fmt.Sprintf("Edit %s", d.Entry.Name)))
		b.WriteString("\n")
		if !d.Entry.Managed {
			b.WriteString(ui.MutedStyle.Render("Not managed by SetPriority"))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(ui.MutedStyle.Render("CPU priority:"))
	b.WriteString("\n")
	for i, c := range priority.Choices {
		label := c.ChoiceLabel()
		switch {
		case i == d.Cursor && d.focus == focusChoices:
			b.WriteString(ui.SelectedItemStyle.Width(d.Width - 8).Render("> " + label))
		case i == d.Cursor:
			b.WriteString(ui.CursorStyle.Render("> ") + ui.PriorityStyle(c).Render(label))
		default:
			b.WriteString("  " + ui.PriorityStyle(c).Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(d.renderHelp())

	return ui.DialogStyle.Width(d.Width).Render(b.String())
}

// renderHelp renders the help bar
func (d *PriorityDialog) renderHelp() string {
	items := []string{ui.RenderHelpItem("Up/Down", "priority")}

	if d.Mode == ModeAdd {
		items = append(items, ui.RenderHelpItem("Tab", "field"))
		items = append(items, ui.RenderHelpItem("Ctrl+O", "browse"))
	} else {
		if d.Entry.Managed {
			items = append(items, ui.RenderHelpItem("Ctrl+U", "unmanage"))
		}
		items = append(items, ui.RenderHelpItem("Del", "delete"))
	}

	items = append(items, ui.RenderHelpItem("Enter", "OK"))
	items = append(items, ui.RenderHelpItem("Esc", "cancel"))

	return strings.Join(items, "  ")
}
