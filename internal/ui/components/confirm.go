package components

import (
	"strings"

	"setpriority/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Confirm asks a yes/no question. Cancel is focused when it opens.
type Confirm struct {
	Title   string
	Message string
	Warning bool // Amber border for risky actions
	Yes     bool // Focused button
	Width   int
	Visible bool
}

// NewConfirm creates a hidden confirmation dialog
func NewConfirm() *Confirm {
	return &Confirm{Width: 60}
}

// Show opens the dialog
func (c *Confirm) Show(title, message string, warning bool) {
	c.Title = title
	c.Message = message
	c.Warning = warning
	c.Yes = false
	c.Visible = true
}

// Hide hides the dialog
func (c *Confirm) Hide() {
	c.Visible = false
}

// IsVisible returns whether the dialog is visible
func (c *Confirm) IsVisible() bool {
	return c.Visible
}

// HandleKey processes a key press
func (c *Confirm) HandleKey(msg tea.KeyMsg) Outcome {
	switch msg.String() {
	case "y", "Y":
		return OutcomeConfirmed
	case "n", "N", "esc", "q":
		return OutcomeCancelled
	case "left", "right", "tab", "shift+tab", "h", "l":
		c.Yes = !c.Yes
	case "enter":
		if c.Yes {
			return OutcomeConfirmed
		}
		return OutcomeCancelled
	}
	return OutcomePending
}

// View renders the dialog
func (c *Confirm) View() string {
	if !c.Visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.PanelTitleStyle.Render(c.Title))
	b.WriteString("\n\n")
	b.WriteString(ui.StatusTextStyle.Render(c.Message))
	b.WriteString("\n\n")

	yes := ui.RenderButton("Yes", c.Yes)
	if c.Warning {
		yes = ui.RenderDangerButton("Yes", c.Yes)
	}
	b.WriteString(yes + "  " + ui.RenderButton("No", !c.Yes))
	b.WriteString("\n\n")
	b.WriteString(strings.Join([]string{
		ui.RenderHelpItem("y/n", "answer"),
		ui.RenderHelpItem("Tab", "switch"),
		ui.RenderHelpItem("Enter", "choose"),
	}, "  "))

	style := ui.DialogStyle
	if c.Warning {
		style = ui.WarningDialogStyle
	}
	return style.Width(c.Width).Render(b.String())
}
