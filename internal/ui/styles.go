package ui

import (
	"github.com/charmbracelet/lipgloss"

	"setpriority/internal/models"
	"setpriority/internal/priority"
)

// Colors
var (
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#06B6D4") // Cyan
	Success    = lipgloss.Color("#10B981") // Green
	Warning    = lipgloss.Color("#F59E0B") // Amber
	Error      = lipgloss.Color("#EF4444") // Red
	Muted      = lipgloss.Color("#6B7280") // Gray
	Foreground = lipgloss.Color("#F9FAFB") // Light
	Border     = lipgloss.Color("#374151") // Border gray
	Selected   = lipgloss.Color("#4F46E5") // Indigo
)

// Priority colors
var (
	RealtimeColor    = lipgloss.Color("#8B0000") // Dark red
	HighColor        = lipgloss.Color("#FF8C00") // Dark orange
	AboveNormalColor = lipgloss.Color("#FFD700") // Gold
	NormalColor      = lipgloss.Color("#006400") // Dark green
	BelowNormalColor = lipgloss.Color("#008B8B") // Dark cyan
	IdleColor        = lipgloss.Color("#696969") // Dim gray
	SystemAppColor   = lipgloss.Color("#FF0000") // Red
)

// Styles
var (
	// App container
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1).
			MarginBottom(1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Foreground)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	// List items
	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Selected).
				Foreground(Foreground)

	CursorStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	ColumnHeaderStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true).
				Padding(0, 1)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1).
			MarginTop(1)

	StatusTextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(Error)

	// Help bar
	HelpBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Muted text
	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Filter toggles
	CheckboxChecked   = lipgloss.NewStyle().Foreground(Success).Render("[✓]")
	CheckboxUnchecked = lipgloss.NewStyle().Foreground(Muted).Render("[ ]")

	// Dialog box style
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			Width(60)

	WarningDialogStyle = DialogStyle.
				BorderForeground(Warning)

	// Button styles
	ButtonStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Border).
			Padding(0, 2)

	ButtonActiveStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Primary).
				Padding(0, 2).
				Bold(true)

	DangerButtonActiveStyle = ButtonActiveStyle.
				Background(Error)
)

// PriorityColor returns the color of a priority class. Default and unknown
// classes use the regular foreground.
func PriorityColor(c priority.Class) lipgloss.Color {
	switch c {
	case priority.Realtime:
		return RealtimeColor
	case priority.High:
		return HighColor
	case priority.AboveNormal:
		return AboveNormalColor
	case priority.Normal:
		return NormalColor
	case priority.BelowNormal:
		return BelowNormalColor
	case priority.Idle:
		return IdleColor
	default:
		return Foreground
	}
}

// PriorityStyle returns the style of the priority column.
func PriorityStyle(c priority.Class) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(PriorityColor(c))
}

// NameStyle returns the style of the name column; system apps are red.
func NameStyle(e models.Entry) lipgloss.Style {
	if e.IsPlatformOwned() {
		return lipgloss.NewStyle().Foreground(SystemAppColor)
	}
	return lipgloss.NewStyle().Foreground(Foreground)
}

// RenderCheckbox returns a styled checkbox
func RenderCheckbox(checked bool) string {
	if checked {
		return CheckboxChecked
	}
	return CheckboxUnchecked
}

// RenderHelpItem renders a help key-description pair
func RenderHelpItem(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

// RenderButton renders a styled button
func RenderButton(label string, active bool) string {
	if active {
		return ButtonActiveStyle.Render(label)
	}
	return ButtonStyle.Render(label)
}

// RenderDangerButton renders a button for a destructive action
func RenderDangerButton(label string, active bool) string {
	if active {
		return DangerButtonActiveStyle.Render(label)
	}
	return ButtonStyle.Render(label)
}
