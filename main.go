package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"setpriority/internal/config"
	"setpriority/internal/manager"
	"setpriority/internal/models"
	"setpriority/internal/priority"
	"setpriority/internal/ui"
	"setpriority/internal/ui/components"
	"setpriority/internal/view"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
)

// Screen represents different screens in the app
type Screen int

const (
	ScreenMain Screen = iota
	ScreenAdd         // Add dialog
	ScreenEdit        // Edit dialog
	ScreenConfirm     // Yes/No prompt
	ScreenBrowse      // File picker for the add dialog
	ScreenHelp
	ScreenPreview // Latest snapshot
)

// ConfirmAction is what a Yes in the confirmation dialog does
type ConfirmAction int

const (
	ConfirmDelete ConfirmAction = iota
	ConfirmUnmanage
)

// Model is the main application model
type Model struct {
	svc  *services
	opts view.Options

	// UI Components
	projection *view.Projection
	list       *components.EntryList
	dialog     *components.PriorityDialog
	confirm    *components.Confirm
	browser    *components.Browser
	preview    *components.Preview
	help       help.Model
	helpVP     viewport.Model
	keys       ui.KeyMap

	// State
	screen        Screen
	confirmAction ConfirmAction
	confirmTarget string
	status        string
	statusErr     bool
	width         int
	height        int
}

// Messages
type refreshMsg struct{}

// opDoneMsg reports a finished store mutation
type opDoneMsg struct {
	status string
	name   string // Row to select after the refresh; empty keeps the selection
	err    error
}

func newModel(svc *services) *Model {
	p := svc.projection()
	return &Model{
		svc:        svc,
		opts:       svc.cfg.ViewOptions(),
		projection: p,
		list:       components.NewEntryList(p),
		dialog:     components.NewPriorityDialog(),
		confirm:    components.NewConfirm(),
		browser:    components.NewBrowser(""),
		preview:    components.NewPreview(),
		help:       help.New(),
		keys:       ui.DefaultKeyMap(),
		screen:     ScreenMain,
		status:     "Loading...",
		width:      80,
		height:     24,
	}
}

func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if m.screen == ScreenPreview {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		return m, nil

	case refreshMsg:
		m.refresh(false)
		return m, nil

	case opDoneMsg:
		return m.handleOpDone(msg)
	}

	// Cursor blink and directory listings
	switch m.screen {
	case ScreenAdd:
		return m, m.dialog.Update(msg)
	case ScreenBrowse:
		_, cmd := m.browser.Update(msg)
		return m, cmd
	}
	return m, nil
}

// refresh re-reads the registry and shows the totals
func (m *Model) refresh(preserveSelection bool) {
	if err := m.projection.Refresh(m.opts, preserveSelection); err != nil {
		m.setError(err)
		return
	}
	m.projection.EnsureVisible(m.listRows())
	m.setStatus(m.projection.Totals().Summary())
}

func (m *Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if err := m.projection.Refresh(m.opts, true); err != nil {
		m.setError(err)
		return m, nil
	}
	if msg.name != "" {
		m.projection.SelectName(msg.name)
	}
	m.projection.EnsureVisible(m.listRows())

	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}
	m.setStatus(msg.status)
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.svc.log.Warn("operation failed", zap.Error(err))
	m.status = fmt.Sprintf("Error: %v", err)
	m.statusErr = true
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenAdd, ScreenEdit:
		return m.handleDialogKeys(msg)
	case ScreenConfirm:
		return m.handleConfirmKeys(msg)
	case ScreenBrowse:
		return m.handleBrowseKeys(msg)
	case ScreenPreview:
		return m.handlePreviewKeys(msg)
	case ScreenHelp:
		if key.Matches(msg, m.keys.Escape, m.keys.Help, m.keys.Quit) {
			m.screen = ScreenMain
			return m, nil
		}
		// Forward to viewport for scrolling
		var cmd tea.Cmd
		m.helpVP, cmd = m.helpVP.Update(msg)
		return m, cmd
	}

	return m.handleMainKeys(msg)
}

func (m *Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.screen = ScreenHelp
		m.helpVP = viewport.New(m.width-4, m.height-4)
		m.helpVP.SetContent(m.renderHelp())
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.list.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.list.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		m.list.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.list.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.list.GoToFirst()
	case key.Matches(msg, m.keys.End):
		m.list.GoToLast()

	case key.Matches(msg, m.keys.Add):
		m.screen = ScreenAdd
		return m, m.dialog.ShowAdd()

	case key.Matches(msg, m.keys.Edit):
		return m.handleEdit()

	case key.Matches(msg, m.keys.Delete):
		return m.handleDelete()

	case key.Matches(msg, m.keys.ToggleSystem):
		m.opts.ShowPlatformOwned = !m.opts.ShowPlatformOwned
		m.saveViewOptions()
		m.refresh(true)

	case key.Matches(msg, m.keys.ToggleUnmanaged):
		m.opts.ShowUnmanaged = !m.opts.ShowUnmanaged
		m.saveViewOptions()
		m.refresh(true)

	case key.Matches(msg, m.keys.Refresh):
		m.refresh(true)

	case key.Matches(msg, m.keys.Preview):
		return m.handlePreview()
	}

	return m, nil
}

func (m *Model) saveViewOptions() {
	if err := m.svc.cfg.SaveViewOptions(m.opts); err != nil {
		m.svc.log.Warn("save config failed", zap.Error(err))
	}
}

func (m *Model) handleEdit() (tea.Model, tea.Cmd) {
	e, ok := m.list.Current()
	if !ok {
		m.setStatus("No app selected")
		return m, nil
	}
	m.dialog.ShowEdit(e)
	m.screen = ScreenEdit
	return m, nil
}

// handleDelete checks the selected entry and asks for confirmation
func (m *Model) handleDelete() (tea.Model, tea.Cmd) {
	e, ok := m.list.Current()
	if !ok {
		m.setStatus("No app selected")
		return m, nil
	}
	return m.askDelete(e)
}

func (m *Model) askDelete(e models.Entry) (tea.Model, tea.Cmd) {
	if err := m.svc.manager.CheckRemovable(e.Name); err != nil {
		m.screen = ScreenMain
		m.status = "System app cannot be deleted!"
		m.statusErr = true
		return m, nil
	}

	m.confirmAction = ConfirmDelete
	m.confirmTarget = e.Name
	if e.Managed {
		m.confirm.Show("Delete app", fmt.Sprintf("Delete %q?", e.Name), false)
	} else {
		m.confirm.Show("Delete app",
			fmt.Sprintf("This app is not managed by SetPriority!\nDelete %q anyway?", e.Name), true)
	}
	m.screen = ScreenConfirm
	return m, nil
}

func (m *Model) handleDialogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	outcome, cmd := m.dialog.HandleKey(msg)

	switch outcome {
	case components.OutcomeCancelled:
		m.dialog.Hide()
		m.screen = ScreenMain
		return m, nil

	case components.OutcomeBrowseRequested:
		m.screen = ScreenBrowse
		return m, m.browser.Show()

	case components.OutcomeConfirmed:
		if m.screen == ScreenAdd {
			return m.submitAdd()
		}
		return m.submitEdit()

	case components.OutcomeUnmanageRequested:
		name := m.dialog.Name()
		m.dialog.Hide()
		m.confirmAction = ConfirmUnmanage
		m.confirmTarget = name
		m.confirm.Show("Unmanage app",
			fmt.Sprintf("Stop managing %q?\nIts priority stays in effect.", name), false)
		m.screen = ScreenConfirm
		return m, nil

	case components.OutcomeDeleteRequested:
		e := m.dialog.Entry
		m.dialog.Hide()
		return m.askDelete(e)
	}

	return m, cmd
}

// submitAdd validates the form, keeping the dialog open on bad input
func (m *Model) submitAdd() (tea.Model, tea.Cmd) {
	in := manager.FormInput{Name: m.dialog.Name(), Priority: m.dialog.Choice()}
	in, err := manager.Validate(in, m.projection.Rows())
	switch {
	case errors.Is(err, manager.ErrEmptyName):
		m.dialog.Err = "Please enter an app name"
		return m, nil
	case errors.Is(err, manager.ErrDuplicate):
		m.dialog.Err = fmt.Sprintf("App %q already exists", manager.NormalizeName(m.dialog.Name()))
		return m, nil
	case err != nil:
		m.dialog.Err = err.Error()
		return m, nil
	}

	m.dialog.Hide()
	m.screen = ScreenMain
	visible := m.projection.Rows()
	mgr := m.svc.manager

	return m, func() tea.Msg {
		name, err := mgr.Add(in, visible)
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{
			name:   name,
			status: fmt.Sprintf("Added app %q and set priority to %s", name, in.Priority),
		}
	}
}

func (m *Model) submitEdit() (tea.Model, tea.Cmd) {
	name := m.dialog.Name()
	choice := m.dialog.Choice()
	m.dialog.Hide()
	m.screen = ScreenMain
	mgr := m.svc.manager
	store := m.svc.store

	return m, func() tea.Msg {
		if err := mgr.Edit(name, choice); err != nil {
			return opDoneMsg{err: err}
		}
		// Report what the registry now holds
		stored, _ := store.Get(name)
		return opDoneMsg{status: fmt.Sprintf("Changed app %q and set priority to %s", name, stored)}
	}
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	outcome := m.confirm.HandleKey(msg)
	if !outcome.Done() {
		return m, nil
	}

	m.confirm.Hide()
	m.screen = ScreenMain
	if outcome != components.OutcomeConfirmed {
		return m, nil
	}

	name := m.confirmTarget
	mgr := m.svc.manager

	switch m.confirmAction {
	case ConfirmUnmanage:
		return m, func() tea.Msg {
			if err := mgr.Unmanage(name); err != nil {
				return opDoneMsg{err: err}
			}
			return opDoneMsg{status: fmt.Sprintf("Unmanaged %q", name)}
		}
	default:
		return m, func() tea.Msg {
			if _, err := mgr.Remove(name); err != nil {
				return opDoneMsg{err: err}
			}
			return opDoneMsg{status: fmt.Sprintf("Deleted app %q", name)}
		}
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	outcome, cmd := m.browser.Update(msg)
	switch outcome {
	case components.OutcomeConfirmed:
		m.dialog.SetName(m.browser.Selected)
		fallthrough
	case components.OutcomeCancelled:
		m.browser.Hide()
		m.screen = ScreenAdd
	}
	return m, cmd
}

// handlePreview shows the most recent snapshot
func (m *Model) handlePreview() (tea.Model, tea.Cmd) {
	files, err := m.svc.archive.List()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if len(files) == 0 {
		m.setStatus("No snapshots yet")
		return m, nil
	}
	if err := m.preview.LoadFile(files[0]); err != nil {
		m.setError(err)
		return m, nil
	}
	m.preview.SetSize(m.width-2, m.height-4)
	m.screen = ScreenPreview
	return m, nil
}

func (m *Model) handlePreviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape, m.keys.Quit, m.keys.Preview):
		m.screen = ScreenMain
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.preview.GoToTop()
		return m, nil
	case key.Matches(msg, m.keys.End):
		m.preview.GoToBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

// listRows is the number of rows the list can show
func (m *Model) listRows() int {
	return max(m.list.Height-4, 1)
}

func (m *Model) updateSizes() {
	m.list.Width = max(m.width-4, 30)
	m.list.Height = max(m.height-8, 5)
	m.help.Width = m.width
	if m.screen == ScreenHelp {
		m.helpVP.Width = m.width - 4
		m.helpVP.Height = m.height - 4
	}
	if m.screen == ScreenPreview {
		m.preview.SetSize(m.width-2, m.height-4)
	}
	m.projection.EnsureVisible(m.listRows())
}

func (m *Model) View() string {
	switch m.screen {
	case ScreenAdd, ScreenEdit:
		return m.renderOverlay(m.dialog.View())
	case ScreenConfirm:
		return m.renderOverlay(m.confirm.View())
	case ScreenBrowse:
		return m.renderOverlay(m.browser.View())
	case ScreenPreview:
		return ui.AppStyle.Render(m.preview.View())
	default:
		return m.renderMain()
	}
}

func (m *Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.screen == ScreenHelp {
		b.WriteString(m.helpVP.View())
	} else {
		b.WriteString(m.list.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return ui.AppStyle.Render(b.String())
}

// renderOverlay centers a dialog on the screen
func (m *Model) renderOverlay(dialog string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m *Model) renderHeader() string {
	title := ui.TitleStyle.Render("SetPriority")
	ver := ui.VersionStyle.Render("v" + version)
	backend := ui.MutedStyle.Render("  [" + m.svc.cfg.Backend + "]")
	filters := fmt.Sprintf("   %s System apps  %s Unmanaged apps",
		ui.RenderCheckbox(m.opts.ShowPlatformOwned),
		ui.RenderCheckbox(m.opts.ShowUnmanaged),
	)

	return ui.HeaderStyle.Render(title + "  " + ver + backend + filters)
}

func (m *Model) renderStatusBar() string {
	if m.statusErr {
		return ui.StatusBarStyle.Render(ui.ErrorTextStyle.Render(m.status))
	}
	return ui.StatusBarStyle.Render(ui.StatusTextStyle.Render(m.status))
}

func (m *Model) renderHelpBar() string {
	if m.screen == ScreenHelp {
		return ui.HelpBarStyle.Render(ui.RenderHelpItem("esc", "back"))
	}
	return ui.HelpBarStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(ui.PanelTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")

	b.WriteString(ui.MutedStyle.Render("  ─── Priority colors ───"))
	b.WriteString("\n")
	for _, c := range priority.Choices {
		if c.IsDefault() {
			continue
		}
		b.WriteString("  " + ui.PriorityStyle(c).Render(c.ChoiceLabel()) + "\n")
	}
	b.WriteString("  " + ui.NameStyle(models.Entry{Origin: models.PlatformOwned}).Render("System app names") + "\n")

	b.WriteString("\n")
	b.WriteString(ui.MutedStyle.Render("  ─── Snapshots ───"))
	b.WriteString("\n")
	b.WriteString(ui.HelpDescStyle.Render("  Every delete is saved to " + m.svc.archive.Dir()))
	b.WriteString("\n")
	b.WriteString(ui.HelpDescStyle.Render("  Restore with: setpriority import <file>"))
	b.WriteString("\n")

	return b.String()
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "setpriority - per-executable CPU priority manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: setpriority [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list [--all]     Print configured apps (--all ignores the filters)")
	fmt.Fprintln(w, "  export <file>    Write a YAML snapshot")
	fmt.Fprintln(w, "  diff <file>      Compare a snapshot with the registry")
	fmt.Fprintln(w, "  import <file>    Restore a snapshot")
	fmt.Fprintln(w, "  history          Show recent snapshots")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -v, --version    Show version")
	fmt.Fprintln(w, "  -h, --help       Show this help")
	fmt.Fprintln(w, "  -d, --debug      Debug logging to the log file")
	fmt.Fprintln(w, "      --hive FILE  Use a YAML hive file instead of the registry")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run without a command to start the TUI.")
}

// parseArgs splits flags from the command and its arguments
func parseArgs(args []string) (opts options, rest []string, err error) {
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-d", "--debug":
			opts.debug = true
		case "--hive":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--hive needs a file")
			}
			i++
			opts.hivePath = args[i]
		default:
			if v, ok := strings.CutPrefix(arg, "--hive="); ok {
				opts.hivePath = v
				continue
			}
			rest = append(rest, arg)
		}
	}
	return opts, rest, nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	for _, arg := range args {
		switch arg {
		case "-v", "--version", "version":
			fmt.Printf("setpriority %s (built %s)\n", version, buildTime)
			return 0
		case "-h", "--help", "help":
			printUsage(os.Stdout)
			return 0
		}
	}

	opts, rest, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(config.ConfigPath(), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	svc, err := openServices(cfg, opts.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer svc.close()

	if len(rest) > 0 {
		if err := runCommand(svc, rest[0], rest[1:], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if errors.Is(err, errUsage) {
				return 2
			}
			return 1
		}
		return 0
	}

	p := tea.NewProgram(newModel(svc), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
