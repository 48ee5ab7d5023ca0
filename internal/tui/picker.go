// Package tui implements the interactive window picker: a filterable window
// list followed by a placement form, used by the pick subcommand.
package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/halvard/spyglass/internal/layout"
	"github.com/halvard/spyglass/internal/resolve"
)

// Result is the outcome of a picker session. Accepted is false when the user
// backed out at any stage.
type Result struct {
	Window   resolve.WindowDescriptor
	Preset   layout.Preset
	Screen   resolve.ScreenSelector
	Accepted bool
}

// windowItem adapts a window descriptor to the list widget.
type windowItem struct {
	win resolve.WindowDescriptor
}

func (i windowItem) Title() string { return i.win.App }

func (i windowItem) Description() string {
	desc := i.win.Title
	if desc == "" {
		desc = fmt.Sprintf("window %d", i.win.ID)
	}
	if i.win.IsMinimized {
		desc += " (minimized)"
	}
	return desc
}

func (i windowItem) FilterValue() string { return i.win.App + " " + i.win.Title }

type phase int

const (
	phasePickWindow phase = iota
	phasePickPlacement
)

// model is the root bubbletea model for the picker.
type model struct {
	list    list.Model
	form    *huh.Form
	screens []resolve.ScreenDescriptor

	phase   phase
	fPreset string
	fScreen string

	result Result
	width  int
	height int
}

func newModel(windows []resolve.WindowDescriptor, screens []resolve.ScreenDescriptor) model {
	items := make([]list.Item, 0, len(windows))
	for _, w := range windows {
		items = append(items, windowItem{win: w})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(items, delegate, 0, 0)
	l.Title = "Pick a window"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)
	l.KeyMap.Quit.SetEnabled(false)

	return model{
		list:    l,
		screens: screens,
		phase:   phasePickWindow,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-1)
	}

	switch m.phase {
	case phasePickWindow:
		return m.updatePickWindow(msg)
	case phasePickPlacement:
		return m.updatePickPlacement(msg)
	}
	return m, nil
}

func (m model) updatePickWindow(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch km.String() {
		case "q", "esc":
			return m, tea.Quit
		case "enter":
			item, ok := m.list.SelectedItem().(windowItem)
			if !ok {
				return m, nil
			}
			m.result.Window = item.win
			m.startPlacementForm()
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) updatePickPlacement(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		// Back to the window list.
		m.phase = phasePickWindow
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		preset, err := layout.ParsePreset(m.fPreset)
		if err != nil {
			// Options come from Presets(), so this only happens if the
			// form was tampered with; treat it as a cancel.
			return m, tea.Quit
		}
		m.result.Preset = preset
		m.result.Screen = parseScreenChoice(m.fScreen)
		m.result.Accepted = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m *model) startPlacementForm() {
	m.phase = phasePickPlacement
	m.fPreset = string(layout.PresetMaximize)
	m.fScreen = string(resolve.RelSame)

	presetOpts := make([]huh.Option[string], 0, len(layout.Presets()))
	for _, p := range layout.Presets() {
		presetOpts = append(presetOpts, huh.NewOption(string(p), string(p)))
	}

	screenOpts := []huh.Option[string]{
		huh.NewOption("current screen", string(resolve.RelSame)),
		huh.NewOption("primary screen", string(resolve.RelPrimary)),
		huh.NewOption("next screen", string(resolve.RelNext)),
		huh.NewOption("previous screen", string(resolve.RelPrevious)),
	}
	for _, sc := range m.screens {
		label := fmt.Sprintf("screen %d (%s)", sc.Index, sc.Name)
		screenOpts = append(screenOpts, huh.NewOption(label, strconv.Itoa(sc.Index)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("preset").
				Title("Layout").
				Description("Where to place "+m.result.Window.App).
				Options(presetOpts...).
				Value(&m.fPreset),

			huh.NewSelect[string]().
				Key("screen").
				Title("Screen").
				Options(screenOpts...).
				Value(&m.fScreen),
		),
	).WithShowHelp(true)
}

// parseScreenChoice maps a form value to a selector. Numeric values are
// explicit indexes; everything else is a relation.
func parseScreenChoice(choice string) resolve.ScreenSelector {
	if idx, err := strconv.Atoi(choice); err == nil {
		return resolve.ScreenByIndex{Index: idx}
	}
	return resolve.ScreenRelative{Relation: resolve.Relation(choice)}
}

// View implements tea.Model.
func (m model) View() string {
	switch m.phase {
	case phasePickPlacement:
		if m.form != nil {
			header := lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("62")).
				Padding(0, 1).
				Render(fmt.Sprintf("Place %s", m.result.Window.App))
			return lipgloss.JoinVertical(lipgloss.Left, header, m.form.View())
		}
		fallthrough
	default:
		return m.list.View()
	}
}

// Run shows the picker and blocks until the user accepts or cancels.
func Run(windows []resolve.WindowDescriptor, screens []resolve.ScreenDescriptor) (Result, error) {
	if len(windows) == 0 {
		return Result{}, fmt.Errorf("no windows to pick from")
	}

	p := tea.NewProgram(newModel(windows, screens), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	m, ok := final.(model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected final model %T", final)
	}
	return m.result, nil
}
