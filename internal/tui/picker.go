package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/vlsmctl/internal/config"
	"github.com/firefly-engineering/vlsmctl/internal/vlsm"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionPlan
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action  Action
	Profile *config.Profile
}

// profileItem implements list.Item for profile display
type profileItem struct {
	profile *config.Profile
}

func (i profileItem) Title() string {
	return i.profile.Name
}

func (i profileItem) Description() string {
	strategy := i.profile.Strategy
	if strategy == "" {
		strategy = "default"
	}
	scale := "default"
	if i.profile.Scale != 0 {
		scale = fmt.Sprintf("x%g", i.profile.Scale)
	}

	return fmt.Sprintf("%s | %d subnets | %s | %s | %s",
		i.profile.Network,
		len(i.profile.Subnets),
		strategy,
		scale,
		truncateLabels(i.profile.Subnets, 30),
	)
}

func (i profileItem) FilterValue() string {
	return i.profile.Name + " " + i.profile.Network
}

// truncateLabels joins subnet labels and cuts the result to maxLen runes.
func truncateLabels(subnets []vlsm.Requirement, maxLen int) string {
	labels := make([]string, len(subnets))
	for i, s := range subnets {
		labels[i] = s.Label
	}
	joined := []rune(strings.Join(labels, " "))
	if len(joined) <= maxLen {
		return string(joined)
	}
	return string(joined[:maxLen-3]) + "..."
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the profile picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new profile picker
func NewPicker(profiles []*config.Profile) Model {
	items := make([]list.Item, len(profiles))
	for i, p := range profiles {
		items[i] = profileItem{profile: p}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "vlsmctl - Select Profile"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(profileItem); ok {
				m.result = PickerResult{
					Action:  ActionPlan,
					Profile: item.profile,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Plan  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive profile picker
func RunPicker(profiles []*config.Profile) (PickerResult, error) {
	if len(profiles) == 0 {
		return PickerResult{Action: ActionNone}, nil
	}

	m := NewPicker(profiles)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}
