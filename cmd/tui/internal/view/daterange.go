package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Window is a forward-looking generation range. Session generation
// plans ahead, so presets run from today onward.
type Window int

const (
	WindowNextWeek     Window = 0
	WindowNextTwoWeeks Window = 1
	WindowRestOfMonth  Window = 2
	WindowNextMonth    Window = 3
	WindowCustom       Window = 4
)

func (w Window) String() string {
	switch w {
	case WindowNextWeek:
		return "Next 7 Days"
	case WindowNextTwoWeeks:
		return "Next 14 Days"
	case WindowRestOfMonth:
		return "Rest of This Month"
	case WindowNextMonth:
		return "Next Month"
	case WindowCustom:
		return "Custom Range"
	}

	return "Unknown"
}

func windowToDateRange(w Window) (time.Time, time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var from, to time.Time

	switch w {
	case WindowNextWeek:
		from = today
		to = today.AddDate(0, 0, 6)
	case WindowNextTwoWeeks:
		from = today
		to = today.AddDate(0, 0, 13)
	case WindowRestOfMonth:
		from = today
		to = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	case WindowNextMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		to = from.AddDate(0, 1, -1)
	}

	return from, to
}

// RangeSelectedMsg is emitted when the user has selected a valid date range.
type RangeSelectedMsg struct {
	From time.Time
	To   time.Time
}

type rangeState int

const (
	rangeStateSelect rangeState = iota
	rangeStateCustom
)

// RangePicker is a reusable component for selecting a generation window.
type RangePicker struct {
	state    rangeState
	selected Window

	fromInput  textinput.Model
	toInput    textinput.Model
	focusIndex int

	err error
}

func NewRangePicker() RangePicker {
	fi := textinput.New()
	fi.Placeholder = "YYYY-MM-DD"
	fi.CharLimit = 10
	fi.Width = 12
	fi.Prompt = "From: "

	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = 10
	ti.Width = 12
	ti.Prompt = "To:   "

	return RangePicker{
		state:     rangeStateSelect,
		fromInput: fi,
		toInput:   ti,
	}
}

func (m RangePicker) Init() tea.Cmd {
	return nil
}

// Update handles messages for the range picker.
func (m RangePicker) Update(msg tea.Msg) (RangePicker, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case rangeStateSelect:
			return m.updateSelect(msg)
		case rangeStateCustom:
			return m.updateCustom(msg)
		}
	}

	if m.state == rangeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m RangePicker) updateSelect(msg tea.KeyMsg) (RangePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > WindowNextWeek {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < WindowCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == WindowCustom {
			m.state = rangeStateCustom
			m.fromInput.Focus()
			m.focusIndex = 0
			return m, textinput.Blink
		}

		from, to := windowToDateRange(m.selected)
		return m, func() tea.Msg {
			return RangeSelectedMsg{From: from, To: to}
		}
	}

	return m, nil
}

func (m RangePicker) updateCustom(msg tea.KeyMsg) (RangePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.fromInput.Blur()
		m.toInput.Blur()
		if m.focusIndex == 0 {
			m.fromInput.Focus()
			return m, textinput.Blink
		}
		m.toInput.Focus()
		return m, textinput.Blink

	case "enter":
		from, err := time.Parse("2006-01-02", m.fromInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid from date (YYYY-MM-DD)")
			return m, nil
		}

		to, err := time.Parse("2006-01-02", m.toInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid to date (YYYY-MM-DD)")
			return m, nil
		}

		if to.Before(from) {
			m.err = fmt.Errorf("to date is before from date")
			return m, nil
		}

		m.err = nil
		return m, func() tea.Msg {
			return RangeSelectedMsg{From: from, To: to}
		}

	case "esc":
		m.state = rangeStateSelect
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m RangePicker) updateInputs(msg tea.Msg) (RangePicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.fromInput, c = m.fromInput.Update(msg)
	cmds = append(cmds, c)
	m.toInput, c = m.toInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

// View renders the range picker.
func (m RangePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == rangeStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.fromInput.View(),
			m.toInput.View(),
			errStr,
		)
	}

	s := "Select Generation Window:\n\n"
	for i := WindowNextWeek; i <= WindowCustom; i++ {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}
		s += fmt.Sprintf("%s %s\n", cursor, i.String())
	}
	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting returns true if the picker is in the preset selection state.
func (m RangePicker) IsSelecting() bool {
	return m.state == rangeStateSelect
}

// Reset returns the picker to its initial selection state.
func (m *RangePicker) Reset() {
	m.state = rangeStateSelect
	m.selected = WindowNextWeek
	m.err = nil
	m.fromInput.SetValue("")
	m.toInput.SetValue("")
}
