package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/family"
	"github.com/hannahwr/nestcare/internal/schedule"
)

type generateState int

const (
	generateStateScheduleSelect generateState = iota
	generateStateRangePick
	generateStateGenerating
	generateStateResult
)

// GenerateModel expands an active schedule into concrete sessions over
// a chosen window.
type GenerateModel struct {
	CommonModel
	scheduleService *schedule.Service
	familyService   *family.Service

	offsetMinutes int

	state generateState

	schedules   []*schedule.Schedule
	familyNames map[uuid.UUID]string
	cursor      int

	rangePicker RangePicker

	createdCount int
	status       string
	err          error
}

func NewGenerateModel(scheduleSvc *schedule.Service, familySvc *family.Service, offsetMinutes int) GenerateModel {
	return GenerateModel{
		scheduleService: scheduleSvc,
		familyService:   familySvc,
		offsetMinutes:   offsetMinutes,
		familyNames:     make(map[uuid.UUID]string),
		rangePicker:     NewRangePicker(),
	}
}

func (m GenerateModel) Init() tea.Cmd {
	return m.loadSchedulesCmd()
}

func (m GenerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == generateStateScheduleSelect {
			return m.updateScheduleSelect(msg)
		}

	case generateSchedulesMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = generateStateResult
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.schedules = msg.schedules
		m.familyNames = msg.familyNames
		return m, nil

	case RangeSelectedMsg:
		m.state = generateStateGenerating
		m.status = fmt.Sprintf("Generating sessions %s to %s...",
			FormatDate(msg.From), FormatDate(msg.To))
		return m, m.generateCmd(msg.From, msg.To)

	case generateResultMsg:
		m.state = generateStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.createdCount = msg.count
		m.status = fmt.Sprintf("Created %d sessions.", msg.count)
		return m, nil
	}

	if m.state == generateStateRangePick {
		var cmd tea.Cmd
		m.rangePicker, cmd = m.rangePicker.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m GenerateModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case generateStateRangePick:
		if !m.rangePicker.IsSelecting() {
			var cmd tea.Cmd
			m.rangePicker, cmd = m.rangePicker.Update(tea.KeyMsg{Type: tea.KeyEsc})
			return m, cmd
		}
		m.state = generateStateScheduleSelect
		return m, nil
	case generateStateResult:
		m.state = generateStateScheduleSelect
		m.err = nil
		m.status = ""
		return m, nil
	}

	return m, Back
}

func (m GenerateModel) updateScheduleSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(m.schedules)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		if len(m.schedules) == 0 {
			return m, nil
		}
		m.state = generateStateRangePick
		m.rangePicker.Reset()
		return m, nil
	}

	return m, nil
}

func (m GenerateModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case generateStateScheduleSelect:
		if len(m.schedules) == 0 {
			return style.Render("No active schedules.\n\n(Esc to back)")
		}

		s := "Generate Sessions - Select Schedule:\n\n"
		for i, sched := range m.schedules {
			cursor := " "
			if i == m.cursor {
				cursor = ">"
			}
			s += fmt.Sprintf("%s %s\n", cursor, m.describeSchedule(sched))
		}
		s += "\n(Enter to select, Esc to back)"
		return style.Render(s)

	case generateStateRangePick:
		return style.Render(m.rangePicker.View())

	case generateStateGenerating:
		return style.Render(m.status)

	case generateStateResult:
		if m.err != nil {
			return style.Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
					"\n\n(Esc to go back)",
			)
		}

		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	return ""
}

func (m GenerateModel) describeSchedule(sched *schedule.Schedule) string {
	name := m.familyNames[sched.FamilyID]
	if name == "" {
		name = sched.FamilyID.String()[:8]
	}

	days := make([]string, 0, len(sched.Weekdays))
	for _, d := range sched.Weekdays {
		days = append(days, d.String()[:3])
	}

	pattern := string(sched.Pattern)
	if len(days) > 0 {
		pattern += " " + strings.Join(days, ",")
	}

	return fmt.Sprintf("%s  %s  %s-%s", name, pattern, sched.StartTimeOfDay, sched.EndTimeOfDay)
}

// Messages

type generateSchedulesMsg struct {
	schedules   []*schedule.Schedule
	familyNames map[uuid.UUID]string
	err         error
}

func (m GenerateModel) loadSchedulesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		schedules, err := m.scheduleService.List(ctx, true)
		if err != nil {
			return generateSchedulesMsg{err: err}
		}

		families, err := m.familyService.List(ctx)
		if err != nil {
			return generateSchedulesMsg{err: err}
		}

		names := make(map[uuid.UUID]string, len(families))
		for _, f := range families {
			names[f.ID] = f.Name
		}

		return generateSchedulesMsg{schedules: schedules, familyNames: names}
	}
}

type generateResultMsg struct {
	count int
	err   error
}

func (m GenerateModel) generateCmd(from, to time.Time) tea.Cmd {
	scheduleID := m.schedules[m.cursor].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.scheduleService.Generate(ctx, scheduleID, from, to, m.offsetMinutes)
		if err != nil {
			return generateResultMsg{err: err}
		}

		return generateResultMsg{count: result.Count}
	}
}
