package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hannahwr/nestcare/internal/report"
)

type incomePeriod int

const (
	incomePeriodThisMonth incomePeriod = 0
	incomePeriodLastMonth incomePeriod = 1
	incomePeriodThisYear  incomePeriod = 2
	incomePeriodLastYear  incomePeriod = 3
)

func (p incomePeriod) String() string {
	switch p {
	case incomePeriodThisMonth:
		return "This Month"
	case incomePeriodLastMonth:
		return "Last Month"
	case incomePeriodThisYear:
		return "This Year"
	case incomePeriodLastYear:
		return "Last Year"
	}

	return "Unknown"
}

type incomeState int

const (
	incomeStateSelect incomeState = iota
	incomeStateLoading
	incomeStateResult
)

// IncomeModel renders gross/expense/net income for a month or a
// calendar year, with a per-family breakdown.
type IncomeModel struct {
	CommonModel
	reportService *report.Service

	state  incomeState
	cursor incomePeriod

	monthTable table.Model
	result     *report.IncomeReport

	err error
}

func NewIncomeModel(reportSvc *report.Service) IncomeModel {
	mt := table.New(
		table.WithColumns([]table.Column{
			{Title: "Month", Width: 12},
			{Title: "Gross", Width: 12},
			{Title: "Expenses", Width: 12},
			{Title: "Net", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	mt.SetStyles(s)

	return IncomeModel{
		reportService: reportSvc,
		monthTable:    mt,
	}
}

func (m IncomeModel) Init() tea.Cmd {
	return nil
}

func (m IncomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.state == incomeStateResult {
				m.state = incomeStateSelect
				m.result = nil
				m.err = nil
				return m, nil
			}
			return m, Back
		}

		if m.state == incomeStateSelect {
			switch msg.Type {
			case tea.KeyUp:
				if m.cursor > incomePeriodThisMonth {
					m.cursor--
				}
			case tea.KeyDown:
				if m.cursor < incomePeriodLastYear {
					m.cursor++
				}
			case tea.KeyEnter:
				m.state = incomeStateLoading
				return m, m.loadCmd(m.cursor)
			}
			return m, nil
		}

	case incomeLoadedMsg:
		m.state = incomeStateResult
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.result = msg.report
		m.refreshMonthTable()
		return m, nil
	}

	if m.state == incomeStateResult {
		var cmd tea.Cmd
		m.monthTable, cmd = m.monthTable.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m IncomeModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case incomeStateSelect:
		s := "Income Report - Select Period:\n\n"
		for p := incomePeriodThisMonth; p <= incomePeriodLastYear; p++ {
			cursor := " "
			if m.cursor == p {
				cursor = ">"
			}
			s += fmt.Sprintf("%s %s\n", cursor, p.String())
		}
		s += "\n(Enter to select, Esc to back)"
		return style.Render(s)

	case incomeStateLoading:
		return style.Render("Crunching numbers...")

	case incomeStateResult:
		if m.err != nil {
			return style.Render(fmt.Sprintf("Error: %v\n\n(Esc to go back)", m.err))
		}

		return m.viewResult()
	}

	return ""
}

func (m IncomeModel) viewResult() string {
	r := m.result

	title := fmt.Sprintf("Income %d", r.Year)
	if r.Month != nil {
		title = fmt.Sprintf("Income %s %d", r.Month.String(), r.Year)
	}

	totals := fmt.Sprintf("Gross: %s   Expenses: %s   Net: %s",
		FormatAmount(r.GrossCents),
		FormatAmount(r.ExpenseCents),
		FormatAmount(r.NetCents),
	)

	families := ""
	if len(r.ByFamily) > 0 {
		families = "\nBy Family:\n"
		for _, f := range r.ByFamily {
			families += fmt.Sprintf("  %s  (%d payments)  %s\n",
				f.FamilyID, f.PaymentCount, FormatAmount(f.GrossCents))
		}
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.monthTable.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render(title),
			lipgloss.NewStyle().PaddingBottom(1).Render(totals),
			tableView,
			families,
			"(Esc to go back)",
		),
	)
}

func (m *IncomeModel) refreshMonthTable() {
	rows := make([]table.Row, 0, len(m.result.ByMonth))
	for _, mo := range m.result.ByMonth {
		rows = append(rows, table.Row{
			mo.Month.String(),
			FormatAmount(mo.GrossCents),
			FormatAmount(mo.ExpenseCents),
			FormatAmount(mo.NetCents),
		})
	}
	m.monthTable.SetRows(rows)
}

// Messages

type incomeLoadedMsg struct {
	report *report.IncomeReport
	err    error
}

func (m IncomeModel) loadCmd(period incomePeriod) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		now := time.Now()
		year := now.Year()
		var month *time.Month

		switch period {
		case incomePeriodThisMonth:
			month = new(now.Month())
		case incomePeriodLastMonth:
			prev := now.AddDate(0, -1, 0)
			year = prev.Year()
			month = new(prev.Month())
		case incomePeriodLastYear:
			year--
		}

		r, err := m.reportService.Income(ctx, year, month)
		return incomeLoadedMsg{report: r, err: err}
	}
}
