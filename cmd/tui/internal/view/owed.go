package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hannahwr/nestcare/internal/billing"
	"github.com/hannahwr/nestcare/internal/family"
)

type owedState int

const (
	owedStateFamilies owedState = iota
	owedStateSessions
)

// OwedModel shows outstanding balances per family with a drill-down
// into the unpaid sessions behind each balance.
type OwedModel struct {
	CommonModel
	familyService  *family.Service
	billingService *billing.Service

	state owedState

	familyTable  table.Model
	sessionTable table.Model

	families []*family.Family
	owed     map[int]int64
	sessions []*billing.BillableSession

	loading bool
	err     error
}

func NewOwedModel(familySvc *family.Service, billingSvc *billing.Service) OwedModel {
	ft := table.New(
		table.WithColumns([]table.Column{
			{Title: "Family", Width: 25},
			{Title: "Email", Width: 30},
			{Title: "Owed", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	st := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Hours", Width: 8},
			{Title: "Care", Width: 10},
			{Title: "Expenses", Width: 10},
			{Title: "Total", Width: 10},
		}),
		table.WithHeight(15),
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
	ft.SetStyles(s)
	st.SetStyles(s)

	return OwedModel{
		familyTable:    ft,
		sessionTable:   st,
		familyService:  familySvc,
		billingService: billingSvc,
		owed:           make(map[int]int64),
	}
}

func (m OwedModel) Init() tea.Cmd {
	return m.loadOwedCmd()
}

func (m OwedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadOwedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.families = msg.families
		m.owed = msg.owed
		m.refreshFamilyTable()
		return m, nil

	case loadUnpaidMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.sessions = msg.sessions
		m.state = owedStateSessions
		m.refreshSessionTable()
		m.familyTable.Blur()
		m.sessionTable.Focus()
		return m, nil

	case tea.WindowSizeMsg:
		m.familyTable.SetHeight(msg.Height - 8)
		m.sessionTable.SetHeight(msg.Height - 8)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.state == owedStateSessions {
				m.state = owedStateFamilies
				m.sessionTable.Blur()
				m.familyTable.Focus()
				return m, nil
			}
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadOwedCmd()
		case "enter":
			if m.state == owedStateFamilies {
				idx := m.familyTable.Cursor()
				if idx < 0 || idx >= len(m.families) {
					return m, nil
				}
				m.loading = true
				return m, m.loadUnpaidCmd(idx)
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case owedStateFamilies:
		m.familyTable, cmd = m.familyTable.Update(msg)
	case owedStateSessions:
		m.sessionTable, cmd = m.sessionTable.Update(msg)
	}

	return m, cmd
}

func (m OwedModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading balances...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))

	if m.state == owedStateSessions {
		idx := m.familyTable.Cursor()
		name := ""
		if idx >= 0 && idx < len(m.families) {
			name = m.families[idx].Name
		}

		header := fmt.Sprintf("Unpaid sessions for %s", name)
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().PaddingBottom(1).Render(header),
				border.Render(m.sessionTable.View()),
				"\n(Esc to back)",
			),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render("Amounts Owed"),
			border.Render(m.familyTable.View()),
			"\n(Enter to inspect, r to refresh, Esc to back)",
		),
	)
}

func (m *OwedModel) refreshFamilyTable() {
	rows := make([]table.Row, 0, len(m.families))
	for i, f := range m.families {
		rows = append(rows, table.Row{
			f.Name,
			f.Email,
			FormatAmount(m.owed[i]),
		})
	}
	m.familyTable.SetRows(rows)
}

func (m *OwedModel) refreshSessionTable() {
	rows := make([]table.Row, 0, len(m.sessions))
	for _, sess := range m.sessions {
		rows = append(rows, table.Row{
			FormatDate(sess.StartTime),
			FormatHours(sess.Hours()),
			FormatAmount(sess.CostCents()),
			FormatAmount(sess.ExpenseTotalCents()),
			FormatAmount(sess.TotalCents()),
		})
	}
	m.sessionTable.SetRows(rows)
}

// Messages

type loadOwedMsg struct {
	families []*family.Family
	owed     map[int]int64
	err      error
}

func (m OwedModel) loadOwedCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		families, err := m.familyService.List(ctx)
		if err != nil {
			return loadOwedMsg{err: err}
		}

		owed := make(map[int]int64, len(families))
		for i, f := range families {
			cents, err := m.billingService.FamilyAmountOwed(ctx, f.ID)
			if err != nil {
				return loadOwedMsg{err: err}
			}
			owed[i] = cents
		}

		return loadOwedMsg{families: families, owed: owed}
	}
}

type loadUnpaidMsg struct {
	sessions []*billing.BillableSession
	err      error
}

func (m OwedModel) loadUnpaidCmd(idx int) tea.Cmd {
	familyID := m.families[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sessions, err := m.billingService.UnpaidSessions(ctx, familyID)
		return loadUnpaidMsg{sessions: sessions, err: err}
	}
}
