package view

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hannahwr/nestcare/internal/expense"
	"github.com/hannahwr/nestcare/internal/importer"
	"github.com/hannahwr/nestcare/internal/session"
)

type expenseImportState int

const (
	expenseStateSessionPick expenseImportState = iota
	expenseStateFilePick
	expenseStateImporting
	expenseStateResult
)

// ExpenseImportModel attaches a spending-tracker CSV export to a
// session as reimbursable expenses.
type ExpenseImportModel struct {
	CommonModel
	sessionService *session.Service
	expenseService *expense.Service
	importService  *importer.Service

	state        expenseImportState
	sessionTable table.Model
	sessions     []*session.Session
	filePicker   filepicker.Model

	status string
	err    error
}

func NewExpenseImportModel(sessionSvc *session.Service, expenseSvc *expense.Service, impSvc *importer.Service) ExpenseImportModel {
	st := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Start", Width: 8},
			{Title: "End", Width: 8},
			{Title: "Status", Width: 12},
		}),
		table.WithFocused(true),
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
	st.SetStyles(s)

	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ExpenseImportModel{
		sessionService: sessionSvc,
		expenseService: expenseSvc,
		importService:  impSvc,
		sessionTable:   st,
		filePicker:     fp,
	}
}

func (m ExpenseImportModel) Init() tea.Cmd {
	return m.loadSessionsCmd()
}

func (m ExpenseImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == expenseStateSessionPick && msg.Type == tea.KeyEnter {
			idx := m.sessionTable.Cursor()
			if idx < 0 || idx >= len(m.sessions) {
				return m, nil
			}
			m.state = expenseStateFilePick
			return m, m.filePicker.Init()
		}

	case expenseSessionsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = expenseStateResult
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.sessions = msg.sessions
		m.refreshSessionTable()
		return m, nil

	case expenseImportedMsg:
		m.state = expenseStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Imported %d expenses.", msg.count)
		return m, nil
	}

	switch m.state {
	case expenseStateSessionPick:
		var cmd tea.Cmd
		m.sessionTable, cmd = m.sessionTable.Update(msg)
		return m, cmd

	case expenseStateFilePick:
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.state = expenseStateImporting
			m.status = fmt.Sprintf("Importing from %s...", path)
			return m, m.importCmd(path)
		}

		return m, cmd
	}

	return m, nil
}

func (m ExpenseImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case expenseStateFilePick:
		m.state = expenseStateSessionPick
		return m, nil
	case expenseStateResult:
		m.state = expenseStateSessionPick
		m.err = nil
		m.status = ""
		return m, m.loadSessionsCmd()
	}

	return m, Back
}

func (m ExpenseImportModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case expenseStateSessionPick:
		border := lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().PaddingBottom(1).Render("Import Expenses - Select Session (last 30 days)"),
				border.Render(m.sessionTable.View()),
				"\n(Enter to select, Esc to back)",
			),
		)

	case expenseStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select CSV to import:\n\n%s", m.filePicker.View()),
		)

	case expenseStateImporting:
		return style.Render(m.status)

	case expenseStateResult:
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

func (m *ExpenseImportModel) refreshSessionTable() {
	rows := make([]table.Row, 0, len(m.sessions))
	for _, sess := range m.sessions {
		rows = append(rows, table.Row{
			FormatDate(sess.StartTime),
			sess.StartTime.Format("15:04"),
			sess.EndTime.Format("15:04"),
			string(sess.Status),
		})
	}
	m.sessionTable.SetRows(rows)
}

// Messages

type expenseSessionsMsg struct {
	sessions []*session.Session
	err      error
}

func (m ExpenseImportModel) loadSessionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		now := time.Now().UTC()
		start := now.AddDate(0, 0, -30)

		sessions, err := m.sessionService.List(ctx, session.ListFilter{
			StartDate: &start,
			EndDate:   &now,
		})

		return expenseSessionsMsg{sessions: sessions, err: err}
	}
}

type expenseImportedMsg struct {
	count int
	err   error
}

func (m ExpenseImportModel) importCmd(path string) tea.Cmd {
	sessionID := m.sessions[m.sessionTable.Cursor()].ID

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return expenseImportedMsg{err: err}
		}
		defer f.Close()

		records, err := m.importService.Import(importer.FormatLedger, f)
		if err != nil {
			return expenseImportedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		expenses, err := m.expenseService.CreateBatch(ctx, importer.ExpenseParams(sessionID, records))
		if err != nil {
			return expenseImportedMsg{err: err}
		}

		return expenseImportedMsg{count: len(expenses)}
	}
}
