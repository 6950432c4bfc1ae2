package view

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/billing"
	"github.com/hannahwr/nestcare/internal/family"
)

type paymentState int

const (
	paymentStateFamilySelect paymentState = iota
	paymentStateSessionSelect
	paymentStateForm
	paymentStateSaving
	paymentStateResult
)

// PaymentModel walks the operator through settling a family's unpaid
// sessions: pick the family, tick the sessions to settle, then add
// tip, method and notes before the batch is written.
type PaymentModel struct {
	CommonModel
	familyService  *family.Service
	billingService *billing.Service

	state paymentState

	families     []*family.Family
	familyCursor int

	sessions    []*billing.BillableSession
	sessionList list.Model
	selected    map[int]bool

	form *huh.Form

	formTip    string
	formMethod string
	formNotes  string

	result *billing.CreatePaymentResult
	status string
	err    error
}

func NewPaymentModel(familySvc *family.Service, billingSvc *billing.Service) PaymentModel {
	return PaymentModel{
		familyService:  familySvc,
		billingService: billingSvc,
		selected:       make(map[int]bool),
	}
}

func (m PaymentModel) Init() tea.Cmd {
	return m.loadFamiliesCmd()
}

func (m PaymentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.state != paymentStateForm {
			return m.handleEsc()
		}

		switch m.state {
		case paymentStateFamilySelect:
			return m.updateFamilySelect(msg)
		case paymentStateSessionSelect:
			return m.updateSessionSelect(msg)
		}

	case paymentFamiliesMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = paymentStateResult
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.families = msg.families
		return m, nil

	case paymentSessionsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = paymentStateResult
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.sessions = msg.sessions
		m.selected = make(map[int]bool)
		m.state = paymentStateSessionSelect

		items := make([]list.Item, len(m.sessions))
		for i, sess := range m.sessions {
			items[i] = sessionItem{session: sess, index: i}
		}

		delegate := sessionDelegate{selected: &m.selected}
		m.sessionList = list.New(items, delegate, 80, 20)
		m.sessionList.Title = "Unpaid Sessions"
		m.sessionList.SetShowStatusBar(false)
		m.sessionList.SetFilteringEnabled(false)
		m.sessionList.SetShowHelp(false)

		return m, nil

	case paymentSavedMsg:
		m.state = paymentStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.result = msg.result
		m.status = fmt.Sprintf("Recorded %s for %d payments.",
			FormatAmount(msg.result.TotalCents), len(msg.result.Payments))

		return m, nil
	}

	if m.state == paymentStateForm && m.form != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = paymentStateSessionSelect
			m.form = nil
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.state = paymentStateSaving
		return m, m.saveCmd()
	}

	return m, nil
}

func (m PaymentModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case paymentStateSessionSelect:
		m.state = paymentStateFamilySelect
		m.sessions = nil
		m.selected = make(map[int]bool)
		return m, nil
	case paymentStateResult:
		m.state = paymentStateFamilySelect
		m.err = nil
		m.result = nil
		m.status = ""
		return m, m.loadFamiliesCmd()
	}

	return m, Back
}

func (m PaymentModel) updateFamilySelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.familyCursor > 0 {
			m.familyCursor--
		}
	case tea.KeyDown:
		if m.familyCursor < len(m.families)-1 {
			m.familyCursor++
		}
	case tea.KeyEnter:
		if len(m.families) == 0 {
			return m, nil
		}

		return m, m.loadSessionsCmd(m.families[m.familyCursor].ID)
	}

	return m, nil
}

func (m PaymentModel) updateSessionSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.sessionList.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.sessions {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.sessions {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		if m.selectedCount() == 0 {
			return m, nil
		}

		return m.enterForm()
	}

	var cmd tea.Cmd
	m.sessionList, cmd = m.sessionList.Update(msg)

	return m, cmd
}

func (m PaymentModel) enterForm() (tea.Model, tea.Cmd) {
	m.formTip = ""
	m.formMethod = "Cash"
	m.formNotes = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("tip").
				Title("Tip / Bonus").
				Placeholder("0.00").
				Value(&m.formTip).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64); err != nil {
						return fmt.Errorf("enter a dollar amount")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("method").
				Title("Method").
				Options(
					huh.NewOption("Cash", "Cash"),
					huh.NewOption("Check", "Check"),
					huh.NewOption("Venmo", "Venmo"),
					huh.NewOption("Zelle", "Zelle"),
					huh.NewOption("Bank Transfer", "Bank Transfer"),
				).
				Value(&m.formMethod),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = paymentStateForm
	return m, m.form.Init()
}

func (m PaymentModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case paymentStateFamilySelect:
		s := "Record Payment - Select Family:\n\n"
		for i, f := range m.families {
			cursor := " "
			if i == m.familyCursor {
				cursor = ">"
			}
			s += fmt.Sprintf("%s %s\n", cursor, f.Name)
		}
		s += "\n(Enter to select, Esc to back)"
		return style.Render(s)

	case paymentStateSessionSelect:
		help := "\nSpace: toggle | a: all | n: none | Enter: continue | Esc: back"
		summary := fmt.Sprintf("\nSelected: %d sessions, %s",
			m.selectedCount(), FormatAmount(m.selectedTotalCents()))
		return lipgloss.NewStyle().Padding(1).Render(m.sessionList.View() + summary + help)

	case paymentStateForm:
		if m.form == nil {
			return ""
		}
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Settle %d sessions (%s)\n\n%s",
				m.selectedCount(), FormatAmount(m.selectedTotalCents()), m.form.View()))
		return lipgloss.NewStyle().Padding(1).Render(panel)

	case paymentStateSaving:
		return style.Render("Recording payment...")

	case paymentStateResult:
		if m.err != nil {
			return style.Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
					"\n\n(Esc to go back)",
			)
		}

		body := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status)
		if m.result != nil {
			body += fmt.Sprintf("\n\nInvoice: %s", m.result.InvoicePrefix)
		}
		return style.Render(body + "\n\n(Esc to go back)")
	}

	return ""
}

func (m PaymentModel) selectedCount() int {
	count := 0
	for i := range m.sessions {
		if m.selected[i] {
			count++
		}
	}
	return count
}

func (m PaymentModel) selectedTotalCents() int64 {
	var total int64
	for i, sess := range m.sessions {
		if m.selected[i] {
			total += sess.TotalCents()
		}
	}
	return total
}

// Messages

type paymentFamiliesMsg struct {
	families []*family.Family
	err      error
}

func (m PaymentModel) loadFamiliesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		families, err := m.familyService.List(ctx)
		return paymentFamiliesMsg{families: families, err: err}
	}
}

type paymentSessionsMsg struct {
	sessions []*billing.BillableSession
	err      error
}

func (m PaymentModel) loadSessionsCmd(familyID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sessions, err := m.billingService.UnpaidSessions(ctx, familyID)
		return paymentSessionsMsg{sessions: sessions, err: err}
	}
}

type paymentSavedMsg struct {
	result *billing.CreatePaymentResult
	err    error
}

func (m PaymentModel) saveCmd() tea.Cmd {
	familyID := m.families[m.familyCursor].ID

	sessionIDs := make([]uuid.UUID, 0, len(m.sessions))
	for i, sess := range m.sessions {
		if m.selected[i] {
			sessionIDs = append(sessionIDs, sess.ID)
		}
	}

	tipCents := int64(0)
	if tip := strings.TrimSpace(strings.TrimPrefix(m.formTip, "$")); tip != "" {
		if v, err := strconv.ParseFloat(tip, 64); err == nil {
			tipCents = int64(math.Round(v * 100))
		}
	}

	params := billing.CreatePaymentParams{
		FamilyID:   familyID,
		SessionIDs: sessionIDs,
		TipCents:   tipCents,
		Method:     m.formMethod,
		Notes:      m.formNotes,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.billingService.CreatePayment(ctx, params)
		return paymentSavedMsg{result: result, err: err}
	}
}

// Session list item

type sessionItem struct {
	session *billing.BillableSession
	index   int
}

func (i sessionItem) Title() string       { return "" }
func (i sessionItem) Description() string { return "" }
func (i sessionItem) FilterValue() string { return "" }

// Session list delegate

type sessionDelegate struct {
	selected *map[int]bool
}

func (d sessionDelegate) Height() int                             { return 2 }
func (d sessionDelegate) Spacing() int                            { return 0 }
func (d sessionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d sessionDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(sessionItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if (*d.selected)[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	sess := item.session

	line1 := fmt.Sprintf("%s%s %s  %s  %s care",
		cursor, checkbox,
		FormatDate(sess.StartTime),
		FormatHours(sess.Hours()),
		FormatAmount(sess.CostCents()),
	)

	line2 := fmt.Sprintf("      Expenses: %s  Total: %s",
		FormatAmount(sess.ExpenseTotalCents()),
		FormatAmount(sess.TotalCents()),
	)

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
