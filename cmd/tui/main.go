package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/hannahwr/nestcare/cmd/tui/internal/view"
	"github.com/hannahwr/nestcare/internal/billing"
	billingStore "github.com/hannahwr/nestcare/internal/billing/store"
	"github.com/hannahwr/nestcare/internal/clock"
	"github.com/hannahwr/nestcare/internal/config"
	"github.com/hannahwr/nestcare/internal/database"
	"github.com/hannahwr/nestcare/internal/expense"
	expenseStore "github.com/hannahwr/nestcare/internal/expense/store"
	"github.com/hannahwr/nestcare/internal/family"
	familyStore "github.com/hannahwr/nestcare/internal/family/store"
	"github.com/hannahwr/nestcare/internal/importer"
	"github.com/hannahwr/nestcare/internal/report"
	reportStore "github.com/hannahwr/nestcare/internal/report/store"
	"github.com/hannahwr/nestcare/internal/schedule"
	scheduleStore "github.com/hannahwr/nestcare/internal/schedule/store"
	"github.com/hannahwr/nestcare/internal/session"
	sessionStore "github.com/hannahwr/nestcare/internal/session/store"
)

type model struct {
	familyService   *family.Service
	sessionService  *session.Service
	scheduleService *schedule.Service
	expenseService  *expense.Service
	billingService  *billing.Service
	reportService   *report.Service
	importService   *importer.Service

	offsetMinutes int

	currentView View

	owedView     view.OwedModel
	paymentView  view.PaymentModel
	incomeView   view.IncomeModel
	generateView view.GenerateModel
	expenseView  view.ExpenseImportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewOwed     View = 1
	ViewPayment  View = 2
	ViewIncome   View = 3
	ViewGenerate View = 4
	ViewExpenses View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	clk := clock.System()

	familySvc := family.NewService(familyStore.New(db))
	sessionSvc := session.NewService(sessionStore.New(db), clk)
	scheduleSvc := schedule.NewService(scheduleStore.New(db))
	expenseSvc := expense.NewService(expenseStore.New(db))
	billingSvc := billing.NewService(billingStore.New(db), clk)
	reportSvc := report.NewService(reportStore.New(db))
	importSvc := importer.NewService()

	return model{
		familyService:   familySvc,
		sessionService:  sessionSvc,
		scheduleService: scheduleSvc,
		expenseService:  expenseSvc,
		billingService:  billingSvc,
		reportService:   reportSvc,
		importService:   importSvc,
		offsetMinutes:   cfg.App.DefaultTZOffsetMinutes,
		currentView:     ViewMenu,
		owedView:        view.NewOwedModel(familySvc, billingSvc),
		paymentView:     view.NewPaymentModel(familySvc, billingSvc),
		incomeView:      view.NewIncomeModel(reportSvc),
		generateView:    view.NewGenerateModel(scheduleSvc, familySvc, cfg.App.DefaultTZOffsetMinutes),
		expenseView:     view.NewExpenseImportModel(sessionSvc, expenseSvc, importSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewOwed
				m.owedView = view.NewOwedModel(m.familyService, m.billingService)

				return m, m.owedView.Init()
			case "2":
				m.currentView = ViewPayment
				m.paymentView = view.NewPaymentModel(m.familyService, m.billingService)

				return m, m.paymentView.Init()
			case "3":
				m.currentView = ViewIncome
				m.incomeView = view.NewIncomeModel(m.reportService)

				return m, m.incomeView.Init()
			case "4":
				m.currentView = ViewGenerate
				m.generateView = view.NewGenerateModel(m.scheduleService, m.familyService, m.offsetMinutes)

				return m, m.generateView.Init()
			case "5":
				m.currentView = ViewExpenses
				m.expenseView = view.NewExpenseImportModel(m.sessionService, m.expenseService, m.importService)

				return m, m.expenseView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewOwed:
		var newModel tea.Model
		newModel, cmd = m.owedView.Update(msg)
		m.owedView = newModel.(view.OwedModel)
	case ViewPayment:
		var newModel tea.Model
		newModel, cmd = m.paymentView.Update(msg)
		m.paymentView = newModel.(view.PaymentModel)
	case ViewIncome:
		var newModel tea.Model
		newModel, cmd = m.incomeView.Update(msg)
		m.incomeView = newModel.(view.IncomeModel)
	case ViewGenerate:
		var newModel tea.Model
		newModel, cmd = m.generateView.Update(msg)
		m.generateView = newModel.(view.GenerateModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expenseView.Update(msg)
		m.expenseView = newModel.(view.ExpenseImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Nestcare\n\n" +
				"1. Amounts Owed\n" +
				"2. Record Payment\n" +
				"3. Income Report\n" +
				"4. Generate Sessions\n" +
				"5. Import Expenses\n\n" +
				"q. Quit",
		)
	case ViewOwed:
		return m.owedView.View()
	case ViewPayment:
		return m.paymentView.View()
	case ViewIncome:
		return m.incomeView.View()
	case ViewGenerate:
		return m.generateView.View()
	case ViewExpenses:
		return m.expenseView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
