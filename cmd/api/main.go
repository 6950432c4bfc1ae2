package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/hannahwr/nestcare/internal/billing"
	billingStore "github.com/hannahwr/nestcare/internal/billing/store"
	"github.com/hannahwr/nestcare/internal/clock"
	"github.com/hannahwr/nestcare/internal/config"
	"github.com/hannahwr/nestcare/internal/database"
	"github.com/hannahwr/nestcare/internal/expense"
	expenseStore "github.com/hannahwr/nestcare/internal/expense/store"
	"github.com/hannahwr/nestcare/internal/family"
	familyStore "github.com/hannahwr/nestcare/internal/family/store"
	nestHttp "github.com/hannahwr/nestcare/internal/http"
	authHandler "github.com/hannahwr/nestcare/internal/http/auth"
	billingHandler "github.com/hannahwr/nestcare/internal/http/billing"
	expenseHandler "github.com/hannahwr/nestcare/internal/http/expense"
	familyHandler "github.com/hannahwr/nestcare/internal/http/family"
	offeringHandler "github.com/hannahwr/nestcare/internal/http/offering"
	reportHandler "github.com/hannahwr/nestcare/internal/http/report"
	scheduleHandler "github.com/hannahwr/nestcare/internal/http/schedule"
	sessionHandler "github.com/hannahwr/nestcare/internal/http/session"
	"github.com/hannahwr/nestcare/internal/importer"
	"github.com/hannahwr/nestcare/internal/offering"
	offeringStore "github.com/hannahwr/nestcare/internal/offering/store"
	"github.com/hannahwr/nestcare/internal/report"
	reportStore "github.com/hannahwr/nestcare/internal/report/store"
	"github.com/hannahwr/nestcare/internal/schedule"
	scheduleStore "github.com/hannahwr/nestcare/internal/schedule/store"
	"github.com/hannahwr/nestcare/internal/session"
	sessionStore "github.com/hannahwr/nestcare/internal/session/store"
)

func main() {
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
	defer db.Close()

	clk := clock.System()

	var (
		familyService   = family.NewService(familyStore.New(db))
		offeringService = offering.NewService(offeringStore.New(db))
		sessionService  = session.NewService(sessionStore.New(db), clk)
		scheduleService = schedule.NewService(scheduleStore.New(db))
		expenseService  = expense.NewService(expenseStore.New(db))
		billingService  = billing.NewService(billingStore.New(db), clk)
		reportService   = report.NewService(reportStore.New(db))
		importService   = importer.NewService()
	)

	var (
		authH     = authHandler.NewHandler(cfg.Auth.Secret, cfg.Auth.AdminPassword, cfg.Auth.TokenTTL)
		familyH   = familyHandler.NewHandler(familyService, billingService)
		offeringH = offeringHandler.NewHandler(offeringService)
		scheduleH = scheduleHandler.NewHandler(scheduleService, cfg.App.DefaultTZOffsetMinutes)
		sessionH  = sessionHandler.NewHandler(sessionService)
		expenseH  = expenseHandler.NewHandler(expenseService, importService)
		paymentH  = billingHandler.NewHandler(billingService)
		reportH   = reportHandler.NewHandler(reportService)
	)

	router := nestHttp.New(authH, familyH, offeringH, scheduleH, sessionH, expenseH, paymentH, reportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	server := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
