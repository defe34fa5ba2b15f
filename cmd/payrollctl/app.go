package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"nanny-payroll-bot/internal/payroll"
	"nanny-payroll-bot/internal/repository"
	"nanny-payroll-bot/internal/service"
)

// App - сервисы, с которыми работают команды CLI
type App struct {
	store     *repository.Store
	payroll   *service.PayrollService
	contracts *service.ContractService
	events    *service.ScheduleEventService
	tracker   *payroll.Tracker
}

func NewApp(store *repository.Store, policy payroll.Policy, loc *time.Location) *App {
	payrollService := service.NewPayrollService(store, policy)
	payrollService.SetLocation(loc)

	return &App{
		store:     store,
		payroll:   payrollService,
		contracts: service.NewContractService(store.Contracts),
		events:    service.NewScheduleEventService(store.Events),
		tracker:   payroll.NewTracker(store),
	}
}

// ShowPeriods сверяет текущий период на дату on и печатает сводку
func (a *App) ShowPeriods(ctx context.Context, w io.Writer, on time.Time) error {
	if on.IsZero() {
		on = a.payroll.Today()
	}

	overview, err := a.payroll.OverviewAt(ctx, on)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, service.FormatOverview(overview))
	return err
}

// MarkPaid отмечает период оплаченным без проверки роли: CLI запускает владелец базы
func (a *App) MarkPaid(ctx context.Context, w io.Writer, id uint, on time.Time) error {
	if on.IsZero() {
		on = a.payroll.Today()
	}

	period, err := a.tracker.MarkPaid(ctx, id, on)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Period #%d (%s - %s) marked paid on %s\n",
		period.ID, period.StartDate, period.EndDate, period.PaidDate)
	return err
}

func (a *App) Import(ctx context.Context, w io.Writer, path string) error {
	count, err := a.events.ImportFile(ctx, path)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Imported %d schedule events\n", count)
	return err
}

func (a *App) ListContracts(ctx context.Context, w io.Writer) error {
	contracts, err := a.contracts.List(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, service.FormatContracts(contracts, a.payroll.Today()))
	return err
}
