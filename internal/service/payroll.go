package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/payroll"

	"github.com/sirupsen/logrus"
)

// Overview - состояние расчета зарплаты на дату Today
type Overview struct {
	Today    time.Time
	Contract *models.Contract
	Result   *payroll.Result
	Summary  payroll.Summary
	// CreateErr - не удалось создать текущий период; показаны ранее сохраненные
	CreateErr error
}

// Unpaid возвращает неоплаченные периоды: сначала просроченные, затем текущие
func (o *Overview) Unpaid() []payroll.PeriodView {
	unpaid := make([]payroll.PeriodView, 0, len(o.Summary.Overdue)+len(o.Summary.Current))
	unpaid = append(unpaid, o.Summary.Overdue...)
	return append(unpaid, o.Summary.Current...)
}

type PayrollService struct {
	store      payroll.Store
	calc       *payroll.Calculator
	reconciler *payroll.Reconciler
	tracker    *payroll.Tracker
	now        func() time.Time
	location   *time.Location
	logger     *logrus.Logger
}

func NewPayrollService(store payroll.Store, policy payroll.Policy) *PayrollService {
	calc := payroll.NewCalculator(policy)
	return &PayrollService{
		store:      store,
		calc:       calc,
		reconciler: payroll.NewReconciler(store, calc),
		tracker:    payroll.NewTracker(store),
		now:        time.Now,
		location:   time.Local,
		logger:     logging.New(),
	}
}

// SetClock подменяет источник текущего времени
func (s *PayrollService) SetClock(now func() time.Time) {
	s.now = now
}

// SetLocation задает часовой пояс, в котором определяется "сегодня"
func (s *PayrollService) SetLocation(loc *time.Location) {
	if loc != nil {
		s.location = loc
	}
}

// SetLogger заменяет логгер сервиса и расчетных компонентов
func (s *PayrollService) SetLogger(logger *logrus.Logger) {
	s.logger = logger
	s.reconciler.SetLogger(logger)
	s.tracker.SetLogger(logger)
}

// Today возвращает текущую календарную дату
func (s *PayrollService) Today() time.Time {
	return payroll.DateOf(s.now().In(s.location))
}

// Overview сверяет периоды активного договора на сегодня
func (s *PayrollService) Overview(ctx context.Context) (*Overview, error) {
	return s.OverviewAt(ctx, s.Today())
}

// OverviewAt загружает данные, сверяет текущий период и группирует периоды по статусу оплаты.
// Ошибка возвращается только при сбое чтения из хранилища.
func (s *PayrollService) OverviewAt(ctx context.Context, today time.Time) (*Overview, error) {
	today = payroll.DateOf(today)

	contracts, err := s.store.ListContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}

	overview := &Overview{
		Today:    today,
		Contract: SelectActiveContract(contracts),
		Result:   &payroll.Result{},
	}

	if overview.Contract == nil {
		s.logger.Debug("No active contract, payroll skipped")
		overview.Summary = payroll.Summarize(nil, today)
		return overview, nil
	}

	events, err := s.store.ListScheduleEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedule events: %w", err)
	}

	persisted, err := s.store.ListPayPeriods(ctx, models.PayPeriodFilter{ContractID: overview.Contract.ID})
	if err != nil {
		return nil, fmt.Errorf("list pay periods: %w", err)
	}

	result, err := s.reconciler.Reconcile(ctx, today, overview.Contract, events, persisted)
	if err != nil {
		s.logger.WithError(err).WithField("contract_id", overview.Contract.ID).Warn("Current pay period was not saved")
		overview.CreateErr = err
	}
	overview.Result = result
	overview.Summary = payroll.Summarize(result.Periods, today)

	s.logger.WithFields(logrus.Fields{
		"contract_id": overview.Contract.ID,
		"periods":     len(result.Periods),
		"owed":        overview.Summary.TotalOwed.StringFixed(2),
	}).Debug("Payroll overview built")

	return overview, nil
}

// MarkPaid отмечает период оплаченным от имени пользователя chatID.
// Нулевая дата оплаты означает сегодня.
func (s *PayrollService) MarkPaid(ctx context.Context, chatID int64, periodID uint, paidOn time.Time) (*models.PayPeriod, error) {
	user, err := s.store.CurrentUser(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.CanManagePayroll() {
		return nil, fmt.Errorf("%w: отмечать выплаты могут родители и администраторы", ErrForbidden)
	}

	if paidOn.IsZero() {
		paidOn = s.Today()
	}

	return s.tracker.MarkPaid(ctx, periodID, paidOn)
}

// SelectActiveContract возвращает самый новый активный договор или nil
func SelectActiveContract(contracts []models.Contract) *models.Contract {
	var active *models.Contract
	for i := range contracts {
		c := contracts[i]
		if !c.IsActive {
			continue
		}
		if active == nil || c.CreatedAt.After(active.CreatedAt) ||
			(c.CreatedAt.Equal(active.CreatedAt) && c.ID > active.ID) {
			active = &c
		}
	}
	return active
}

// FormatOverview форматирует сводку по зарплате для вывода в чат
func FormatOverview(o *Overview) string {
	if o.Contract == nil {
		return "📭 Нет активного договора. Расчет зарплаты начнется после добавления договора (/addcontract)."
	}

	var lines []string
	lines = append(lines, "💰 Зарплата")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("❗ К оплате: $%s (%d неоплаченных)", o.Summary.TotalOwed.StringFixed(2), len(o.Summary.Overdue)))
	lines = append(lines, fmt.Sprintf("✅ Выплачено в %d: $%s", o.Today.Year(), o.Summary.YearToDatePaid.StringFixed(2)))
	lines = append(lines, fmt.Sprintf("💵 Ставка: $%s/ч", o.Contract.BaseHourlyRate.StringFixed(2)))

	if o.Result.OutOfWindow {
		lines = append(lines, "")
		lines = append(lines, "⚠️ Сегодня вне срока действия договора, текущий период не ведется.")
	}
	if o.CreateErr != nil {
		lines = append(lines, "")
		lines = append(lines, "⚠️ Не удалось сохранить текущий период, показаны ранее сохраненные данные.")
	}
	if o.Result.UpdateErr != nil {
		lines = append(lines, "")
		lines = append(lines, "⚠️ Не удалось обновить текущий период в базе, показан пересчет.")
	}

	lines = appendSection(lines, "⏳ Текущий период:", o.Summary.Current, false)
	lines = appendSection(lines, "❗ Неоплаченные периоды:", o.Summary.Overdue, false)
	lines = appendSection(lines, "✅ История выплат:", o.Summary.Paid, true)

	if len(o.Result.Periods) == 0 {
		lines = append(lines, "")
		lines = append(lines, "📭 Расчетных периодов пока нет.")
	}

	return strings.Join(lines, "\n")
}

func appendSection(lines []string, header string, views []payroll.PeriodView, paid bool) []string {
	if len(views) == 0 {
		return lines
	}

	lines = append(lines, "")
	lines = append(lines, header)
	for _, v := range views {
		lines = append(lines, FormatPeriodLine(v))
		if paid {
			lines = append(lines, fmt.Sprintf("   Оплачено: %s", payroll.DisplayDate(v.Record.PaidDate)))
		}
	}
	return lines
}

// FormatPeriodLine форматирует один период: часы с точностью 0.1, сумма с точностью до цента
func FormatPeriodLine(v payroll.PeriodView) string {
	title := v.Record.Title
	if title == "" {
		title = fmt.Sprintf("%s - %s", payroll.DisplayDate(v.Record.StartDate), payroll.DisplayDate(v.Record.EndDate))
	}

	line := fmt.Sprintf("#%d %s: %.1f ч", v.Record.ID, title, v.Computed.TotalHours)
	if v.Computed.OvertimeHours > 0 {
		line += fmt.Sprintf(" (%.1f обычных + %.1f сверхурочных)", v.Computed.RegularHours, v.Computed.OvertimeHours)
	}
	return line + fmt.Sprintf(", $%s", v.Computed.TotalAmount.StringFixed(2))
}

// PeriodButtonLabel - подпись кнопки "оплачено" для периода
func PeriodButtonLabel(v payroll.PeriodView) string {
	return fmt.Sprintf("✅ Оплачено: %s - %s ($%s)",
		payroll.DisplayDate(v.Record.StartDate),
		payroll.DisplayDate(v.Record.EndDate),
		v.Computed.TotalAmount.StringFixed(2))
}
