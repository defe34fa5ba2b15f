package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/payroll"
	"nanny-payroll-bot/internal/repository"
	"nanny-payroll-bot/internal/service"
)

func newStore(t *testing.T) *repository.Store {
	t.Helper()

	db, err := repository.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.Close(db) })

	store, err := repository.NewStore(db)
	require.NoError(t, err)
	return store
}

func newPayrollService(store *repository.Store, now time.Time) *service.PayrollService {
	svc := service.NewPayrollService(store, payroll.DefaultPolicy())
	svc.SetLogger(logging.Discard())
	svc.SetLocation(time.UTC)
	svc.SetClock(func() time.Time { return now })
	return svc
}

type fixture struct {
	store    *repository.Store
	contract *models.Contract
	svc      *service.PayrollService
}

// newFixture - договор с 2024-01-01 по $20/ч, смены 10 ч 2 января и 8 ч 16 января, сегодня 20 января
func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := newStore(t)

	contract := &models.Contract{StartDate: "2024-01-01", BaseHourlyRate: decimal.NewFromInt(20), IsActive: true}
	require.NoError(t, store.Contracts.Create(ctx, contract))

	require.NoError(t, store.Events.BulkCreate(ctx, []models.ScheduleEvent{
		{Type: models.EventTypeWork, StartDate: "2024-01-02", StartTime: "08:00", EndTime: "18:00"},
		{Type: models.EventTypeWork, StartDate: "2024-01-16", StartTime: "09:00", EndTime: "17:00"},
		{Type: models.EventTypePTO, StartDate: "2024-01-17", StartTime: "09:00", EndTime: "17:00"},
	}))

	require.NoError(t, store.Users.Create(ctx, &models.User{ChatID: 1, FirstName: "Мама", Role: models.RoleParent}))
	require.NoError(t, store.Users.Create(ctx, &models.User{ChatID: 2, FirstName: "Няня", Role: models.RoleNanny}))

	return fixture{
		store:    store,
		contract: contract,
		svc:      newPayrollService(store, time.Date(2024, time.January, 20, 15, 30, 0, 0, time.UTC)),
	}
}

func TestPayrollService_OverviewCreatesCurrentPeriodOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		overview, err := f.svc.Overview(ctx)
		require.NoError(t, err)
		require.NotNil(t, overview.Contract)
		assert.NoError(t, overview.CreateErr)
		assert.Equal(t, i == 0, overview.Result.Created)

		require.Len(t, overview.Summary.Current, 1)
		current := overview.Summary.Current[0]
		assert.Equal(t, "2024-01-15", current.Record.StartDate)
		assert.Equal(t, 8.0, current.Computed.TotalHours)
		assert.Equal(t, "160.00", current.Amount().StringFixed(2))
		assert.True(t, overview.Summary.TotalOwed.IsZero())
	}

	periods, err := f.store.ListPayPeriods(ctx, models.PayPeriodFilter{ContractID: f.contract.ID})
	require.NoError(t, err)
	assert.Len(t, periods, 1)
}

func TestPayrollService_OverdueThenPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// прошлый период сохранен без часов, при загрузке пересчитывается по календарю
	_, err := f.store.CreatePayPeriod(ctx, &models.PayPeriod{
		Title:        "Jan 1 – Jan 14, 2024",
		ContractID:   f.contract.ID,
		StartDate:    "2024-01-01",
		EndDate:      "2024-01-14",
		HourlyRate:   decimal.NewFromInt(20),
		OvertimeRate: decimal.NewFromInt(30),
		TotalAmount:  decimal.Zero,
	})
	require.NoError(t, err)

	overview, err := f.svc.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, overview.Summary.Overdue, 1)
	assert.Equal(t, "200.00", overview.Summary.TotalOwed.StringFixed(2))
	require.Len(t, overview.Unpaid(), 2)
	assert.Equal(t, "2024-01-01", overview.Unpaid()[0].Record.StartDate)

	overdueID := overview.Summary.Overdue[0].Record.ID
	paid, err := f.svc.MarkPaid(ctx, 1, overdueID, time.Time{})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.Equal(t, "2024-01-20", paid.PaidDate)

	overview, err = f.svc.Overview(ctx)
	require.NoError(t, err)
	assert.Empty(t, overview.Summary.Overdue)
	require.Len(t, overview.Summary.Paid, 1)
	assert.True(t, overview.Summary.TotalOwed.IsZero())
	assert.Equal(t, "200.00", overview.Summary.YearToDatePaid.StringFixed(2))

	text := service.FormatOverview(overview)
	assert.Contains(t, text, "История выплат")
	assert.Contains(t, text, "Jan 20, 2024")
}

func TestPayrollService_MarkPaidPermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	overview, err := f.svc.Overview(ctx)
	require.NoError(t, err)
	id := overview.Summary.Current[0].Record.ID

	_, err = f.svc.MarkPaid(ctx, 2, id, time.Time{})
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = f.svc.MarkPaid(ctx, 99, id, time.Time{})
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	_, err = f.svc.MarkPaid(ctx, 1, 12345, time.Time{})
	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)

	paid, err := f.svc.MarkPaid(ctx, 1, id, time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-18", paid.PaidDate)
}

func TestPayrollService_NoActiveContract(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Contracts.Create(ctx, &models.Contract{StartDate: "2024-01-01", BaseHourlyRate: decimal.NewFromInt(20)}))

	svc := newPayrollService(store, time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC))
	overview, err := svc.Overview(ctx)
	require.NoError(t, err)

	assert.Nil(t, overview.Contract)
	assert.Empty(t, overview.Result.Periods)
	assert.True(t, overview.Summary.TotalOwed.IsZero())
	assert.Contains(t, service.FormatOverview(overview), "Нет активного договора")

	periods, err := store.ListPayPeriods(ctx, models.PayPeriodFilter{ContractID: 1})
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestPayrollService_OutOfWindowWritesNothing(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	contract := &models.Contract{StartDate: "2024-01-01", EndDate: "2024-01-10", BaseHourlyRate: decimal.NewFromInt(20), IsActive: true}
	require.NoError(t, store.Contracts.Create(ctx, contract))

	svc := newPayrollService(store, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	overview, err := svc.Overview(ctx)
	require.NoError(t, err)

	assert.True(t, overview.Result.OutOfWindow)
	assert.Contains(t, service.FormatOverview(overview), "вне срока")

	periods, err := store.ListPayPeriods(ctx, models.PayPeriodFilter{ContractID: contract.ID})
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestPayrollService_TodayUsesLocation(t *testing.T) {
	store := newStore(t)
	svc := newPayrollService(store, time.Date(2024, time.January, 15, 2, 0, 0, 0, time.UTC))

	loc := time.FixedZone("UTC-5", -5*60*60)
	svc.SetLocation(loc)

	assert.Equal(t, "2024-01-14", payroll.FormatDate(svc.Today()))
}

func TestSelectActiveContract(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	contracts := []models.Contract{
		{ID: 1, IsActive: true, CreatedAt: base},
		{ID: 2, IsActive: false, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 3, IsActive: true, CreatedAt: base.Add(time.Hour)},
		{ID: 4, IsActive: true, CreatedAt: base},
	}

	active := service.SelectActiveContract(contracts)
	require.NotNil(t, active)
	assert.Equal(t, uint(3), active.ID)

	assert.Nil(t, service.SelectActiveContract(contracts[1:2]))
	assert.Nil(t, service.SelectActiveContract(nil))
}

func TestFormatPeriodLine(t *testing.T) {
	v := payroll.PeriodView{
		Record: models.PayPeriod{ID: 5, StartDate: "2024-01-01", EndDate: "garbage"},
		Computed: models.PeriodTotals{
			TotalHours:    85.5,
			RegularHours:  80,
			OvertimeHours: 5.5,
			TotalAmount:   decimal.RequireFromString("1765"),
		},
	}

	line := service.FormatPeriodLine(v)
	assert.Contains(t, line, "Jan 1, 2024 - N/A")
	assert.Contains(t, line, "85.5 ч")
	assert.Contains(t, line, "5.5 сверхурочных")
	assert.Contains(t, line, "$1765.00")
}
