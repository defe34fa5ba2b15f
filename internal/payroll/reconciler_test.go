package payroll_test

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
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestReconciler(t *testing.T) (*payroll.Reconciler, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	r := payroll.NewReconciler(store, payroll.NewCalculator(payroll.DefaultPolicy()))
	r.SetLogger(logging.Discard())
	return r, store
}

func activeContract() *models.Contract {
	return &models.Contract{
		ID:             7,
		StartDate:      "2024-01-01",
		BaseHourlyRate: decimal.NewFromInt(20),
		IsActive:       true,
	}
}

func storedPeriod(contractID uint, start string) models.PayPeriod {
	s, _ := payroll.ParseDate(start)
	e := s.AddDate(0, 0, 13)
	return models.PayPeriod{
		Title:        payroll.PeriodTitle(s, e),
		ContractID:   contractID,
		StartDate:    start,
		EndDate:      payroll.FormatDate(e),
		HourlyRate:   decimal.NewFromInt(20),
		OvertimeRate: decimal.NewFromInt(30),
		TotalAmount:  decimal.Zero,
	}
}

var jan20 = date(2024, time.January, 20)

// =============================================================================
// PRECONDITIONS
// =============================================================================

func TestReconcile_NoContract_EmptyWithoutWrites(t *testing.T) {
	r, store := newTestReconciler(t)

	res, err := r.Reconcile(context.Background(), jan20, nil, nil, nil)

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Periods)
	assert.Nil(t, res.Current)
	assert.Zero(t, store.creates+store.updates)
}

func TestReconcile_ContractWithoutStartDate_Empty(t *testing.T) {
	r, store := newTestReconciler(t)
	contract := activeContract()
	contract.StartDate = ""
	persisted := []models.PayPeriod{store.seed(storedPeriod(contract.ID, "2024-01-01"))}

	res, err := r.Reconcile(context.Background(), jan20, contract, nil, persisted)

	require.NoError(t, err)
	assert.Empty(t, res.Periods)
	assert.Zero(t, store.creates+store.updates)
}

func TestReconcile_TodayBeforeContractStart_NoWrite(t *testing.T) {
	r, store := newTestReconciler(t)
	contract := activeContract()
	contract.StartDate = "2024-02-01"

	res, err := r.Reconcile(context.Background(), jan20, contract, nil, nil)

	require.NoError(t, err)
	assert.True(t, res.OutOfWindow)
	assert.Empty(t, res.Periods)
	assert.Zero(t, store.creates+store.updates)
}

func TestReconcile_TodayAfterContractEnd_ListsExistingWithoutWrite(t *testing.T) {
	// GIVEN: a contract that ended Jan 28 with two stored periods
	// WHEN: reconciling on Feb 10
	// THEN: nothing is written, both periods are shown with recomputed totals
	r, store := newTestReconciler(t)
	contract := activeContract()
	contract.EndDate = "2024-01-28"
	persisted := []models.PayPeriod{
		store.seed(storedPeriod(contract.ID, "2024-01-15")),
		store.seed(storedPeriod(contract.ID, "2024-01-01")),
	}
	events := []models.ScheduleEvent{work("2024-01-16", "09:00", "17:00")}

	res, err := r.Reconcile(context.Background(), date(2024, time.February, 10), contract, events, persisted)

	require.NoError(t, err)
	assert.True(t, res.OutOfWindow)
	assert.Zero(t, store.creates+store.updates)
	require.Len(t, res.Periods, 2)
	assert.Nil(t, res.Current)
	assert.Equal(t, 8.0, res.Periods[0].Computed.TotalHours)
	assert.Zero(t, res.Periods[1].Computed.TotalHours)
}

// =============================================================================
// CREATE / UPDATE
// =============================================================================

func TestReconcile_CreatesCurrentPeriod(t *testing.T) {
	r, store := newTestReconciler(t)
	contract := activeContract()
	events := []models.ScheduleEvent{
		work("2024-01-15", "08:00", "18:00"),
		work("2024-01-16", "22:00", "06:00"),
	}

	res, err := r.Reconcile(context.Background(), jan20, contract, events, nil)

	require.NoError(t, err)
	assert.True(t, res.Created)
	require.NotNil(t, res.Current)
	require.Len(t, res.Periods, 1)
	assert.Same(t, &res.Periods[0], res.Current)

	rec := res.Current.Record
	assert.NotZero(t, rec.ID)
	assert.Equal(t, "Jan 15 – Jan 28, 2024", rec.Title)
	assert.Equal(t, "2024-01-15", rec.StartDate)
	assert.Equal(t, "2024-01-28", rec.EndDate)
	assert.Equal(t, contract.ID, rec.ContractID)
	assert.False(t, rec.IsPaid)
	assert.Equal(t, "20", rec.HourlyRate.String())
	assert.Equal(t, "30", rec.OvertimeRate.String())
	assert.Equal(t, 18.0, rec.TotalHours)
	assert.Equal(t, "360.00", res.Current.Amount().StringFixed(2))

	stored := store.list(contract.ID)
	require.Len(t, stored, 1)
	assert.Equal(t, 18.0, stored[0].TotalHours)
}

func TestReconcile_IsIdempotent(t *testing.T) {
	// GIVEN: the current period was created by a first run
	// WHEN: reconciling again with the same inputs
	// THEN: the record is updated, never duplicated
	r, store := newTestReconciler(t)
	contract := activeContract()
	events := []models.ScheduleEvent{work("2024-01-17", "09:00", "17:00")}
	ctx := context.Background()

	first, err := r.Reconcile(ctx, jan20, contract, events, store.list(contract.ID))
	require.NoError(t, err)
	second, err := r.Reconcile(ctx, jan20, contract, events, store.list(contract.ID))
	require.NoError(t, err)

	assert.Equal(t, 1, store.creates)
	assert.Equal(t, 1, store.updates)
	assert.False(t, second.Created)
	assert.Equal(t, first.Current.Record.ID, second.Current.Record.ID)
	assert.Len(t, store.list(contract.ID), 1)
	assert.Len(t, second.Periods, 1)
}

func TestReconcile_UpdateRewritesOnlyTotals(t *testing.T) {
	r, store := newTestReconciler(t)
	contract := activeContract()
	contract.BaseHourlyRate = decimal.NewFromInt(25) // rate raised after the period was created

	existing := storedPeriod(contract.ID, "2024-01-15")
	existing.Title = "Custom title"
	existing.TotalHours = 99
	existing = store.seed(existing)

	events := []models.ScheduleEvent{work("2024-01-18", "09:00", "13:00")}

	res, err := r.Reconcile(context.Background(), jan20, contract, events, []models.PayPeriod{existing})

	require.NoError(t, err)
	require.NotNil(t, res.Current)
	assert.Equal(t, existing.ID, res.Current.Record.ID)
	assert.Equal(t, "Custom title", res.Current.Record.Title)
	assert.Equal(t, "20", res.Current.Record.HourlyRate.String(), "captured rate is kept")
	assert.Equal(t, 4.0, res.Current.Record.TotalHours)
	assert.Equal(t, "100.00", res.Current.Amount().StringFixed(2), "amount uses the contract's current rate")

	stored := store.list(contract.ID)
	require.Len(t, stored, 1)
	assert.Equal(t, 4.0, stored[0].TotalHours)
	assert.Equal(t, "Custom title", stored[0].Title)
}

func TestReconcile_UpdateFailure_FallsBackToStoredRecord(t *testing.T) {
	r, store := newTestReconciler(t)
	contract := activeContract()
	existing := store.seed(storedPeriod(contract.ID, "2024-01-15"))
	store.updateErr = errStoreDown
	events := []models.ScheduleEvent{work("2024-01-18", "09:00", "19:00")}

	res, err := r.Reconcile(context.Background(), jan20, contract, events, []models.PayPeriod{existing})

	require.NoError(t, err, "update failure is not fatal")
	require.Error(t, res.UpdateErr)
	assert.ErrorIs(t, res.UpdateErr, payroll.ErrUpdatePeriod)
	assert.ErrorIs(t, res.UpdateErr, errStoreDown)
	require.NotNil(t, res.Current)
	assert.Equal(t, existing.ID, res.Current.Record.ID)
	assert.Equal(t, 10.0, res.Current.Computed.TotalHours)
	assert.Equal(t, 10.0, res.Current.Record.TotalHours)
	assert.Zero(t, store.list(contract.ID)[0].TotalHours, "store keeps the old value")
}

func TestReconcile_CreateFailure_ReportsAndKeepsExisting(t *testing.T) {
	r, store := newTestReconciler(t)
	contract := activeContract()
	old := store.seed(storedPeriod(contract.ID, "2024-01-01"))
	store.createErr = errStoreDown

	res, err := r.Reconcile(context.Background(), jan20, contract, nil, []models.PayPeriod{old})

	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrCreatePeriod)
	assert.ErrorIs(t, err, errStoreDown)
	require.NotNil(t, res)
	assert.Nil(t, res.Current)
	assert.False(t, res.Created)
	require.Len(t, res.Periods, 1)
	assert.Equal(t, old.ID, res.Periods[0].Record.ID)
}

func TestReconcile_ConcurrentCreateLoses_ReportsDuplicate(t *testing.T) {
	// GIVEN: another run created the current period after our listing
	// WHEN: this run tries to create it from a stale list
	// THEN: the store rejects the duplicate and nothing extra is written
	r, store := newTestReconciler(t)
	contract := activeContract()
	store.seed(storedPeriod(contract.ID, "2024-01-15"))

	res, err := r.Reconcile(context.Background(), jan20, contract, nil, nil)

	assert.ErrorIs(t, err, payroll.ErrCreatePeriod)
	assert.ErrorIs(t, err, payroll.ErrDuplicatePeriod)
	assert.Nil(t, res.Current)
	assert.Len(t, store.list(contract.ID), 1)
}

// =============================================================================
// FILTER / DEDUP / RECOMPUTE
// =============================================================================

func TestReconcile_ExcludesPeriodsOutsideContractWindow(t *testing.T) {
	r, store := newTestReconciler(t)
	contract := activeContract()
	contract.StartDate = "2024-01-15"
	contract.EndDate = "2024-03-31"

	persisted := []models.PayPeriod{
		store.seed(storedPeriod(contract.ID, "2024-04-01")), // after end
		store.seed(storedPeriod(contract.ID, "2024-01-01")), // before start (superseded contract)
		store.seed(storedPeriod(contract.ID, "2024-01-03")), // other anchor, before start
		store.seed(storedPeriod(contract.ID, "bogus")),
	}

	res, err := r.Reconcile(context.Background(), jan20, contract, nil, persisted)

	require.NoError(t, err)
	require.Len(t, res.Periods, 1)
	assert.Equal(t, "2024-01-15", res.Periods[0].Record.StartDate)
	assert.True(t, res.Created)
}

func TestReconcile_DeduplicatesByStartDate(t *testing.T) {
	r, store := newTestReconciler(t)
	contract := activeContract()
	a := store.seed(storedPeriod(contract.ID, "2024-01-01"))
	b := store.seed(storedPeriod(contract.ID, "2024-01-01"))

	res, err := r.Reconcile(context.Background(), date(2024, time.February, 1), contract, nil, []models.PayPeriod{a, b})

	require.NoError(t, err)
	var starts []string
	for _, v := range res.Periods {
		starts = append(starts, v.Record.StartDate)
	}
	assert.Equal(t, []string{"2024-01-29", "2024-01-01"}, starts)
	assert.Equal(t, a.ID, res.Periods[1].Record.ID, "first occurrence wins")
}

func TestReconcile_CurrentPeriodWinsOverStaleDuplicate(t *testing.T) {
	r, store := newTestReconciler(t)
	contract := activeContract()
	first := store.seed(storedPeriod(contract.ID, "2024-01-15"))
	duplicate := store.seed(storedPeriod(contract.ID, "2024-01-15"))
	events := []models.ScheduleEvent{work("2024-01-19", "09:00", "11:00")}

	res, err := r.Reconcile(context.Background(), jan20, contract, events, []models.PayPeriod{duplicate, first})

	require.NoError(t, err)
	require.Len(t, res.Periods, 1)
	require.NotNil(t, res.Current)
	assert.Equal(t, duplicate.ID, res.Current.Record.ID, "first same-day match is reconciled")
	assert.Equal(t, res.Current.Record.ID, res.Periods[0].Record.ID)
	assert.Equal(t, 2.0, res.Periods[0].Record.TotalHours)
	assert.Equal(t, 0, store.creates)
}

func TestReconcile_RecomputesPastPeriodsFromCurrentEvents(t *testing.T) {
	// GIVEN: a past period stored with 40 hours, events since edited down to 8
	// THEN: the displayed totals follow events; the stored record is untouched
	r, store := newTestReconciler(t)
	contract := activeContract()
	past := storedPeriod(contract.ID, "2024-01-01")
	past.TotalHours = 40
	past.TotalAmount = decimal.NewFromInt(800)
	past = store.seed(past)

	events := []models.ScheduleEvent{work("2024-01-05", "09:00", "17:00")}

	res, err := r.Reconcile(context.Background(), jan20, contract, events, []models.PayPeriod{past})

	require.NoError(t, err)
	require.Len(t, res.Periods, 2)
	pastView := res.Periods[1]
	assert.Equal(t, past.ID, pastView.Record.ID)
	assert.Equal(t, 8.0, pastView.Computed.TotalHours)
	assert.Equal(t, "160.00", pastView.Amount().StringFixed(2))
	assert.Equal(t, 40.0, pastView.Record.TotalHours)
	assert.Equal(t, 1, store.updates+store.creates, "only the current period is written")
}

func TestReconcile_PastPeriodWithBadEndDate_UsesFourteenDaySpan(t *testing.T) {
	r, store := newTestReconciler(t)
	contract := activeContract()
	past := storedPeriod(contract.ID, "2024-01-01")
	past.EndDate = ""
	past = store.seed(past)
	events := []models.ScheduleEvent{work("2024-01-14", "09:00", "12:00")}

	res, err := r.Reconcile(context.Background(), jan20, contract, events, []models.PayPeriod{past})

	require.NoError(t, err)
	require.Len(t, res.Periods, 2)
	assert.Equal(t, 3.0, res.Periods[1].Computed.TotalHours)
}
