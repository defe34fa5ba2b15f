package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/payroll"
	"nanny-payroll-bot/internal/repository"
)

func newTestApp(t *testing.T) (*App, *repository.Store) {
	t.Helper()

	db, err := repository.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.Close(db) })

	store, err := repository.NewStore(db)
	require.NoError(t, err)

	require.NoError(t, store.Contracts.Create(context.Background(), &models.Contract{
		Title:          "Основной",
		StartDate:      "2024-01-01",
		BaseHourlyRate: decimal.NewFromInt(20),
		IsActive:       true,
	}))

	return NewApp(store, payroll.DefaultPolicy(), time.UTC), store
}

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	root := SetupCommands(func(*cobra.Command) (*App, error) { return app, nil })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestCLI_ImportPeriodsMarkPaid(t *testing.T) {
	app, store := newTestApp(t)

	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"events": [
		{"type": "work", "start_date": "2024-01-15", "start_time": "09:00", "end_time": "17:00",
		 "recurring": {"pattern": "daily", "until": "2024-01-19"}}
	]}`), 0o600))

	out, err := run(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 5 schedule events")

	out, err = run(t, app, "periods", "--date", "2024-01-20")
	require.NoError(t, err)
	assert.Contains(t, out, "Текущий период")
	assert.Contains(t, out, "40.0 ч")
	assert.Contains(t, out, "$800.00")

	periods, err := store.ListPayPeriods(context.Background(), models.PayPeriodFilter{ContractID: 1})
	require.NoError(t, err)
	require.Len(t, periods, 1)

	out, err = run(t, app, "markpaid", "1", "--on", "2024-01-29")
	require.NoError(t, err)
	assert.Contains(t, out, "marked paid on 2024-01-29")
}

func TestCLI_Contracts(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := run(t, app, "contracts")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 Основной")
}

func TestCLI_Errors(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := run(t, app, "markpaid", "abc")
	assert.Error(t, err)

	_, err = run(t, app, "markpaid", "77")
	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)

	_, err = run(t, app, "periods", "--date", "20.01.2024")
	assert.Error(t, err)

	_, err = run(t, app, "import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
