package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/store"
)

func TestSalesHistoryAppendAndFilter(t *testing.T) {
	st := store.NewGormStore(setupTestDB(t))
	history := NewSalesHistory(st)
	ctx := context.Background()

	records, err := history.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, history.Append(ctx, models.SalesRecord{TableNumber: 1, Total: 10000, Date: "2026-09-01"}))
	require.NoError(t, history.Append(ctx, models.SalesRecord{TableNumber: 2, Total: 5000, Date: "2026-08-31"}))

	records, err = history.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	today, err := history.ByDate(ctx, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, 1, today[0].TableNumber)
}

func TestDailyReportAggregates(t *testing.T) {
	st := store.NewGormStore(setupTestDB(t))
	history := NewSalesHistory(st)
	reports := NewReportService(history)
	ctx := context.Background()

	beer := models.PartyItem{ProductID: "prod_1", Name: "Cerveza", Quantity: 2, UnitPrice: 10000, Subtotal: 20000, Category: models.CategoryDrink}
	empanada := models.PartyItem{ProductID: "prod_2", Name: "Empanada", Quantity: 1, UnitPrice: 5000, Subtotal: 5000, Category: models.CategoryFood}

	require.NoError(t, history.Append(ctx, models.SalesRecord{
		TableNumber: 3, PartyNumber: 1, Items: []models.PartyItem{beer}, Total: 20000, Date: "2026-09-01",
	}))
	require.NoError(t, history.Append(ctx, models.SalesRecord{
		TableNumber: 3, PartyNumber: 2, Items: []models.PartyItem{empanada}, Total: 5000, Date: "2026-09-01",
	}))
	require.NoError(t, history.Append(ctx, models.SalesRecord{
		TableNumber: 5, PartyNumber: 1, Items: []models.PartyItem{beer}, Total: 20000, Date: "2026-09-01",
	}))
	// A different day must stay out of the report.
	require.NoError(t, history.Append(ctx, models.SalesRecord{
		TableNumber: 1, PartyNumber: 1, Items: []models.PartyItem{beer}, Total: 20000, Date: "2026-08-31",
	}))

	report, err := reports.Daily(ctx, "2026-09-01")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Parties)
	assert.Equal(t, float64(45000), report.Total)
	assert.Equal(t, float64(40000), report.ByCategory[models.CategoryDrink])
	assert.Equal(t, float64(5000), report.ByCategory[models.CategoryFood])

	require.Len(t, report.ByTable, 2)
	assert.Equal(t, TableTotal{TableNumber: 3, Parties: 2, Total: 25000}, report.ByTable[0])
	assert.Equal(t, TableTotal{TableNumber: 5, Parties: 1, Total: 20000}, report.ByTable[1])
}

func TestDailyReportEmptyDay(t *testing.T) {
	st := store.NewGormStore(setupTestDB(t))
	reports := NewReportService(NewSalesHistory(st))

	report, err := reports.Daily(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Parties)
	assert.Equal(t, float64(0), report.Total)
	assert.Empty(t, report.ByTable)
}
