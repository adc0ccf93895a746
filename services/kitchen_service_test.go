package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/store"
)

func TestKitchenBoardShowsOnlyFoodLines(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	st := store.NewGormStore(db)
	tables := NewTableService(st, 12)
	kitchen := NewKitchenService(db, tables)
	ctx := context.Background()

	// Table 3: food and drink. Table 4: drink only. Table 5: free.
	_, err := tables.CommitOrder(ctx, 3, map[string]int{"prod_1": 2, "prod_2": 1}, models.DefaultTable(), "X")
	require.NoError(t, err)
	_, err = tables.CommitOrder(ctx, 4, map[string]int{"prod_1": 1}, models.DefaultTable(), "Y")
	require.NoError(t, err)

	board, err := kitchen.Board(ctx)
	require.NoError(t, err)

	// Only table 3 has anything for the kitchen, and only the empanada.
	require.Len(t, board, 1)
	assert.Equal(t, 3, board[0].TableNumber)
	assert.Equal(t, "X", board[0].Server)
	require.Len(t, board[0].Lines, 1)
	assert.Equal(t, "Empanada", board[0].Lines[0].Name)
	assert.Equal(t, 1, board[0].Lines[0].Quantity)
	assert.GreaterOrEqual(t, board[0].ElapsedMinutes, 0)
}

func TestKitchenBoardEmptyFloor(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	tables := NewTableService(store.NewGormStore(db), 12)
	kitchen := NewKitchenService(db, tables)

	board, err := kitchen.Board(context.Background())
	require.NoError(t, err)
	assert.Empty(t, board)
}
