package store

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Document{}))
	return NewGormStore(db)
}

func TestGetMissingKey(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutThenGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", json.RawMessage(`{"a":1}`)))
	raw, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(raw))

	// Put replaces unconditionally.
	require.NoError(t, s.Put(ctx, "k", json.RawMessage(`{"a":2}`)))
	raw, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(raw))
}

func TestUpdateCreatesMissingDocument(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	out, err := s.Update(ctx, "k", func(prev json.RawMessage) (json.RawMessage, error) {
		assert.Nil(t, prev)
		return json.RawMessage(`{"n":1}`), nil
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(out))

	raw, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(raw))
}

func TestUpdateAppliesFn(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", json.RawMessage(`{"n":1}`)))
	out, err := s.Update(ctx, "k", func(prev json.RawMessage) (json.RawMessage, error) {
		assert.JSONEq(t, `{"n":1}`, string(prev))
		return json.RawMessage(`{"n":2}`), nil
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":2}`, string(out))
}

func TestUpdateConflictOnInterleavedWrite(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", json.RawMessage(`{"n":1}`)))

	// Another writer lands between this cycle's read and its conditional
	// write; the revision check must abort the cycle.
	_, err := s.Update(ctx, "k", func(prev json.RawMessage) (json.RawMessage, error) {
		require.NoError(t, s.Put(ctx, "k", json.RawMessage(`{"n":99}`)))
		return json.RawMessage(`{"n":2}`), nil
	})
	assert.ErrorIs(t, err, ErrConflict)

	// The interloper's write survives untouched.
	raw, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":99}`, string(raw))
}

func TestUpdateAbortsOnFnError(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", json.RawMessage(`{"n":1}`)))

	boom := fmt.Errorf("validation failed")
	_, err := s.Update(ctx, "k", func(prev json.RawMessage) (json.RawMessage, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	raw, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(raw))
}
