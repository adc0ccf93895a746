package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/store"
)

const historyKey = "sales_history"

// SalesHistory is the global append-only log of closed parties, the durable
// source for reporting. It is one document holding the whole list.
type SalesHistory struct {
	store store.Store
}

func NewSalesHistory(st store.Store) *SalesHistory {
	return &SalesHistory{store: st}
}

// List returns every recorded sale, oldest first.
func (h *SalesHistory) List(ctx context.Context) ([]models.SalesRecord, error) {
	raw, err := h.store.Get(ctx, historyKey)
	if errors.Is(err, store.ErrNotFound) {
		return []models.SalesRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var records []models.SalesRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode sales history: %w", err)
	}
	return records, nil
}

// ByDate filters the log to one calendar date (YYYY-MM-DD).
func (h *SalesHistory) ByDate(ctx context.Context, date string) ([]models.SalesRecord, error) {
	all, err := h.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.SalesRecord, 0, len(all))
	for _, r := range all {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

// Append re-reads the list and writes it back with the new record at the
// end. Two payments on different tables can race here and lose an entry;
// the log has no conflict detection, matching the store's whole-document
// write model, and low staff concurrency keeps the window acceptable.
func (h *SalesHistory) Append(ctx context.Context, rec models.SalesRecord) error {
	records, err := h.List(ctx)
	if err != nil {
		return err
	}
	records = append(records, rec)
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	if err := h.store.Put(ctx, historyKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
