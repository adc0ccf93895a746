package models

import "time"

// TableRecord is the shared persisted state of one physical table. It is
// stored as a single JSON document so that claim/release always replace the
// whole record atomically, never individual fields.
type TableRecord struct {
	Occupied       bool           `json:"occupied"`
	CurrentOrder   map[string]int `json:"current_order"`
	Server         string         `json:"server"`
	LastModifiedBy string         `json:"last_modified_by"`
	OccupiedSince  *time.Time     `json:"occupied_since"`
	PartiesTonight []ClosedParty  `json:"parties_tonight"`
}

// DefaultTable returns the record of a free table.
func DefaultTable() TableRecord {
	return TableRecord{
		Occupied:       false,
		CurrentOrder:   map[string]int{},
		Server:         "",
		LastModifiedBy: "",
		OccupiedSince:  nil,
		PartiesTonight: []ClosedParty{},
	}
}

// Same reports whether two records describe the same table state. It is the
// staleness check behind optimistic commits: a client that read `other` may
// only write if the persisted record still matches it. The party log length
// participates so a concurrent payment also counts as a change.
func (t TableRecord) Same(other TableRecord) bool {
	if t.Occupied != other.Occupied || t.Server != other.Server {
		return false
	}
	if !timePtrEqual(t.OccupiedSince, other.OccupiedSince) {
		return false
	}
	if len(t.PartiesTonight) != len(other.PartiesTonight) {
		return false
	}
	if len(t.CurrentOrder) != len(other.CurrentOrder) {
		return false
	}
	for id, qty := range t.CurrentOrder {
		if other.CurrentOrder[id] != qty {
			return false
		}
	}
	return true
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// OrderTotal sums quantity * unit price over an order. Products missing from
// the catalog contribute 0: catalog and orders sync independently and may
// transiently disagree, so a stale order must never fail the lookup.
func OrderTotal(order map[string]int, catalog map[string]Product) float64 {
	var total float64
	for id, qty := range order {
		p, ok := catalog[id]
		if !ok {
			continue
		}
		total += float64(qty) * p.Price
	}
	return total
}
