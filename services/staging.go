package services

import "github.com/yeremiapane/restaurant-pos/models"

// OrderSession is the local staging area for one table-edit session. It is
// owned by a single device and never shared, so it needs no locking; nothing
// touches the store until the staged order is committed through
// TableService. Closing the session without committing discards the draft.
type OrderSession struct {
	tableNumber int
	basis       models.TableRecord
	items       map[string]int
}

// NewOrderSession starts a session from the table record the device just
// read. Re-opening an occupied table resumes its committed order instead of
// starting blank; the record itself is kept as the basis for the optimistic
// commit later.
func NewOrderSession(tableNumber int, record models.TableRecord) *OrderSession {
	items := make(map[string]int, len(record.CurrentOrder))
	for id, qty := range record.CurrentOrder {
		items[id] = qty
	}
	return &OrderSession{
		tableNumber: tableNumber,
		basis:       record,
		items:       items,
	}
}

func (s *OrderSession) TableNumber() int { return s.tableNumber }

// Basis returns the table record this session started from.
func (s *OrderSession) Basis() models.TableRecord { return s.basis }

// AddItem increments the staged quantity of a product by one.
func (s *OrderSession) AddItem(productID string) {
	s.items[productID]++
}

// AdjustItem adds delta (possibly negative) to a product's staged quantity.
// Quantities never go to zero or below: the entry is removed instead.
func (s *OrderSession) AdjustItem(productID string, delta int) {
	qty := s.items[productID] + delta
	if qty <= 0 {
		delete(s.items, productID)
		return
	}
	s.items[productID] = qty
}

// Items returns a copy of the staged order.
func (s *OrderSession) Items() map[string]int {
	out := make(map[string]int, len(s.items))
	for id, qty := range s.items {
		out[id] = qty
	}
	return out
}

// Empty reports whether nothing is staged.
func (s *OrderSession) Empty() bool { return len(s.items) == 0 }
