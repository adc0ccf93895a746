package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
)

// CheckoutService turns a staged order into a permanent sales record and
// frees the table. The history write happens first; only then is the table
// released. If the release write fails the sale is already safe and the
// error tells the user to retry the release, never the payment.
type CheckoutService struct {
	db      *gorm.DB
	tables  *TableService
	history *SalesHistory
}

func NewCheckoutService(db *gorm.DB, tables *TableService, history *SalesHistory) *CheckoutService {
	return &CheckoutService{db: db, tables: tables, history: history}
}

// CloseParty records the payment for a table and resets it.
func (s *CheckoutService) CloseParty(ctx context.Context, number int, staged map[string]int, actor string) (models.SalesRecord, error) {
	if len(staged) == 0 {
		return models.SalesRecord{}, ErrEmptyOrder
	}

	// Fresh read, never the cached copy: the party sequence number and the
	// seating duration come from whatever is persisted right now.
	current, err := s.tables.Table(ctx, number)
	if err != nil {
		return models.SalesRecord{}, err
	}
	if !current.Occupied {
		return models.SalesRecord{}, ErrTableNotOccupied
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Find(&products).Error; err != nil {
		return models.SalesRecord{}, fmt.Errorf("load catalog: %w", err)
	}
	catalog := models.CatalogByID(products)

	now := time.Now()
	party := buildClosedParty(current, staged, catalog, actor, now)

	record := models.SalesRecord{
		TableNumber:     number,
		PartyNumber:     party.Number,
		Items:           party.Items,
		Total:           party.Total,
		Server:          party.Server,
		Actor:           party.Actor,
		TimeOfDay:       party.TimeOfDay,
		DurationMinutes: party.DurationMinutes,
		Date:            party.Date,
	}

	if err := s.history.Append(ctx, record); err != nil {
		return models.SalesRecord{}, err
	}

	if _, err := s.tables.release(ctx, number, actor, &party); err != nil {
		// Accepted inconsistency window: history has the sale, the table
		// still shows occupied. Surface it so staff can release manually.
		return record, fmt.Errorf("%w: %v", ErrPartialClose, err)
	}

	return record, nil
}

// buildClosedParty snapshots every staged line against the catalog at this
// instant. Items missing from the catalog keep their quantity with a zero
// price, the same soft-fail as order totals.
func buildClosedParty(current models.TableRecord, staged map[string]int, catalog map[string]models.Product, actor string, now time.Time) models.ClosedParty {
	items := make([]models.PartyItem, 0, len(staged))
	var total float64
	for id, qty := range staged {
		item := models.PartyItem{
			ProductID: id,
			Name:      id,
			Quantity:  qty,
		}
		if p, ok := catalog[id]; ok {
			item.Name = p.Name
			item.UnitPrice = p.Price
			item.Category = p.Category
			item.Subtotal = float64(qty) * p.Price
		}
		total += item.Subtotal
		items = append(items, item)
	}

	var duration *int
	if current.OccupiedSince != nil {
		mins := int(now.Sub(*current.OccupiedSince).Minutes())
		duration = &mins
	}

	server := current.Server
	if server == "" {
		server = actor
	}

	return models.ClosedParty{
		Number:          len(current.PartiesTonight) + 1,
		Items:           items,
		Total:           total,
		Server:          server,
		Actor:           actor,
		TimeOfDay:       now.Format("15:04"),
		DurationMinutes: duration,
		Date:            now.Format("2006-01-02"),
	}
}
