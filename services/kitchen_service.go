package services

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
)

// KitchenLine is one food item the kitchen still has to plate.
type KitchenLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// KitchenTicket is everything the kitchen display shows for one table.
type KitchenTicket struct {
	TableNumber    int           `json:"table_number"`
	Server         string        `json:"server"`
	ElapsedMinutes int           `json:"elapsed_minutes"`
	Lines          []KitchenLine `json:"lines"`
}

// KitchenService projects the occupied tables into what the kitchen cares
// about: food-category lines with how long the party has been waiting.
// Drinks and desserts come from the bar and never show up here.
type KitchenService struct {
	db     *gorm.DB
	tables *TableService
}

func NewKitchenService(db *gorm.DB, tables *TableService) *KitchenService {
	return &KitchenService{db: db, tables: tables}
}

func (s *KitchenService) Board(ctx context.Context) ([]KitchenTicket, error) {
	records, err := s.tables.Tables(ctx)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Where("category = ?", models.CategoryFood).Find(&products).Error; err != nil {
		return nil, err
	}
	food := models.CatalogByID(products)

	now := time.Now()
	var tickets []KitchenTicket
	for number, rec := range records {
		if !rec.Occupied || len(rec.CurrentOrder) == 0 {
			continue
		}
		var lines []KitchenLine
		for id, qty := range rec.CurrentOrder {
			p, ok := food[id]
			if !ok {
				continue
			}
			lines = append(lines, KitchenLine{ProductID: id, Name: p.Name, Quantity: qty})
		}
		if len(lines) == 0 {
			continue
		}
		sort.Slice(lines, func(i, j int) bool { return lines[i].Name < lines[j].Name })

		elapsed := 0
		if rec.OccupiedSince != nil {
			elapsed = int(now.Sub(*rec.OccupiedSince).Minutes())
		}
		tickets = append(tickets, KitchenTicket{
			TableNumber:    number,
			Server:         rec.Server,
			ElapsedMinutes: elapsed,
			Lines:          lines,
		})
	}

	// Longest-waiting table first.
	sort.Slice(tickets, func(i, j int) bool {
		if tickets[i].ElapsedMinutes != tickets[j].ElapsedMinutes {
			return tickets[i].ElapsedMinutes > tickets[j].ElapsedMinutes
		}
		return tickets[i].TableNumber < tickets[j].TableNumber
	})
	return tickets, nil
}
