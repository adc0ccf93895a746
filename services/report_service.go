package services

import (
	"context"
	"sort"
)

// TableTotal is one table's slice of a daily report.
type TableTotal struct {
	TableNumber int     `json:"table_number"`
	Parties     int     `json:"parties"`
	Total       float64 `json:"total"`
}

// DailyReport aggregates one service day of the sales history.
type DailyReport struct {
	Date       string             `json:"date"`
	Parties    int                `json:"parties"`
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"by_category"`
	ByTable    []TableTotal       `json:"by_table"`
}

// ReportService computes the day-close numbers staff read out at closing
// time: grand total, split per category and per table.
type ReportService struct {
	history *SalesHistory
}

func NewReportService(history *SalesHistory) *ReportService {
	return &ReportService{history: history}
}

func (s *ReportService) Daily(ctx context.Context, date string) (DailyReport, error) {
	records, err := s.history.ByDate(ctx, date)
	if err != nil {
		return DailyReport{}, err
	}

	report := DailyReport{
		Date:       date,
		Parties:    len(records),
		ByCategory: map[string]float64{},
	}

	perTable := map[int]*TableTotal{}
	for _, r := range records {
		report.Total += r.Total
		for _, item := range r.Items {
			report.ByCategory[item.Category] += item.Subtotal
		}
		tt, ok := perTable[r.TableNumber]
		if !ok {
			tt = &TableTotal{TableNumber: r.TableNumber}
			perTable[r.TableNumber] = tt
		}
		tt.Parties++
		tt.Total += r.Total
	}

	for _, tt := range perTable {
		report.ByTable = append(report.ByTable, *tt)
	}
	sort.Slice(report.ByTable, func(i, j int) bool {
		return report.ByTable[i].TableNumber < report.ByTable[j].TableNumber
	})

	return report, nil
}
