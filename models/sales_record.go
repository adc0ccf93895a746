package models

// SalesRecord is the flattened, report-facing copy of a closed party that is
// appended to the global sales-history log. It duplicates the party snapshot
// on purpose: history must survive table resets and day-boundary wipes of
// the per-table logs.
type SalesRecord struct {
	TableNumber     int         `json:"table_number"`
	PartyNumber     int         `json:"party_number"`
	Items           []PartyItem `json:"items"`
	Total           float64     `json:"total"`
	Server          string      `json:"server"`
	Actor           string      `json:"actor"`
	TimeOfDay       string      `json:"time_of_day"`
	DurationMinutes *int        `json:"duration_minutes"`
	Date            string      `json:"date"`
}
