package models

// PartyItem is one order line frozen at payment time. Name, price and
// category are copied from the catalog, so later catalog edits never change
// recorded totals.
type PartyItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
	Category  string  `json:"category"`
}

// ClosedParty is one seated group's full order, recorded at payment time and
// immutable afterward. It lives inside the table's party log.
type ClosedParty struct {
	Number          int         `json:"number"` // 1-based position within the night
	Items           []PartyItem `json:"items"`
	Total           float64     `json:"total"`
	Server          string      `json:"server"`
	Actor           string      `json:"actor"`
	TimeOfDay       string      `json:"time_of_day"`
	DurationMinutes *int        `json:"duration_minutes"`
	Date            string      `json:"date"`
}
