package entities

// ReferenceRow maps a company name to its ticker and index membership.
// Rows are loaded once per process from the reference CSV and never mutated.
type ReferenceRow struct {
	Company string `json:"company"`
	Ticker  string `json:"ticker"`
	Index   string `json:"index"`
}
