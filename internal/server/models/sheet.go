package models

// SheetRow is one formatted row of the read-only reference spreadsheet.
// Columns other than the three known ones are kept verbatim in Extra.
type SheetRow struct {
	DocName  string            `json:"doc_name"`
	Amount   string            `json:"amount,omitempty"`
	Discount string            `json:"discount,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}
