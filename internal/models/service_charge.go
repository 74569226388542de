package models

// ServiceCharge is a paid annual service-charge record for one financial
// year, denoted "YYYY-YYYY+1". Rows are append-only.
type ServiceCharge struct {
	ChargeID      string `json:"charge_id"`
	PropertyID    string `json:"property_id"`
	FinancialYear string `json:"financial_year"`
	BaseAmount    Amount `json:"base_amount"`
	LateFee       Amount `json:"late_fee"`
	Total         Amount `json:"total"`
	PaymentDate   Date   `json:"payment_date"`
	CreatedAt     string `json:"created_at"`
}
