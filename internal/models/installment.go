package models

// InstallmentPlan is the EMI schedule for a property's outstanding balance.
// Invariant: InstallmentsPaid never exceeds IdealInstallments.
type InstallmentPlan struct {
	PlanID                  string `json:"plan_id"`
	PropertyID              string `json:"property_id"`
	TotalDue                Amount `json:"total_due"`
	PaidAmount              Amount `json:"paid_amount"`
	RemainingBalance        Amount `json:"remaining_balance"`
	PrincipalPerInstallment Amount `json:"principal_per_installment"`
	InterestPerInstallment  Amount `json:"interest_per_installment"`
	LateFeePerDay           Amount `json:"late_fee_per_day"`
	IdealInstallments       int    `json:"ideal_installment_count"`
	InstallmentsPaid        int    `json:"installments_paid"`
	FirstDueDate            Date   `json:"first_installment_due_date"`
	CreatedAt               string `json:"created_at"`
	UpdatedAt               string `json:"updated_at"`
}

// Installment is a paid EMI record. Rows are append-only; a record is never
// updated after the payment settles.
type Installment struct {
	PaymentID     string `json:"payment_id"`
	PlanID        string `json:"plan_id"`
	PaymentNumber int    `json:"payment_number"`
	DueDate       Date   `json:"due_date"`
	PaymentDate   Date   `json:"payment_date"`
	PrincipalPaid Amount `json:"principal_paid"`
	InterestPaid  Amount `json:"interest_paid"`
	LateFeePaid   Amount `json:"late_fee_paid"`
	TotalPaid     Amount `json:"total_paid"`
	DaysDelayed   int    `json:"days_delayed"`
	CreatedAt     string `json:"created_at"`
}
