package models

// PropertyRecord is the read-only reference data for an allotted unit.
// Records are created by the allotment office; the portal never modifies
// them.
type PropertyRecord struct {
	PropertyID       string `json:"property_id"`
	OwnerID          int64  `json:"owner_id"`
	SchemeID         string `json:"scheme_id"`
	SchemeName       string `json:"scheme_name"`
	OwnerName        string `json:"owner_name"`
	UnitNumber       string `json:"unit_number"`
	Category         string `json:"category"`
	FloorType        string `json:"floor_type"`
	AllotmentDate    Date   `json:"allotment_date"`
	RegistrationDate Date   `json:"registration_date"`
	AllotmentAmount  Amount `json:"allotment_amount"`
	SaleValue        Amount `json:"sale_value"`
	CreatedAt        string `json:"created_at"`
}

// PropertyBundle is everything the portal shows for one property: the
// record, its installment plan and the full payment history.
type PropertyBundle struct {
	PropertyRecord  PropertyRecord   `json:"property_record"`
	InstallmentPlan *InstallmentPlan `json:"installment_plan"`
	Installments    []Installment    `json:"installments"`
	ServiceCharges  []ServiceCharge  `json:"service_charges"`
}
