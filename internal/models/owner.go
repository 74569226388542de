package models

// Owner is an allottee registered with the authority. The phone number is
// the login identity for the portal.
type Owner struct {
	ID           int64  `json:"id"`
	Phone        string `json:"phone"`
	Name         string `json:"name"`
	GuardianName string `json:"guardian_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	CreatedAt    string `json:"created_at"`
}
