package entity

import "time"

// Supplier statuses.
const (
	SupplierActive   = "active"
	SupplierInactive = "inactive"
)

// Supplier is a vendor the pharmacy buys from.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	PaymentTerms  string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
