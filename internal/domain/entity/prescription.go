package entity

import "time"

// Prescription verification states.
const (
	PrescriptionPending   = "pending"
	PrescriptionVerified  = "verified"
	PrescriptionRejected  = "rejected"
	PrescriptionDispensed = "dispensed"
)

// Refill request states.
const (
	RefillPending   = "pending"
	RefillApproved  = "approved"
	RefillFilled    = "filled"
	RefillCancelled = "cancelled"
)

// Prescription is a customer's prescription on file. It moves through a
// verification lifecycle before anything can be dispensed: pending ->
// verified | rejected, verified -> dispensed. RefillsRemaining gates refill
// requests once the original fill is dispensed.
type Prescription struct {
	ID               string
	CustomerID       string
	MedicationName   string
	Dosage           string
	Quantity         int
	RefillsRemaining int
	PrescriberName   string
	Status           string
	Notes            string
	VerifiedAt       *time.Time
	DispensedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RefillRequest is one request to refill a prescription: pending -> approved
// -> filled, cancellable until filled. Filling decrements the prescription's
// remaining refills.
type RefillRequest struct {
	ID             string
	PrescriptionID string
	CustomerID     string
	RefillNumber   int
	Status         string
	Notes          string
	RequestedAt    time.Time
	FilledAt       *time.Time
	UpdatedAt      time.Time
}

// Open reports whether the request still accepts a transition.
func (r *RefillRequest) Open() bool {
	return r.Status == RefillPending || r.Status == RefillApproved
}
