package dto

import "time"

// CreatePrescriptionRequest input to file a prescription.
type CreatePrescriptionRequest struct {
	CustomerID     string `json:"customer_id" validate:"required"`
	MedicationName string `json:"medication_name" validate:"required,min=1,max=200"`
	Dosage         string `json:"dosage"`
	Quantity       int    `json:"quantity" validate:"min=1"`
	Refills        int    `json:"refills" validate:"min=0"`
	PrescriberName string `json:"prescriber_name" validate:"required"`
	Notes          string `json:"notes"`
}

// VerifyPrescriptionRequest outcome of the verification check.
type VerifyPrescriptionRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

// PrescriptionResponse output for one prescription.
type PrescriptionResponse struct {
	ID               string     `json:"id"`
	CustomerID       string     `json:"customer_id"`
	MedicationName   string     `json:"medication_name"`
	Dosage           string     `json:"dosage,omitempty"`
	Quantity         int        `json:"quantity"`
	RefillsRemaining int        `json:"refills_remaining"`
	PrescriberName   string     `json:"prescriber_name"`
	Status           string     `json:"status"`
	Notes            string     `json:"notes,omitempty"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`
	DispensedAt      *time.Time `json:"dispensed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// PrescriptionListResponse paginated prescription list.
type PrescriptionListResponse struct {
	Items []PrescriptionResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// CreateRefillRequest input to request a refill.
type CreateRefillRequest struct {
	PrescriptionID string `json:"prescription_id" validate:"required"`
	Notes          string `json:"notes"`
}

// UpdateRefillStatusRequest status transition on a refill request.
type UpdateRefillStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RefillResponse output for one refill request.
type RefillResponse struct {
	ID             string     `json:"id"`
	PrescriptionID string     `json:"prescription_id"`
	CustomerID     string     `json:"customer_id"`
	RefillNumber   int        `json:"refill_number"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	RequestedAt    time.Time  `json:"requested_at"`
	FilledAt       *time.Time `json:"filled_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RefillListResponse paginated refill list.
type RefillListResponse struct {
	Items []RefillResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
