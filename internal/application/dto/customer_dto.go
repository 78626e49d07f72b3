package dto

import "time"

// CreateCustomerRequest input to create a customer.
type CreateCustomerRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=200"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Allergies   string     `json:"allergies"`
	Notes       string     `json:"notes"`
}

// UpdateCustomerRequest input to update a customer.
type UpdateCustomerRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Email       *string    `json:"email" validate:"omitempty,email"`
	Phone       *string    `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Allergies   *string    `json:"allergies"`
	Notes       *string    `json:"notes"`
}

// CustomerResponse output for one customer.
type CustomerResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Allergies     string     `json:"allergies,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	LoyaltyPoints int        `json:"loyalty_points"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CustomerListResponse paginated customer list.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
