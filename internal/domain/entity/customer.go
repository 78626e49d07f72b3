package entity

import "time"

// Customer is a pharmacy customer (loyalty and prescription-pickup contact).
type Customer struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	DateOfBirth   *time.Time
	Allergies     string
	Notes         string
	LoyaltyPoints int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
