package dto

import "time"

// AddressRequest carries a shipping address to create or replace.
type AddressRequest struct {
	Country       string `json:"country"`
	PostalCode    string `json:"postal_code"`
	Street        string `json:"street"`
	RecipientName string `json:"recipient_name"`
}

// AddressResponse represents the user's registered shipping address.
type AddressResponse struct {
	Country       string    `json:"country"`
	PostalCode    string    `json:"postal_code"`
	Street        string    `json:"street"`
	RecipientName string    `json:"recipient_name"`
	UpdatedAt     time.Time `json:"updated_at"`
}
