package model

import (
	"fmt"
	"time"
)

// Address is the single shipping address registered by a user.
type Address struct {
	UserID        int64
	Country       string
	PostalCode    string
	Street        string
	RecipientName string
	UpdatedAt     time.Time
}

// Snapshot renders the address as the immutable string stored on a shipment.
// Later edits to the address must not alter historical shipments.
func (a Address) Snapshot() string {
	return fmt.Sprintf("%s %s %s", a.Country, a.PostalCode, a.Street)
}
