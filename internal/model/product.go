package model

import (
	"fmt"
	"time"
)

// Product is a tracked physical good. The manufacturer and name are fixed
// at creation; custody, status and location change through lifecycle
// operations, each of which also appends one history entry.
type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Manufacturer    string    `json:"manufacturer"`
	CurrentOwner    string    `json:"current_owner"`
	Status          string    `json:"status"`
	CurrentLocation string    `json:"current_location"`
	ImageMime       string    `json:"image_mime,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Number of history entries, populated on detail reads.
	HistoryLength int `json:"history_length,omitempty"`
}

// Product statuses, in lifecycle order.
const (
	StatusCreated              = "Created"
	StatusShippedToDistributor = "ShippedToDistributor"
	StatusAtDistributor        = "AtDistributor"
	StatusShippedToRetailer    = "ShippedToRetailer"
	StatusAtRetailer           = "AtRetailer"
	StatusSold                 = "Sold"
)

var validStatuses = map[string]bool{
	StatusCreated:              true,
	StatusShippedToDistributor: true,
	StatusAtDistributor:        true,
	StatusShippedToRetailer:    true,
	StatusAtRetailer:           true,
	StatusSold:                 true,
}

// ParseStatus validates a caller-supplied status value. The ledger accepts
// any enumerated status from the current owner; it does not enforce a
// transition graph.
func ParseStatus(s string) (string, error) {
	if !validStatuses[s] {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, s)
	}
	return s, nil
}

// HistoryEntry is one immutable record in a product's audit trail.
// Entries are dense per product: seq starts at 1 and increases by one per
// lifecycle operation.
type HistoryEntry struct {
	ProductID  int64     `json:"product_id"`
	Seq        int       `json:"seq"`
	Entry      string    `json:"entry"`
	RecordedAt time.Time `json:"recorded_at"`
}
