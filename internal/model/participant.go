package model

import "time"

// Participant roles. Membership is granted by the administrator and never
// revoked; an address can hold more than one role.
const (
	RoleManufacturer = "manufacturer"
	RoleDistributor  = "distributor"
	RoleRetailer     = "retailer"
)

// ValidRole reports whether s names a grantable participant role.
func ValidRole(s string) bool {
	return s == RoleManufacturer || s == RoleDistributor || s == RoleRetailer
}

// Participant is one role grant in the registry.
type Participant struct {
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	GrantedBy string    `json:"granted_by"`
	GrantedAt time.Time `json:"granted_at"`
}

// Event kinds.
const (
	EventProductCreated = "ProductCreated"
)

// Event is a notification emitted in the same transaction as the ledger
// mutation it describes, so it is visible exactly when the mutation is.
type Event struct {
	ID        string    `json:"id"`
	ProductID int64     `json:"product_id"`
	Kind      string    `json:"kind"`
	EmittedAt time.Time `json:"emitted_at"`
}
