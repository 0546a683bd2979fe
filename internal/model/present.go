package model

import "time"

// Present represents a single catalog entry in the wishlist.  A present is
// publicly visible, can be filtered by price and reserved exactly once
// through the guarded reservation endpoint.  Administrators own the full
// record and may overwrite any field, including the reservation flag.
//
// Fields:
//
//	ID          – opaque UUID assigned at creation, immutable.
//	Name        – display name, required, non-empty.
//	Description – free text, required, non-empty.
//	Price       – non-negative amount in the reference currency.
//	Images      – ordered list of image URL paths; order is display order.
//	IsReserved  – false until a successful reservation flips it to true.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – refreshed on every mutation.
type Present struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Images      []string  `json:"images"`
	IsReserved  bool      `json:"isReserved"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
