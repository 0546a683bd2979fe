// Package queue defines message payloads exchanged over the message broker.
package queue

// PresentReservedEvent is published when a present is successfully
// reserved.  It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type PresentReservedEvent struct {
	PresentID  string  `json:"present_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	ReservedAt string  `json:"reserved_at"`
}
