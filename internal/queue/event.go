// Package queue defines message payloads exchanged over the message broker.
package queue

// AuditQueueName is the durable queue carrying catalog audit events.
const AuditQueueName = "catalog.audit"

// CatalogEvent is published after every successful admin mutation of the
// catalog (movies, series, usuarios).  It contains enough information
// for downstream consumers to log or trigger notifications without
// querying the primary database.
type CatalogEvent struct {
	Collection string `json:"collection"`      // movies | series | usuarios
	Action     string `json:"action"`          // created | updated | deleted
	RecordID   int64  `json:"record_id"`       // _id of the affected document
	Title      string `json:"title,omitempty"` // display label when available
	ActorID    int64  `json:"actor_id"`        // administrator who performed the change
	OccurredAt string `json:"occurred_at"`     // RFC 3339 UTC timestamp
}
