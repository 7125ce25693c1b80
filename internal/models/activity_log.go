package models

import "time"

// Activity type constants
const (
	ActivityCreated      = "CREATED"
	ActivityRevision     = "REVISION"
	ActivityStatusChange = "STATUS_CHANGE"
	ActivityRegistration = "REGISTRATION"
	ActivityCancelled    = "CANCELLED"
	ActivityCompleted    = "COMPLETED"
)

// RevisionChange records one reviewer adjustment inside a revision entry
type RevisionChange struct {
	ItemID           int    `json:"item_id"`
	ItemName         string `json:"item_name"`
	OriginalQuantity int    `json:"original_quantity"`
	ApprovedQuantity int    `json:"approved_quantity"`
	Reason           string `json:"reason,omitempty"`
}

// RequestActivity is one append-only audit entry for a request,
// served most-recent-first
type RequestActivity struct {
	ID           int              `json:"id"`
	RequestID    string           `json:"request_id"`
	ActivityType string           `json:"activity_type"`
	Actor        string           `json:"actor"`
	Notes        string           `json:"notes,omitempty"`
	Changes      []RevisionChange `json:"changes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}
