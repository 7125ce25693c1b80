// Package events carries the domain events emitted by the request and
// loan state machines. Notification delivery subscribes here so the core
// never calls a messaging API directly.
package events

import (
	"time"

	"asset-backend/internal/models"
)

const (
	RequestCreatedEvent       = "request.created"
	RequestReviewedEvent      = "request.reviewed"
	RequestRejectedEvent      = "request.rejected"
	RequestStatusChangedEvent = "request.status_changed"
	RequestCompletedEvent     = "request.completed"
	RequestCancelledEvent     = "request.cancelled"
	ItemRegisteredEvent       = "request.item_registered"
	LoanCreatedEvent          = "loan.created"
	LoanDecidedEvent          = "loan.decided"
	LoanReturnedEvent         = "loan.returned"
)

type Event struct {
	Type       string
	StreamID   string
	Data       interface{}
	OccurredAt time.Time
}

func New(eventType, streamID string, data interface{}) Event {
	return Event{
		Type:       eventType,
		StreamID:   streamID,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

type RequestCreated struct {
	Request *models.Request `json:"request"`
}

type RequestReviewed struct {
	Request  *models.Request         `json:"request"`
	Reviewer string                  `json:"reviewer"`
	Changes  []models.RevisionChange `json:"changes"`
}

type RequestRejected struct {
	Request    *models.Request `json:"request"`
	RejectedBy string          `json:"rejected_by"`
	Reason     string          `json:"reason"`
}

type RequestStatusChanged struct {
	Request *models.Request      `json:"request"`
	From    models.RequestStatus `json:"from"`
	To      models.RequestStatus `json:"to"`
	Actor   string               `json:"actor"`
}

type ItemRegistered struct {
	Request   *models.Request `json:"request"`
	ItemID    int             `json:"item_id"`
	Count     int             `json:"count"`
	Completed bool            `json:"completed"`
}

type LoanDecided struct {
	Loan     *models.LoanRequest `json:"loan"`
	Approved bool                `json:"approved"`
	Actor    string              `json:"actor"`
}
