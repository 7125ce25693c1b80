package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle state of a purchase request
type RequestStatus string

const (
	RequestStatusPending          RequestStatus = "PENDING"
	RequestStatusLogisticApproved RequestStatus = "LOGISTIC_APPROVED"
	RequestStatusAwaitingCEO      RequestStatus = "AWAITING_CEO_APPROVAL"
	RequestStatusApproved         RequestStatus = "APPROVED"
	RequestStatusRejected         RequestStatus = "REJECTED"
	RequestStatusPurchasing       RequestStatus = "PURCHASING"
	RequestStatusInDelivery       RequestStatus = "IN_DELIVERY"
	RequestStatusArrived          RequestStatus = "ARRIVED"
	RequestStatusAwaitingHandover RequestStatus = "AWAITING_HANDOVER"
	RequestStatusCompleted        RequestStatus = "COMPLETED"
	RequestStatusCancelled        RequestStatus = "CANCELLED"
)

// IsTerminal reports whether no further status mutation is allowed
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusRejected || s == RequestStatusCancelled
}

// ItemStatusValue is the per-item approval state inside a request
type ItemStatusValue string

const (
	ItemStockAllocated    ItemStatusValue = "stock_allocated"
	ItemProcurementNeeded ItemStatusValue = "procurement_needed"
	ItemApproved          ItemStatusValue = "approved"
	ItemRejected          ItemStatusValue = "rejected"
	ItemPartial           ItemStatusValue = "partial"
)

// OrderType classifies why the request was raised
type OrderType string

const (
	OrderTypeRegularStock OrderType = "Regular Stock"
	OrderTypeUrgent       OrderType = "Urgent"
	OrderTypeProjectBased OrderType = "Project Based"
)

// AutoStockApprover is stamped on both approval fields when every item
// was satisfiable from storage at creation time
const AutoStockApprover = "System (Auto-Stock)"

type RequestItem struct {
	ID            int             `json:"id"`
	ItemName      string          `json:"item_name"`
	ItemTypeBrand string          `json:"item_type_brand"`
	Quantity      int             `json:"quantity"`
	Keterangan    string          `json:"keterangan"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

// ItemStatus tracks the approval outcome for one request item.
// ApprovedQuantity never exceeds the item's requested quantity.
type ItemStatus struct {
	Status           ItemStatusValue `json:"status"`
	ApprovedQuantity int             `json:"approved_quantity"`
	Reason           string          `json:"reason,omitempty"`
}

type OrderInfo struct {
	Type          OrderType `json:"type"`
	Justification string    `json:"justification,omitempty"`
	Project       string    `json:"project,omitempty"`
}

// Request is a purchase request tracked through the approval and
// fulfillment pipeline. Version backs optimistic concurrency control.
type Request struct {
	ID          string        `json:"id"`
	DocNumber   string        `json:"doc_number"`
	Requester   string        `json:"requester"`
	Division    string        `json:"division"`
	RequestDate time.Time     `json:"request_date"`
	Status      RequestStatus `json:"status"`
	Order       OrderInfo     `json:"order"`

	Items                    []RequestItem      `json:"items"`
	ItemStatuses             map[int]ItemStatus `json:"item_statuses"`
	PartiallyRegisteredItems map[int]int        `json:"partially_registered_items"`
	NeedsProcurement         bool               `json:"needs_procurement"`

	LogisticApprover     *string    `json:"logistic_approver,omitempty"`
	LogisticApprovalDate *time.Time `json:"logistic_approval_date,omitempty"`
	FinalApprover        *string    `json:"final_approver,omitempty"`
	FinalApprovalDate    *time.Time `json:"final_approval_date,omitempty"`

	RejectionReason    *string    `json:"rejection_reason,omitempty"`
	RejectedBy         *string    `json:"rejected_by,omitempty"`
	RejectedByDivision *string    `json:"rejected_by_division,omitempty"`
	RejectionDate      *time.Time `json:"rejection_date,omitempty"`

	ActualShipmentDate *time.Time `json:"actual_shipment_date,omitempty"`
	ArrivalDate        *time.Time `json:"arrival_date,omitempty"`
	ReceivedBy         *string    `json:"received_by,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequestItemInput is one requested line in a creation payload
type CreateRequestItemInput struct {
	ItemName      string          `json:"item_name"`
	ItemTypeBrand string          `json:"item_type_brand"`
	Quantity      int             `json:"quantity"`
	Keterangan    string          `json:"keterangan"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

type CreateRequestInput struct {
	Requester   string                   `json:"requester"`
	Division    string                   `json:"division"`
	RequestDate time.Time                `json:"request_date"`
	Order       OrderInfo                `json:"order"`
	Items       []CreateRequestItemInput `json:"items"`
}

// ItemAdjustment is one reviewer decision in a review payload
type ItemAdjustment struct {
	ItemID           int    `json:"item_id"`
	ApprovedQuantity int    `json:"approved_quantity"`
	Reason           string `json:"reason,omitempty"`
}

type ReviewInput struct {
	Adjustments []ItemAdjustment `json:"adjustments"`
}

type AdvanceStatusInput struct {
	Status     RequestStatus `json:"status"`
	ReceivedBy string        `json:"received_by,omitempty"`
}

type RegisterItemInput struct {
	Count int `json:"count"`
}
