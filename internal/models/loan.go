package models

import "time"

// LoanStatus is the lifecycle state of a loan request
type LoanStatus string

const (
	LoanStatusPending        LoanStatus = "PENDING"
	LoanStatusApproved       LoanStatus = "APPROVED"
	LoanStatusRejected       LoanStatus = "REJECTED"
	LoanStatusActive         LoanStatus = "ACTIVE"
	LoanStatusAwaitingReturn LoanStatus = "AWAITING_RETURN"
	LoanStatusReturned       LoanStatus = "RETURNED"
	LoanStatusCancelled      LoanStatus = "CANCELLED"
)

func (s LoanStatus) IsTerminal() bool {
	return s == LoanStatusReturned || s == LoanStatusRejected || s == LoanStatusCancelled
}

type LoanItem struct {
	ID            int    `json:"id"`
	ItemName      string `json:"item_name"`
	ItemTypeBrand string `json:"item_type_brand"`
	Quantity      int    `json:"quantity"`
	Keterangan    string `json:"keterangan,omitempty"`
}

// LoanRequest is a temporary-borrowing variant of a request with its own
// return-tracking sub-lifecycle
type LoanRequest struct {
	ID        string     `json:"id"`
	DocNumber string     `json:"doc_number"`
	Borrower  string     `json:"borrower"`
	Division  string     `json:"division"`
	Purpose   string     `json:"purpose,omitempty"`
	Status    LoanStatus `json:"status"`
	Items     []LoanItem `json:"items"`

	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`

	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovalDate    *time.Time `json:"approval_date,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	RejectedBy      *string    `json:"rejected_by,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateLoanInput struct {
	Borrower string     `json:"borrower"`
	Division string     `json:"division"`
	Purpose  string     `json:"purpose"`
	DueDate  time.Time  `json:"due_date"`
	Items    []LoanItem `json:"items"`
}

type LoanDecisionInput struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason,omitempty"`
}
