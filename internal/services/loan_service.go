package services

import (
	"context"
	"fmt"

	"asset-backend/internal/events"
	"asset-backend/internal/models"
	"asset-backend/internal/numbering"
	"asset-backend/internal/timeutil"
)

// LoanService runs the borrowing lifecycle. Stock leaves the ledger when
// a loan is activated and comes back when the return is confirmed.
type LoanService struct {
	Loans      LoanStore
	Stock      *StockService
	Dispatcher *events.Dispatcher
}

func NewLoanService(loans LoanStore, stock *StockService, dispatcher *events.Dispatcher) *LoanService {
	return &LoanService{Loans: loans, Stock: stock, Dispatcher: dispatcher}
}

// Create validates and persists a new PENDING loan request
func (s *LoanService) Create(ctx context.Context, input *models.CreateLoanInput) (*models.LoanRequest, error) {
	if input.Borrower == "" {
		return nil, models.NewValidationError("borrower is required")
	}
	if len(input.Items) == 0 {
		return nil, models.NewValidationError("loan must contain at least one item")
	}
	for i, item := range input.Items {
		if item.ItemName == "" {
			return nil, models.NewValidationError("item %d: name is required", i+1)
		}
		if item.Quantity < 1 {
			return nil, models.NewValidationError("item %d: quantity must be at least 1", i+1)
		}
	}
	now := timeutil.Now()
	if !input.DueDate.IsZero() && input.DueDate.Before(now) {
		return nil, models.NewValidationError("due date cannot be in the past")
	}

	ids, err := s.Loans.ListIDs(ctx)
	if err != nil {
		return nil, &models.PersistenceError{Op: "loan.create.ids", Err: err}
	}
	docs, err := s.Loans.ListDocNumbers(ctx)
	if err != nil {
		return nil, &models.PersistenceError{Op: "loan.create.docs", Err: err}
	}

	items := make([]models.LoanItem, len(input.Items))
	copy(items, input.Items)
	for i := range items {
		items[i].ID = i + 1
	}

	loan := &models.LoanRequest{
		ID:        numbering.NextLoanID(ids),
		DocNumber: numbering.Next("LN", docs, now),
		Borrower:  input.Borrower,
		Division:  input.Division,
		Purpose:   input.Purpose,
		Status:    models.LoanStatusPending,
		Items:     items,
		LoanDate:  now,
		DueDate:   input.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Loans.Create(ctx, loan); err != nil {
		return nil, &models.PersistenceError{Op: "loan.create", Err: err}
	}

	s.publish(events.LoanCreatedEvent, loan.ID, events.LoanDecided{Loan: loan})
	return loan, nil
}

// Get returns one loan by id
func (s *LoanService) Get(ctx context.Context, id string) (*models.LoanRequest, error) {
	return s.Loans.Get(ctx, id)
}

// List returns all loans
func (s *LoanService) List(ctx context.Context) ([]models.LoanRequest, error) {
	return s.Loans.List(ctx)
}

// Decide approves or rejects a PENDING loan. Rejection requires a reason.
func (s *LoanService) Decide(ctx context.Context, id string, input *models.LoanDecisionInput, actor string) (*models.LoanRequest, error) {
	loan, err := s.Loans.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan.Status != models.LoanStatusPending {
		return nil, &models.InvalidTransitionError{From: string(loan.Status), To: "decision"}
	}

	now := timeutil.Now()
	if input.Approve {
		loan.Status = models.LoanStatusApproved
		loan.ApprovedBy = &actor
		loan.ApprovalDate = &now
	} else {
		if input.Reason == "" {
			return nil, models.NewValidationError("a reason is required when rejecting a loan")
		}
		loan.Status = models.LoanStatusRejected
		loan.RejectionReason = &input.Reason
		loan.RejectedBy = &actor
	}
	loan.UpdatedAt = now

	if err := s.Loans.Update(ctx, loan); err != nil {
		return nil, &models.PersistenceError{Op: "loan.decide", Err: err}
	}

	s.publish(events.LoanDecidedEvent, loan.ID, events.LoanDecided{
		Loan: loan, Approved: input.Approve, Actor: actor,
	})
	return loan, nil
}

// Activate hands the items over to the borrower and books the stock out
func (s *LoanService) Activate(ctx context.Context, id, actor string) (*models.LoanRequest, error) {
	loan, err := s.Loans.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan.Status != models.LoanStatusApproved {
		return nil, &models.InvalidTransitionError{From: string(loan.Status), To: string(models.LoanStatusActive)}
	}

	loan.Status = models.LoanStatusActive
	loan.UpdatedAt = timeutil.Now()
	if err := s.Loans.Update(ctx, loan); err != nil {
		return nil, &models.PersistenceError{Op: "loan.activate", Err: err}
	}

	for _, item := range loan.Items {
		if _, err := s.Stock.RecordMovement(ctx, models.MovementOutInstallation,
			item.ItemName, item.ItemTypeBrand, item.Quantity, loan.ID, actor,
			fmt.Sprintf("Loaned to %s", loan.Borrower)); err != nil {
			return nil, err
		}
	}
	return loan, nil
}

// RequestReturn flags an active loan as awaiting return inspection
func (s *LoanService) RequestReturn(ctx context.Context, id string) (*models.LoanRequest, error) {
	loan, err := s.Loans.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan.Status != models.LoanStatusActive {
		return nil, &models.InvalidTransitionError{From: string(loan.Status), To: string(models.LoanStatusAwaitingReturn)}
	}

	loan.Status = models.LoanStatusAwaitingReturn
	loan.UpdatedAt = timeutil.Now()
	if err := s.Loans.Update(ctx, loan); err != nil {
		return nil, &models.PersistenceError{Op: "loan.request_return", Err: err}
	}
	return loan, nil
}

// ConfirmReturn closes the loan and books the stock back in
func (s *LoanService) ConfirmReturn(ctx context.Context, id, actor string) (*models.LoanRequest, error) {
	loan, err := s.Loans.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan.Status != models.LoanStatusAwaitingReturn && loan.Status != models.LoanStatusActive {
		return nil, &models.InvalidTransitionError{From: string(loan.Status), To: string(models.LoanStatusReturned)}
	}

	now := timeutil.Now()
	loan.Status = models.LoanStatusReturned
	loan.ReturnDate = &now
	loan.UpdatedAt = now
	if err := s.Loans.Update(ctx, loan); err != nil {
		return nil, &models.PersistenceError{Op: "loan.confirm_return", Err: err}
	}

	for _, item := range loan.Items {
		if _, err := s.Stock.RecordMovement(ctx, models.MovementInReturn,
			item.ItemName, item.ItemTypeBrand, item.Quantity, loan.ID, actor,
			fmt.Sprintf("Returned by %s", loan.Borrower)); err != nil {
			return nil, err
		}
	}

	s.publish(events.LoanReturnedEvent, loan.ID, events.LoanDecided{Loan: loan, Actor: actor})
	return loan, nil
}

// Cancel terminates a loan that has not been handed over yet
func (s *LoanService) Cancel(ctx context.Context, id string) (*models.LoanRequest, error) {
	loan, err := s.Loans.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan.Status != models.LoanStatusPending && loan.Status != models.LoanStatusApproved {
		return nil, &models.InvalidTransitionError{From: string(loan.Status), To: string(models.LoanStatusCancelled)}
	}

	loan.Status = models.LoanStatusCancelled
	loan.UpdatedAt = timeutil.Now()
	if err := s.Loans.Update(ctx, loan); err != nil {
		return nil, &models.PersistenceError{Op: "loan.cancel", Err: err}
	}
	return loan, nil
}

func (s *LoanService) publish(eventType, streamID string, data interface{}) {
	if s.Dispatcher == nil {
		return
	}
	s.Dispatcher.Publish(events.New(eventType, streamID, data))
}
