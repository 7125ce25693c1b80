package services

import (
	"context"
	"errors"
	"fmt"

	"asset-backend/internal/events"
	"asset-backend/internal/metrics"
	"asset-backend/internal/models"
	"asset-backend/internal/numbering"
	"asset-backend/internal/timeutil"
)

// allowedTransitions is the single source of truth for advanceable
// statuses on the main fulfillment chain. Review and registration own
// their own stage moves; everything else is rejected here.
var allowedTransitions = map[models.RequestStatus][]models.RequestStatus{
	models.RequestStatusApproved:   {models.RequestStatusPurchasing},
	models.RequestStatusPurchasing: {models.RequestStatusInDelivery},
	models.RequestStatusInDelivery: {models.RequestStatusArrived},
}

func transitionAllowed(from, to models.RequestStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// reviewableStatuses are the stages Review may act on, mapped to the
// stage the request moves to when the review is not a full rejection
var reviewAdvance = map[models.RequestStatus]models.RequestStatus{
	models.RequestStatusPending: models.RequestStatusLogisticApproved,
	// stays put until purchase details are submitted
	models.RequestStatusLogisticApproved: models.RequestStatusLogisticApproved,
	models.RequestStatusAwaitingCEO:      models.RequestStatusApproved,
}

// RequestService owns the purchase request lifecycle: creation with
// stock allocation, multi-stage review, fulfillment status advancement
// and partial registration bookkeeping.
type RequestService struct {
	Requests   RequestStore
	Assets     AssetStore
	Activities ActivityStore
	Dispatcher *events.Dispatcher
}

func NewRequestService(requests RequestStore, assets AssetStore, activities ActivityStore, dispatcher *events.Dispatcher) *RequestService {
	return &RequestService{
		Requests:   requests,
		Assets:     assets,
		Activities: activities,
		Dispatcher: dispatcher,
	}
}

func stockKey(name, brand string) string {
	return name + "|" + brand
}

// Create validates the submission, splits items between stock allocation
// and procurement against a snapshot of IN_STORAGE assets, assigns the
// request id and document number, and persists the new request.
// Requests fully satisfiable from stock skip the approval pipeline.
func (s *RequestService) Create(ctx context.Context, input *models.CreateRequestInput) (*models.Request, error) {
	if len(input.Items) == 0 {
		return nil, models.NewValidationError("request must contain at least one item")
	}
	if input.Requester == "" {
		return nil, models.NewValidationError("requester is required")
	}
	for i, item := range input.Items {
		if item.ItemName == "" {
			return nil, models.NewValidationError("item %d: name is required", i+1)
		}
		if item.Quantity < 1 {
			return nil, models.NewValidationError("item %d: quantity must be at least 1", i+1)
		}
	}

	// One snapshot per call: the availability map is consistent within
	// this computation and decremented as items claim stock.
	counts, err := s.Assets.CountInStorage(ctx)
	if err != nil {
		return nil, &models.PersistenceError{Op: "request.create.snapshot", Err: err}
	}
	available := make(map[string]int, len(counts))
	for _, c := range counts {
		available[stockKey(c.Name, c.Brand)] = c.Count
	}

	now := timeutil.Now()
	refDate := input.RequestDate
	if refDate.IsZero() {
		refDate = now
	}

	items := make([]models.RequestItem, 0, len(input.Items))
	itemStatuses := make(map[int]models.ItemStatus, len(input.Items))
	needsProcurement := false
	for i, in := range input.Items {
		itemID := i + 1
		items = append(items, models.RequestItem{
			ID:            itemID,
			ItemName:      in.ItemName,
			ItemTypeBrand: in.ItemTypeBrand,
			Quantity:      in.Quantity,
			Keterangan:    in.Keterangan,
			UnitPrice:     in.UnitPrice,
		})

		key := stockKey(in.ItemName, in.ItemTypeBrand)
		if available[key] >= in.Quantity {
			available[key] -= in.Quantity
			itemStatuses[itemID] = models.ItemStatus{
				Status:           models.ItemStockAllocated,
				ApprovedQuantity: in.Quantity,
			}
		} else {
			needsProcurement = true
			itemStatuses[itemID] = models.ItemStatus{
				Status:           models.ItemProcurementNeeded,
				ApprovedQuantity: in.Quantity,
			}
		}
	}

	ids, err := s.Requests.ListIDs(ctx)
	if err != nil {
		return nil, &models.PersistenceError{Op: "request.create.ids", Err: err}
	}
	docs, err := s.Requests.ListDocNumbers(ctx)
	if err != nil {
		return nil, &models.PersistenceError{Op: "request.create.docs", Err: err}
	}

	req := &models.Request{
		ID:                       numbering.NextRequestID(ids),
		DocNumber:                numbering.Next("PR", docs, refDate),
		Requester:                input.Requester,
		Division:                 input.Division,
		RequestDate:              refDate,
		Order:                    input.Order,
		Items:                    items,
		ItemStatuses:             itemStatuses,
		PartiallyRegisteredItems: make(map[int]int),
		NeedsProcurement:         needsProcurement,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if needsProcurement {
		req.Status = models.RequestStatusPending
	} else {
		// Everything came from the warehouse: auto-approve both stages
		// and go straight to handover.
		req.Status = models.RequestStatusAwaitingHandover
		stamp := models.AutoStockApprover
		req.LogisticApprover = &stamp
		req.LogisticApprovalDate = &now
		req.FinalApprover = &stamp
		req.FinalApprovalDate = &now
	}

	if err := s.Requests.Create(ctx, req); err != nil {
		return nil, &models.PersistenceError{Op: "request.create", Err: err}
	}

	s.logActivity(ctx, &models.RequestActivity{
		RequestID:    req.ID,
		ActivityType: models.ActivityCreated,
		Actor:        input.Requester,
		Notes:        fmt.Sprintf("Request %s created with %d item(s)", req.DocNumber, len(items)),
	})
	s.publish(events.RequestCreatedEvent, req.ID, events.RequestCreated{Request: req})

	return req, nil
}

// Get returns one request by id
func (s *RequestService) Get(ctx context.Context, id string) (*models.Request, error) {
	return s.Requests.Get(ctx, id)
}

// List returns all requests
func (s *RequestService) List(ctx context.Context) ([]models.Request, error) {
	return s.Requests.List(ctx)
}

// Review applies per-item approval adjustments and moves the request one
// stage forward, or rejects it outright when every item ends at zero.
// Reduced or zeroed items require a non-empty reason; validation happens
// before any state is touched.
func (s *RequestService) Review(ctx context.Context, id string, input *models.ReviewInput, reviewer, reviewerDivision string) (*models.Request, error) {
	req, err := s.Requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, reviewable := reviewAdvance[req.Status]
	if !reviewable {
		return nil, &models.InvalidTransitionError{From: string(req.Status), To: "review"}
	}

	itemsByID := make(map[int]models.RequestItem, len(req.Items))
	for _, item := range req.Items {
		itemsByID[item.ID] = item
	}

	// Validate every adjustment up front
	for _, adj := range input.Adjustments {
		item, ok := itemsByID[adj.ItemID]
		if !ok {
			return nil, &models.NotFoundError{Resource: "request item", ID: fmt.Sprintf("%s/%d", id, adj.ItemID)}
		}
		ceiling := req.ItemStatuses[adj.ItemID].ApprovedQuantity
		if adj.ApprovedQuantity < 0 || adj.ApprovedQuantity > ceiling {
			return nil, models.NewValidationError(
				"item %q: approved quantity %d outside 0..%d", item.ItemName, adj.ApprovedQuantity, ceiling)
		}
		if adj.ApprovedQuantity < ceiling && adj.Reason == "" {
			return nil, models.NewValidationError(
				"item %q: a reason is required when reducing or rejecting", item.ItemName)
		}
	}

	now := timeutil.Now()
	var changes []models.RevisionChange
	for _, adj := range input.Adjustments {
		item := itemsByID[adj.ItemID]
		current := req.ItemStatuses[adj.ItemID]
		ceiling := current.ApprovedQuantity

		updated := current
		switch {
		case adj.ApprovedQuantity == 0:
			updated = models.ItemStatus{Status: models.ItemRejected, Reason: adj.Reason}
		case adj.ApprovedQuantity < ceiling:
			updated = models.ItemStatus{
				Status:           models.ItemPartial,
				ApprovedQuantity: adj.ApprovedQuantity,
				Reason:           adj.Reason,
			}
		default:
			// At the ceiling. Only a quantity still at the originally
			// requested amount is a full approval; an already-reduced
			// entry stays exactly as it is.
			if current.Status != models.ItemStockAllocated && adj.ApprovedQuantity == item.Quantity {
				updated = models.ItemStatus{Status: models.ItemApproved, ApprovedQuantity: ceiling}
			}
		}
		req.ItemStatuses[adj.ItemID] = updated

		changes = append(changes, models.RevisionChange{
			ItemID:           adj.ItemID,
			ItemName:         item.ItemName,
			OriginalQuantity: item.Quantity,
			ApprovedQuantity: updated.ApprovedQuantity,
			Reason:           adj.Reason,
		})
	}

	allZero := true
	for _, st := range req.ItemStatuses {
		if st.ApprovedQuantity > 0 {
			allZero = false
			break
		}
	}

	from := req.Status
	if allZero {
		req.Status = models.RequestStatusRejected
		reason := "All items rejected during review"
		req.RejectionReason = &reason
		req.RejectedBy = &reviewer
		req.RejectedByDivision = &reviewerDivision
		req.RejectionDate = &now
	} else {
		switch from {
		case models.RequestStatusPending:
			req.Status = next
			req.LogisticApprover = &reviewer
			req.LogisticApprovalDate = &now
		case models.RequestStatusAwaitingCEO:
			req.Status = next
			req.FinalApprover = &reviewer
			req.FinalApprovalDate = &now
		}
	}
	req.UpdatedAt = now

	if err := s.update(ctx, req, "request.review"); err != nil {
		return nil, err
	}

	s.logActivity(ctx, &models.RequestActivity{
		RequestID:    req.ID,
		ActivityType: models.ActivityRevision,
		Actor:        reviewer,
		Notes:        fmt.Sprintf("Reviewed: %s -> %s", from, req.Status),
		Changes:      changes,
	})
	if allZero {
		s.publish(events.RequestRejectedEvent, req.ID, events.RequestRejected{
			Request: req, RejectedBy: reviewer, Reason: *req.RejectionReason,
		})
	} else {
		s.publish(events.RequestReviewedEvent, req.ID, events.RequestReviewed{
			Request: req, Reviewer: reviewer, Changes: changes,
		})
	}

	return req, nil
}

// SubmitForFinalApproval moves a logistic-approved request (with its
// purchase details filled in) to the CEO approval stage
func (s *RequestService) SubmitForFinalApproval(ctx context.Context, id, actor string) (*models.Request, error) {
	req, err := s.Requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != models.RequestStatusLogisticApproved {
		return nil, &models.InvalidTransitionError{From: string(req.Status), To: string(models.RequestStatusAwaitingCEO)}
	}

	from := req.Status
	req.Status = models.RequestStatusAwaitingCEO
	req.UpdatedAt = timeutil.Now()
	if err := s.update(ctx, req, "request.submit_final"); err != nil {
		return nil, err
	}

	s.logStatusChange(ctx, req, from, actor)
	return req, nil
}

// AdvanceStatus moves a request forward along the fulfillment chain
// (APPROVED -> PURCHASING -> IN_DELIVERY -> ARRIVED). Any other target
// fails with InvalidTransitionError; stages cannot be skipped.
func (s *RequestService) AdvanceStatus(ctx context.Context, id string, input *models.AdvanceStatusInput, actor string) (*models.Request, error) {
	req, err := s.Requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(req.Status, input.Status) {
		return nil, &models.InvalidTransitionError{From: string(req.Status), To: string(input.Status)}
	}

	now := timeutil.Now()
	from := req.Status
	req.Status = input.Status
	switch input.Status {
	case models.RequestStatusInDelivery:
		req.ActualShipmentDate = &now
	case models.RequestStatusArrived:
		req.ArrivalDate = &now
		receivedBy := input.ReceivedBy
		if receivedBy == "" {
			receivedBy = actor
		}
		req.ReceivedBy = &receivedBy
	}
	req.UpdatedAt = now

	if err := s.update(ctx, req, "request.advance"); err != nil {
		return nil, err
	}

	s.logStatusChange(ctx, req, from, actor)
	return req, nil
}

// RegisterItem records countRegistered units of one item as converted to
// asset records. The running count may never exceed the item's approved
// quantity; overflow is rejected. When every item is satisfied the
// request flips to AWAITING_HANDOVER. Returns whether the request is
// fully registered after this call.
func (s *RequestService) RegisterItem(ctx context.Context, id string, itemID, count int) (bool, error) {
	req, err := s.Requests.Get(ctx, id)
	if err != nil {
		return false, err
	}

	if req.Status != models.RequestStatusArrived && req.Status != models.RequestStatusAwaitingHandover {
		return false, &models.InvalidTransitionError{From: string(req.Status), To: string(models.RequestStatusAwaitingHandover)}
	}

	status, ok := req.ItemStatuses[itemID]
	if !ok {
		return false, &models.NotFoundError{Resource: "request item", ID: fmt.Sprintf("%s/%d", id, itemID)}
	}

	if count < 1 {
		return false, models.NewValidationError("registered count must be at least 1")
	}

	// Items filled from storage were satisfied at creation; registering
	// against them changes nothing.
	if status.Status == models.ItemStockAllocated {
		return req.Status == models.RequestStatusAwaitingHandover, nil
	}

	registered := req.PartiallyRegisteredItems[itemID]
	if registered+count > status.ApprovedQuantity {
		return false, models.NewValidationError(
			"registering %d would exceed approved quantity %d (already registered %d)",
			count, status.ApprovedQuantity, registered)
	}

	if req.PartiallyRegisteredItems == nil {
		req.PartiallyRegisteredItems = make(map[int]int)
	}
	req.PartiallyRegisteredItems[itemID] = registered + count

	completedNow := false
	allSatisfied := true
	for _, item := range req.Items {
		if !itemSatisfied(req, item.ID) {
			allSatisfied = false
			break
		}
	}
	if allSatisfied && req.Status == models.RequestStatusArrived {
		req.Status = models.RequestStatusAwaitingHandover
		completedNow = true
	}
	req.UpdatedAt = timeutil.Now()

	if err := s.update(ctx, req, "request.register"); err != nil {
		return false, err
	}

	s.logActivity(ctx, &models.RequestActivity{
		RequestID:    req.ID,
		ActivityType: models.ActivityRegistration,
		Actor:        "system",
		Notes:        fmt.Sprintf("Registered %d unit(s) of item %d", count, itemID),
	})
	s.publish(events.ItemRegisteredEvent, req.ID, events.ItemRegistered{
		Request: req, ItemID: itemID, Count: count, Completed: completedNow,
	})

	return allSatisfied, nil
}

// itemSatisfied: stock-allocated and rejected items need no registration;
// everything else needs its registered count to reach the approved quantity
func itemSatisfied(req *models.Request, itemID int) bool {
	st := req.ItemStatuses[itemID]
	if st.Status == models.ItemStockAllocated || st.Status == models.ItemRejected {
		return true
	}
	return req.PartiallyRegisteredItems[itemID] >= st.ApprovedQuantity
}

// Complete finishes a request once handover is done
func (s *RequestService) Complete(ctx context.Context, id, actor string) (*models.Request, error) {
	req, err := s.Requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != models.RequestStatusAwaitingHandover {
		return nil, &models.InvalidTransitionError{From: string(req.Status), To: string(models.RequestStatusCompleted)}
	}

	from := req.Status
	req.Status = models.RequestStatusCompleted
	req.UpdatedAt = timeutil.Now()
	if err := s.update(ctx, req, "request.complete"); err != nil {
		return nil, err
	}

	s.logActivity(ctx, &models.RequestActivity{
		RequestID:    req.ID,
		ActivityType: models.ActivityCompleted,
		Actor:        actor,
		Notes:        fmt.Sprintf("Request completed (%s -> %s)", from, req.Status),
	})
	s.publish(events.RequestCompletedEvent, req.ID, events.RequestStatusChanged{
		Request: req, From: from, To: req.Status, Actor: actor,
	})
	return req, nil
}

// Cancel terminates a request from any non-terminal state
func (s *RequestService) Cancel(ctx context.Context, id, actor string) (*models.Request, error) {
	req, err := s.Requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status.IsTerminal() {
		return nil, &models.InvalidTransitionError{From: string(req.Status), To: string(models.RequestStatusCancelled)}
	}

	from := req.Status
	req.Status = models.RequestStatusCancelled
	req.UpdatedAt = timeutil.Now()
	if err := s.update(ctx, req, "request.cancel"); err != nil {
		return nil, err
	}

	s.logActivity(ctx, &models.RequestActivity{
		RequestID:    req.ID,
		ActivityType: models.ActivityCancelled,
		Actor:        actor,
		Notes:        fmt.Sprintf("Request cancelled while %s", from),
	})
	s.publish(events.RequestCancelledEvent, req.ID, events.RequestStatusChanged{
		Request: req, From: from, To: req.Status, Actor: actor,
	})
	return req, nil
}

// ActivityLog returns the audit trail for a request, newest first
func (s *RequestService) ActivityLog(ctx context.Context, id string) ([]models.RequestActivity, error) {
	if _, err := s.Requests.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.Activities.ListByRequest(ctx, id)
}

func (s *RequestService) update(ctx context.Context, req *models.Request, op string) error {
	if err := s.Requests.Update(ctx, req); err != nil {
		if errors.Is(err, models.ErrVersionConflict) {
			metrics.VersionConflictsTotal.Inc()
		}
		return &models.PersistenceError{Op: op, Err: err}
	}
	return nil
}

func (s *RequestService) logStatusChange(ctx context.Context, req *models.Request, from models.RequestStatus, actor string) {
	metrics.RequestStatusTransitions.WithLabelValues(string(from), string(req.Status)).Inc()
	s.logActivity(ctx, &models.RequestActivity{
		RequestID:    req.ID,
		ActivityType: models.ActivityStatusChange,
		Actor:        actor,
		Notes:        fmt.Sprintf("Status changed: %s -> %s", from, req.Status),
	})
	s.publish(events.RequestStatusChangedEvent, req.ID, events.RequestStatusChanged{
		Request: req, From: from, To: req.Status, Actor: actor,
	})
}

// Activity logging is best-effort: a failed audit insert must not fail
// the mutation that already persisted.
func (s *RequestService) logActivity(ctx context.Context, activity *models.RequestActivity) {
	if s.Activities == nil {
		return
	}
	activity.CreatedAt = timeutil.Now()
	_ = s.Activities.Create(ctx, activity)
}

func (s *RequestService) publish(eventType, streamID string, data interface{}) {
	if s.Dispatcher == nil {
		return
	}
	s.Dispatcher.Publish(events.New(eventType, streamID, data))
}
