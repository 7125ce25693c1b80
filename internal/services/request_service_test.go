package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"asset-backend/internal/models"
)

func newTestRequestService() (*RequestService, *memRequestStore, *memAssetStore, *memActivityStore) {
	requests := newMemRequestStore()
	assets := newMemAssetStore()
	activities := newMemActivityStore()
	svc := NewRequestService(requests, assets, activities, nil)
	return svc, requests, assets, activities
}

func createInput(items ...models.CreateRequestItemInput) *models.CreateRequestInput {
	return &models.CreateRequestInput{
		Requester:   "Budi",
		Division:    "IT",
		RequestDate: time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC),
		Order:       models.OrderInfo{Type: models.OrderTypeRegularStock},
		Items:       items,
	}
}

func TestCreate_FullyFromStock(t *testing.T) {
	svc, _, assets, _ := newTestRequestService()
	assets.seed("Laptop", "Thinkpad", 5)

	req, err := svc.Create(context.Background(), createInput(
		models.CreateRequestItemInput{ItemName: "Laptop", ItemTypeBrand: "Thinkpad", Quantity: 3},
	))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if req.Status != models.RequestStatusAwaitingHandover {
		t.Errorf("Expected AWAITING_HANDOVER, got %s", req.Status)
	}
	if req.NeedsProcurement {
		t.Error("Expected NeedsProcurement false for fully stocked request")
	}
	if req.ItemStatuses[1].Status != models.ItemStockAllocated {
		t.Errorf("Expected stock_allocated, got %s", req.ItemStatuses[1].Status)
	}
	if req.LogisticApprover == nil || *req.LogisticApprover != models.AutoStockApprover {
		t.Error("Expected auto-stock approver stamped on logistic approval")
	}
	if req.FinalApprover == nil || *req.FinalApprover != models.AutoStockApprover {
		t.Error("Expected auto-stock approver stamped on final approval")
	}
	if req.ID != "REQ-001" {
		t.Errorf("Expected REQ-001, got %s", req.ID)
	}
	if req.DocNumber != "001/PR/VIII/2025" {
		t.Errorf("Expected 001/PR/VIII/2025, got %s", req.DocNumber)
	}
}

func TestCreate_MixedAllocation(t *testing.T) {
	svc, _, assets, _ := newTestRequestService()
	assets.seed("Mouse", "Logitech", 2)

	req, err := svc.Create(context.Background(), createInput(
		models.CreateRequestItemInput{ItemName: "Mouse", ItemTypeBrand: "Logitech", Quantity: 2},
		models.CreateRequestItemInput{ItemName: "Monitor", ItemTypeBrand: "Dell", Quantity: 1},
	))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if req.Status != models.RequestStatusPending {
		t.Errorf("Expected PENDING, got %s", req.Status)
	}
	if !req.NeedsProcurement {
		t.Error("Expected NeedsProcurement true")
	}
	if req.ItemStatuses[1].Status != models.ItemStockAllocated {
		t.Errorf("Expected item 1 stock_allocated, got %s", req.ItemStatuses[1].Status)
	}
	if req.ItemStatuses[2].Status != models.ItemProcurementNeeded {
		t.Errorf("Expected item 2 procurement_needed, got %s", req.ItemStatuses[2].Status)
	}
}

func TestCreate_StockNotDoubleAllocated(t *testing.T) {
	svc, _, assets, _ := newTestRequestService()
	assets.seed("Mouse", "Logitech", 3)

	// Two lines of the same item against 3 units in storage. The second
	// line must see the snapshot already drained by the first.
	req, err := svc.Create(context.Background(), createInput(
		models.CreateRequestItemInput{ItemName: "Mouse", ItemTypeBrand: "Logitech", Quantity: 2},
		models.CreateRequestItemInput{ItemName: "Mouse", ItemTypeBrand: "Logitech", Quantity: 2},
	))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if req.ItemStatuses[1].Status != models.ItemStockAllocated {
		t.Errorf("Expected item 1 stock_allocated, got %s", req.ItemStatuses[1].Status)
	}
	if req.ItemStatuses[2].Status != models.ItemProcurementNeeded {
		t.Errorf("Expected item 2 procurement_needed, got %s", req.ItemStatuses[2].Status)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _, _ := newTestRequestService()

	tests := []struct {
		name  string
		input *models.CreateRequestInput
	}{
		{"no_items", createInput()},
		{"zero_quantity", createInput(models.CreateRequestItemInput{ItemName: "Mouse", Quantity: 0})},
		{"missing_name", createInput(models.CreateRequestItemInput{Quantity: 1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.input); !models.IsValidation(err) {
				t.Errorf("Expected ValidationError, got %v", err)
			}
		})
	}
}

// createPendingRequest makes a request that needs procurement
func createPendingRequest(t *testing.T, svc *RequestService, quantities ...int) *models.Request {
	t.Helper()
	items := make([]models.CreateRequestItemInput, len(quantities))
	for i, q := range quantities {
		items[i] = models.CreateRequestItemInput{
			ItemName:      "Monitor",
			ItemTypeBrand: "Dell",
			Quantity:      q,
		}
	}
	req, err := svc.Create(context.Background(), createInput(items...))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if req.Status != models.RequestStatusPending {
		t.Fatalf("Expected PENDING fixture, got %s", req.Status)
	}
	return req
}

func TestReview_FullApprovalAdvancesStage(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 2)

	reviewed, err := svc.Review(context.Background(), req.ID, &models.ReviewInput{}, "Sari", "Logistics")
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if reviewed.Status != models.RequestStatusLogisticApproved {
		t.Errorf("Expected LOGISTIC_APPROVED, got %s", reviewed.Status)
	}
	if reviewed.LogisticApprover == nil || *reviewed.LogisticApprover != "Sari" {
		t.Error("Expected logistic approver stamped")
	}
}

func TestReview_ReductionRequiresReason(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 5)

	_, err := svc.Review(context.Background(), req.ID, &models.ReviewInput{
		Adjustments: []models.ItemAdjustment{{ItemID: 1, ApprovedQuantity: 3}},
	}, "Sari", "Logistics")
	if !models.IsValidation(err) {
		t.Fatalf("Expected ValidationError for missing reason, got %v", err)
	}

	reviewed, err := svc.Review(context.Background(), req.ID, &models.ReviewInput{
		Adjustments: []models.ItemAdjustment{{ItemID: 1, ApprovedQuantity: 3, Reason: "Budget cut"}},
	}, "Sari", "Logistics")
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	st := reviewed.ItemStatuses[1]
	if st.Status != models.ItemPartial || st.ApprovedQuantity != 3 || st.Reason != "Budget cut" {
		t.Errorf("Expected partial/3/Budget cut, got %+v", st)
	}
}

func TestReview_CannotExceedCeiling(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 5)

	// Logistic reduces to 3
	if _, err := svc.Review(context.Background(), req.ID, &models.ReviewInput{
		Adjustments: []models.ItemAdjustment{{ItemID: 1, ApprovedQuantity: 3, Reason: "Budget cut"}},
	}, "Sari", "Logistics"); err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if _, err := svc.SubmitForFinalApproval(context.Background(), req.ID, "Sari"); err != nil {
		t.Fatalf("SubmitForFinalApproval failed: %v", err)
	}

	// CEO cannot raise back above the reduced ceiling
	_, err := svc.Review(context.Background(), req.ID, &models.ReviewInput{
		Adjustments: []models.ItemAdjustment{{ItemID: 1, ApprovedQuantity: 5}},
	}, "Pak Dirut", "Management")
	if !models.IsValidation(err) {
		t.Errorf("Expected ValidationError raising above ceiling, got %v", err)
	}
}

func TestReview_AllZeroRejectsRequest(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 2, 3)

	reviewed, err := svc.Review(context.Background(), req.ID, &models.ReviewInput{
		Adjustments: []models.ItemAdjustment{
			{ItemID: 1, ApprovedQuantity: 0, Reason: "Not needed"},
			{ItemID: 2, ApprovedQuantity: 0, Reason: "Not needed"},
		},
	}, "Sari", "Logistics")
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if reviewed.Status != models.RequestStatusRejected {
		t.Errorf("Expected REJECTED, got %s", reviewed.Status)
	}
	if reviewed.RejectedBy == nil || *reviewed.RejectedBy != "Sari" {
		t.Error("Expected rejection metadata stamped")
	}
	if reviewed.RejectionDate == nil {
		t.Error("Expected rejection date stamped")
	}
}

func TestReview_IdenticalResubmissionIsIdempotent(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 5)

	input := &models.ReviewInput{
		Adjustments: []models.ItemAdjustment{{ItemID: 1, ApprovedQuantity: 2, Reason: "Partial stock"}},
	}
	first, err := svc.Review(context.Background(), req.ID, input, "Sari", "Logistics")
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	second, err := svc.Review(context.Background(), req.ID, input, "Sari", "Logistics")
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	if first.ItemStatuses[1] != second.ItemStatuses[1] {
		t.Errorf("Expected identical item status after resubmission, got %+v then %+v",
			first.ItemStatuses[1], second.ItemStatuses[1])
	}
	st := second.ItemStatuses[1]
	if st.Status != models.ItemPartial || st.ApprovedQuantity != 2 || st.Reason != "Partial stock" {
		t.Errorf("Expected partial/2/reason intact, got %+v", st)
	}
}

func TestReview_ReducedQuantitySurvivesFinalApproval(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 5)

	if _, err := svc.Review(context.Background(), req.ID, &models.ReviewInput{
		Adjustments: []models.ItemAdjustment{{ItemID: 1, ApprovedQuantity: 3, Reason: "Budget cut"}},
	}, "Sari", "Logistics"); err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if _, err := svc.SubmitForFinalApproval(context.Background(), req.ID, "Sari"); err != nil {
		t.Fatalf("SubmitForFinalApproval failed: %v", err)
	}

	// CEO confirms the reduced quantity; the partial status and its
	// reason must not be rewritten into a full approval.
	reviewed, err := svc.Review(context.Background(), req.ID, &models.ReviewInput{
		Adjustments: []models.ItemAdjustment{{ItemID: 1, ApprovedQuantity: 3}},
	}, "Pak Dirut", "Management")
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	st := reviewed.ItemStatuses[1]
	if st.Status != models.ItemPartial || st.ApprovedQuantity != 3 || st.Reason != "Budget cut" {
		t.Errorf("Expected partial/3 with reason kept, got %+v", st)
	}
	if reviewed.Status != models.RequestStatusApproved {
		t.Errorf("Expected APPROVED after CEO review, got %s", reviewed.Status)
	}
	if reviewed.FinalApprover == nil || *reviewed.FinalApprover != "Pak Dirut" {
		t.Error("Expected final approver stamped")
	}
}

// approveRequest walks a pending request through both review stages
func approveRequest(t *testing.T, svc *RequestService, id string) *models.Request {
	t.Helper()
	if _, err := svc.Review(context.Background(), id, &models.ReviewInput{}, "Sari", "Logistics"); err != nil {
		t.Fatalf("logistic review failed: %v", err)
	}
	if _, err := svc.SubmitForFinalApproval(context.Background(), id, "Sari"); err != nil {
		t.Fatalf("SubmitForFinalApproval failed: %v", err)
	}
	req, err := svc.Review(context.Background(), id, &models.ReviewInput{}, "Pak Dirut", "Management")
	if err != nil {
		t.Fatalf("final review failed: %v", err)
	}
	return req
}

func TestAdvanceStatus_FullChain(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 2)
	approveRequest(t, svc, req.ID)

	chain := []models.RequestStatus{
		models.RequestStatusPurchasing,
		models.RequestStatusInDelivery,
		models.RequestStatusArrived,
	}
	for _, status := range chain {
		updated, err := svc.AdvanceStatus(context.Background(), req.ID, &models.AdvanceStatusInput{Status: status}, "Sari")
		if err != nil {
			t.Fatalf("AdvanceStatus to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("Expected %s, got %s", status, updated.Status)
		}
	}

	final, _ := svc.Get(context.Background(), req.ID)
	if final.ActualShipmentDate == nil {
		t.Error("Expected shipment date stamped on IN_DELIVERY")
	}
	if final.ArrivalDate == nil || final.ReceivedBy == nil {
		t.Error("Expected arrival metadata stamped on ARRIVED")
	}
}

func TestAdvanceStatus_CannotSkipStages(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 2)
	approveRequest(t, svc, req.ID)

	_, err := svc.AdvanceStatus(context.Background(), req.ID, &models.AdvanceStatusInput{Status: models.RequestStatusArrived}, "Sari")
	if !models.IsInvalidTransition(err) {
		t.Errorf("Expected InvalidTransitionError skipping to ARRIVED, got %v", err)
	}
}

func TestAdvanceStatus_RejectedFromPending(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 2)

	_, err := svc.AdvanceStatus(context.Background(), req.ID, &models.AdvanceStatusInput{Status: models.RequestStatusPurchasing}, "Sari")
	if !models.IsInvalidTransition(err) {
		t.Errorf("Expected InvalidTransitionError from PENDING, got %v", err)
	}
}

// arrivedRequest builds a request sitting at ARRIVED with the given
// per-item quantities
func arrivedRequest(t *testing.T, svc *RequestService, quantities ...int) *models.Request {
	t.Helper()
	req := createPendingRequest(t, svc, quantities...)
	approveRequest(t, svc, req.ID)
	for _, status := range []models.RequestStatus{
		models.RequestStatusPurchasing,
		models.RequestStatusInDelivery,
		models.RequestStatusArrived,
	} {
		if _, err := svc.AdvanceStatus(context.Background(), req.ID, &models.AdvanceStatusInput{Status: status}, "Sari"); err != nil {
			t.Fatalf("AdvanceStatus to %s failed: %v", status, err)
		}
	}
	updated, _ := svc.Get(context.Background(), req.ID)
	return updated
}

func TestRegisterItem_PartialThenComplete(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := arrivedRequest(t, svc, 5)

	done, err := svc.RegisterItem(context.Background(), req.ID, 1, 2)
	if err != nil {
		t.Fatalf("RegisterItem failed: %v", err)
	}
	if done {
		t.Error("Expected request not yet fully registered after 2 of 5")
	}

	mid, _ := svc.Get(context.Background(), req.ID)
	if mid.Status != models.RequestStatusArrived {
		t.Errorf("Expected ARRIVED while partially registered, got %s", mid.Status)
	}
	if mid.PartiallyRegisteredItems[1] != 2 {
		t.Errorf("Expected registered count 2, got %d", mid.PartiallyRegisteredItems[1])
	}

	done, err = svc.RegisterItem(context.Background(), req.ID, 1, 3)
	if err != nil {
		t.Fatalf("RegisterItem failed: %v", err)
	}
	if !done {
		t.Error("Expected request fully registered after 5 of 5")
	}

	final, _ := svc.Get(context.Background(), req.ID)
	if final.Status != models.RequestStatusAwaitingHandover {
		t.Errorf("Expected AWAITING_HANDOVER, got %s", final.Status)
	}
}

func TestRegisterItem_OverflowRejected(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := arrivedRequest(t, svc, 5)

	if _, err := svc.RegisterItem(context.Background(), req.ID, 1, 3); err != nil {
		t.Fatalf("RegisterItem failed: %v", err)
	}
	_, err := svc.RegisterItem(context.Background(), req.ID, 1, 3)
	if !models.IsValidation(err) {
		t.Fatalf("Expected ValidationError on overflow, got %v", err)
	}

	// Overflow must not have mutated the count
	after, _ := svc.Get(context.Background(), req.ID)
	if after.PartiallyRegisteredItems[1] != 3 {
		t.Errorf("Expected registered count unchanged at 3, got %d", after.PartiallyRegisteredItems[1])
	}
}

func TestRegisterItem_RejectedItemsDoNotBlockCompletion(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 2, 3)

	// Logistic zeroes item 2, approves item 1
	if _, err := svc.Review(context.Background(), req.ID, &models.ReviewInput{
		Adjustments: []models.ItemAdjustment{{ItemID: 2, ApprovedQuantity: 0, Reason: "Not needed"}},
	}, "Sari", "Logistics"); err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if _, err := svc.SubmitForFinalApproval(context.Background(), req.ID, "Sari"); err != nil {
		t.Fatalf("SubmitForFinalApproval failed: %v", err)
	}
	if _, err := svc.Review(context.Background(), req.ID, &models.ReviewInput{}, "Pak Dirut", "Management"); err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	for _, status := range []models.RequestStatus{
		models.RequestStatusPurchasing,
		models.RequestStatusInDelivery,
		models.RequestStatusArrived,
	} {
		if _, err := svc.AdvanceStatus(context.Background(), req.ID, &models.AdvanceStatusInput{Status: status}, "Sari"); err != nil {
			t.Fatalf("AdvanceStatus failed: %v", err)
		}
	}

	// Only item 1 needs registering
	done, err := svc.RegisterItem(context.Background(), req.ID, 1, 2)
	if err != nil {
		t.Fatalf("RegisterItem failed: %v", err)
	}
	if !done {
		t.Error("Expected completion with rejected item skipped")
	}
}

func TestRegisterItem_StockAllocatedItemIsNoOp(t *testing.T) {
	svc, _, assets, _ := newTestRequestService()
	assets.seed("Mouse", "Logitech", 2)

	req, err := svc.Create(context.Background(), createInput(
		models.CreateRequestItemInput{ItemName: "Mouse", ItemTypeBrand: "Logitech", Quantity: 2},
		models.CreateRequestItemInput{ItemName: "Monitor", ItemTypeBrand: "Dell", Quantity: 1},
	))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	approveRequest(t, svc, req.ID)
	for _, status := range []models.RequestStatus{
		models.RequestStatusPurchasing,
		models.RequestStatusInDelivery,
		models.RequestStatusArrived,
	} {
		if _, err := svc.AdvanceStatus(context.Background(), req.ID, &models.AdvanceStatusInput{Status: status}, "Sari"); err != nil {
			t.Fatalf("AdvanceStatus to %s failed: %v", status, err)
		}
	}

	// Item 1 was filled from storage at creation; registering against it
	// must not record anything or complete the request.
	done, err := svc.RegisterItem(context.Background(), req.ID, 1, 1)
	if err != nil {
		t.Fatalf("RegisterItem failed: %v", err)
	}
	if done {
		t.Error("Expected no completion from a stock-allocated item")
	}
	got, err := svc.Get(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.PartiallyRegisteredItems[1] != 0 {
		t.Errorf("Expected no registration recorded, got %d", got.PartiallyRegisteredItems[1])
	}

	// The procurement item alone drives completion
	done, err = svc.RegisterItem(context.Background(), req.ID, 2, 1)
	if err != nil {
		t.Fatalf("RegisterItem failed: %v", err)
	}
	if !done {
		t.Error("Expected completion after registering the procurement item")
	}
}

func TestRegisterItem_RequiresArrived(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 2)

	_, err := svc.RegisterItem(context.Background(), req.ID, 1, 1)
	if !models.IsInvalidTransition(err) {
		t.Errorf("Expected InvalidTransitionError registering on PENDING, got %v", err)
	}
}

func TestComplete_FromAwaitingHandover(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := arrivedRequest(t, svc, 2)
	if _, err := svc.RegisterItem(context.Background(), req.ID, 1, 2); err != nil {
		t.Fatalf("RegisterItem failed: %v", err)
	}

	completed, err := svc.Complete(context.Background(), req.ID, "Sari")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if completed.Status != models.RequestStatusCompleted {
		t.Errorf("Expected COMPLETED, got %s", completed.Status)
	}

	// Terminal: nothing moves it again
	if _, err := svc.Cancel(context.Background(), req.ID, "Sari"); !models.IsInvalidTransition(err) {
		t.Errorf("Expected InvalidTransitionError cancelling COMPLETED, got %v", err)
	}
}

func TestCancel_NonTerminalOnly(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 2)

	cancelled, err := svc.Cancel(context.Background(), req.ID, "Budi")
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != models.RequestStatusCancelled {
		t.Errorf("Expected CANCELLED, got %s", cancelled.Status)
	}

	if _, err := svc.Cancel(context.Background(), req.ID, "Budi"); !models.IsInvalidTransition(err) {
		t.Errorf("Expected InvalidTransitionError on double cancel, got %v", err)
	}
}

func TestUpdate_VersionConflictSurfaces(t *testing.T) {
	svc, requests, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 2)

	// Simulate a concurrent writer bumping the version underneath
	stored, _ := requests.Get(context.Background(), req.ID)
	if err := requests.Update(context.Background(), stored); err != nil {
		t.Fatalf("setup update failed: %v", err)
	}

	stale, _ := requests.Get(context.Background(), req.ID)
	stale.Version--
	err := requests.Update(context.Background(), stale)
	if !errors.Is(err, models.ErrVersionConflict) {
		t.Fatalf("Expected ErrVersionConflict, got %v", err)
	}
}

func TestSequentialIDs_NoGapsAcrossRequests(t *testing.T) {
	svc, _, _, _ := newTestRequestService()

	for i := 1; i <= 3; i++ {
		req := createPendingRequest(t, svc, 1)
		want := []string{"REQ-001", "REQ-002", "REQ-003"}[i-1]
		if req.ID != want {
			t.Errorf("Expected %s, got %s", want, req.ID)
		}
	}
}

func TestActivityLog_RecordsLifecycle(t *testing.T) {
	svc, _, _, _ := newTestRequestService()
	req := createPendingRequest(t, svc, 2)
	approveRequest(t, svc, req.ID)

	activities, err := svc.ActivityLog(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("ActivityLog failed: %v", err)
	}
	if len(activities) < 3 {
		t.Fatalf("Expected at least 3 activities, got %d", len(activities))
	}
	// Newest first: last entry is creation
	if activities[len(activities)-1].ActivityType != models.ActivityCreated {
		t.Errorf("Expected oldest activity CREATED, got %s", activities[len(activities)-1].ActivityType)
	}
}
