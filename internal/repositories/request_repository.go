package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"asset-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RequestRepository persists purchase requests. The item collections and
// order info live in JSONB columns; updates are compare-and-swap on the
// version column.
type RequestRepository struct {
	DB *pgxpool.Pool
}

func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{DB: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *models.Request) error {
	items, itemStatuses, registered, order, err := marshalRequestJSON(req)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO requests (
			id, doc_number, requester, division, request_date, status, order_info,
			items, item_statuses, partially_registered_items, needs_procurement,
			logistic_approver, logistic_approval_date, final_approver, final_approval_date,
			rejection_reason, rejected_by, rejected_by_division, rejection_date,
			actual_shipment_date, arrival_date, received_by,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		          $16, $17, $18, $19, $20, $21, $22, 1, $23, $24)
	`
	_, err = r.DB.Exec(ctx, query,
		req.ID, req.DocNumber, req.Requester, req.Division, req.RequestDate, req.Status, order,
		items, itemStatuses, registered, req.NeedsProcurement,
		req.LogisticApprover, req.LogisticApprovalDate, req.FinalApprover, req.FinalApprovalDate,
		req.RejectionReason, req.RejectedBy, req.RejectedByDivision, req.RejectionDate,
		req.ActualShipmentDate, req.ArrivalDate, req.ReceivedBy,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Version = 1
	return nil
}

// Update writes the request back only when the stored version still
// matches. A zero-row update means another writer got there first.
func (r *RequestRepository) Update(ctx context.Context, req *models.Request) error {
	items, itemStatuses, registered, order, err := marshalRequestJSON(req)
	if err != nil {
		return err
	}

	query := `
		UPDATE requests SET
			status = $3, order_info = $4,
			items = $5, item_statuses = $6, partially_registered_items = $7,
			needs_procurement = $8,
			logistic_approver = $9, logistic_approval_date = $10,
			final_approver = $11, final_approval_date = $12,
			rejection_reason = $13, rejected_by = $14, rejected_by_division = $15, rejection_date = $16,
			actual_shipment_date = $17, arrival_date = $18, received_by = $19,
			version = version + 1, updated_at = $20
		WHERE id = $1 AND version = $2
	`
	tag, err := r.DB.Exec(ctx, query,
		req.ID, req.Version,
		req.Status, order,
		items, itemStatuses, registered,
		req.NeedsProcurement,
		req.LogisticApprover, req.LogisticApprovalDate,
		req.FinalApprover, req.FinalApprovalDate,
		req.RejectionReason, req.RejectedBy, req.RejectedByDivision, req.RejectionDate,
		req.ActualShipmentDate, req.ArrivalDate, req.ReceivedBy,
		req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrVersionConflict
	}
	req.Version++
	return nil
}

func (r *RequestRepository) Get(ctx context.Context, id string) (*models.Request, error) {
	query := selectRequestColumns + ` WHERE id = $1`

	row := r.DB.QueryRow(ctx, query, id)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Resource: "request", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

func (r *RequestRepository) List(ctx context.Context) ([]models.Request, error) {
	query := selectRequestColumns + ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *RequestRepository) ListIDs(ctx context.Context) ([]string, error) {
	return r.listStrings(ctx, `SELECT id FROM requests`)
}

func (r *RequestRepository) ListDocNumbers(ctx context.Context) ([]string, error) {
	return r.listStrings(ctx, `SELECT doc_number FROM requests`)
}

func (r *RequestRepository) listStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

const selectRequestColumns = `
	SELECT id, doc_number, requester, division, request_date, status, order_info,
	       items, item_statuses, partially_registered_items, needs_procurement,
	       logistic_approver, logistic_approval_date, final_approver, final_approval_date,
	       rejection_reason, rejected_by, rejected_by_division, rejection_date,
	       actual_shipment_date, arrival_date, received_by,
	       version, created_at, updated_at
	FROM requests`

func marshalRequestJSON(req *models.Request) (items, itemStatuses, registered, order []byte, err error) {
	if items, err = json.Marshal(req.Items); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal items: %w", err)
	}
	if itemStatuses, err = json.Marshal(req.ItemStatuses); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal item statuses: %w", err)
	}
	if registered, err = json.Marshal(req.PartiallyRegisteredItems); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal registered items: %w", err)
	}
	if order, err = json.Marshal(req.Order); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal order info: %w", err)
	}
	return items, itemStatuses, registered, order, nil
}

func scanRequest(row pgx.Row) (*models.Request, error) {
	req := &models.Request{}
	var items, itemStatuses, registered, order []byte

	err := row.Scan(
		&req.ID, &req.DocNumber, &req.Requester, &req.Division, &req.RequestDate, &req.Status, &order,
		&items, &itemStatuses, &registered, &req.NeedsProcurement,
		&req.LogisticApprover, &req.LogisticApprovalDate, &req.FinalApprover, &req.FinalApprovalDate,
		&req.RejectionReason, &req.RejectedBy, &req.RejectedByDivision, &req.RejectionDate,
		&req.ActualShipmentDate, &req.ArrivalDate, &req.ReceivedBy,
		&req.Version, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &req.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}
	if err := json.Unmarshal(itemStatuses, &req.ItemStatuses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item statuses: %w", err)
	}
	if err := json.Unmarshal(registered, &req.PartiallyRegisteredItems); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registered items: %w", err)
	}
	if err := json.Unmarshal(order, &req.Order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order info: %w", err)
	}
	if req.PartiallyRegisteredItems == nil {
		req.PartiallyRegisteredItems = make(map[int]int)
	}
	return req, nil
}
