package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"asset-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityLogRepository persists the per-request audit trail
type ActivityLogRepository struct {
	DB *pgxpool.Pool
}

func NewActivityLogRepository(db *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

func (r *ActivityLogRepository) Create(ctx context.Context, activity *models.RequestActivity) error {
	changes, err := json.Marshal(activity.Changes)
	if err != nil {
		return fmt.Errorf("failed to marshal changes: %w", err)
	}

	query := `
		INSERT INTO request_activities (request_id, activity_type, actor, notes, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = r.DB.QueryRow(ctx, query,
		activity.RequestID, activity.ActivityType, activity.Actor,
		activity.Notes, changes, activity.CreatedAt,
	).Scan(&activity.ID)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *ActivityLogRepository) ListByRequest(ctx context.Context, requestID string) ([]models.RequestActivity, error) {
	query := `
		SELECT id, request_id, activity_type, actor, notes, changes, created_at
		FROM request_activities
		WHERE request_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.DB.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []models.RequestActivity
	for rows.Next() {
		var a models.RequestActivity
		var changes []byte
		if err := rows.Scan(&a.ID, &a.RequestID, &a.ActivityType, &a.Actor, &a.Notes, &changes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if err := json.Unmarshal(changes, &a.Changes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal changes: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
