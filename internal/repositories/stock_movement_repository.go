package repositories

import (
	"context"
	"fmt"

	"asset-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StockMovementRepository persists the append-only stock ledger.
// Movements are never updated or deleted.
type StockMovementRepository struct {
	DB *pgxpool.Pool
}

func NewStockMovementRepository(db *pgxpool.Pool) *StockMovementRepository {
	return &StockMovementRepository{DB: db}
}

func (r *StockMovementRepository) Create(ctx context.Context, movement *models.StockMovement) error {
	query := `
		INSERT INTO stock_movements (
			asset_name, brand, date, type, quantity, reference_id, actor, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query,
		movement.AssetName, movement.Brand, movement.Date, movement.Type,
		movement.Quantity, movement.ReferenceID, movement.Actor, movement.Notes,
		movement.CreatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("failed to create stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepository) ListByItem(ctx context.Context, name, brand string) ([]models.StockMovement, error) {
	query := `
		SELECT id, asset_name, brand, date, type, quantity, reference_id, actor, notes, created_at
		FROM stock_movements
		WHERE asset_name = $1 AND brand = $2
		ORDER BY date DESC, id DESC
	`
	rows, err := r.DB.Query(ctx, query, name, brand)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []models.StockMovement
	for rows.Next() {
		var m models.StockMovement
		if err := rows.Scan(
			&m.ID, &m.AssetName, &m.Brand, &m.Date, &m.Type, &m.Quantity,
			&m.ReferenceID, &m.Actor, &m.Notes, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stock movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
