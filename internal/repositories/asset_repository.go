package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"asset-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssetRepository struct {
	DB *pgxpool.Pool
}

func NewAssetRepository(db *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{DB: db}
}

func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	query := `
		INSERT INTO assets (
			tag, name, brand, serial_number, status, location, assigned_to,
			purchase_price, request_id, registered_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query,
		asset.Tag, asset.Name, asset.Brand, asset.SerialNumber, asset.Status,
		asset.Location, asset.AssignedTo, asset.PurchasePrice,
		asset.RequestID, asset.RegisteredBy, asset.CreatedAt, asset.UpdatedAt,
	).Scan(&asset.ID)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

func (r *AssetRepository) Get(ctx context.Context, id int) (*models.Asset, error) {
	query := selectAssetColumns + ` WHERE id = $1`

	asset := &models.Asset{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&asset.ID, &asset.Tag, &asset.Name, &asset.Brand, &asset.SerialNumber,
		&asset.Status, &asset.Location, &asset.AssignedTo, &asset.PurchasePrice,
		&asset.RequestID, &asset.RegisteredBy, &asset.CreatedAt, &asset.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Resource: "asset", ID: strconv.Itoa(id)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

func (r *AssetRepository) List(ctx context.Context) ([]models.Asset, error) {
	query := selectAssetColumns + ` ORDER BY id`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		asset := models.Asset{}
		if err := rows.Scan(
			&asset.ID, &asset.Tag, &asset.Name, &asset.Brand, &asset.SerialNumber,
			&asset.Status, &asset.Location, &asset.AssignedTo, &asset.PurchasePrice,
			&asset.RequestID, &asset.RegisteredBy, &asset.CreatedAt, &asset.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *AssetRepository) ListTags(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT tag FROM assets`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *AssetRepository) UpdateStatus(ctx context.Context, id int, status models.AssetStatus, assignedTo string) error {
	query := `UPDATE assets SET status = $2, assigned_to = $3, updated_at = NOW() WHERE id = $1`

	tag, err := r.DB.Exec(ctx, query, id, status, assignedTo)
	if err != nil {
		return fmt.Errorf("failed to update asset status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &models.NotFoundError{Resource: "asset", ID: strconv.Itoa(id)}
	}
	return nil
}

func (r *AssetRepository) CountInStorage(ctx context.Context) ([]models.StockCount, error) {
	query := `
		SELECT name, brand, COUNT(*) FROM assets
		WHERE status = 'IN_STORAGE'
		GROUP BY name, brand
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count storage: %w", err)
	}
	defer rows.Close()

	var counts []models.StockCount
	for rows.Next() {
		var c models.StockCount
		if err := rows.Scan(&c.Name, &c.Brand, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

const selectAssetColumns = `
	SELECT id, tag, name, brand, serial_number, status, location, assigned_to,
	       purchase_price, request_id, registered_by, created_at, updated_at
	FROM assets`
