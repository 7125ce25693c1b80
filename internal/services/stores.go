package services

import (
	"context"

	"asset-backend/internal/models"
)

// The services mutate state only through these stores. The pgx
// repositories satisfy them in production; tests supply in-memory fakes.

type RequestStore interface {
	Create(ctx context.Context, req *models.Request) error
	// Update is a compare-and-swap on the request's version; it returns
	// models.ErrVersionConflict when the row moved underneath the caller.
	Update(ctx context.Context, req *models.Request) error
	Get(ctx context.Context, id string) (*models.Request, error)
	List(ctx context.Context) ([]models.Request, error)
	ListIDs(ctx context.Context) ([]string, error)
	ListDocNumbers(ctx context.Context) ([]string, error)
}

type LoanStore interface {
	Create(ctx context.Context, loan *models.LoanRequest) error
	Update(ctx context.Context, loan *models.LoanRequest) error
	Get(ctx context.Context, id string) (*models.LoanRequest, error)
	List(ctx context.Context) ([]models.LoanRequest, error)
	ListIDs(ctx context.Context) ([]string, error)
	ListDocNumbers(ctx context.Context) ([]string, error)
}

type AssetStore interface {
	Create(ctx context.Context, asset *models.Asset) error
	Get(ctx context.Context, id int) (*models.Asset, error)
	List(ctx context.Context) ([]models.Asset, error)
	ListTags(ctx context.Context) ([]string, error)
	UpdateStatus(ctx context.Context, id int, status models.AssetStatus, assignedTo string) error
	// CountInStorage groups assets with status IN_STORAGE by name|brand
	CountInStorage(ctx context.Context) ([]models.StockCount, error)
}

type MovementStore interface {
	Create(ctx context.Context, movement *models.StockMovement) error
	// ListByItem returns movements for one name+brand key, newest first
	ListByItem(ctx context.Context, name, brand string) ([]models.StockMovement, error)
}

type ActivityStore interface {
	Create(ctx context.Context, activity *models.RequestActivity) error
	// ListByRequest returns activities newest first
	ListByRequest(ctx context.Context, requestID string) ([]models.RequestActivity, error)
}
