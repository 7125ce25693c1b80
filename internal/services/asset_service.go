package services

import (
	"context"
	"fmt"

	"asset-backend/internal/models"
	"asset-backend/internal/numbering"
	"asset-backend/internal/timeutil"
)

// AssetService registers physical assets and keeps the stock ledger in
// step with asset status changes. Registering against a request item also
// updates that request's registration progress.
type AssetService struct {
	Assets   AssetStore
	Stock    *StockService
	Requests *RequestService
}

func NewAssetService(assets AssetStore, stock *StockService, requests *RequestService) *AssetService {
	return &AssetService{Assets: assets, Stock: stock, Requests: requests}
}

// Register creates input.Count asset records with freshly assigned tags,
// all IN_STORAGE, and writes one IN_PURCHASE ledger entry for the batch.
// When the input names a request item, the request's registered count is
// advanced first so overflow is rejected before any asset row exists.
func (s *AssetService) Register(ctx context.Context, input *models.RegisterAssetInput, registeredBy string) ([]models.Asset, error) {
	if input.Name == "" {
		return nil, models.NewValidationError("asset name is required")
	}
	if input.Count < 1 {
		return nil, models.NewValidationError("count must be at least 1")
	}
	if (input.RequestID == nil) != (input.ItemID == nil) {
		return nil, models.NewValidationError("request_id and item_id must be provided together")
	}

	referenceID := ""
	if input.RequestID != nil {
		referenceID = *input.RequestID
		if _, err := s.Requests.RegisterItem(ctx, *input.RequestID, *input.ItemID, input.Count); err != nil {
			return nil, err
		}
	}

	tags, err := s.Assets.ListTags(ctx)
	if err != nil {
		return nil, &models.PersistenceError{Op: "asset.register.tags", Err: err}
	}

	now := timeutil.Now()
	created := make([]models.Asset, 0, input.Count)
	for i := 0; i < input.Count; i++ {
		tag := numbering.NextAssetTag(tags)
		tags = append(tags, tag)

		asset := models.Asset{
			Tag:           tag,
			Name:          input.Name,
			Brand:         input.Brand,
			SerialNumber:  input.SerialNumber,
			Status:        models.AssetInStorage,
			Location:      input.Location,
			PurchasePrice: input.PurchasePrice,
			RequestID:     input.RequestID,
			RegisteredBy:  registeredBy,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.Assets.Create(ctx, &asset); err != nil {
			return nil, &models.PersistenceError{Op: "asset.register", Err: err}
		}
		created = append(created, asset)
	}

	if _, err := s.Stock.RecordMovement(ctx, models.MovementInPurchase,
		input.Name, input.Brand, input.Count, referenceID, registeredBy,
		fmt.Sprintf("Registered %d unit(s)", input.Count)); err != nil {
		return nil, err
	}

	return created, nil
}

// Get returns one asset by id
func (s *AssetService) Get(ctx context.Context, id int) (*models.Asset, error) {
	return s.Assets.Get(ctx, id)
}

// List returns all assets
func (s *AssetService) List(ctx context.Context) ([]models.Asset, error) {
	return s.Assets.List(ctx)
}

// UpdateStatus moves an asset to a new status. Ledger entries are written
// only when the change crosses the IN_STORAGE boundary: stock levels track
// what sits in the warehouse, not every administrative relabel.
func (s *AssetService) UpdateStatus(ctx context.Context, id int, status models.AssetStatus, assignedTo, actor string) (*models.Asset, error) {
	switch status {
	case models.AssetInStorage, models.AssetInUse, models.AssetDamaged,
		models.AssetUnderRepair, models.AssetOutForRepair,
		models.AssetDecommissioned, models.AssetAwaitingReturn:
	default:
		return nil, models.NewValidationError("unknown asset status %q", status)
	}

	asset, err := s.Assets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset.Status == status {
		return asset, nil
	}

	from := asset.Status
	if err := s.Assets.UpdateStatus(ctx, id, status, assignedTo); err != nil {
		return nil, &models.PersistenceError{Op: "asset.update_status", Err: err}
	}
	asset.Status = status
	asset.AssignedTo = assignedTo
	asset.UpdatedAt = timeutil.Now()

	switch {
	case from == models.AssetInStorage && status != models.AssetInStorage:
		movementType := models.MovementOutInstallation
		if status == models.AssetDamaged || status == models.AssetDecommissioned {
			movementType = models.MovementOutBroken
		}
		_, err = s.Stock.RecordMovement(ctx, movementType,
			asset.Name, asset.Brand, 1, asset.Tag, actor,
			fmt.Sprintf("%s -> %s", from, status))
	case from != models.AssetInStorage && status == models.AssetInStorage:
		_, err = s.Stock.RecordMovement(ctx, models.MovementInReturn,
			asset.Name, asset.Brand, 1, asset.Tag, actor,
			fmt.Sprintf("%s -> %s", from, status))
	}
	if err != nil {
		return nil, err
	}

	return asset, nil
}
