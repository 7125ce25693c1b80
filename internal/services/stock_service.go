package services

import (
	"context"

	"asset-backend/internal/metrics"
	"asset-backend/internal/models"
	"asset-backend/internal/timeutil"
)

// StockService records inventory movements and derives per-item history
// with running balances. Quantities are stored signed: inbound types
// positive, outbound types negative.
type StockService struct {
	Movements MovementStore
	Assets    AssetStore
}

func NewStockService(movements MovementStore, assets AssetStore) *StockService {
	return &StockService{Movements: movements, Assets: assets}
}

// RecordMovement validates and persists one ledger entry. Quantity on the
// input is always positive; the movement type decides the stored sign.
func (s *StockService) RecordMovement(ctx context.Context, movementType models.MovementType, name, brand string, quantity int, referenceID, actor, notes string) (*models.StockMovement, error) {
	if name == "" {
		return nil, models.NewValidationError("item name is required")
	}
	if quantity < 1 {
		return nil, models.NewValidationError("movement quantity must be at least 1")
	}
	switch movementType {
	case models.MovementInPurchase, models.MovementOutInstallation,
		models.MovementOutBroken, models.MovementInReturn, models.MovementOutAdjustment:
	default:
		return nil, models.NewValidationError("unknown movement type %q", movementType)
	}

	stored := quantity
	if !movementType.Inbound() {
		stored = -quantity
	}

	now := timeutil.Now()
	movement := &models.StockMovement{
		AssetName:   name,
		Brand:       brand,
		Date:        now,
		Type:        movementType,
		Quantity:    stored,
		ReferenceID: referenceID,
		Actor:       actor,
		Notes:       notes,
		CreatedAt:   now,
	}
	if err := s.Movements.Create(ctx, movement); err != nil {
		return nil, &models.PersistenceError{Op: "stock.record", Err: err}
	}
	metrics.StockMovementsTotal.WithLabelValues(string(movementType)).Inc()
	return movement, nil
}

// History returns the ledger for one item newest first, each entry
// carrying the balance after that movement. The balance is recomputed
// from the full chain on every read so it can never drift from the
// movements themselves.
func (s *StockService) History(ctx context.Context, name, brand string) ([]models.StockHistoryEntry, error) {
	movements, err := s.Movements.ListByItem(ctx, name, brand)
	if err != nil {
		return nil, &models.PersistenceError{Op: "stock.history", Err: err}
	}

	// Walk oldest to newest accumulating, then emit newest first.
	entries := make([]models.StockHistoryEntry, len(movements))
	balance := 0
	for i := len(movements) - 1; i >= 0; i-- {
		balance += movements[i].Quantity
		entries[i] = models.StockHistoryEntry{
			StockMovement: movements[i],
			BalanceAfter:  balance,
		}
	}
	return entries, nil
}

// Balance returns the current on-hand quantity for one item
func (s *StockService) Balance(ctx context.Context, name, brand string) (int, error) {
	movements, err := s.Movements.ListByItem(ctx, name, brand)
	if err != nil {
		return 0, &models.PersistenceError{Op: "stock.balance", Err: err}
	}
	balance := 0
	for _, m := range movements {
		balance += m.Quantity
	}
	return balance, nil
}

// Summary returns current IN_STORAGE counts grouped by name and brand
func (s *StockService) Summary(ctx context.Context) ([]models.StockCount, error) {
	counts, err := s.Assets.CountInStorage(ctx)
	if err != nil {
		return nil, &models.PersistenceError{Op: "stock.summary", Err: err}
	}
	return counts, nil
}
