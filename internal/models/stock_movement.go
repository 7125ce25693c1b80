package models

import "time"

// MovementType enumerates the stock ledger movement kinds. The sign of
// Quantity follows the type's convention (IN_* positive, OUT_* negative).
type MovementType string

const (
	MovementInPurchase      MovementType = "IN_PURCHASE"
	MovementOutInstallation MovementType = "OUT_INSTALLATION"
	MovementOutBroken       MovementType = "OUT_BROKEN"
	MovementInReturn        MovementType = "IN_RETURN"
	MovementOutAdjustment   MovementType = "OUT_ADJUSTMENT"
)

// Inbound reports whether the movement adds stock
func (t MovementType) Inbound() bool {
	return t == MovementInPurchase || t == MovementInReturn
}

// StockMovement is one immutable entry in the stock ledger, keyed by
// asset name + brand. Never updated or deleted after insert.
type StockMovement struct {
	ID          int          `json:"id"`
	AssetName   string       `json:"asset_name"`
	Brand       string       `json:"brand"`
	Date        time.Time    `json:"date"`
	Type        MovementType `json:"type"`
	Quantity    int          `json:"quantity"`
	ReferenceID string       `json:"reference_id,omitempty"`
	Actor       string       `json:"actor"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// StockHistoryEntry is a ledger row plus the balance after it, computed
// on read from the movements that preceded it
type StockHistoryEntry struct {
	StockMovement
	BalanceAfter int `json:"balance_after"`
}
