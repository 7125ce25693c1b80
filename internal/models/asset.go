package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus is the physical/administrative state of a registered asset
type AssetStatus string

const (
	AssetInStorage      AssetStatus = "IN_STORAGE"
	AssetInUse          AssetStatus = "IN_USE"
	AssetDamaged        AssetStatus = "DAMAGED"
	AssetUnderRepair    AssetStatus = "UNDER_REPAIR"
	AssetOutForRepair   AssetStatus = "OUT_FOR_REPAIR"
	AssetDecommissioned AssetStatus = "DECOMMISSIONED"
	AssetAwaitingReturn AssetStatus = "AWAITING_RETURN"
)

// Asset is an individually tracked inventory item. The tag is assigned at
// registration time and never reused.
type Asset struct {
	ID            int             `json:"id"`
	Tag           string          `json:"tag"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	SerialNumber  string          `json:"serial_number,omitempty"`
	Status        AssetStatus     `json:"status"`
	Location      string          `json:"location,omitempty"`
	AssignedTo    string          `json:"assigned_to,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	RequestID     *string         `json:"request_id,omitempty"`
	RegisteredBy  string          `json:"registered_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type RegisterAssetInput struct {
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	SerialNumber  string          `json:"serial_number"`
	Location      string          `json:"location"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	RequestID     *string         `json:"request_id,omitempty"`
	ItemID        *int            `json:"item_id,omitempty"`
	Count         int             `json:"count"`
}

// StockCount is one line of the stock overview: assets currently
// IN_STORAGE grouped by name|brand
type StockCount struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Count int    `json:"count"`
}
