package model

import (
	"time"
)

// DrugFields are the mutable attributes of a drug. The drug name is the
// natural key and lives on Drug itself.
type DrugFields struct {
	SKU           string  `db:"sku" json:"sku"`
	SellPrice     float64 `db:"sell_price" json:"sell_price"`
	PurchasePrice float64 `db:"purchase_price" json:"purchase_price"`
	Stock         int     `db:"stock" json:"stock"`
}

type Drug struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	DrugFields
	Lifecycle
}

func (d *Drug) Apply(fields DrugFields) { d.DrugFields = fields }

// UpdateDrugPatch carries a partial update; nil fields are left
// untouched.
type UpdateDrugPatch struct {
	SKU           *string
	SellPrice     *float64
	PurchasePrice *float64
	Stock         *int
}

// DrugImport is one item of a batch import payload.
type DrugImport struct {
	SKU           string  `json:"drug_sku"`
	Name          string  `json:"drug_name"`
	SellPrice     float64 `json:"drug_sell_price"`
	PurchasePrice float64 `json:"drug_purchase_price"`
	Stock         int     `json:"drug_stock"`
}

// ImportResult tallies a batch import. A failing item is skipped and
// counted; it never aborts the batch.
type ImportResult struct {
	SuccessCount int `json:"success_count"`
	FailedCount  int `json:"failed_count"`
}

// Purchase is one restock order for a drug. Purchases are history and
// have no soft-delete lifecycle.
type Purchase struct {
	ID        int64      `db:"id" json:"id"`
	DrugID    int64      `db:"drug_id" json:"drug_id"`
	Quantity  int        `db:"quantity" json:"quantity"`
	Subcost   int64      `db:"subcost" json:"subcost"`
	OrderDate time.Time  `db:"order_date" json:"order_date"`
	Paid      bool       `db:"paid" json:"paid"`
	PaidDate  *time.Time `db:"paid_date" json:"paid_date,omitempty"`
	Note      *string    `db:"note" json:"note,omitempty"`
}

// PurchaseWithDrug is the purchase list read-shape joined with the drug
// name.
type PurchaseWithDrug struct {
	Purchase
	DrugName string `db:"drug_name" json:"drug_name"`
}
