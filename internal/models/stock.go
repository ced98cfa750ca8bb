package models

import "github.com/shopspring/decimal"

// Stock is the quantity of one item held in one warehouse.
type Stock struct {
	ItemID      int              `json:"item_id" db:"item_id"`
	WarehouseID int              `json:"warehouse_id" db:"warehouse_id"`
	Quantity    int              `json:"quantity" db:"quantity"`
	ShelfPrice  *decimal.Decimal `json:"shelf_price" db:"shelf_price"`

	// ItemName is joined in by the repository so URLs can be built
	// without a second lookup.
	ItemName string `json:"-" db:"name"`
}

// StockKey identifies a stock row.
type StockKey struct {
	WarehouseID int
	ItemID      int
}

type StockDocument struct {
	ItemID      *int             `json:"item_id,omitempty" jsonschema:"required,minimum=1,maximum=2147483647"`
	WarehouseID *int             `json:"warehouse_id,omitempty" jsonschema:"required,minimum=1,maximum=2147483647"`
	Quantity    *int             `json:"quantity,omitempty" jsonschema:"required,minimum=0,maximum=2147483647"`
	ShelfPrice  *decimal.Decimal `json:"shelf_price,omitempty" jsonschema:"minimum=0,maximum=9999999999.99,multipleOf=0.01"`
}

func (s *Stock) Key() StockKey {
	return StockKey{WarehouseID: s.WarehouseID, ItemID: s.ItemID}
}

func (s *Stock) Serialize() StockDocument {
	return StockDocument{
		ItemID:      intPtr(s.ItemID),
		WarehouseID: intPtr(s.WarehouseID),
		Quantity:    intPtr(s.Quantity),
		ShelfPrice:  cloneDecimal(s.ShelfPrice),
	}
}

func (s *Stock) Deserialize(doc StockDocument) {
	if doc.ItemID != nil {
		s.ItemID = *doc.ItemID
	}
	if doc.WarehouseID != nil {
		s.WarehouseID = *doc.WarehouseID
	}
	if doc.Quantity != nil {
		s.Quantity = *doc.Quantity
	}
	if doc.ShelfPrice != nil {
		s.ShelfPrice = cloneDecimal(doc.ShelfPrice)
	}
}
