package models

import "github.com/shopspring/decimal"

// CatalogueEntry is a supplier's offer for an item.
type CatalogueEntry struct {
	ItemID       int              `json:"item_id" db:"item_id"`
	SupplierName string           `json:"supplier_name" db:"supplier_name"`
	MinOrder     int              `json:"min_order" db:"min_order"`
	OrderPrice   *decimal.Decimal `json:"order_price" db:"order_price"`

	ItemName string `json:"-" db:"name"`
}

// CatalogueKey identifies a catalogue row.
type CatalogueKey struct {
	SupplierName string
	ItemID       int
}

type CatalogueDocument struct {
	ItemID       *int             `json:"item_id,omitempty" jsonschema:"required,minimum=1,maximum=2147483647"`
	SupplierName *string          `json:"supplier_name,omitempty" jsonschema:"required,minLength=1,maxLength=64"`
	MinOrder     *int             `json:"min_order,omitempty" jsonschema:"required,minimum=1,maximum=2147483647"`
	OrderPrice   *decimal.Decimal `json:"order_price,omitempty" jsonschema:"minimum=0,maximum=9999999999.99,multipleOf=0.01"`
}

func (c *CatalogueEntry) Key() CatalogueKey {
	return CatalogueKey{SupplierName: c.SupplierName, ItemID: c.ItemID}
}

func (c *CatalogueEntry) Serialize() CatalogueDocument {
	return CatalogueDocument{
		ItemID:       intPtr(c.ItemID),
		SupplierName: stringPtr(c.SupplierName),
		MinOrder:     intPtr(c.MinOrder),
		OrderPrice:   cloneDecimal(c.OrderPrice),
	}
}

func (c *CatalogueEntry) Deserialize(doc CatalogueDocument) {
	if doc.ItemID != nil {
		c.ItemID = *doc.ItemID
	}
	if doc.SupplierName != nil {
		c.SupplierName = *doc.SupplierName
	}
	if doc.MinOrder != nil {
		c.MinOrder = *doc.MinOrder
	}
	if doc.OrderPrice != nil {
		c.OrderPrice = cloneDecimal(doc.OrderPrice)
	}
}
