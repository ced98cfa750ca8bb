package models

type Warehouse struct {
	ID         int     `json:"warehouse_id" db:"warehouse_id"`
	Manager    *string `json:"manager" db:"manager"`
	LocationID int     `json:"location_id" db:"location_id"`
}

type WarehouseDocument struct {
	Manager    *string `json:"manager,omitempty" jsonschema:"minLength=3,maxLength=64"`
	LocationID *int    `json:"location_id,omitempty" jsonschema:"required,minimum=1,maximum=2147483647"`
}

func (w *Warehouse) Serialize() WarehouseDocument {
	return WarehouseDocument{
		Manager:    cloneString(w.Manager),
		LocationID: intPtr(w.LocationID),
	}
}

func (w *Warehouse) Deserialize(doc WarehouseDocument) {
	if doc.Manager != nil {
		w.Manager = cloneString(doc.Manager)
	}
	if doc.LocationID != nil {
		w.LocationID = *doc.LocationID
	}
}
