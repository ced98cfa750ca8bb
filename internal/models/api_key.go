package models

import "fmt"

// APIKey is a stored credential. Only the hash of the token is persisted.
type APIKey struct {
	KeyHash     []byte `db:"key_hash"`
	Admin       bool   `db:"admin"`
	WarehouseID *int   `db:"warehouse_id"`
}

// KeyScope is what an operation requires of the presented key. Admin keys
// satisfy every scope; a warehouse key satisfies only its own warehouse.
type KeyScope struct {
	Admin       bool
	WarehouseID int
}

func AdminScope() KeyScope {
	return KeyScope{Admin: true}
}

func WarehouseScope(warehouseID int) KeyScope {
	return KeyScope{WarehouseID: warehouseID}
}

func (s KeyScope) String() string {
	if s.Admin {
		return "admin"
	}
	return fmt.Sprintf("warehouse:%d", s.WarehouseID)
}
