package services

import (
	"inventorymanager/internal/caching"
	"inventorymanager/internal/hypermedia"
)

// The functions below decide which cached representations a mutation makes
// stale. Exact keys cover the row and every list it appears in; prefixes
// cover cascades and renames whose reach is not known without a query.

func itemCreated() caching.Invalidation {
	return caching.Invalidation{Keys: []string{hypermedia.ItemsURL()}}
}

func itemUpdated(oldName, newName string) caching.Invalidation {
	inv := caching.Invalidation{Keys: dedupe([]string{
		hypermedia.ItemsURL(),
		hypermedia.ItemURL(oldName),
		hypermedia.ItemURL(newName),
	})}
	if oldName != newName {
		// Stock and catalogue links embed the item name.
		inv.Prefixes = []string{hypermedia.StocksURL(), hypermedia.CatalogueURL()}
	}
	return inv
}

func itemDeleted(name string) caching.Invalidation {
	return caching.Invalidation{
		Keys: []string{
			hypermedia.ItemsURL(),
			hypermedia.ItemURL(name),
			hypermedia.StockForItemURL(name),
		},
		// Catalogue rows cascade with the item.
		Prefixes: []string{hypermedia.CatalogueURL()},
	}
}

func locationCreated() caching.Invalidation {
	return caching.Invalidation{Keys: []string{hypermedia.LocationsURL()}}
}

func locationUpdated(id int) caching.Invalidation {
	return caching.Invalidation{
		Keys: []string{hypermedia.LocationsURL(), hypermedia.LocationURL(id)},
		// A warehouse embeds its location.
		Prefixes: []string{hypermedia.WarehousesURL()},
	}
}

func locationDeleted(id int) caching.Invalidation {
	return caching.Invalidation{Keys: []string{hypermedia.LocationsURL(), hypermedia.LocationURL(id)}}
}

func warehouseCreated() caching.Invalidation {
	return caching.Invalidation{Keys: []string{hypermedia.WarehousesURL()}}
}

func warehouseUpdated(id int) caching.Invalidation {
	return caching.Invalidation{Keys: []string{hypermedia.WarehousesURL(), hypermedia.WarehouseURL(id)}}
}

func warehouseDeleted(id int) caching.Invalidation {
	return caching.Invalidation{
		Keys: []string{hypermedia.WarehousesURL(), hypermedia.WarehouseURL(id)},
		// Stock rows cascade with the warehouse.
		Prefixes: []string{hypermedia.StocksURL()},
	}
}

type stockRef struct {
	warehouseID int
	itemName    string
}

func stockChanged(refs ...stockRef) caching.Invalidation {
	keys := []string{hypermedia.StocksURL()}
	for _, r := range refs {
		keys = append(keys,
			hypermedia.StockURL(r.warehouseID, r.itemName),
			hypermedia.StockForItemURL(r.itemName),
			hypermedia.StockForWarehouseURL(r.warehouseID),
		)
	}
	return caching.Invalidation{Keys: dedupe(keys)}
}

type catalogueRef struct {
	supplier string
	itemName string
}

func catalogueChanged(refs ...catalogueRef) caching.Invalidation {
	keys := []string{hypermedia.CatalogueURL()}
	for _, r := range refs {
		keys = append(keys,
			hypermedia.CatalogueEntryURL(r.supplier, r.itemName),
			hypermedia.CatalogueForItemURL(r.itemName),
			hypermedia.CatalogueForSupplierURL(r.supplier),
		)
	}
	return caching.Invalidation{Keys: dedupe(keys)}
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
