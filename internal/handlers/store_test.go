package handlers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"inventorymanager/internal/common"
	"inventorymanager/internal/models"
)

// memStore keeps the tables in maps and enforces the same keys and
// foreign keys as the SQL schema, so handler tests can run the whole
// request path without Postgres.
type memStore struct {
	mu         sync.Mutex
	items      map[int]models.Item
	locations  map[int]models.Location
	warehouses map[int]models.Warehouse
	stock      map[models.StockKey]models.Stock
	catalogue  map[models.CatalogueKey]models.CatalogueEntry
	keys       []models.APIKey
	nextID     int
}

func newMemStore() *memStore {
	return &memStore{
		items:      map[int]models.Item{},
		locations:  map[int]models.Location{},
		warehouses: map[int]models.Warehouse{},
		stock:      map[models.StockKey]models.Stock{},
		catalogue:  map[models.CatalogueKey]models.CatalogueEntry{},
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

func missing(what string, args ...any) error {
	return fmt.Errorf(what+": %w", append(args, common.ErrNotFound)...)
}

type memItems struct{ *memStore }

func (m memItems) List(context.Context) ([]*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Item{}
	for _, it := range m.items {
		it := it
		out = append(out, &it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memItems) GetByID(_ context.Context, id int) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, missing("item %d", id)
	}
	return &it, nil
}

func (m memItems) GetByName(_ context.Context, name string) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.Name == name {
			it := it
			return &it, nil
		}
	}
	return nil, missing("item %q", name)
}

func (m memItems) nameTaken(name string, except int) bool {
	for id, it := range m.items {
		if id != except && it.Name == name {
			return true
		}
	}
	return false
}

func (m memItems) Create(_ context.Context, item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nameTaken(item.Name, 0) {
		return fmt.Errorf("item %q: %w", item.Name, common.ErrConflict)
	}
	item.ID = m.id()
	m.items[item.ID] = *item
	return nil
}

func (m memItems) Update(_ context.Context, item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return missing("item %d", item.ID)
	}
	if m.nameTaken(item.Name, item.ID) {
		return fmt.Errorf("item %q: %w", item.Name, common.ErrConflict)
	}
	m.items[item.ID] = *item
	return nil
}

func (m memItems) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return missing("item %d", id)
	}
	for k := range m.stock {
		if k.ItemID == id {
			return fmt.Errorf("item %d is referenced by stock: %w", id, common.ErrReferenced)
		}
	}
	for k := range m.catalogue {
		if k.ItemID == id {
			delete(m.catalogue, k)
		}
	}
	delete(m.items, id)
	return nil
}

type memLocations struct{ *memStore }

func (m memLocations) List(context.Context) ([]*models.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Location{}
	for _, l := range m.locations {
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memLocations) GetByID(_ context.Context, id int) (*models.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locations[id]
	if !ok {
		return nil, missing("location %d", id)
	}
	return &l, nil
}

func (m memLocations) Create(_ context.Context, l *models.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = m.id()
	m.locations[l.ID] = *l
	return nil
}

func (m memLocations) Update(_ context.Context, l *models.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.locations[l.ID]; !ok {
		return missing("location %d", l.ID)
	}
	m.locations[l.ID] = *l
	return nil
}

func (m memLocations) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.locations[id]; !ok {
		return missing("location %d", id)
	}
	for _, w := range m.warehouses {
		if w.LocationID == id {
			return fmt.Errorf("location %d is referenced by warehouses: %w", id, common.ErrReferenced)
		}
	}
	delete(m.locations, id)
	return nil
}

type memWarehouses struct{ *memStore }

func (m memWarehouses) locationTaken(locationID, except int) bool {
	for id, w := range m.warehouses {
		if id != except && w.LocationID == locationID {
			return true
		}
	}
	return false
}

func (m memWarehouses) Create(_ context.Context, w *models.Warehouse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locationTaken(w.LocationID, 0) {
		return fmt.Errorf("warehouse at location %d: %w", w.LocationID, common.ErrConflict)
	}
	w.ID = m.id()
	m.warehouses[w.ID] = *w
	return nil
}

func (m memWarehouses) GetByID(_ context.Context, id int) (*models.Warehouse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.warehouses[id]
	if !ok {
		return nil, missing("warehouse %d", id)
	}
	return &w, nil
}

func (m memWarehouses) Update(_ context.Context, w *models.Warehouse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.warehouses[w.ID]; !ok {
		return missing("warehouse %d", w.ID)
	}
	if m.locationTaken(w.LocationID, w.ID) {
		return fmt.Errorf("warehouse at location %d: %w", w.LocationID, common.ErrConflict)
	}
	m.warehouses[w.ID] = *w
	return nil
}

func (m memWarehouses) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.warehouses[id]; !ok {
		return missing("warehouse %d", id)
	}
	for k := range m.stock {
		if k.WarehouseID == id {
			delete(m.stock, k)
		}
	}
	delete(m.warehouses, id)
	return nil
}

func (m memWarehouses) List(context.Context) ([]*models.Warehouse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Warehouse{}
	for _, w := range m.warehouses {
		w := w
		out = append(out, &w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memStock struct{ *memStore }

func (m memStock) filter(keep func(models.Stock) bool) []*models.Stock {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Stock{}
	for _, s := range m.stock {
		if keep(s) {
			s := s
			s.ItemName = m.items[s.ItemID].Name
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WarehouseID != out[j].WarehouseID {
			return out[i].WarehouseID < out[j].WarehouseID
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out
}

func (m memStock) List(context.Context) ([]*models.Stock, error) {
	return m.filter(func(models.Stock) bool { return true }), nil
}

func (m memStock) ListByItem(_ context.Context, itemID int) ([]*models.Stock, error) {
	return m.filter(func(s models.Stock) bool { return s.ItemID == itemID }), nil
}

func (m memStock) ListByWarehouse(_ context.Context, warehouseID int) ([]*models.Stock, error) {
	return m.filter(func(s models.Stock) bool { return s.WarehouseID == warehouseID }), nil
}

func (m memStock) ListAtOrBelow(_ context.Context, threshold int) ([]*models.Stock, error) {
	return m.filter(func(s models.Stock) bool { return s.Quantity <= threshold }), nil
}

func (m memStock) Get(_ context.Context, key models.StockKey) (*models.Stock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stock[key]
	if !ok {
		return nil, missing("stock of item %d in warehouse %d", key.ItemID, key.WarehouseID)
	}
	s.ItemName = m.items[s.ItemID].Name
	return &s, nil
}

func (m memStock) references(s *models.Stock) error {
	if _, ok := m.items[s.ItemID]; !ok {
		return missing("item %d", s.ItemID)
	}
	if _, ok := m.warehouses[s.WarehouseID]; !ok {
		return missing("warehouse %d", s.WarehouseID)
	}
	return nil
}

func (m memStock) Create(_ context.Context, s *models.Stock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.references(s); err != nil {
		return err
	}
	if _, ok := m.stock[s.Key()]; ok {
		return fmt.Errorf("stock: %w", common.ErrConflict)
	}
	m.stock[s.Key()] = *s
	return nil
}

func (m memStock) Update(_ context.Context, key models.StockKey, s *models.Stock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stock[key]; !ok {
		return missing("stock")
	}
	if err := m.references(s); err != nil {
		return err
	}
	if _, ok := m.stock[s.Key()]; ok && s.Key() != key {
		return fmt.Errorf("stock: %w", common.ErrConflict)
	}
	delete(m.stock, key)
	m.stock[s.Key()] = *s
	return nil
}

func (m memStock) Delete(_ context.Context, key models.StockKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stock[key]; !ok {
		return missing("stock")
	}
	delete(m.stock, key)
	return nil
}

type memCatalogue struct{ *memStore }

func (m memCatalogue) filter(keep func(models.CatalogueEntry) bool) []*models.CatalogueEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.CatalogueEntry{}
	for _, e := range m.catalogue {
		if keep(e) {
			e := e
			e.ItemName = m.items[e.ItemID].Name
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SupplierName != out[j].SupplierName {
			return out[i].SupplierName < out[j].SupplierName
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out
}

func (m memCatalogue) List(context.Context) ([]*models.CatalogueEntry, error) {
	return m.filter(func(models.CatalogueEntry) bool { return true }), nil
}

func (m memCatalogue) ListByItem(_ context.Context, itemID int) ([]*models.CatalogueEntry, error) {
	return m.filter(func(e models.CatalogueEntry) bool { return e.ItemID == itemID }), nil
}

func (m memCatalogue) ListBySupplier(_ context.Context, supplier string) ([]*models.CatalogueEntry, error) {
	return m.filter(func(e models.CatalogueEntry) bool { return e.SupplierName == supplier }), nil
}

func (m memCatalogue) Get(_ context.Context, key models.CatalogueKey) (*models.CatalogueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.catalogue[key]
	if !ok {
		return nil, missing("catalogue entry %q", key.SupplierName)
	}
	e.ItemName = m.items[e.ItemID].Name
	return &e, nil
}

func (m memCatalogue) Create(_ context.Context, e *models.CatalogueEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[e.ItemID]; !ok {
		return missing("item %d", e.ItemID)
	}
	if _, ok := m.catalogue[e.Key()]; ok {
		return fmt.Errorf("catalogue entry: %w", common.ErrConflict)
	}
	m.catalogue[e.Key()] = *e
	return nil
}

func (m memCatalogue) Update(_ context.Context, key models.CatalogueKey, e *models.CatalogueEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.catalogue[key]; !ok {
		return missing("catalogue entry")
	}
	if _, ok := m.catalogue[e.Key()]; ok && e.Key() != key {
		return fmt.Errorf("catalogue entry: %w", common.ErrConflict)
	}
	delete(m.catalogue, key)
	m.catalogue[e.Key()] = *e
	return nil
}

func (m memCatalogue) Delete(_ context.Context, key models.CatalogueKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.catalogue[key]; !ok {
		return missing("catalogue entry")
	}
	delete(m.catalogue, key)
	return nil
}

type memKeys struct{ *memStore }

func (m memKeys) Create(_ context.Context, key *models.APIKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, *key)
	return nil
}

func (m memKeys) HashesForScope(_ context.Context, scope models.KeyScope) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out [][]byte
	for _, k := range m.keys {
		if k.Admin || (!scope.Admin && k.WarehouseID != nil && *k.WarehouseID == scope.WarehouseID) {
			out = append(out, k.KeyHash)
		}
	}
	return out, nil
}
