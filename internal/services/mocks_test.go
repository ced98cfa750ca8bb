package services

import (
	"context"

	"inventorymanager/internal/caching"
	"inventorymanager/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByName(ctx context.Context, name string) (*models.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) List(ctx context.Context) ([]*models.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Location), args.Error(1)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id int) (*models.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) Create(ctx context.Context, location *models.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Update(ctx context.Context, location *models.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) Create(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) GetByID(ctx context.Context, id int) (*models.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWarehouseRepository) List(ctx context.Context) ([]*models.Warehouse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Warehouse), args.Error(1)
}

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) List(ctx context.Context) ([]*models.Stock, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) ListByItem(ctx context.Context, itemID int) ([]*models.Stock, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) ListByWarehouse(ctx context.Context, warehouseID int) ([]*models.Stock, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) ListAtOrBelow(ctx context.Context, threshold int) ([]*models.Stock, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) Get(ctx context.Context, key models.StockKey) (*models.Stock, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockStockRepository) Create(ctx context.Context, stock *models.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) Update(ctx context.Context, key models.StockKey, stock *models.Stock) error {
	args := m.Called(ctx, key, stock)
	return args.Error(0)
}

func (m *MockStockRepository) Delete(ctx context.Context, key models.StockKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockCatalogueRepository struct {
	mock.Mock
}

func (m *MockCatalogueRepository) List(ctx context.Context) ([]*models.CatalogueEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.CatalogueEntry), args.Error(1)
}

func (m *MockCatalogueRepository) ListByItem(ctx context.Context, itemID int) ([]*models.CatalogueEntry, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]*models.CatalogueEntry), args.Error(1)
}

func (m *MockCatalogueRepository) ListBySupplier(ctx context.Context, supplier string) ([]*models.CatalogueEntry, error) {
	args := m.Called(ctx, supplier)
	return args.Get(0).([]*models.CatalogueEntry), args.Error(1)
}

func (m *MockCatalogueRepository) Get(ctx context.Context, key models.CatalogueKey) (*models.CatalogueEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CatalogueEntry), args.Error(1)
}

func (m *MockCatalogueRepository) Create(ctx context.Context, entry *models.CatalogueEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCatalogueRepository) Update(ctx context.Context, key models.CatalogueKey, entry *models.CatalogueEntry) error {
	args := m.Called(ctx, key, entry)
	return args.Error(0)
}

func (m *MockCatalogueRepository) Delete(ctx context.Context, key models.CatalogueKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockAPIKeyRepository struct {
	mock.Mock
}

func (m *MockAPIKeyRepository) Create(ctx context.Context, key *models.APIKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockAPIKeyRepository) HashesForScope(ctx context.Context, scope models.KeyScope) ([][]byte, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]byte), args.Error(1)
}

// recordingInvalidator collects every invalidation it is handed.
type recordingInvalidator struct {
	calls []caching.Invalidation
}

func (r *recordingInvalidator) Invalidate(_ context.Context, inv caching.Invalidation) {
	r.calls = append(r.calls, inv)
}

func (r *recordingInvalidator) keys() []string {
	var out []string
	for _, c := range r.calls {
		out = append(out, c.Keys...)
	}
	return out
}

func (r *recordingInvalidator) prefixes() []string {
	var out []string
	for _, c := range r.calls {
		out = append(out, c.Prefixes...)
	}
	return out
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
