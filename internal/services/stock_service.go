package services

import (
	"context"

	"inventorymanager/internal/caching"
	"inventorymanager/internal/models"
	"inventorymanager/internal/repositories"
)

type StockService interface {
	List(ctx context.Context) ([]*models.Stock, error)
	ListByItem(ctx context.Context, itemName string) ([]*models.Stock, error)
	ListByWarehouse(ctx context.Context, warehouseID int) ([]*models.Stock, error)
	LowStock(ctx context.Context, threshold int) ([]*models.Stock, error)
	Get(ctx context.Context, warehouseID int, itemName string) (*models.Stock, error)
	Create(ctx context.Context, doc models.StockDocument) (*models.Stock, error)
	Update(ctx context.Context, warehouseID int, itemName string, doc models.StockDocument) (*models.Stock, error)
	Delete(ctx context.Context, warehouseID int, itemName string) error
}

type stockService struct {
	stockRepo     repositories.StockRepository
	itemRepo      repositories.ItemRepository
	warehouseRepo repositories.WarehouseRepository
	cache         caching.Invalidator
}

func NewStockService(stockRepo repositories.StockRepository, itemRepo repositories.ItemRepository, warehouseRepo repositories.WarehouseRepository, cache caching.Invalidator) StockService {
	return &stockService{
		stockRepo:     stockRepo,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		cache:         cache,
	}
}

func (s *stockService) List(ctx context.Context) ([]*models.Stock, error) {
	return s.stockRepo.List(ctx)
}

func (s *stockService) ListByItem(ctx context.Context, itemName string) ([]*models.Stock, error) {
	item, err := s.itemRepo.GetByName(ctx, itemName)
	if err != nil {
		return nil, err
	}
	return s.stockRepo.ListByItem(ctx, item.ID)
}

func (s *stockService) ListByWarehouse(ctx context.Context, warehouseID int) ([]*models.Stock, error) {
	if _, err := s.warehouseRepo.GetByID(ctx, warehouseID); err != nil {
		return nil, err
	}
	return s.stockRepo.ListByWarehouse(ctx, warehouseID)
}

func (s *stockService) LowStock(ctx context.Context, threshold int) ([]*models.Stock, error) {
	return s.stockRepo.ListAtOrBelow(ctx, threshold)
}

func (s *stockService) Get(ctx context.Context, warehouseID int, itemName string) (*models.Stock, error) {
	item, err := s.itemRepo.GetByName(ctx, itemName)
	if err != nil {
		return nil, err
	}
	return s.stockRepo.Get(ctx, models.StockKey{WarehouseID: warehouseID, ItemID: item.ID})
}

func (s *stockService) Create(ctx context.Context, doc models.StockDocument) (*models.Stock, error) {
	stock := &models.Stock{}
	stock.Deserialize(doc)

	item, err := s.itemRepo.GetByID(ctx, stock.ItemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.warehouseRepo.GetByID(ctx, stock.WarehouseID); err != nil {
		return nil, err
	}
	stock.ItemName = item.Name

	if err := s.stockRepo.Create(ctx, stock); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, stockChanged(stockRef{stock.WarehouseID, stock.ItemName}))
	return stock, nil
}

// Update merges doc into the row. When doc names another item or warehouse
// the row moves to that key.
func (s *stockService) Update(ctx context.Context, warehouseID int, itemName string, doc models.StockDocument) (*models.Stock, error) {
	stock, err := s.Get(ctx, warehouseID, itemName)
	if err != nil {
		return nil, err
	}
	oldKey := stock.Key()
	stock.Deserialize(doc)

	if stock.ItemID != oldKey.ItemID {
		item, err := s.itemRepo.GetByID(ctx, stock.ItemID)
		if err != nil {
			return nil, err
		}
		stock.ItemName = item.Name
	}
	if stock.WarehouseID != oldKey.WarehouseID {
		if _, err := s.warehouseRepo.GetByID(ctx, stock.WarehouseID); err != nil {
			return nil, err
		}
	}

	if err := s.stockRepo.Update(ctx, oldKey, stock); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, stockChanged(
		stockRef{warehouseID, itemName},
		stockRef{stock.WarehouseID, stock.ItemName},
	))
	return stock, nil
}

func (s *stockService) Delete(ctx context.Context, warehouseID int, itemName string) error {
	item, err := s.itemRepo.GetByName(ctx, itemName)
	if err != nil {
		return err
	}
	if err := s.stockRepo.Delete(ctx, models.StockKey{WarehouseID: warehouseID, ItemID: item.ID}); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, stockChanged(stockRef{warehouseID, itemName}))
	return nil
}
