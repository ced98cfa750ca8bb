package services

import (
	"context"

	"inventorymanager/internal/caching"
	"inventorymanager/internal/models"
	"inventorymanager/internal/repositories"
)

// WarehouseDetail is a warehouse together with the location it occupies.
type WarehouseDetail struct {
	Warehouse *models.Warehouse
	Location  *models.Location
}

type WarehouseService interface {
	List(ctx context.Context) ([]*models.Warehouse, error)
	Get(ctx context.Context, id int) (*WarehouseDetail, error)
	Create(ctx context.Context, doc models.WarehouseDocument) (*models.Warehouse, error)
	Update(ctx context.Context, id int, doc models.WarehouseDocument) (*models.Warehouse, error)
	Delete(ctx context.Context, id int) error
}

type warehouseService struct {
	warehouseRepo repositories.WarehouseRepository
	locationRepo  repositories.LocationRepository
	cache         caching.Invalidator
}

func NewWarehouseService(warehouseRepo repositories.WarehouseRepository, locationRepo repositories.LocationRepository, cache caching.Invalidator) WarehouseService {
	return &warehouseService{
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
		cache:         cache,
	}
}

func (s *warehouseService) List(ctx context.Context) ([]*models.Warehouse, error) {
	return s.warehouseRepo.List(ctx)
}

func (s *warehouseService) Get(ctx context.Context, id int) (*WarehouseDetail, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	location, err := s.locationRepo.GetByID(ctx, warehouse.LocationID)
	if err != nil {
		return nil, err
	}
	return &WarehouseDetail{Warehouse: warehouse, Location: location}, nil
}

func (s *warehouseService) Create(ctx context.Context, doc models.WarehouseDocument) (*models.Warehouse, error) {
	warehouse := &models.Warehouse{}
	warehouse.Deserialize(doc)

	if _, err := s.locationRepo.GetByID(ctx, warehouse.LocationID); err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, warehouseCreated())
	return warehouse, nil
}

func (s *warehouseService) Update(ctx context.Context, id int, doc models.WarehouseDocument) (*models.Warehouse, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousLocation := warehouse.LocationID
	warehouse.Deserialize(doc)

	if warehouse.LocationID != previousLocation {
		if _, err := s.locationRepo.GetByID(ctx, warehouse.LocationID); err != nil {
			return nil, err
		}
	}
	if err := s.warehouseRepo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, warehouseUpdated(id))
	return warehouse, nil
}

func (s *warehouseService) Delete(ctx context.Context, id int) error {
	if err := s.warehouseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, warehouseDeleted(id))
	return nil
}
