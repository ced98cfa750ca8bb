package services

import (
	"context"

	"inventorymanager/internal/caching"
	"inventorymanager/internal/models"
	"inventorymanager/internal/repositories"
)

type ItemService interface {
	List(ctx context.Context) ([]*models.Item, error)
	Get(ctx context.Context, name string) (*models.Item, error)
	Create(ctx context.Context, doc models.ItemDocument) (*models.Item, error)
	Update(ctx context.Context, name string, doc models.ItemDocument) (*models.Item, error)
	Delete(ctx context.Context, name string) error
}

type itemService struct {
	itemRepo repositories.ItemRepository
	cache    caching.Invalidator
}

func NewItemService(itemRepo repositories.ItemRepository, cache caching.Invalidator) ItemService {
	return &itemService{
		itemRepo: itemRepo,
		cache:    cache,
	}
}

func (s *itemService) List(ctx context.Context) ([]*models.Item, error) {
	return s.itemRepo.List(ctx)
}

func (s *itemService) Get(ctx context.Context, name string) (*models.Item, error) {
	return s.itemRepo.GetByName(ctx, name)
}

func (s *itemService) Create(ctx context.Context, doc models.ItemDocument) (*models.Item, error) {
	item := &models.Item{}
	item.Deserialize(doc)
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, itemCreated())
	return item, nil
}

func (s *itemService) Update(ctx context.Context, name string, doc models.ItemDocument) (*models.Item, error) {
	item, err := s.itemRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	item.Deserialize(doc)
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, itemUpdated(name, item.Name))
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, name string) error {
	item, err := s.itemRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, itemDeleted(name))
	return nil
}
