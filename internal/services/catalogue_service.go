package services

import (
	"context"
	"fmt"

	"inventorymanager/internal/caching"
	"inventorymanager/internal/common"
	"inventorymanager/internal/models"
	"inventorymanager/internal/repositories"
)

type CatalogueService interface {
	List(ctx context.Context) ([]*models.CatalogueEntry, error)
	ListByItem(ctx context.Context, itemName string) ([]*models.CatalogueEntry, error)
	ListBySupplier(ctx context.Context, supplier string) ([]*models.CatalogueEntry, error)
	Get(ctx context.Context, supplier, itemName string) (*models.CatalogueEntry, error)
	Create(ctx context.Context, doc models.CatalogueDocument) (*models.CatalogueEntry, error)
	Update(ctx context.Context, supplier, itemName string, doc models.CatalogueDocument) (*models.CatalogueEntry, error)
	Delete(ctx context.Context, supplier, itemName string) error
}

type catalogueService struct {
	catalogueRepo repositories.CatalogueRepository
	itemRepo      repositories.ItemRepository
	cache         caching.Invalidator
}

func NewCatalogueService(catalogueRepo repositories.CatalogueRepository, itemRepo repositories.ItemRepository, cache caching.Invalidator) CatalogueService {
	return &catalogueService{
		catalogueRepo: catalogueRepo,
		itemRepo:      itemRepo,
		cache:         cache,
	}
}

func (s *catalogueService) List(ctx context.Context) ([]*models.CatalogueEntry, error) {
	return s.catalogueRepo.List(ctx)
}

func (s *catalogueService) ListByItem(ctx context.Context, itemName string) ([]*models.CatalogueEntry, error) {
	item, err := s.itemRepo.GetByName(ctx, itemName)
	if err != nil {
		return nil, err
	}
	return s.catalogueRepo.ListByItem(ctx, item.ID)
}

// ListBySupplier fails with ErrNotFound when the supplier has no entries:
// suppliers exist only through their catalogue rows.
func (s *catalogueService) ListBySupplier(ctx context.Context, supplier string) ([]*models.CatalogueEntry, error) {
	entries, err := s.catalogueRepo.ListBySupplier(ctx, supplier)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("supplier %q: %w", supplier, common.ErrNotFound)
	}
	return entries, nil
}

func (s *catalogueService) Get(ctx context.Context, supplier, itemName string) (*models.CatalogueEntry, error) {
	item, err := s.itemRepo.GetByName(ctx, itemName)
	if err != nil {
		return nil, err
	}
	return s.catalogueRepo.Get(ctx, models.CatalogueKey{SupplierName: supplier, ItemID: item.ID})
}

func (s *catalogueService) Create(ctx context.Context, doc models.CatalogueDocument) (*models.CatalogueEntry, error) {
	entry := &models.CatalogueEntry{}
	entry.Deserialize(doc)

	item, err := s.itemRepo.GetByID(ctx, entry.ItemID)
	if err != nil {
		return nil, err
	}
	entry.ItemName = item.Name

	if err := s.catalogueRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, catalogueChanged(catalogueRef{entry.SupplierName, entry.ItemName}))
	return entry, nil
}

func (s *catalogueService) Update(ctx context.Context, supplier, itemName string, doc models.CatalogueDocument) (*models.CatalogueEntry, error) {
	entry, err := s.Get(ctx, supplier, itemName)
	if err != nil {
		return nil, err
	}
	oldKey := entry.Key()
	entry.Deserialize(doc)

	if entry.ItemID != oldKey.ItemID {
		item, err := s.itemRepo.GetByID(ctx, entry.ItemID)
		if err != nil {
			return nil, err
		}
		entry.ItemName = item.Name
	}

	if err := s.catalogueRepo.Update(ctx, oldKey, entry); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, catalogueChanged(
		catalogueRef{supplier, itemName},
		catalogueRef{entry.SupplierName, entry.ItemName},
	))
	return entry, nil
}

func (s *catalogueService) Delete(ctx context.Context, supplier, itemName string) error {
	item, err := s.itemRepo.GetByName(ctx, itemName)
	if err != nil {
		return err
	}
	if err := s.catalogueRepo.Delete(ctx, models.CatalogueKey{SupplierName: supplier, ItemID: item.ID}); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, catalogueChanged(catalogueRef{supplier, itemName}))
	return nil
}
