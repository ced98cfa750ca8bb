package services

import (
	"context"

	"inventorymanager/internal/caching"
	"inventorymanager/internal/models"
	"inventorymanager/internal/repositories"
)

type LocationService interface {
	List(ctx context.Context) ([]*models.Location, error)
	Get(ctx context.Context, id int) (*models.Location, error)
	Create(ctx context.Context, doc models.LocationDocument) (*models.Location, error)
	Update(ctx context.Context, id int, doc models.LocationDocument) (*models.Location, error)
	Delete(ctx context.Context, id int) error
}

type locationService struct {
	locationRepo repositories.LocationRepository
	cache        caching.Invalidator
}

func NewLocationService(locationRepo repositories.LocationRepository, cache caching.Invalidator) LocationService {
	return &locationService{
		locationRepo: locationRepo,
		cache:        cache,
	}
}

func (s *locationService) List(ctx context.Context) ([]*models.Location, error) {
	return s.locationRepo.List(ctx)
}

func (s *locationService) Get(ctx context.Context, id int) (*models.Location, error) {
	return s.locationRepo.GetByID(ctx, id)
}

func (s *locationService) Create(ctx context.Context, doc models.LocationDocument) (*models.Location, error) {
	location := &models.Location{}
	location.Deserialize(doc)
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, locationCreated())
	return location, nil
}

func (s *locationService) Update(ctx context.Context, id int, doc models.LocationDocument) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	location.Deserialize(doc)
	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, locationUpdated(id))
	return location, nil
}

func (s *locationService) Delete(ctx context.Context, id int) error {
	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, locationDeleted(id))
	return nil
}
