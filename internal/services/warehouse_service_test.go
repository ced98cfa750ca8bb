package services

import (
	"context"
	"fmt"
	"testing"

	"inventorymanager/internal/common"
	"inventorymanager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWarehouseCreateNeedsLocation(t *testing.T) {
	ctx := context.Background()
	warehouseRepo := new(MockWarehouseRepository)
	locationRepo := new(MockLocationRepository)
	cache := &recordingInvalidator{}
	locationRepo.On("GetByID", ctx, 5).Return(nil, notFound("location 5")).Once()

	_, err := NewWarehouseService(warehouseRepo, locationRepo, cache).
		Create(ctx, models.WarehouseDocument{Manager: strPtr("John Doe"), LocationID: intPtr(5)})

	assert.ErrorIs(t, err, common.ErrNotFound)
	warehouseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, cache.calls)
}

func TestWarehouseCreateLocationTaken(t *testing.T) {
	ctx := context.Background()
	warehouseRepo := new(MockWarehouseRepository)
	locationRepo := new(MockLocationRepository)
	cache := &recordingInvalidator{}
	locationRepo.On("GetByID", ctx, 1).Return(&models.Location{ID: 1}, nil).Once()
	warehouseRepo.On("Create", ctx, mock.Anything).
		Return(fmt.Errorf("warehouse at location 1: %w", common.ErrConflict)).Once()

	_, err := NewWarehouseService(warehouseRepo, locationRepo, cache).
		Create(ctx, models.WarehouseDocument{Manager: strPtr("Jane Doe"), LocationID: intPtr(1)})

	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Empty(t, cache.calls)
}

func TestWarehouseGetEmbedsLocation(t *testing.T) {
	ctx := context.Background()
	warehouseRepo := new(MockWarehouseRepository)
	locationRepo := new(MockLocationRepository)
	warehouseRepo.On("GetByID", ctx, 1).Return(&models.Warehouse{ID: 1, Manager: strPtr("John Doe"), LocationID: 2}, nil).Once()
	locationRepo.On("GetByID", ctx, 2).Return(&models.Location{ID: 2, City: "Turku"}, nil).Once()

	detail, err := NewWarehouseService(warehouseRepo, locationRepo, &recordingInvalidator{}).Get(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, "Turku", detail.Location.City)
	assert.Equal(t, 1, detail.Warehouse.ID)
}

func TestWarehouseDeleteCascadesStock(t *testing.T) {
	ctx := context.Background()
	warehouseRepo := new(MockWarehouseRepository)
	cache := &recordingInvalidator{}
	warehouseRepo.On("Delete", ctx, 2).Return(nil).Once()

	require.NoError(t, NewWarehouseService(warehouseRepo, new(MockLocationRepository), cache).Delete(ctx, 2))

	assert.ElementsMatch(t, []string{"/api/warehouses/", "/api/warehouses/2/"}, cache.keys())
	assert.Equal(t, []string{"/api/stocks/"}, cache.prefixes())
}

func TestLocationUpdatePurgesWarehouses(t *testing.T) {
	ctx := context.Background()
	locationRepo := new(MockLocationRepository)
	cache := &recordingInvalidator{}
	existing := &models.Location{ID: 1, Country: "Finland", PostalCode: "00100", City: "Helsinki", Street: "Mannerheimintie 1"}
	locationRepo.On("GetByID", ctx, 1).Return(existing, nil).Once()
	locationRepo.On("Update", ctx, existing).Return(nil).Once()

	got, err := NewLocationService(locationRepo, cache).Update(ctx, 1, models.LocationDocument{
		Country: strPtr("Finland"), PostalCode: strPtr("00100"), City: strPtr("Helsinki"), Street: strPtr("Aleksanterinkatu 5"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Aleksanterinkatu 5", got.Street)
	assert.Equal(t, []string{"/api/warehouses/"}, cache.prefixes())
}
