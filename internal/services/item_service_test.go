package services

import (
	"context"
	"fmt"
	"testing"

	"inventorymanager/internal/common"
	"inventorymanager/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ItemServiceTestSuite struct {
	suite.Suite
	itemRepo *MockItemRepository
	cache    *recordingInvalidator
	service  ItemService
	ctx      context.Context
}

func (s *ItemServiceTestSuite) SetupTest() {
	s.itemRepo = new(MockItemRepository)
	s.cache = &recordingInvalidator{}
	s.service = NewItemService(s.itemRepo, s.cache)
	s.ctx = context.Background()
}

func (s *ItemServiceTestSuite) TearDownTest() {
	s.itemRepo.AssertExpectations(s.T())
}

func TestItemServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ItemServiceTestSuite))
}

func (s *ItemServiceTestSuite) TestCreateInvalidatesCollection() {
	s.itemRepo.On("Create", s.ctx, mock.MatchedBy(func(i *models.Item) bool {
		return i.Name == "Laptop-2" && *i.Category == "electronics"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Item).ID = 4
	}).Return(nil).Once()

	item, err := s.service.Create(s.ctx, models.ItemDocument{Name: strPtr("Laptop-2"), Category: strPtr("electronics")})

	s.Require().NoError(err)
	s.Equal(4, item.ID)
	s.Equal([]string{"/api/items/"}, s.cache.keys())
}

func (s *ItemServiceTestSuite) TestCreateConflictSkipsInvalidation() {
	s.itemRepo.On("Create", s.ctx, mock.Anything).
		Return(fmt.Errorf("item: %w", common.ErrConflict)).Once()

	_, err := s.service.Create(s.ctx, models.ItemDocument{Name: strPtr("Laptop-1")})

	s.ErrorIs(err, common.ErrConflict)
	s.Empty(s.cache.calls)
}

func (s *ItemServiceTestSuite) TestUpdateMergesPresentFields() {
	weight := 1.5
	existing := &models.Item{ID: 1, Name: "Laptop-1", Category: strPtr("electronics"), Weight: &weight}
	s.itemRepo.On("GetByName", s.ctx, "Laptop-1").Return(existing, nil).Once()
	s.itemRepo.On("Update", s.ctx, existing).Return(nil).Once()

	item, err := s.service.Update(s.ctx, "Laptop-1", models.ItemDocument{Name: strPtr("Laptop-1"), Category: strPtr("computers")})

	s.Require().NoError(err)
	s.Equal("computers", *item.Category)
	s.Equal(1.5, *item.Weight)
	s.ElementsMatch([]string{"/api/items/", "/api/items/Laptop-1/"}, s.cache.keys())
	s.Empty(s.cache.prefixes())
}

func (s *ItemServiceTestSuite) TestRenamePurgesDependentCollections() {
	existing := &models.Item{ID: 1, Name: "Laptop-1"}
	s.itemRepo.On("GetByName", s.ctx, "Laptop-1").Return(existing, nil).Once()
	s.itemRepo.On("Update", s.ctx, existing).Return(nil).Once()

	_, err := s.service.Update(s.ctx, "Laptop-1", models.ItemDocument{Name: strPtr("Laptop-9")})

	s.Require().NoError(err)
	s.Contains(s.cache.keys(), "/api/items/Laptop-1/")
	s.Contains(s.cache.keys(), "/api/items/Laptop-9/")
	s.ElementsMatch([]string{"/api/stocks/", "/api/catalogue/"}, s.cache.prefixes())
}

func (s *ItemServiceTestSuite) TestUpdateMissingItem() {
	s.itemRepo.On("GetByName", s.ctx, "ghost").
		Return(nil, fmt.Errorf("item %q: %w", "ghost", common.ErrNotFound)).Once()

	_, err := s.service.Update(s.ctx, "ghost", models.ItemDocument{Name: strPtr("ghost")})

	s.ErrorIs(err, common.ErrNotFound)
	s.Empty(s.cache.calls)
}

func (s *ItemServiceTestSuite) TestDeleteBlockedByStock() {
	s.itemRepo.On("GetByName", s.ctx, "Laptop-1").Return(&models.Item{ID: 1, Name: "Laptop-1"}, nil).Once()
	s.itemRepo.On("Delete", s.ctx, 1).
		Return(fmt.Errorf("item 1 is referenced by stock: %w", common.ErrReferenced)).Once()

	err := s.service.Delete(s.ctx, "Laptop-1")

	s.ErrorIs(err, common.ErrReferenced)
	s.Empty(s.cache.calls)
}

func (s *ItemServiceTestSuite) TestDeleteInvalidatesCascade() {
	s.itemRepo.On("GetByName", s.ctx, "Laptop-3").Return(&models.Item{ID: 3, Name: "Laptop-3"}, nil).Once()
	s.itemRepo.On("Delete", s.ctx, 3).Return(nil).Once()

	s.Require().NoError(s.service.Delete(s.ctx, "Laptop-3"))

	s.Contains(s.cache.keys(), "/api/items/Laptop-3/")
	s.Contains(s.cache.keys(), "/api/stocks/item/Laptop-3/")
	s.Equal([]string{"/api/catalogue/"}, s.cache.prefixes())
}
