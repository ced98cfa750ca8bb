//go:build integration

package repositories

import (
	"context"
	"testing"

	"inventorymanager/internal/common"
	"inventorymanager/internal/models"
	"inventorymanager/pkg/database"
	"inventorymanager/testhelpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PostgresTestSuite struct {
	suite.Suite
	db  *testhelpers.TestDB
	ctx context.Context

	items      ItemRepository
	locations  LocationRepository
	warehouses WarehouseRepository
	stock      StockRepository
	catalogue  CatalogueRepository
	keys       APIKeyRepository
}

func (suite *PostgresTestSuite) SetupSuite() {
	suite.db = testhelpers.SetupTestDB(suite.T())
	suite.ctx = context.Background()

	pool := suite.db.Pool
	suite.items = NewItemRepository(pool)
	suite.locations = NewLocationRepository(pool)
	suite.warehouses = NewWarehouseRepository(pool)
	suite.stock = NewStockRepository(pool)
	suite.catalogue = NewCatalogueRepository(pool)
	suite.keys = NewAPIKeyRepository(pool)
}

func (suite *PostgresTestSuite) TearDownSuite() {
	suite.db.Cleanup()
}

func (suite *PostgresTestSuite) SetupTest() {
	suite.db.Reset(suite.T())
	suite.Require().NoError(database.Seed(suite.ctx, suite.db.Pool))
}

func (suite *PostgresTestSuite) laptop() *models.Item {
	item, err := suite.items.GetByName(suite.ctx, "Laptop-1")
	suite.Require().NoError(err)
	return item
}

func (suite *PostgresTestSuite) TestSeedIsReadable() {
	stocks, err := suite.stock.List(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(stocks, 2)

	s, err := suite.stock.Get(suite.ctx, models.StockKey{WarehouseID: 1, ItemID: suite.laptop().ID})
	suite.Require().NoError(err)
	suite.Equal("Laptop-1", s.ItemName)
	suite.True(decimal.RequireFromString("799.99").Equal(*s.ShelfPrice))
}

func (suite *PostgresTestSuite) TestDuplicateNameConflicts() {
	err := suite.items.Create(suite.ctx, &models.Item{Name: "Laptop-1"})
	suite.ErrorIs(err, common.ErrConflict)
}

func (suite *PostgresTestSuite) TestReferencedRowsCannotBeDeleted() {
	suite.ErrorIs(suite.items.Delete(suite.ctx, suite.laptop().ID), common.ErrReferenced)
	suite.ErrorIs(suite.locations.Delete(suite.ctx, 1), common.ErrReferenced)

	// Catalogue rows go with their item, stock goes with its warehouse.
	item, err := suite.items.GetByName(suite.ctx, "Laptop-3")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.items.Delete(suite.ctx, item.ID))
	suite.Require().NoError(suite.warehouses.Delete(suite.ctx, 2))

	stocks, err := suite.stock.ListByWarehouse(suite.ctx, 2)
	suite.Require().NoError(err)
	suite.Empty(stocks)
}

func (suite *PostgresTestSuite) TestManagerNeedsFirstAndLastName() {
	w, err := suite.warehouses.GetByID(suite.ctx, 1)
	suite.Require().NoError(err)
	single := "Madonna"
	w.Manager = &single

	suite.ErrorIs(suite.warehouses.Update(suite.ctx, w), common.ErrValidation)
}

func (suite *PostgresTestSuite) TestStockMoveKeepsOneRow() {
	laptop := suite.laptop()
	key := models.StockKey{WarehouseID: 1, ItemID: laptop.ID}
	s, err := suite.stock.Get(suite.ctx, key)
	suite.Require().NoError(err)

	s.WarehouseID = 2
	suite.Require().NoError(suite.stock.Update(suite.ctx, key, s))

	_, err = suite.stock.Get(suite.ctx, key)
	suite.ErrorIs(err, common.ErrNotFound)
	moved, err := suite.stock.Get(suite.ctx, s.Key())
	suite.Require().NoError(err)
	suite.Equal(10, moved.Quantity)

	s.ItemID = 9999
	suite.ErrorIs(suite.stock.Update(suite.ctx, s.Key(), s), common.ErrNotFound)
}

func (suite *PostgresTestSuite) TestSupplierFilter() {
	entries, err := suite.catalogue.ListBySupplier(suite.ctx, "TechSupplier A")
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("Laptop-1", entries[0].ItemName)
}

func (suite *PostgresTestSuite) TestKeyScopes() {
	one := 1
	suite.Require().NoError(suite.keys.Create(suite.ctx, &models.APIKey{KeyHash: []byte("admin-hash"), Admin: true}))
	suite.Require().NoError(suite.keys.Create(suite.ctx, &models.APIKey{KeyHash: []byte("w1-hash"), WarehouseID: &one}))

	hashes, err := suite.keys.HashesForScope(suite.ctx, models.WarehouseScope(1))
	suite.Require().NoError(err)
	suite.ElementsMatch([][]byte{[]byte("admin-hash"), []byte("w1-hash")}, hashes)

	hashes, err = suite.keys.HashesForScope(suite.ctx, models.WarehouseScope(2))
	suite.Require().NoError(err)
	suite.Equal([][]byte{[]byte("admin-hash")}, hashes)
}

func TestPostgresTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}
