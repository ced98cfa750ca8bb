package repositories

import (
	"context"
	"fmt"

	"inventorymanager/internal/models"
)

type StockRepository interface {
	List(ctx context.Context) ([]*models.Stock, error)
	ListByItem(ctx context.Context, itemID int) ([]*models.Stock, error)
	ListByWarehouse(ctx context.Context, warehouseID int) ([]*models.Stock, error)
	ListAtOrBelow(ctx context.Context, threshold int) ([]*models.Stock, error)
	Get(ctx context.Context, key models.StockKey) (*models.Stock, error)
	Create(ctx context.Context, stock *models.Stock) error
	Update(ctx context.Context, key models.StockKey, stock *models.Stock) error
	Delete(ctx context.Context, key models.StockKey) error
}

type stockRepo struct {
	db Database
}

func NewStockRepository(db Database) StockRepository {
	return &stockRepo{db: db}
}

const stockSelect = `
	SELECT s.item_id, i.name, s.warehouse_id, s.quantity, s.shelf_price
	FROM stock s
	JOIN items i ON i.item_id = s.item_id
`

func (r *stockRepo) list(ctx context.Context, where string, args ...any) ([]*models.Stock, error) {
	query := stockSelect + where + ` ORDER BY s.warehouse_id, i.name`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	stocks := []*models.Stock{}
	for rows.Next() {
		s := &models.Stock{}
		if err := rows.Scan(&s.ItemID, &s.ItemName, &s.WarehouseID, &s.Quantity, &s.ShelfPrice); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stocks = append(stocks, s)
	}
	return stocks, rows.Err()
}

func (r *stockRepo) List(ctx context.Context) ([]*models.Stock, error) {
	return r.list(ctx, "")
}

func (r *stockRepo) ListByItem(ctx context.Context, itemID int) ([]*models.Stock, error) {
	return r.list(ctx, `WHERE s.item_id = $1`, itemID)
}

func (r *stockRepo) ListByWarehouse(ctx context.Context, warehouseID int) ([]*models.Stock, error) {
	return r.list(ctx, `WHERE s.warehouse_id = $1`, warehouseID)
}

func (r *stockRepo) ListAtOrBelow(ctx context.Context, threshold int) ([]*models.Stock, error) {
	return r.list(ctx, `WHERE s.quantity <= $1`, threshold)
}

func (r *stockRepo) Get(ctx context.Context, key models.StockKey) (*models.Stock, error) {
	s := &models.Stock{}
	query := stockSelect + `WHERE s.warehouse_id = $1 AND s.item_id = $2`
	err := r.db.QueryRow(ctx, query, key.WarehouseID, key.ItemID).
		Scan(&s.ItemID, &s.ItemName, &s.WarehouseID, &s.Quantity, &s.ShelfPrice)
	if err != nil {
		return nil, readError(err, stockName(key))
	}
	return s, nil
}

func (r *stockRepo) Create(ctx context.Context, s *models.Stock) error {
	query := `
		INSERT INTO stock (item_id, warehouse_id, quantity, shelf_price)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.Exec(ctx, query, s.ItemID, s.WarehouseID, s.Quantity, s.ShelfPrice); err != nil {
		return writeError(err, stockName(s.Key()))
	}
	return nil
}

// Update rewrites the row identified by key; the stock's own key may differ
// when the row moves to another item or warehouse.
func (r *stockRepo) Update(ctx context.Context, key models.StockKey, s *models.Stock) error {
	query := `
		UPDATE stock
		SET item_id = $1, warehouse_id = $2, quantity = $3, shelf_price = $4
		WHERE warehouse_id = $5 AND item_id = $6
	`
	tag, err := r.db.Exec(ctx, query, s.ItemID, s.WarehouseID, s.Quantity, s.ShelfPrice, key.WarehouseID, key.ItemID)
	if err != nil {
		return writeError(err, stockName(s.Key()))
	}
	return mustAffect(tag, stockName(key))
}

func (r *stockRepo) Delete(ctx context.Context, key models.StockKey) error {
	query := `DELETE FROM stock WHERE warehouse_id = $1 AND item_id = $2`
	tag, err := r.db.Exec(ctx, query, key.WarehouseID, key.ItemID)
	if err != nil {
		return deleteError(err, stockName(key))
	}
	return mustAffect(tag, stockName(key))
}

func stockName(key models.StockKey) string {
	return fmt.Sprintf("stock of item %d in warehouse %d", key.ItemID, key.WarehouseID)
}
