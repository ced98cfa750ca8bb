package repositories

import (
	"context"
	"fmt"

	"inventorymanager/internal/models"
)

type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *models.Warehouse) error
	GetByID(ctx context.Context, id int) (*models.Warehouse, error)
	Update(ctx context.Context, warehouse *models.Warehouse) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*models.Warehouse, error)
}

type warehouseRepo struct {
	db Database
}

func NewWarehouseRepository(db Database) WarehouseRepository {
	return &warehouseRepo{db: db}
}

func (r *warehouseRepo) Create(ctx context.Context, warehouse *models.Warehouse) error {
	query := `
		INSERT INTO warehouses (manager, location_id)
		VALUES ($1, $2)
		RETURNING warehouse_id
	`
	err := r.db.QueryRow(ctx, query, warehouse.Manager, warehouse.LocationID).Scan(&warehouse.ID)
	if err != nil {
		return writeError(err, fmt.Sprintf("warehouse at location %d", warehouse.LocationID))
	}
	return nil
}

func (r *warehouseRepo) GetByID(ctx context.Context, id int) (*models.Warehouse, error) {
	warehouse := &models.Warehouse{}
	query := `
		SELECT warehouse_id, manager, location_id
		FROM warehouses
		WHERE warehouse_id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&warehouse.ID, &warehouse.Manager, &warehouse.LocationID)
	if err != nil {
		return nil, readError(err, fmt.Sprintf("warehouse %d", id))
	}
	return warehouse, nil
}

func (r *warehouseRepo) Update(ctx context.Context, warehouse *models.Warehouse) error {
	query := `
		UPDATE warehouses
		SET manager = $1, location_id = $2
		WHERE warehouse_id = $3
	`
	tag, err := r.db.Exec(ctx, query, warehouse.Manager, warehouse.LocationID, warehouse.ID)
	if err != nil {
		return writeError(err, fmt.Sprintf("warehouse at location %d", warehouse.LocationID))
	}
	return mustAffect(tag, fmt.Sprintf("warehouse %d", warehouse.ID))
}

func (r *warehouseRepo) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM warehouses WHERE warehouse_id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return deleteError(err, fmt.Sprintf("warehouse %d", id))
	}
	return mustAffect(tag, fmt.Sprintf("warehouse %d", id))
}

func (r *warehouseRepo) List(ctx context.Context) ([]*models.Warehouse, error) {
	query := `
		SELECT warehouse_id, manager, location_id
		FROM warehouses
		ORDER BY warehouse_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	warehouses := []*models.Warehouse{}
	for rows.Next() {
		warehouse := &models.Warehouse{}
		if err := rows.Scan(&warehouse.ID, &warehouse.Manager, &warehouse.LocationID); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		warehouses = append(warehouses, warehouse)
	}
	return warehouses, rows.Err()
}
