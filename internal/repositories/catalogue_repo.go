package repositories

import (
	"context"
	"fmt"

	"inventorymanager/internal/models"
)

type CatalogueRepository interface {
	List(ctx context.Context) ([]*models.CatalogueEntry, error)
	ListByItem(ctx context.Context, itemID int) ([]*models.CatalogueEntry, error)
	ListBySupplier(ctx context.Context, supplier string) ([]*models.CatalogueEntry, error)
	Get(ctx context.Context, key models.CatalogueKey) (*models.CatalogueEntry, error)
	Create(ctx context.Context, entry *models.CatalogueEntry) error
	Update(ctx context.Context, key models.CatalogueKey, entry *models.CatalogueEntry) error
	Delete(ctx context.Context, key models.CatalogueKey) error
}

type catalogueRepo struct {
	db Database
}

func NewCatalogueRepository(db Database) CatalogueRepository {
	return &catalogueRepo{db: db}
}

const catalogueSelect = `
	SELECT c.item_id, i.name, c.supplier_name, c.min_order, c.order_price
	FROM catalogue c
	JOIN items i ON i.item_id = c.item_id
`

func (r *catalogueRepo) list(ctx context.Context, where string, args ...any) ([]*models.CatalogueEntry, error) {
	query := catalogueSelect + where + ` ORDER BY c.supplier_name, i.name`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list catalogue: %w", err)
	}
	defer rows.Close()

	entries := []*models.CatalogueEntry{}
	for rows.Next() {
		e := &models.CatalogueEntry{}
		if err := rows.Scan(&e.ItemID, &e.ItemName, &e.SupplierName, &e.MinOrder, &e.OrderPrice); err != nil {
			return nil, fmt.Errorf("scan catalogue entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *catalogueRepo) List(ctx context.Context) ([]*models.CatalogueEntry, error) {
	return r.list(ctx, "")
}

func (r *catalogueRepo) ListByItem(ctx context.Context, itemID int) ([]*models.CatalogueEntry, error) {
	return r.list(ctx, `WHERE c.item_id = $1`, itemID)
}

func (r *catalogueRepo) ListBySupplier(ctx context.Context, supplier string) ([]*models.CatalogueEntry, error) {
	return r.list(ctx, `WHERE c.supplier_name = $1`, supplier)
}

func (r *catalogueRepo) Get(ctx context.Context, key models.CatalogueKey) (*models.CatalogueEntry, error) {
	e := &models.CatalogueEntry{}
	query := catalogueSelect + `WHERE c.supplier_name = $1 AND c.item_id = $2`
	err := r.db.QueryRow(ctx, query, key.SupplierName, key.ItemID).
		Scan(&e.ItemID, &e.ItemName, &e.SupplierName, &e.MinOrder, &e.OrderPrice)
	if err != nil {
		return nil, readError(err, catalogueName(key))
	}
	return e, nil
}

func (r *catalogueRepo) Create(ctx context.Context, e *models.CatalogueEntry) error {
	query := `
		INSERT INTO catalogue (item_id, supplier_name, min_order, order_price)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.Exec(ctx, query, e.ItemID, e.SupplierName, e.MinOrder, e.OrderPrice); err != nil {
		return writeError(err, catalogueName(e.Key()))
	}
	return nil
}

func (r *catalogueRepo) Update(ctx context.Context, key models.CatalogueKey, e *models.CatalogueEntry) error {
	query := `
		UPDATE catalogue
		SET item_id = $1, supplier_name = $2, min_order = $3, order_price = $4
		WHERE supplier_name = $5 AND item_id = $6
	`
	tag, err := r.db.Exec(ctx, query, e.ItemID, e.SupplierName, e.MinOrder, e.OrderPrice, key.SupplierName, key.ItemID)
	if err != nil {
		return writeError(err, catalogueName(e.Key()))
	}
	return mustAffect(tag, catalogueName(key))
}

func (r *catalogueRepo) Delete(ctx context.Context, key models.CatalogueKey) error {
	query := `DELETE FROM catalogue WHERE supplier_name = $1 AND item_id = $2`
	tag, err := r.db.Exec(ctx, query, key.SupplierName, key.ItemID)
	if err != nil {
		return deleteError(err, catalogueName(key))
	}
	return mustAffect(tag, catalogueName(key))
}

func catalogueName(key models.CatalogueKey) string {
	return fmt.Sprintf("catalogue entry of %q for item %d", key.SupplierName, key.ItemID)
}
