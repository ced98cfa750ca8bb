package repositories

import (
	"context"
	"fmt"

	"inventorymanager/internal/models"

	"github.com/jackc/pgx/v5"
)

type ItemRepository interface {
	List(ctx context.Context) ([]*models.Item, error)
	GetByID(ctx context.Context, id int) (*models.Item, error)
	GetByName(ctx context.Context, name string) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id int) error
}

type itemRepo struct {
	db Database
}

func NewItemRepository(db Database) ItemRepository {
	return &itemRepo{db: db}
}

func scanItem(row pgx.Row) (*models.Item, error) {
	item := &models.Item{}
	if err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Weight); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) List(ctx context.Context) ([]*models.Item, error) {
	query := `SELECT item_id, name, category, weight FROM items ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) GetByID(ctx context.Context, id int) (*models.Item, error) {
	query := `SELECT item_id, name, category, weight FROM items WHERE item_id = $1`
	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, readError(err, fmt.Sprintf("item %d", id))
	}
	return item, nil
}

func (r *itemRepo) GetByName(ctx context.Context, name string) (*models.Item, error) {
	query := `SELECT item_id, name, category, weight FROM items WHERE name = $1`
	item, err := scanItem(r.db.QueryRow(ctx, query, name))
	if err != nil {
		return nil, readError(err, fmt.Sprintf("item %q", name))
	}
	return item, nil
}

func (r *itemRepo) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (name, category, weight)
		VALUES ($1, $2, $3)
		RETURNING item_id
	`
	err := r.db.QueryRow(ctx, query, item.Name, item.Category, item.Weight).Scan(&item.ID)
	if err != nil {
		return writeError(err, fmt.Sprintf("item %q", item.Name))
	}
	return nil
}

func (r *itemRepo) Update(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items
		SET name = $1, category = $2, weight = $3
		WHERE item_id = $4
	`
	tag, err := r.db.Exec(ctx, query, item.Name, item.Category, item.Weight, item.ID)
	if err != nil {
		return writeError(err, fmt.Sprintf("item %q", item.Name))
	}
	return mustAffect(tag, fmt.Sprintf("item %d", item.ID))
}

func (r *itemRepo) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM items WHERE item_id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return deleteError(err, fmt.Sprintf("item %d", id))
	}
	return mustAffect(tag, fmt.Sprintf("item %d", id))
}
