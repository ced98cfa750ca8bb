package repositories

import (
	"context"
	"fmt"

	"inventorymanager/internal/models"

	"github.com/jackc/pgx/v5"
)

type LocationRepository interface {
	List(ctx context.Context) ([]*models.Location, error)
	GetByID(ctx context.Context, id int) (*models.Location, error)
	Create(ctx context.Context, location *models.Location) error
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id int) error
}

type locationRepo struct {
	db Database
}

func NewLocationRepository(db Database) LocationRepository {
	return &locationRepo{db: db}
}

const locationColumns = `location_id, latitude, longitude, country, postal_code, city, street`

func scanLocation(row pgx.Row) (*models.Location, error) {
	l := &models.Location{}
	err := row.Scan(&l.ID, &l.Latitude, &l.Longitude, &l.Country, &l.PostalCode, &l.City, &l.Street)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *locationRepo) List(ctx context.Context) ([]*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY location_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := []*models.Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *locationRepo) GetByID(ctx context.Context, id int) (*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE location_id = $1`
	l, err := scanLocation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, readError(err, fmt.Sprintf("location %d", id))
	}
	return l, nil
}

func (r *locationRepo) Create(ctx context.Context, l *models.Location) error {
	query := `
		INSERT INTO locations (latitude, longitude, country, postal_code, city, street)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING location_id
	`
	err := r.db.QueryRow(ctx, query, l.Latitude, l.Longitude, l.Country, l.PostalCode, l.City, l.Street).Scan(&l.ID)
	if err != nil {
		return writeError(err, "location")
	}
	return nil
}

func (r *locationRepo) Update(ctx context.Context, l *models.Location) error {
	query := `
		UPDATE locations
		SET latitude = $1, longitude = $2, country = $3, postal_code = $4, city = $5, street = $6
		WHERE location_id = $7
	`
	tag, err := r.db.Exec(ctx, query, l.Latitude, l.Longitude, l.Country, l.PostalCode, l.City, l.Street, l.ID)
	if err != nil {
		return writeError(err, fmt.Sprintf("location %d", l.ID))
	}
	return mustAffect(tag, fmt.Sprintf("location %d", l.ID))
}

func (r *locationRepo) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM locations WHERE location_id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return deleteError(err, fmt.Sprintf("location %d", id))
	}
	return mustAffect(tag, fmt.Sprintf("location %d", id))
}
