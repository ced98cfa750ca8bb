package repositories

import (
	"context"
	"fmt"

	"inventorymanager/internal/models"
)

type APIKeyRepository interface {
	Create(ctx context.Context, key *models.APIKey) error
	// HashesForScope returns every stored hash that satisfies scope. Admin
	// keys are included for warehouse scopes.
	HashesForScope(ctx context.Context, scope models.KeyScope) ([][]byte, error)
}

type apiKeyRepo struct {
	db Database
}

func NewAPIKeyRepository(db Database) APIKeyRepository {
	return &apiKeyRepo{db: db}
}

func (r *apiKeyRepo) Create(ctx context.Context, key *models.APIKey) error {
	query := `INSERT INTO api_keys (key_hash, admin, warehouse_id) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, query, key.KeyHash, key.Admin, key.WarehouseID); err != nil {
		return writeError(err, "api key")
	}
	return nil
}

func (r *apiKeyRepo) HashesForScope(ctx context.Context, scope models.KeyScope) ([][]byte, error) {
	query := `SELECT key_hash FROM api_keys WHERE admin`
	args := []any{}
	if !scope.Admin {
		query += ` OR warehouse_id = $1`
		args = append(args, scope.WarehouseID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load api keys for %s: %w", scope, err)
	}
	defer rows.Close()

	var hashes [][]byte
	for rows.Next() {
		var h []byte
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		hashes = append(hashes, h)
	}
	return hashes, rows.Err()
}
