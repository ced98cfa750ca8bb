package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"inventorymanager/internal/common"
	"inventorymanager/internal/metrics"
	"inventorymanager/internal/models"
	"inventorymanager/internal/repositories"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"
)

const tokenBytes = 32

type APIKeyService interface {
	// Authorize returns nil only when token is a stored key satisfying
	// scope. Every other outcome, store errors included, is ErrForbidden.
	Authorize(ctx context.Context, token string, scope models.KeyScope) error
	IssueAdminKey(ctx context.Context) (string, error)
	IssueWarehouseKey(ctx context.Context, warehouseID int) (string, error)
}

type apiKeyService struct {
	keyRepo       repositories.APIKeyRepository
	warehouseRepo repositories.WarehouseRepository
}

func NewAPIKeyService(keyRepo repositories.APIKeyRepository, warehouseRepo repositories.WarehouseRepository) APIKeyService {
	return &apiKeyService{
		keyRepo:       keyRepo,
		warehouseRepo: warehouseRepo,
	}
}

// HashToken is the digest stored for a token.
func HashToken(token string) []byte {
	sum := blake2b.Sum256([]byte(token))
	return sum[:]
}

// GenerateToken returns a new random URL-safe token.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (s *apiKeyService) Authorize(ctx context.Context, token string, scope models.KeyScope) error {
	if token == "" {
		return s.deny(scope, "missing key")
	}

	hashes, err := s.keyRepo.HashesForScope(ctx, scope)
	if err != nil {
		log.Error().Err(err).Str("scope", scope.String()).Msg("api key lookup failed")
		return s.deny(scope, "key store unavailable")
	}

	presented := HashToken(token)
	match := 0
	// Compare against every hash so timing does not reveal which matched.
	for _, h := range hashes {
		match |= subtle.ConstantTimeCompare(presented, h)
	}
	if match != 1 {
		return s.deny(scope, "no matching key")
	}
	return nil
}

func (s *apiKeyService) deny(scope models.KeyScope, reason string) error {
	kind := "warehouse"
	if scope.Admin {
		kind = "admin"
	}
	metrics.AuthDenials.WithLabelValues(kind).Inc()
	return fmt.Errorf("%s for %s: %w", reason, scope, common.ErrForbidden)
}

func (s *apiKeyService) IssueAdminKey(ctx context.Context) (string, error) {
	return s.issue(ctx, &models.APIKey{Admin: true})
}

func (s *apiKeyService) IssueWarehouseKey(ctx context.Context, warehouseID int) (string, error) {
	if _, err := s.warehouseRepo.GetByID(ctx, warehouseID); err != nil {
		return "", err
	}
	return s.issue(ctx, &models.APIKey{WarehouseID: &warehouseID})
}

func (s *apiKeyService) issue(ctx context.Context, key *models.APIKey) (string, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", err
	}
	key.KeyHash = HashToken(token)
	if err := s.keyRepo.Create(ctx, key); err != nil {
		return "", err
	}
	return token, nil
}
