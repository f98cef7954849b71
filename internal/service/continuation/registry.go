package continuation

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

// TokenBytes is the amount of randomness in a continuation token.
const TokenBytes = 32

type tokenStore interface {
	Create(ctx context.Context, tokenHash []byte, instanceID uuid.UUID) error
	Redeem(ctx context.Context, tokenHash []byte, outcome domain.Outcome) (uuid.UUID, error)
}

// Registry mints continuation tokens for suspended workflow instances and
// redeems them exactly once.
type Registry struct {
	store tokenStore
	log   *slog.Logger
}

// NewRegistry creates a new continuation Registry.
func NewRegistry(log *slog.Logger, store tokenStore) *Registry {
	return &Registry{
		store: store,
		log:   log.With("service", "continuation"),
	}
}

// Issue mints a token that resumes instanceID. Only the token hash is stored;
// the caller is responsible for keeping the raw token.
func (r *Registry) Issue(ctx context.Context, instanceID uuid.UUID) (string, error) {
	raw := make([]byte, TokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate continuation token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	if err := r.store.Create(ctx, hashToken(token), instanceID); err != nil {
		return "", fmt.Errorf("store continuation: %w", err)
	}
	return token, nil
}

// Redeem records outcome against the token and returns the instance it
// resumes. Unknown or already redeemed tokens return domain.ErrInvalidToken.
func (r *Registry) Redeem(ctx context.Context, token string, outcome domain.Outcome) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, domain.ErrInvalidToken
	}

	id, err := r.store.Redeem(ctx, hashToken(token), outcome)
	if err != nil {
		return uuid.Nil, err
	}

	r.log.DebugContext(ctx, "continuation redeemed",
		slog.String("instance_id", id.String()),
		slog.Bool("success", outcome.Success),
	)
	return id, nil
}

func hashToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}
