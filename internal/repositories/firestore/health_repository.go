package firestore

import (
	"context"
	"errors"

	pfirestore "github.com/hanko-field/frontend-metadata/internal/platform/firestore"
)

// HealthRepository probes Firestore availability for readiness checks.
type HealthRepository struct {
	provider *pfirestore.Provider
}

// NewHealthRepository constructs the readiness probe.
func NewHealthRepository(provider *pfirestore.Provider) (*HealthRepository, error) {
	if provider == nil {
		return nil, errors.New("health repository requires firestore provider")
	}
	return &HealthRepository{provider: provider}, nil
}

// Check pings Firestore.
func (r *HealthRepository) Check(ctx context.Context) error {
	if r == nil || r.provider == nil {
		return errors.New("health repository not initialised")
	}
	return r.provider.Ping(ctx)
}
