package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the base interface for all repositories.
// Reads on an unknown id return (nil, nil) so callers can treat
// missing entities as a no-op rather than an error.
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PermissionGate answers capability checks for mutating operations.
// The implementation (roles, tokens, hard-coded allow) is a collaborator
// concern; the core only consumes the boolean contract.
type PermissionGate interface {
	Allows(ctx context.Context, actor string, capability string) bool
}

// AllowAllGate is a PermissionGate that grants every capability.
type AllowAllGate struct{}

// Allows always returns true
func (AllowAllGate) Allows(ctx context.Context, actor string, capability string) bool {
	return true
}
