package contract

import (
	"context"

	"focus-shield-be/internal/entity"
)

// ActivityRepository persists the enforcement trail.
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	FindRecent(ctx context.Context, limit, offset int) ([]*entity.Activity, int64, error)
}
