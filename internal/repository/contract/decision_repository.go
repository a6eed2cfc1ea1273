package contract

import (
	"context"

	"focus-shield-be/internal/entity"
)

// DecisionRepository is the decision cache: two partitions (allowed and
// blocked) keyed by normalized URL.
type DecisionRepository interface {
	// Lookup returns the decision for a normalized key, or nil on a miss.
	Lookup(ctx context.Context, urlKey string) (*entity.Decision, error)

	// Record upserts a decision into its partition, last write wins. Any
	// entry with the same key in the opposite partition is removed so a key
	// never lives in both. Record does not touch the in-flight set: the
	// gateway is the only writer, and it releases the claim itself once a
	// classification attempt finishes, recorded or not.
	Record(ctx context.Context, decision *entity.Decision) error

	// Clear empties both partitions. Only the session manager calls this,
	// on session boundaries.
	Clear(ctx context.Context) error

	// CountByPartition returns (allowed, blocked) sizes for state snapshots.
	CountByPartition(ctx context.Context) (int64, int64, error)

	// ListByPartition returns up to limit most recent decisions of one
	// partition, newest first.
	ListByPartition(ctx context.Context, partition string, limit int) ([]*entity.Decision, error)
}
