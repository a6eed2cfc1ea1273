package memory

import (
	"context"
	"testing"
	"time"

	"focus-shield-be/internal/constant"
	"focus-shield-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDecisionPartitionExclusivity(t *testing.T) {
	repo := NewDecisionRepository()
	ctx := context.Background()
	key := "https://example.com/page"

	err := repo.Record(ctx, &entity.Decision{
		Id: uuid.New(), URLKey: key, Partition: constant.PartitionAllowed, CreatedAt: time.Now(),
	})
	assert.NoError(t, err)

	// Re-recording into the other partition moves the key, it never lives in both
	err = repo.Record(ctx, &entity.Decision{
		Id: uuid.New(), URLKey: key, Partition: constant.PartitionBlocked, Reason: "changed my mind", CreatedAt: time.Now(),
	})
	assert.NoError(t, err)

	d, err := repo.Lookup(ctx, key)
	assert.NoError(t, err)
	if assert.NotNil(t, d) {
		assert.Equal(t, constant.PartitionBlocked, d.Partition)
	}

	allowed, blocked, err := repo.CountByPartition(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), allowed)
	assert.Equal(t, int64(1), blocked)
}

func TestDecisionLookupMiss(t *testing.T) {
	repo := NewDecisionRepository()

	d, err := repo.Lookup(context.Background(), "https://never.seen")
	assert.NoError(t, err)
	assert.Nil(t, d)
}

func TestDecisionClear(t *testing.T) {
	repo := NewDecisionRepository()
	ctx := context.Background()

	for _, k := range []string{"https://a.example.com", "https://b.example.com"} {
		assert.NoError(t, repo.Record(ctx, &entity.Decision{
			Id: uuid.New(), URLKey: k, Partition: constant.PartitionAllowed, CreatedAt: time.Now(),
		}))
	}
	assert.NoError(t, repo.Clear(ctx))

	allowed, blocked, err := repo.CountByPartition(ctx)
	assert.NoError(t, err)
	assert.Zero(t, allowed)
	assert.Zero(t, blocked)
}

func TestDecisionListByPartitionNewestFirst(t *testing.T) {
	repo := NewDecisionRepository()
	ctx := context.Background()
	base := time.Now()

	for i, k := range []string{"https://one.example.com", "https://two.example.com", "https://three.example.com"} {
		assert.NoError(t, repo.Record(ctx, &entity.Decision{
			Id: uuid.New(), URLKey: k, Partition: constant.PartitionBlocked,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	out, err := repo.ListByPartition(ctx, constant.PartitionBlocked, 2)
	assert.NoError(t, err)
	if assert.Len(t, out, 2) {
		assert.Equal(t, "https://three.example.com", out[0].URLKey)
		assert.Equal(t, "https://two.example.com", out[1].URLKey)
	}
}

func TestDecisionRecordBumpsRecency(t *testing.T) {
	repo := NewDecisionRepository()
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	assert.NoError(t, repo.Record(ctx, &entity.Decision{
		Id: uuid.New(), URLKey: "https://old.example.com", Partition: constant.PartitionBlocked, CreatedAt: base,
	}))
	assert.NoError(t, repo.Record(ctx, &entity.Decision{
		Id: uuid.New(), URLKey: "https://newer.example.com", Partition: constant.PartitionBlocked, CreatedAt: base.Add(time.Minute),
	}))

	// Re-recording the older key counts as the latest write, so it sorts
	// first while its original CreatedAt survives.
	assert.NoError(t, repo.Record(ctx, &entity.Decision{
		Id: uuid.New(), URLKey: "https://old.example.com", Partition: constant.PartitionBlocked, CreatedAt: time.Now(),
	}))

	out, err := repo.ListByPartition(ctx, constant.PartitionBlocked, 0)
	assert.NoError(t, err)
	if assert.Len(t, out, 2) {
		assert.Equal(t, "https://old.example.com", out[0].URLKey)
		assert.NotNil(t, out[0].UpdatedAt)
		assert.True(t, out[0].CreatedAt.Equal(base))
	}
}

func TestInflightAddIsFirstWriterWins(t *testing.T) {
	repo := NewInflightRepository()

	assert.True(t, repo.Add("https://example.com"))
	assert.False(t, repo.Add("https://example.com"))
	assert.True(t, repo.Contains("https://example.com"))

	repo.Remove("https://example.com")
	assert.False(t, repo.Contains("https://example.com"))
	assert.True(t, repo.Add("https://example.com"))
}
