package implementation

import (
	"context"
	"errors"

	"focus-shield-be/internal/constant"
	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/mapper"
	"focus-shield-be/internal/model"
	"focus-shield-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DecisionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DecisionMapper
}

func NewDecisionRepository(db *gorm.DB) contract.DecisionRepository {
	return &DecisionRepositoryImpl{
		db:     db,
		mapper: mapper.NewDecisionMapper(),
	}
}

func (r *DecisionRepositoryImpl) Lookup(ctx context.Context, urlKey string) (*entity.Decision, error) {
	var m model.Decision
	if err := r.db.WithContext(ctx).Where("url_key = ?", urlKey).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// Record upserts on the url_key unique index. The conflict update rewrites
// the partition too, which is what keeps a key out of both partitions at
// once: the later write simply wins the whole row.
func (r *DecisionRepositoryImpl) Record(ctx context.Context, decision *entity.Decision) error {
	m := r.mapper.ToModel(decision)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"url", "partition", "reason", "confidence", "updated_at"}),
	}).Create(m).Error
}

func (r *DecisionRepositoryImpl) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Decision{}).Error
}

func (r *DecisionRepositoryImpl) CountByPartition(ctx context.Context) (int64, int64, error) {
	var allowed, blocked int64
	if err := r.db.WithContext(ctx).Model(&model.Decision{}).
		Where("partition = ?", constant.PartitionAllowed).Count(&allowed).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Decision{}).
		Where("partition = ?", constant.PartitionBlocked).Count(&blocked).Error; err != nil {
		return 0, 0, err
	}
	return allowed, blocked, nil
}

func (r *DecisionRepositoryImpl) ListByPartition(ctx context.Context, partition string, limit int) ([]*entity.Decision, error) {
	var models []model.Decision
	if err := r.db.WithContext(ctx).
		Where("partition = ?", partition).
		Order("updated_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]*entity.Decision, 0, len(models))
	for i := range models {
		out = append(out, r.mapper.ToEntity(&models[i]))
	}
	return out, nil
}
