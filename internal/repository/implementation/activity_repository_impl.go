package implementation

import (
	"context"

	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/mapper"
	"focus-shield-be/internal/model"
	"focus-shield-be/internal/repository/contract"

	"gorm.io/gorm"
)

type ActivityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActivityMapper
}

func NewActivityRepository(db *gorm.DB) contract.ActivityRepository {
	return &ActivityRepositoryImpl{
		db:     db,
		mapper: mapper.NewActivityMapper(),
	}
}

func (r *ActivityRepositoryImpl) Create(ctx context.Context, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(activity)).Error
}

func (r *ActivityRepositoryImpl) FindRecent(ctx context.Context, limit, offset int) ([]*entity.Activity, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Activity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []model.Activity
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entity.Activity, 0, len(models))
	for i := range models {
		out = append(out, r.mapper.ToEntity(&models[i]))
	}
	return out, total, nil
}
