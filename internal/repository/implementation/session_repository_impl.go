package implementation

import (
	"context"
	"errors"

	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/mapper"
	"focus-shield-be/internal/model"
	"focus-shield-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) Get(ctx context.Context) (*entity.Session, error) {
	var m model.Session
	if err := r.db.WithContext(ctx).Order("created_at DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// Save replaces the single session row inside a transaction so no reader
// observes an intermediate state.
func (r *SessionRepositoryImpl) Save(ctx context.Context, session *entity.Session) error {
	m := r.mapper.ToModel(session)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Session{}).Error; err != nil {
			return err
		}
		return tx.Create(m).Error
	})
}

func (r *SessionRepositoryImpl) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Session{}).Error
}
