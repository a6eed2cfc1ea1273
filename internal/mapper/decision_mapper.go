package mapper

import (
	"time"

	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/model"
)

type DecisionMapper struct{}

func NewDecisionMapper() *DecisionMapper {
	return &DecisionMapper{}
}

func (m *DecisionMapper) ToEntity(d *model.Decision) *entity.Decision {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Decision{
		Id:         d.Id,
		URLKey:     d.URLKey,
		URL:        d.URL,
		Partition:  d.Partition,
		Reason:     d.Reason,
		Confidence: d.Confidence,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *DecisionMapper) ToModel(d *entity.Decision) *model.Decision {
	if d == nil {
		return nil
	}

	out := &model.Decision{
		Id:         d.Id,
		URLKey:     d.URLKey,
		URL:        d.URL,
		Partition:  d.Partition,
		Reason:     d.Reason,
		Confidence: d.Confidence,
		CreatedAt:  d.CreatedAt,
	}
	if d.UpdatedAt != nil {
		out.UpdatedAt = *d.UpdatedAt
	}
	return out
}
