package mapper

import (
	"encoding/json"

	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/model"

	"gorm.io/datatypes"
)

type ActivityMapper struct{}

func NewActivityMapper() *ActivityMapper {
	return &ActivityMapper{}
}

func (m *ActivityMapper) ToEntity(a *model.Activity) *entity.Activity {
	if a == nil {
		return nil
	}

	var meta map[string]interface{}
	if len(a.Metadata) > 0 {
		_ = json.Unmarshal(a.Metadata, &meta)
	}

	return &entity.Activity{
		Id:        a.Id,
		Type:      a.Type,
		URLKey:    a.URLKey,
		Message:   a.Message,
		Metadata:  meta,
		CreatedAt: a.CreatedAt,
	}
}

func (m *ActivityMapper) ToModel(a *entity.Activity) *model.Activity {
	if a == nil {
		return nil
	}

	raw, err := json.Marshal(a.Metadata)
	if err != nil {
		raw = []byte("{}")
	}

	return &model.Activity{
		Id:        a.Id,
		Type:      a.Type,
		URLKey:    a.URLKey,
		Message:   a.Message,
		Metadata:  datatypes.JSON(raw),
		CreatedAt: a.CreatedAt,
	}
}
