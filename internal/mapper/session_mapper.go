package mapper

import (
	"encoding/json"

	"focus-shield-be/internal/entity"
	"focus-shield-be/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	var pairs []entity.ContextPair
	if len(s.Context) > 0 {
		// A corrupt context blob degrades to an empty sequence; the session
		// itself stays usable.
		_ = json.Unmarshal(s.Context, &pairs)
	}

	return &entity.Session{
		Id:        s.Id,
		State:     s.State,
		Domain:    s.Domain,
		Context:   pairs,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	raw, err := json.Marshal(s.Context)
	if err != nil {
		raw = []byte("[]")
	}

	return &model.Session{
		Id:        s.Id,
		State:     s.State,
		Domain:    s.Domain,
		Context:   datatypes.JSON(raw),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		CreatedAt: s.CreatedAt,
	}
}
