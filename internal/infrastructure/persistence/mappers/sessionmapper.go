package mappers

import (
	"tally/internal/domain/account"
	"tally/internal/infrastructure/persistence/models"
)

// SessionMapper handles the conversion between domain entities and persistence models
type SessionMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.SessionModel) *account.Session

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *account.Session) *models.SessionModel

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.SessionModel) []*account.Session
}

// SessionMapperImpl is the concrete implementation of SessionMapper
type SessionMapperImpl struct{}

// NewSessionMapper creates a new session mapper
func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *SessionMapperImpl) ToEntity(model *models.SessionModel) *account.Session {
	if model == nil {
		return nil
	}

	return &account.Session{
		TokenID:             model.TokenID,
		AccountID:           model.AccountID,
		OriginID:            model.OriginID,
		IPAddress:           model.IPAddress,
		Device:              model.Device,
		Browser:             model.Browser,
		CreatedAt:           model.CreatedAt,
		Invalidated:         model.Invalidated,
		InvalidatedAt:       model.InvalidatedAt,
		PushNotificationKey: model.PushNotificationKey,
	}
}

// ToModel converts a domain entity to a persistence model
func (m *SessionMapperImpl) ToModel(entity *account.Session) *models.SessionModel {
	if entity == nil {
		return nil
	}

	return &models.SessionModel{
		TokenID:             entity.TokenID,
		AccountID:           entity.AccountID,
		OriginID:            entity.OriginID,
		IPAddress:           entity.IPAddress,
		Device:              entity.Device,
		Browser:             entity.Browser,
		CreatedAt:           entity.CreatedAt,
		Invalidated:         entity.Invalidated,
		InvalidatedAt:       entity.InvalidatedAt,
		PushNotificationKey: entity.PushNotificationKey,
	}
}

// ToEntities converts multiple persistence models to domain entities
func (m *SessionMapperImpl) ToEntities(sessionModels []*models.SessionModel) []*account.Session {
	entities := make([]*account.Session, 0, len(sessionModels))
	for _, model := range sessionModels {
		if entity := m.ToEntity(model); entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities
}
