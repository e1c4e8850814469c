package mappers

import (
	"tally/internal/domain/account"
	"tally/internal/infrastructure/persistence/models"
)

// AccountMapper handles the conversion between domain entities and persistence models
type AccountMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.AccountModel) *account.Account

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *account.Account) *models.AccountModel

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.AccountModel) []*account.Account
}

// AccountMapperImpl is the concrete implementation of AccountMapper
type AccountMapperImpl struct{}

// NewAccountMapper creates a new account mapper
func NewAccountMapper() AccountMapper {
	return &AccountMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *AccountMapperImpl) ToEntity(model *models.AccountModel) *account.Account {
	if model == nil {
		return nil
	}

	return &account.Account{
		PublicID:     model.PublicID,
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
		LinkedUserID: model.LinkedUserID,
	}
}

// ToModel converts a domain entity to a persistence model
func (m *AccountMapperImpl) ToModel(entity *account.Account) *models.AccountModel {
	if entity == nil {
		return nil
	}

	return &models.AccountModel{
		PublicID:     entity.PublicID,
		Username:     entity.Username,
		PasswordHash: entity.PasswordHash,
		CreatedAt:    entity.CreatedAt,
		LinkedUserID: entity.LinkedUserID,
	}
}

// ToEntities converts multiple persistence models to domain entities
func (m *AccountMapperImpl) ToEntities(accountModels []*models.AccountModel) []*account.Account {
	entities := make([]*account.Account, 0, len(accountModels))
	for _, model := range accountModels {
		if entity := m.ToEntity(model); entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities
}
