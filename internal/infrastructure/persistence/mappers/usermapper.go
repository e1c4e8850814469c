package mappers

import (
	"fmt"

	"tally/internal/domain/user"
	"tally/internal/infrastructure/persistence/models"
	"tally/internal/shared/authorization"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.UserModel) (*user.User, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *user.User) (*models.UserModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

// UserMapperImpl is the concrete implementation of UserMapper
type UserMapperImpl struct{}

// NewUserMapper creates a new user mapper
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	name, err := user.NewName(model.FirstName, model.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to create name value object: %w", err)
	}

	return &user.User{
		UserID:             model.UserID,
		Name:               name,
		CreatedAt:          model.CreatedAt,
		IsTemporary:        model.IsTemporary,
		PriceRanking:       user.PriceRanking(model.PriceRanking),
		Permissions:        authorization.ParseRole(model.Permissions),
		ProfilePicturePath: model.ProfilePicturePath,
	}, nil
}

// ToModel converts a domain entity to a persistence model
func (m *UserMapperImpl) ToModel(entity *user.User) (*models.UserModel, error) {
	if entity == nil {
		return nil, nil
	}
	if entity.Name == nil {
		return nil, fmt.Errorf("user entity has no name")
	}

	return &models.UserModel{
		UserID:             entity.UserID,
		FirstName:          entity.Name.First(),
		LastName:           entity.Name.Last(),
		CreatedAt:          entity.CreatedAt,
		IsTemporary:        entity.IsTemporary,
		PriceRanking:       string(entity.PriceRanking),
		Permissions:        string(entity.Permissions),
		ProfilePicturePath: entity.ProfilePicturePath,
	}, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *UserMapperImpl) ToEntities(userModels []*models.UserModel) ([]*user.User, error) {
	entities := make([]*user.User, 0, len(userModels))
	for _, model := range userModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
