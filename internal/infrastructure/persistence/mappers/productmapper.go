package mappers

import (
	"tally/internal/domain/product"
	"tally/internal/infrastructure/persistence/models"
)

// ProductMapper converts between the catalogue domain types and the three
// persistence models a beverage is spread across.
type ProductMapper interface {
	CategoryToEntity(model *models.CategoryModel) *product.Category
	CategoriesToEntities(models []*models.CategoryModel) []*product.Category

	// BeverageToEntity assembles a beverage from its product row, beverage
	// row, and pricing rows.
	BeverageToEntity(productModel *models.ProductModel, beverageModel *models.BeverageModel, pricingModels []*models.BeveragePricingModel) *product.Beverage

	// BeverageToModels splits a beverage entity into its persistence rows.
	BeverageToModels(entity *product.Beverage) (*models.ProductModel, *models.BeverageModel, []*models.BeveragePricingModel)
}

// ProductMapperImpl is the concrete implementation of ProductMapper
type ProductMapperImpl struct{}

// NewProductMapper creates a new product mapper
func NewProductMapper() ProductMapper {
	return &ProductMapperImpl{}
}

func (m *ProductMapperImpl) CategoryToEntity(model *models.CategoryModel) *product.Category {
	if model == nil {
		return nil
	}
	return &product.Category{ID: model.ID, Name: model.Name}
}

func (m *ProductMapperImpl) CategoriesToEntities(categoryModels []*models.CategoryModel) []*product.Category {
	entities := make([]*product.Category, 0, len(categoryModels))
	for _, model := range categoryModels {
		if entity := m.CategoryToEntity(model); entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities
}

// BeverageToEntity assembles a beverage from its persistence rows.
func (m *ProductMapperImpl) BeverageToEntity(productModel *models.ProductModel, beverageModel *models.BeverageModel, pricingModels []*models.BeveragePricingModel) *product.Beverage {
	if productModel == nil || beverageModel == nil {
		return nil
	}

	pricing := make(map[product.PricingTier]float64, len(pricingModels))
	for _, p := range pricingModels {
		pricing[product.PricingTier(p.Tier)] = p.Price
	}

	return &product.Beverage{
		ProductID:   productModel.ID,
		Name:        productModel.Name,
		CategoryID:  productModel.CategoryID,
		Size:        beverageModel.Size,
		Pricing:     pricing,
		PicturePath: productModel.PicturePath,
		CreatedAt:   productModel.CreatedAt,
	}
}

// BeverageToModels splits a beverage entity into its persistence rows. The
// product id of the dependent rows is filled in after the product insert
// assigns one.
func (m *ProductMapperImpl) BeverageToModels(entity *product.Beverage) (*models.ProductModel, *models.BeverageModel, []*models.BeveragePricingModel) {
	if entity == nil {
		return nil, nil, nil
	}

	productModel := &models.ProductModel{
		ID:          entity.ProductID,
		Name:        entity.Name,
		CategoryID:  entity.CategoryID,
		ProductType: "beverage",
		PicturePath: entity.PicturePath,
		CreatedAt:   entity.CreatedAt,
	}
	beverageModel := &models.BeverageModel{
		ProductID: entity.ProductID,
		Size:      entity.Size,
	}

	pricingModels := make([]*models.BeveragePricingModel, 0, len(entity.Pricing))
	for tier, price := range entity.Pricing {
		pricingModels = append(pricingModels, &models.BeveragePricingModel{
			ProductID: entity.ProductID,
			Tier:      string(tier),
			Price:     price,
		})
	}

	return productModel, beverageModel, pricingModels
}
