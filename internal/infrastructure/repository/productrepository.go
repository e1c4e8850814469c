package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tally/internal/domain/product"
	"tally/internal/infrastructure/persistence/mappers"
	"tally/internal/infrastructure/persistence/models"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

// ProductRepository implements the catalogue store. A beverage spans three
// tables, so writes that touch more than one run inside a transaction.
type ProductRepository struct {
	db     *gorm.DB
	mapper mappers.ProductMapper
	logger logger.Interface
}

// NewProductRepository creates a new product repository
func NewProductRepository(gdb *gorm.DB, log logger.Interface) product.Repository {
	return &ProductRepository{
		db:     gdb,
		mapper: mappers.NewProductMapper(),
		logger: log,
	}
}

// CreateCategory persists a category.
func (r *ProductRepository) CreateCategory(ctx context.Context, name string) (*product.Category, error) {
	model := &models.CategoryModel{Name: name}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		appErr := apperrors.FromStoreError(err)
		if apperrors.IsConflictError(appErr) {
			return nil, apperrors.NewConflictError("category name already exists")
		}
		r.logger.Errorw("failed to create category", "name", name, "error", err)
		return nil, appErr
	}

	return r.mapper.CategoryToEntity(model), nil
}

// ListCategories returns all categories.
func (r *ProductRepository) ListCategories(ctx context.Context) ([]*product.Category, error) {
	var categoryModels []*models.CategoryModel

	if err := r.db.WithContext(ctx).Order("name").Find(&categoryModels).Error; err != nil {
		r.logger.Errorw("failed to list categories", "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	return r.mapper.CategoriesToEntities(categoryModels), nil
}

// CreateBeverage persists the product, beverage, and pricing rows in one
// transaction and writes the assigned product id back onto the entity.
func (r *ProductRepository) CreateBeverage(ctx context.Context, beverage *product.Beverage) error {
	productModel, beverageModel, pricingModels := r.mapper.BeverageToModels(beverage)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CategoryModel{}).Where("id = ?", productModel.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.NewNotFoundError("category not found")
		}

		if err := tx.Create(productModel).Error; err != nil {
			return err
		}

		beverageModel.ProductID = productModel.ID
		if err := tx.Create(beverageModel).Error; err != nil {
			return err
		}

		for _, pricing := range pricingModels {
			pricing.ProductID = productModel.ID
		}
		return tx.Create(pricingModels).Error
	})
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return err
		}
		r.logger.Errorw("failed to create beverage", "name", beverage.Name, "error", err)
		return apperrors.FromStoreError(err)
	}

	beverage.ProductID = productModel.ID
	r.logger.Infow("beverage created", "product_id", beverage.ProductID, "name", beverage.Name)
	return nil
}

// ListBeverages returns all beverages with their pricing maps.
func (r *ProductRepository) ListBeverages(ctx context.Context) ([]*product.Beverage, error) {
	var productModels []*models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("product_type = ?", "beverage").
		Order("name").
		Find(&productModels).Error; err != nil {
		r.logger.Errorw("failed to list products", "error", err)
		return nil, apperrors.FromStoreError(err)
	}
	if len(productModels) == 0 {
		return []*product.Beverage{}, nil
	}

	ids := make([]uint, 0, len(productModels))
	for _, p := range productModels {
		ids = append(ids, p.ID)
	}

	var beverageModels []*models.BeverageModel
	if err := r.db.WithContext(ctx).Where("product_id IN ?", ids).Find(&beverageModels).Error; err != nil {
		r.logger.Errorw("failed to load beverage rows", "error", err)
		return nil, apperrors.FromStoreError(err)
	}
	beveragesByID := make(map[uint]*models.BeverageModel, len(beverageModels))
	for _, b := range beverageModels {
		beveragesByID[b.ProductID] = b
	}

	var pricingModels []*models.BeveragePricingModel
	if err := r.db.WithContext(ctx).Where("product_id IN ?", ids).Find(&pricingModels).Error; err != nil {
		r.logger.Errorw("failed to load pricing rows", "error", err)
		return nil, apperrors.FromStoreError(err)
	}
	pricingByID := make(map[uint][]*models.BeveragePricingModel, len(productModels))
	for _, p := range pricingModels {
		pricingByID[p.ProductID] = append(pricingByID[p.ProductID], p)
	}

	beverages := make([]*product.Beverage, 0, len(productModels))
	for _, p := range productModels {
		if entity := r.mapper.BeverageToEntity(p, beveragesByID[p.ID], pricingByID[p.ID]); entity != nil {
			beverages = append(beverages, entity)
		}
	}
	return beverages, nil
}

// GetBeverage returns one beverage by product id.
func (r *ProductRepository) GetBeverage(ctx context.Context, productID uint) (*product.Beverage, error) {
	var productModel models.ProductModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_type = ?", productID, "beverage").
		First(&productModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("product not found")
		}
		r.logger.Errorw("failed to get product", "product_id", productID, "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	var beverageModel models.BeverageModel
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&beverageModel).Error; err != nil {
		r.logger.Errorw("failed to get beverage row", "product_id", productID, "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	var pricingModels []*models.BeveragePricingModel
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Find(&pricingModels).Error; err != nil {
		r.logger.Errorw("failed to get pricing rows", "product_id", productID, "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	return r.mapper.BeverageToEntity(&productModel, &beverageModel, pricingModels), nil
}

// UpdatePricing replaces the price of one tier of a product.
func (r *ProductRepository) UpdatePricing(ctx context.Context, productID uint, tier product.PricingTier, price float64) error {
	result := r.db.WithContext(ctx).
		Model(&models.BeveragePricingModel{}).
		Where("product_id = ? AND tier = ?", productID, string(tier)).
		Update("price", price)
	if result.Error != nil {
		r.logger.Errorw("failed to update pricing", "product_id", productID, "error", result.Error)
		return apperrors.FromStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("no price row for product and tier")
	}

	return nil
}

// DeleteProduct removes a product and its dependent rows.
func (r *ProductRepository) DeleteProduct(ctx context.Context, productID uint) error {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.BeveragePricingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.BeverageModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", productID).Delete(&models.ProductModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to delete product", "product_id", productID, "error", err)
		return apperrors.FromStoreError(err)
	}
	if deleted == 0 {
		return apperrors.NewNotFoundError("product not found")
	}

	r.logger.Infow("product deleted", "product_id", productID)
	return nil
}
