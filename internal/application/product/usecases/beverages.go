package usecases

import (
	"context"
	"strings"

	"tally/internal/domain/product"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

type CreateBeverageCommand struct {
	Name       string
	CategoryID uint
	Size       float64
	// Pricing maps tier name to price; all tiers must be present.
	Pricing map[string]float64
}

type CreateBeverageResult struct {
	Beverage *product.Beverage
}

type CreateBeverageUseCase struct {
	productRepo product.Repository
	logger      logger.Interface
}

func NewCreateBeverageUseCase(productRepo product.Repository, log logger.Interface) *CreateBeverageUseCase {
	return &CreateBeverageUseCase{
		productRepo: productRepo,
		logger:      log,
	}
}

func (uc *CreateBeverageUseCase) Execute(ctx context.Context, cmd CreateBeverageCommand) (*CreateBeverageResult, error) {
	pricing := make(map[product.PricingTier]float64, len(cmd.Pricing))
	for tier, price := range cmd.Pricing {
		parsed := product.PricingTier(tier)
		if !parsed.IsValid() {
			return nil, apperrors.NewValidationError("unknown pricing tier: " + tier)
		}
		pricing[parsed] = price
	}

	beverage, err := product.NewBeverage(strings.TrimSpace(cmd.Name), cmd.CategoryID, cmd.Size, pricing)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.productRepo.CreateBeverage(ctx, beverage); err != nil {
		return nil, err
	}

	uc.logger.Infow("beverage created", "product_id", beverage.ProductID, "name", beverage.Name)
	return &CreateBeverageResult{Beverage: beverage}, nil
}

type ListBeveragesResult struct {
	Beverages []*product.Beverage
}

type ListBeveragesUseCase struct {
	productRepo product.Repository
	logger      logger.Interface
}

func NewListBeveragesUseCase(productRepo product.Repository, log logger.Interface) *ListBeveragesUseCase {
	return &ListBeveragesUseCase{
		productRepo: productRepo,
		logger:      log,
	}
}

func (uc *ListBeveragesUseCase) Execute(ctx context.Context) (*ListBeveragesResult, error) {
	beverages, err := uc.productRepo.ListBeverages(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list beverages", "error", err)
		return nil, err
	}

	return &ListBeveragesResult{Beverages: beverages}, nil
}

type UpdateBeveragePricingCommand struct {
	ProductID uint
	Tier      string
	Price     float64
}

type UpdateBeveragePricingUseCase struct {
	productRepo product.Repository
	logger      logger.Interface
}

func NewUpdateBeveragePricingUseCase(productRepo product.Repository, log logger.Interface) *UpdateBeveragePricingUseCase {
	return &UpdateBeveragePricingUseCase{
		productRepo: productRepo,
		logger:      log,
	}
}

func (uc *UpdateBeveragePricingUseCase) Execute(ctx context.Context, cmd UpdateBeveragePricingCommand) error {
	tier := product.PricingTier(cmd.Tier)
	if !tier.IsValid() {
		return apperrors.NewValidationError("unknown pricing tier: " + cmd.Tier)
	}
	if cmd.Price < 0 {
		return apperrors.NewValidationError("price cannot be negative")
	}

	if err := uc.productRepo.UpdatePricing(ctx, cmd.ProductID, tier, cmd.Price); err != nil {
		return err
	}

	uc.logger.Infow("beverage pricing updated",
		"product_id", cmd.ProductID,
		"tier", cmd.Tier,
		"price", cmd.Price)
	return nil
}

type DeleteProductCommand struct {
	ProductID uint
}

type DeleteProductUseCase struct {
	productRepo product.Repository
	logger      logger.Interface
}

func NewDeleteProductUseCase(productRepo product.Repository, log logger.Interface) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		productRepo: productRepo,
		logger:      log,
	}
}

func (uc *DeleteProductUseCase) Execute(ctx context.Context, cmd DeleteProductCommand) error {
	if err := uc.productRepo.DeleteProduct(ctx, cmd.ProductID); err != nil {
		return err
	}

	uc.logger.Infow("product deleted", "product_id", cmd.ProductID)
	return nil
}
