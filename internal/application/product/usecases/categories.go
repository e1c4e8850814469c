// Package usecases implements the beverage catalogue application logic.
package usecases

import (
	"context"
	"strings"

	"tally/internal/domain/product"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

type CreateCategoryCommand struct {
	Name string
}

type CreateCategoryResult struct {
	Category *product.Category
}

type CreateCategoryUseCase struct {
	productRepo product.Repository
	logger      logger.Interface
}

func NewCreateCategoryUseCase(productRepo product.Repository, log logger.Interface) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		productRepo: productRepo,
		logger:      log,
	}
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, cmd CreateCategoryCommand) (*CreateCategoryResult, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("category name is required")
	}

	category, err := uc.productRepo.CreateCategory(ctx, name)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("category created", "category_id", category.ID, "name", name)
	return &CreateCategoryResult{Category: category}, nil
}

type ListCategoriesResult struct {
	Categories []*product.Category
}

type ListCategoriesUseCase struct {
	productRepo product.Repository
	logger      logger.Interface
}

func NewListCategoriesUseCase(productRepo product.Repository, log logger.Interface) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		productRepo: productRepo,
		logger:      log,
	}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context) (*ListCategoriesResult, error) {
	categories, err := uc.productRepo.ListCategories(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list categories", "error", err)
		return nil, err
	}

	return &ListCategoriesResult{Categories: categories}, nil
}
