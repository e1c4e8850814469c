package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tally/internal/application/product/usecases"
	"tally/internal/domain/product"
	"tally/internal/shared/logger"
	"tally/internal/shared/utils"
)

type ProductHandler struct {
	createCategoryUseCase *usecases.CreateCategoryUseCase
	listCategoriesUseCase *usecases.ListCategoriesUseCase
	createBeverageUseCase *usecases.CreateBeverageUseCase
	listBeveragesUseCase  *usecases.ListBeveragesUseCase
	updatePricingUseCase  *usecases.UpdateBeveragePricingUseCase
	deleteProductUseCase  *usecases.DeleteProductUseCase
	logger                logger.Interface
}

func NewProductHandler(
	createCategoryUC *usecases.CreateCategoryUseCase,
	listCategoriesUC *usecases.ListCategoriesUseCase,
	createBeverageUC *usecases.CreateBeverageUseCase,
	listBeveragesUC *usecases.ListBeveragesUseCase,
	updatePricingUC *usecases.UpdateBeveragePricingUseCase,
	deleteProductUC *usecases.DeleteProductUseCase,
	log logger.Interface,
) *ProductHandler {
	return &ProductHandler{
		createCategoryUseCase: createCategoryUC,
		listCategoriesUseCase: listCategoriesUC,
		createBeverageUseCase: createBeverageUC,
		listBeveragesUseCase:  listBeveragesUC,
		updatePricingUseCase:  updatePricingUC,
		deleteProductUseCase:  deleteProductUC,
		logger:                log,
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateBeverageRequest struct {
	Name       string             `json:"name" binding:"required"`
	CategoryID uint               `json:"category_id" binding:"required"`
	Size       float64            `json:"size" binding:"required"`
	Pricing    map[string]float64 `json:"pricing" binding:"required"`
}

type UpdatePricingRequest struct {
	Tier  string  `json:"tier" binding:"required"`
	Price float64 `json:"price"`
}

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createCategoryUseCase.Execute(c.Request.Context(), usecases.CreateCategoryCommand{
		Name: req.Name,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"id": result.Category.ID, "name": result.Category.Name})
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	result, err := h.listCategoriesUseCase.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	categories := make([]gin.H, 0, len(result.Categories))
	for _, category := range result.Categories {
		categories = append(categories, gin.H{"id": category.ID, "name": category.Name})
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"categories": categories})
}

func (h *ProductHandler) CreateBeverage(c *gin.Context) {
	var req CreateBeverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createBeverageUseCase.Execute(c.Request.Context(), usecases.CreateBeverageCommand{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Size:       req.Size,
		Pricing:    req.Pricing,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, serializeBeverage(result.Beverage))
}

func (h *ProductHandler) ListBeverages(c *gin.Context) {
	result, err := h.listBeveragesUseCase.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	beverages := make([]gin.H, 0, len(result.Beverages))
	for _, beverage := range result.Beverages {
		beverages = append(beverages, serializeBeverage(beverage))
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"beverages": beverages})
}

func (h *ProductHandler) UpdatePricing(c *gin.Context) {
	productID, err := parseProductID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err = h.updatePricingUseCase.Execute(c.Request.Context(), usecases.UpdateBeveragePricingCommand{
		ProductID: productID,
		Tier:      req.Tier,
		Price:     req.Price,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "pricing updated", nil)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := parseProductID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid product id")
		return
	}

	err = h.deleteProductUseCase.Execute(c.Request.Context(), usecases.DeleteProductCommand{
		ProductID: productID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "product deleted", nil)
}

func parseProductID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	return uint(id), err
}

func serializeBeverage(beverage *product.Beverage) gin.H {
	pricing := make(map[string]float64, len(beverage.Pricing))
	for tier, price := range beverage.Pricing {
		pricing[string(tier)] = price
	}

	out := gin.H{
		"product_id":  beverage.ProductID,
		"name":        beverage.Name,
		"category_id": beverage.CategoryID,
		"size":        beverage.Size,
		"pricing":     pricing,
	}
	if beverage.PicturePath != nil {
		out["picture_path"] = *beverage.PicturePath
	}
	return out
}
