package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
	"github.com/CopperGroup/JoyFer/utils"
)

// CreateProduct godoc
// @Summary Create a new product
// @Description Creates a product, adds it to its category and clears the catalog cache
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Param product body models.ProductRequest true "Product details"
// @Success 201 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/products [post]
func CreateProduct(c *gin.Context) {
	// Step 1: Parse JSON request
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Log.Warnf("⚠️ Invalid product request: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid request", err))
		return
	}

	// Step 2: Persist and re-aggregate the category
	product, err := services.GetProductService().Create(c.Request.Context(), req)
	if err != nil {
		httputil.AbortWithError(c, "Failed to create product", err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Product created successfully", product))
}
