package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetProducts godoc
// @Summary List products
// @Description Paginated product table with optional search over name, vendor and external id
// @Tags CMS - Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search text"
// @Param category query string false "Exact category name"
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/products [get]
func GetProducts(c *gin.Context) {
	page, limit := httputil.Pagination(c, 20)

	products, total, err := services.GetProductService().List(c.Request.Context(), services.ProductListParams{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		httputil.AbortWithError(c, "Failed to fetch products", err)
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products retrieved successfully", products,
		models.NewPagination(page, limit, total)))
}
