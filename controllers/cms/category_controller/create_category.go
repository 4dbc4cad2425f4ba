package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// CreateCategory godoc
// @Summary Create category
// @Description Creates a category and moves the listed products into it
// @Tags CMS - Categories
// @Accept json
// @Produce json
// @Param category body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.ApiResponse{data=models.Category}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/categories [post]
func CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid request", err))
		return
	}

	category, err := services.GetCategoryService().Create(c.Request.Context(), req)
	if err != nil {
		httputil.AbortWithError(c, "Failed to create category", err)
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Category created successfully", category))
}
