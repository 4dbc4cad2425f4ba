package category_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// DeleteCategory godoc
// @Summary Delete category
// @Description Deletes the category. With removeProducts=true its products are deleted,
// @Description otherwise they move to the "No-category" category.
// @Tags CMS - Categories
// @Produce json
// @Param id path string true "Category ID"
// @Param removeProducts query bool false "Delete the products too"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	id, ok := httputil.ParseIDParam(c, "category")
	if !ok {
		return
	}

	removeProducts, err := strconv.ParseBool(c.DefaultQuery("removeProducts", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "removeProducts must be a boolean"))
		return
	}

	opts := models.DeleteCategoryOptions{RemoveProducts: removeProducts}
	if err := services.GetCategoryService().Delete(c.Request.Context(), id, opts); err != nil {
		httputil.AbortWithError(c, "Failed to delete category", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category deleted successfully", gin.H{"id": id, "removeProducts": removeProducts}))
}
