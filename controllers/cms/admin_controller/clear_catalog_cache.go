package admin_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
	"github.com/CopperGroup/JoyFer/utils"
)

// ClearCatalogCache godoc
// @Summary Clear the catalog cache
// @Description Drops every cached catalog snapshot; the next read rebuilds it from the database
// @Tags CMS - Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/cache/clear [post]
func ClearCatalogCache(c *gin.Context) {
	if err := services.GetCatalogService().ClearCatalogCache(c.Request.Context()); err != nil {
		httputil.AbortWithError(c, "Failed to clear catalog cache", err)
		return
	}
	utils.Log.Info("🧹 Catalog cache cleared by admin request")
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Catalog cache cleared", nil))
}
