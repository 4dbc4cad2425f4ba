package feed_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetFeedConfigs godoc
// @Summary List stored feed configs
// @Tags CMS - Feed
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.FeedConfigRecord}
// @Security BearerAuth
// @Router /api/v1/admin/feed/configs [get]
func GetFeedConfigs(c *gin.Context) {
	records, err := services.GetFeedService().ListConfigs(c.Request.Context())
	if err != nil {
		httputil.AbortWithError(c, "Failed to fetch feed configs", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Feed configs retrieved successfully", records))
}

// GetDefaultFeedConfig godoc
// @Summary Default YML feed config
// @Tags CMS - Feed
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.FeedConfig}
// @Security BearerAuth
// @Router /api/v1/admin/feed/configs/default [get]
func GetDefaultFeedConfig(c *gin.Context) {
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Default feed config", models.DefaultFeedConfig()))
}

// GetFeedConfig godoc
// @Summary Get stored feed config
// @Tags CMS - Feed
// @Produce json
// @Param name path string true "Config name"
// @Success 200 {object} models.ApiResponse{data=models.FeedConfigRecord}
// @Failure 404 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/feed/configs/{name} [get]
func GetFeedConfig(c *gin.Context) {
	record, err := services.GetFeedService().GetConfig(c.Request.Context(), c.Param("name"))
	if err != nil {
		httputil.AbortWithError(c, "Feed config not found", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Feed config retrieved successfully", record))
}

// SaveFeedConfig godoc
// @Summary Store feed config
// @Description Validates the path map and stores it under its name, replacing an existing one
// @Tags CMS - Feed
// @Accept json
// @Produce json
// @Param body body models.SaveFeedConfigRequest true "Named config"
// @Success 200 {object} models.ApiResponse{data=models.FeedConfigRecord}
// @Failure 400 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/feed/configs [put]
func SaveFeedConfig(c *gin.Context) {
	var req models.SaveFeedConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid request", err))
		return
	}

	record, err := services.GetFeedService().SaveConfig(c.Request.Context(), req)
	if err != nil {
		httputil.AbortWithError(c, "Failed to save feed config", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Feed config saved successfully", record))
}

// DeleteFeedConfig godoc
// @Summary Delete stored feed config
// @Tags CMS - Feed
// @Produce json
// @Param name path string true "Config name"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/feed/configs/{name} [delete]
func DeleteFeedConfig(c *gin.Context) {
	name := c.Param("name")
	if err := services.GetFeedService().DeleteConfig(c.Request.Context(), name); err != nil {
		httputil.AbortWithError(c, "Failed to delete feed config", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Feed config deleted successfully", gin.H{"name": name}))
}
