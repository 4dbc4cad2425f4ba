package feed_controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
	"github.com/CopperGroup/JoyFer/utils"
)

// PreviewFeed godoc
// @Summary Parse a supplier feed
// @Description Parses inline XML or downloads it from url, using the inline config, a stored
// @Description config by name, or the YML default. Nothing is written to the database.
// @Tags CMS - Feed
// @Accept json
// @Produce json
// @Param body body models.FeedPreviewRequest true "Feed source and config"
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/feed/preview [post]
func PreviewFeed(c *gin.Context) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	var req models.FeedPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid request", err))
		return
	}

	products, err := services.GetFeedService().Preview(ctx, req)
	if err != nil {
		httputil.AbortWithError(c, "Failed to parse feed", err)
		return
	}

	utils.Log.Infof("📦 Feed preview: %d products in %v", len(products), time.Since(start))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Feed parsed successfully", products))
}
