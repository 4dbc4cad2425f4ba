package feed_controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// ProceedFeed godoc
// @Summary Synchronize parsed feed products
// @Description Creates or updates the selected products by external id and deletes
// @Description previously fetched products that are no longer in the feed
// @Tags CMS - Feed
// @Accept json
// @Produce json
// @Param body body models.FeedProceedRequest true "Parsed products and selected external ids"
// @Success 200 {object} models.ApiResponse{data=models.FeedSyncResult}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/feed/proceed [post]
func ProceedFeed(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
	defer cancel()

	var req models.FeedProceedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid request", err))
		return
	}

	result, err := services.GetFeedService().Proceed(ctx, req)
	if err != nil {
		httputil.AbortWithError(c, "Failed to proceed products", err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Products synchronized successfully", result))
}
