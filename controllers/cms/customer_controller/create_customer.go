package customer_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// CreateCustomer godoc
// @Summary Create client
// @Description Creates a client record with a random password. The customer can later
// @Description claim it by signing up with the same email.
// @Tags CMS - Clients
// @Accept json
// @Produce json
// @Param body body models.CreateClientRequest true "Client"
// @Success 201 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/clients [post]
func CreateCustomer(c *gin.Context) {
	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorWithDetail(c, "Invalid request", err))
		return
	}

	user, err := services.GetUserService().CreateClient(c.Request.Context(), req)
	if err != nil {
		httputil.AbortWithError(c, "Failed to create client", err)
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Client created successfully", user.ToResponse()))
}
