package customer_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/controllers/httputil"
	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
)

// GetCustomers godoc
// @Summary List clients
// @Description Paginated customer list with optional search over email, name and username
// @Tags CMS - Clients
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search text"
// @Success 200 {object} models.ApiResponse{data=[]models.UserResponse}
// @Failure 500 {object} models.ApiResponse
// @Security BearerAuth
// @Router /api/v1/admin/clients [get]
func GetCustomers(c *gin.Context) {
	page, limit := httputil.Pagination(c, 20)

	users, total, err := services.GetUserService().ListClients(c.Request.Context(), page, limit, c.Query("search"))
	if err != nil {
		httputil.AbortWithError(c, "Failed to fetch clients", err)
		return
	}

	data := make([]models.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, users[i].ToResponse())
	}
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Clients retrieved successfully", data,
		models.NewPagination(page, limit, total)))
}
