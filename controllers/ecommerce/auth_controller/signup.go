package auth_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/services"
	"github.com/CopperGroup/JoyFer/utils"
)

// Signup godoc
// @Summary Register a customer
// @Description Creates the user, or claims a client record an admin created for the same email
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.SignupRequest true "Username, email and password"
// @Success 200 {object} map[string]interface{} "message, success, savedUser"
// @Failure 400 {object} map[string]string "User already exists"
// @Failure 500 {object} map[string]string
// @Router /api/users/signup [post]
// @Router /api/v1/users/signup [post]
func Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.GetUserService().Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		utils.Log.Errorf("[auth.signup] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.Log.Infof("[auth.signup] user signed up: %s", user.Email)
	c.JSON(http.StatusOK, gin.H{
		"message":   "User created successfully",
		"success":   true,
		"savedUser": user.ToResponse(),
	})
}
