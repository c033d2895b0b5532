package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventapi/models"
	"eventapi/utils"
)

/* --------------------- Auth --------------------- */

type registrationRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func (d *deps) registerUser(c *gin.Context) {
	var req registrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	taken, err := d.users.ExistsByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save user."})
		return
	}
	if taken {
		c.JSON(http.StatusConflict, gin.H{"message": "Email is already in use."})
		return
	}

	u := models.User{Name: req.Name, Email: req.Email, Password: req.Password}
	if err := d.users.Create(&u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save user."})
		return
	}

	token, err := utils.GenerateToken(u.Email, u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not authenticate user."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
}

// POST /api/auth/login
func (d *deps) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	user, err := d.users.ValidateCredentials(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Could not authenticate user."})
		return
	}

	token, err := utils.GenerateToken(user.Email, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not authenticate user."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful!", "token": token})
}
