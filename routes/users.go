package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventapi/models"
)

/* -------------------- Users -------------------- */

// GET /api/users/me
func (d *deps) getCurrentUser(c *gin.Context) {
	user, err := d.users.GetByID(c.GetInt64("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized."})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /api/users
func (d *deps) getUsers(c *gin.Context) {
	users, err := d.users.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch users."})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func (d *deps) getUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := d.users.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /api/users
func (d *deps) createUser(c *gin.Context) {
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
	c.JSON(http.StatusCreated, u)
}

// PUT /api/users/:id
func (d *deps) updateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := d.users.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	// A changed email must not collide with another account.
	if req.Email != user.Email {
		taken, err := d.users.ExistsByEmail(req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update user."})
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{"message": "Email is already in use."})
			return
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Password = req.Password // empty keeps the stored hash
	if err := d.users.Update(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update user."})
		return
	}
	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// DELETE /api/users/:id — owned events go first, each taking its images and
// registrations along, then the user's own registrations, then the row.
// Nothing may still reference the user when the final delete runs.
func (d *deps) deleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := d.users.GetByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	owned, err := d.events.GetAllEventsByCreator(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete user."})
		return
	}
	for _, event := range owned {
		if !d.events.DeleteEvent(event.ID) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete user."})
			return
		}
	}
	if err := d.regs.CancelAllByUser(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete user."})
		return
	}
	if err := d.users.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete user."})
		return
	}

	if d.inv != nil && len(owned) > 0 {
		d.inv.PurgeEventsList(c)
		for _, event := range owned {
			d.inv.PurgeEventItem(c, event.ID)
		}
	}
	c.Status(http.StatusNoContent)
}
