package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eventapi/models"
	"eventapi/services"
)

/* --------------- Registrations ------------------ */

// POST /api/registrations/user/:userId
func (d *deps) registerForEvent(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var req struct {
		EventID int64 `json:"eventId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	reg, err := d.regs.RegisterUserForEvent(userID, req.EventID)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, reg)
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrEventNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrEventFull), errors.Is(err, services.ErrAlreadyRegistered):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not register. Try again later."})
	}
}

// GET /api/registrations/:id
func (d *deps) getRegistration(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reg, err := d.regs.GetRegistrationByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Registration not found."})
		return
	}
	c.JSON(http.StatusOK, reg)
}

// GET /api/registrations/user/:userId
func (d *deps) getRegistrationsByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if _, err := d.users.GetByID(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}
	p := pageRequest(c, "registrationTime", "desc")
	regs, total, err := d.regs.GetRegistrationsByUser(userID, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch registrations."})
		return
	}
	c.JSON(http.StatusOK, models.NewPagedResponse(regs, p, total))
}

// GET /api/registrations/event/:eventId
func (d *deps) getRegistrationsByEvent(c *gin.Context) {
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}
	if _, err := d.events.GetEventByID(eventID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}
	p := pageRequest(c, "registrationTime", "desc")
	regs, total, err := d.regs.GetRegistrationsByEvent(eventID, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch registrations."})
		return
	}
	c.JSON(http.StatusOK, models.NewPagedResponse(regs, p, total))
}

// PATCH /api/registrations/:id/attendance?attended=
func (d *deps) updateAttendance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	attended, err := strconv.ParseBool(c.Query("attended"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse attended."})
		return
	}

	reg, err := d.regs.UpdateAttendance(id, attended)
	if errors.Is(err, services.ErrRegistrationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Registration not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update attendance."})
		return
	}
	c.JSON(http.StatusOK, reg)
}

// DELETE /api/registrations/:id
func (d *deps) cancelRegistration(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := d.regs.GetRegistrationByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Registration not found."})
		return
	}
	if err := d.regs.CancelRegistration(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not cancel registration."})
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/registrations/user/:userId/event/:eventId
// Cancelling a pair that never registered is a no-op, not an error.
func (d *deps) cancelRegistrationByPair(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	eventID, ok := pathID(c, "eventId")
	if !ok {
		return
	}
	if _, err := d.users.GetByID(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}
	if _, err := d.events.GetEventByID(eventID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}

	if err := d.regs.CancelRegistrationByUserAndEvent(userID, eventID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not cancel registration."})
		return
	}
	c.Status(http.StatusNoContent)
}
