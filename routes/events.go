package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eventapi/models"
)

/* -------------------- Events -------------------- */

type eventPayload struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	StartTime    time.Time `json:"startTime" binding:"required"`
	EndTime      time.Time `json:"endTime" binding:"required"`
	MaxAttendees int       `json:"maxAttendees"`
}

// GET /api/events
func (d *deps) getEvents(c *gin.Context) {
	p := pageRequest(c, "startTime", "desc")
	events, total, err := d.events.GetAllEvents(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch events. Try again later."})
		return
	}
	c.JSON(http.StatusOK, models.NewPagedResponse(events, p, total))
}

// GET /api/events/:id
func (d *deps) getEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	event, err := d.events.GetEventByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}
	c.JSON(http.StatusOK, event)
}

// GET /api/events/upcoming
func (d *deps) getUpcomingEvents(c *gin.Context) {
	p := pageRequest(c, "startTime", "asc")

	var from time.Time
	if raw := c.Query("fromDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse fromDate."})
			return
		}
		from = parsed
	}

	events, total, err := d.events.GetUpcomingEvents(from, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch events. Try again later."})
		return
	}
	c.JSON(http.StatusOK, models.NewPagedResponse(events, p, total))
}

// GET /api/events/search?keyword=
func (d *deps) searchEvents(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "keyword is required."})
		return
	}
	p := pageRequest(c, "startTime", "desc")
	events, total, err := d.events.SearchEvents(keyword, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch events. Try again later."})
		return
	}
	c.JSON(http.StatusOK, models.NewPagedResponse(events, p, total))
}

// GET /api/events/creator/:creatorId
func (d *deps) getEventsByCreator(c *gin.Context) {
	creatorID, ok := pathID(c, "creatorId")
	if !ok {
		return
	}
	if _, err := d.users.GetByID(creatorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Creator not found."})
		return
	}
	p := pageRequest(c, "startTime", "desc")
	events, total, err := d.events.GetEventsByCreator(creatorID, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch events. Try again later."})
		return
	}
	c.JSON(http.StatusOK, models.NewPagedResponse(events, p, total))
}

// POST /api/events
func (d *deps) createEvent(c *gin.Context) {
	caller, err := d.users.GetByID(c.GetInt64("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found."})
		return
	}
	if !caller.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Only admins can create events."})
		return
	}

	var payload eventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	event := models.Event{
		Title:        payload.Title,
		Description:  payload.Description,
		Location:     payload.Location,
		StartTime:    payload.StartTime,
		EndTime:      payload.EndTime,
		MaxAttendees: payload.MaxAttendees,
		CreatorID:    caller.ID,
	}
	if err := d.events.CreateEvent(&event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create event. Try again later."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c, event.ID)
	}
	c.JSON(http.StatusCreated, event)
}

// PUT /api/events/:id
func (d *deps) updateEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	old, err := d.events.GetEventByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}

	var payload eventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	event := models.Event{
		ID:           id,
		Title:        payload.Title,
		Description:  payload.Description,
		Location:     payload.Location,
		StartTime:    payload.StartTime,
		EndTime:      payload.EndTime,
		MaxAttendees: payload.MaxAttendees,
		CreatorID:    old.CreatorID,
	}
	if err := d.events.UpdateEvent(&event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update event. Try again later."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c, id)
	}
	c.JSON(http.StatusOK, event)
}

// DELETE /api/events/:id — clears images and registrations along the way.
func (d *deps) deleteEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := d.events.GetEventByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return
	}
	if !d.events.DeleteEvent(id) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete the event."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
		d.inv.PurgeEventItem(c, id)
	}
	c.Status(http.StatusNoContent)
}
