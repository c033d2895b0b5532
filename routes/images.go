package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventapi/models"
	"eventapi/services"
)

/* -------------------- Images -------------------- */

// eventFromPath resolves the :id segment shared by all image routes.
func (d *deps) eventFromPath(c *gin.Context) (models.Event, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return models.Event{}, false
	}
	event, err := d.events.GetEventByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found."})
		return models.Event{}, false
	}
	return event, true
}

// GET /api/events/:id/images
func (d *deps) getEventImages(c *gin.Context) {
	event, ok := d.eventFromPath(c)
	if !ok {
		return
	}
	images, err := d.images.GetImagesByEvent(event.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch images."})
		return
	}
	if images == nil {
		images = []models.Image{}
	}
	c.JSON(http.StatusOK, images)
}

// GET /api/events/:id/images/:imageId
func (d *deps) getImage(c *gin.Context) {
	event, ok := d.eventFromPath(c)
	if !ok {
		return
	}
	imageID, ok := pathID(c, "imageId")
	if !ok {
		return
	}
	im, err := d.images.GetImageByID(imageID)
	if err != nil || im.EventID != event.ID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Image not found."})
		return
	}
	c.JSON(http.StatusOK, im)
}

// POST /api/events/:id/images
func (d *deps) addImage(c *gin.Context) {
	event, ok := d.eventFromPath(c)
	if !ok {
		return
	}
	var payload models.ImageCreation
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	im, err := d.images.AddImage(event.ID, payload)
	if errors.Is(err, services.ErrImageLimit) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save image."})
		return
	}
	c.JSON(http.StatusCreated, im)
}

// POST /api/events/:id/images/batch
func (d *deps) addImagesBatch(c *gin.Context) {
	event, ok := d.eventFromPath(c)
	if !ok {
		return
	}
	var payload struct {
		Images []models.ImageCreation `json:"images" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	images, err := d.images.AddImages(event.ID, payload.Images)
	if errors.Is(err, services.ErrImageLimit) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot add images: the limit of 4 per event would be exceeded."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save images."})
		return
	}
	c.JSON(http.StatusCreated, images)
}

// POST /api/events/:id/images/keyword — pull photos from the search API and
// attach them, same cap as any other add.
func (d *deps) addImagesByKeyword(c *gin.Context) {
	event, ok := d.eventFromPath(c)
	if !ok {
		return
	}
	if d.photos == nil || !d.photos.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Photo search is not configured."})
		return
	}

	var payload struct {
		Keyword string `json:"keyword" binding:"required"`
		Count   int    `json:"count"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	if payload.Count == 0 {
		payload.Count = services.MaxImagesPerEvent
	}

	fetched, err := d.photos.GetRandomImages(c.Request.Context(), payload.Keyword, payload.Count)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Could not fetch photos."})
		return
	}

	images, err := d.images.AddImages(event.ID, fetched)
	if errors.Is(err, services.ErrImageLimit) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot add images: the limit of 4 per event would be exceeded."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save images."})
		return
	}
	c.JSON(http.StatusCreated, images)
}

// PUT /api/events/:id/images/:imageId — display order only.
func (d *deps) updateImageOrder(c *gin.Context) {
	event, ok := d.eventFromPath(c)
	if !ok {
		return
	}
	imageID, ok := pathID(c, "imageId")
	if !ok {
		return
	}
	var payload models.ImageCreation
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	im, err := d.images.UpdateImageOrder(event.ID, imageID, payload.DisplayOrder)
	if errors.Is(err, services.ErrImageNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Image not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update image."})
		return
	}
	c.JSON(http.StatusOK, im)
}

// DELETE /api/events/:id/images/:imageId
func (d *deps) deleteImage(c *gin.Context) {
	event, ok := d.eventFromPath(c)
	if !ok {
		return
	}
	imageID, ok := pathID(c, "imageId")
	if !ok {
		return
	}
	err := d.images.DeleteImage(event.ID, imageID)
	if errors.Is(err, services.ErrImageNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Image not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete image."})
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/events/:id/images/all
func (d *deps) deleteAllImages(c *gin.Context) {
	event, ok := d.eventFromPath(c)
	if !ok {
		return
	}
	if err := d.images.DeleteAllImages(event.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete images."})
		return
	}
	c.Status(http.StatusNoContent)
}
