package services

import (
	"database/sql"
	"errors"
	"time"

	"eventapi/models"
)

// MaxImagesPerEvent caps how many images an event can carry.
const MaxImagesPerEvent = 4

type ImageService interface {
	AddImage(eventID int64, in models.ImageCreation) (models.Image, error)
	AddImages(eventID int64, in []models.ImageCreation) ([]models.Image, error)
	GetImageByID(id int64) (models.Image, error)
	GetImagesByEvent(eventID int64) ([]models.Image, error)
	UpdateImageOrder(eventID, id int64, displayOrder int) (models.Image, error)
	DeleteImage(eventID, id int64) error
	DeleteAllImages(eventID int64) error
}

type imageService struct {
	images models.ImageRepository
}

func NewImageService(images models.ImageRepository) ImageService {
	return &imageService{images: images}
}

func (s *imageService) AddImage(eventID int64, in models.ImageCreation) (models.Image, error) {
	count, err := s.images.CountByEvent(eventID)
	if err != nil {
		return models.Image{}, err
	}
	if count >= MaxImagesPerEvent {
		return models.Image{}, ErrImageLimit
	}

	im := models.Image{
		EventID:      eventID,
		ImageURL:     in.ImageURL,
		DisplayOrder: in.DisplayOrder,
		CreatedAt:    time.Now(),
	}
	if err := s.images.Create(&im); err != nil {
		return models.Image{}, err
	}
	return im, nil
}

// AddImages is all-or-nothing: if existing + batch would exceed the cap,
// nothing is inserted.
func (s *imageService) AddImages(eventID int64, in []models.ImageCreation) ([]models.Image, error) {
	count, err := s.images.CountByEvent(eventID)
	if err != nil {
		return nil, err
	}
	if count+int64(len(in)) > MaxImagesPerEvent {
		return nil, ErrImageLimit
	}

	out := make([]models.Image, 0, len(in))
	for _, c := range in {
		im := models.Image{
			EventID:      eventID,
			ImageURL:     c.ImageURL,
			DisplayOrder: c.DisplayOrder,
			CreatedAt:    time.Now(),
		}
		if err := s.images.Create(&im); err != nil {
			return nil, err
		}
		out = append(out, im)
	}
	return out, nil
}

func (s *imageService) GetImageByID(id int64) (models.Image, error) {
	im, err := s.images.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Image{}, ErrImageNotFound
	}
	return im, err
}

func (s *imageService) GetImagesByEvent(eventID int64) ([]models.Image, error) {
	return s.images.GetByEvent(eventID)
}

// UpdateImageOrder changes only the display order. An image that does not
// belong to eventID is treated as not found.
func (s *imageService) UpdateImageOrder(eventID, id int64, displayOrder int) (models.Image, error) {
	im, err := s.GetImageByID(id)
	if err != nil {
		return models.Image{}, err
	}
	if im.EventID != eventID {
		return models.Image{}, ErrImageNotFound
	}
	if err := s.images.UpdateOrder(id, displayOrder); err != nil {
		return models.Image{}, err
	}
	im.DisplayOrder = displayOrder
	return im, nil
}

func (s *imageService) DeleteImage(eventID, id int64) error {
	im, err := s.GetImageByID(id)
	if err != nil {
		return err
	}
	if im.EventID != eventID {
		return ErrImageNotFound
	}
	return s.images.Delete(id)
}

func (s *imageService) DeleteAllImages(eventID int64) error {
	return s.images.DeleteByEvent(eventID)
}
