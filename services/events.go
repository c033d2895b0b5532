package services

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"eventapi/models"
)

type EventService interface {
	CreateEvent(e *models.Event) error
	UpdateEvent(e *models.Event) error
	GetEventByID(id int64) (models.Event, error)
	GetAllEvents(p models.PageRequest) ([]models.Event, int64, error)
	GetEventsByCreator(creatorID int64, p models.PageRequest) ([]models.Event, int64, error)
	GetAllEventsByCreator(creatorID int64) ([]models.Event, error)
	GetUpcomingEvents(from time.Time, p models.PageRequest) ([]models.Event, int64, error)
	SearchEvents(keyword string, p models.PageRequest) ([]models.Event, int64, error)
	IsEventFull(eventID int64) (bool, error)
	DeleteEvent(id int64) bool
}

type eventService struct {
	events models.EventRepository
	regs   models.RegistrationRepository
	images models.ImageRepository
}

func NewEventService(events models.EventRepository, regs models.RegistrationRepository, images models.ImageRepository) EventService {
	return &eventService{events: events, regs: regs, images: images}
}

func (s *eventService) CreateEvent(e *models.Event) error { return s.events.Create(e) }
func (s *eventService) UpdateEvent(e *models.Event) error { return s.events.Update(e) }

func (s *eventService) GetEventByID(id int64) (models.Event, error) {
	e, err := s.events.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, ErrEventNotFound
	}
	return e, err
}

func (s *eventService) GetAllEvents(p models.PageRequest) ([]models.Event, int64, error) {
	return s.events.GetAll(p)
}

func (s *eventService) GetEventsByCreator(creatorID int64, p models.PageRequest) ([]models.Event, int64, error) {
	return s.events.GetByCreator(creatorID, p)
}

func (s *eventService) GetAllEventsByCreator(creatorID int64) ([]models.Event, error) {
	return s.events.GetAllByCreator(creatorID)
}

func (s *eventService) GetUpcomingEvents(from time.Time, p models.PageRequest) ([]models.Event, int64, error) {
	if from.IsZero() {
		from = time.Now()
	}
	return s.events.GetUpcoming(from, p)
}

func (s *eventService) SearchEvents(keyword string, p models.PageRequest) ([]models.Event, int64, error) {
	return s.events.Search(keyword, p)
}

// IsEventFull is the capacity policy: a negative max means unlimited,
// otherwise full once the registration count reaches the max. A missing
// event reports not-full.
func (s *eventService) IsEventFull(eventID int64) (bool, error) {
	e, err := s.events.GetByID(eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if e.MaxAttendees < 0 {
		return false, nil
	}
	count, err := s.regs.CountByEvent(eventID)
	if err != nil {
		return false, err
	}
	return count >= int64(e.MaxAttendees), nil
}

// DeleteEvent removes an event and its dependents. Images go first via a
// direct bulk delete, then registrations, then the event row itself; a
// failure at any step reports false rather than pretending partial success.
func (s *eventService) DeleteEvent(id int64) bool {
	if _, err := s.events.GetByID(id); err != nil {
		return false
	}

	if err := s.images.DeleteByEvent(id); err != nil {
		log.Printf("events: deleting images for event %d: %v", id, err)
		return false
	}
	if err := s.regs.DeleteByEvent(id); err != nil {
		log.Printf("events: deleting registrations for event %d: %v", id, err)
		return false
	}
	if err := s.events.Delete(id); err != nil {
		log.Printf("events: deleting event %d: %v", id, err)
		return false
	}
	return true
}
