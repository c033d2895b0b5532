package services

import (
	"database/sql"
	"errors"
	"time"

	"eventapi/models"
	"eventapi/notify"
)

// Layout of event dates in outgoing mail.
const mailDateLayout = "2006-01-02 15:04"

type RegistrationService interface {
	RegisterUserForEvent(userID, eventID int64) (models.Registration, error)
	CancelRegistration(id int64) error
	CancelRegistrationByUserAndEvent(userID, eventID int64) error
	CancelAllByUser(userID int64) error
	GetRegistrationByID(id int64) (models.Registration, error)
	GetRegistrationsByUser(userID int64, p models.PageRequest) ([]models.Registration, int64, error)
	GetRegistrationsByEvent(eventID int64, p models.PageRequest) ([]models.Registration, int64, error)
	UpdateAttendance(id int64, attended bool) (models.Registration, error)
}

type registrationService struct {
	regs   models.RegistrationRepository
	users  models.UserRepository
	events EventService
	mailer notify.Mailer
}

func NewRegistrationService(regs models.RegistrationRepository, users models.UserRepository,
	events EventService, mailer notify.Mailer) RegistrationService {
	return &registrationService{regs: regs, users: users, events: events, mailer: mailer}
}

// RegisterUserForEvent checks, in order: user exists, event exists, event
// not full, pair not already registered; then inserts. The capacity check
// and the insert are deliberately not one atomic unit — concurrent requests
// near the boundary can overshoot maxAttendees, matching the system this was
// built to replace. Duplicate pairs are still impossible thanks to the
// UNIQUE constraint.
func (s *registrationService) RegisterUserForEvent(userID, eventID int64) (models.Registration, error) {
	user, err := s.users.GetByID(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Registration{}, ErrUserNotFound
	}
	if err != nil {
		return models.Registration{}, err
	}

	event, err := s.events.GetEventByID(eventID)
	if err != nil {
		return models.Registration{}, err
	}

	full, err := s.events.IsEventFull(eventID)
	if err != nil {
		return models.Registration{}, err
	}
	if full {
		return models.Registration{}, ErrEventFull
	}

	exists, err := s.regs.ExistsByUserAndEvent(userID, eventID)
	if err != nil {
		return models.Registration{}, err
	}
	if exists {
		return models.Registration{}, ErrAlreadyRegistered
	}

	reg := models.Registration{
		UserID:           userID,
		EventID:          eventID,
		RegistrationTime: time.Now(),
		Attended:         false,
	}
	if err := s.regs.Create(&reg); err != nil {
		return models.Registration{}, err
	}

	// Fire-and-forget; a mail failure never unwinds the registration.
	s.mailer.SendRegistrationConfirmation(
		user.Email, user.Name, event.Title,
		event.StartTime.Format(mailDateLayout), event.Location)

	return reg, nil
}

func (s *registrationService) CancelRegistration(id int64) error {
	return s.regs.Delete(id)
}

// CancelRegistrationByUserAndEvent looks the pair up first and no-ops when
// there is nothing to cancel.
func (s *registrationService) CancelRegistrationByUserAndEvent(userID, eventID int64) error {
	reg, err := s.regs.GetByUserAndEvent(userID, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.regs.Delete(reg.ID)
}

// CancelAllByUser drops every registration a user holds, part of the
// user-delete cleanup.
func (s *registrationService) CancelAllByUser(userID int64) error {
	return s.regs.DeleteByUser(userID)
}

func (s *registrationService) GetRegistrationByID(id int64) (models.Registration, error) {
	reg, err := s.regs.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Registration{}, ErrRegistrationNotFound
	}
	return reg, err
}

func (s *registrationService) GetRegistrationsByUser(userID int64, p models.PageRequest) ([]models.Registration, int64, error) {
	return s.regs.GetByUser(userID, p)
}

func (s *registrationService) GetRegistrationsByEvent(eventID int64, p models.PageRequest) ([]models.Registration, int64, error) {
	return s.regs.GetByEvent(eventID, p)
}

// UpdateAttendance returns ErrRegistrationNotFound for an unknown id. One
// contract for every call path; no silent no-op variant.
func (s *registrationService) UpdateAttendance(id int64, attended bool) (models.Registration, error) {
	reg, err := s.GetRegistrationByID(id)
	if err != nil {
		return models.Registration{}, err
	}
	if err := s.regs.UpdateAttended(id, attended); err != nil {
		return models.Registration{}, err
	}
	reg.Attended = attended
	return reg, nil
}
