package models

import "time"

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	IsAdmin  bool   `json:"isAdmin"`
}

type Event struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	MaxAttendees int       `json:"maxAttendees"` // negative means unlimited
	CreatorID    int64     `json:"creatorId"`
}

type Registration struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	EventID          int64     `json:"eventId"`
	RegistrationTime time.Time `json:"registrationTime"`
	Attended         bool      `json:"attended"`
}

type Image struct {
	ID           int64     `json:"id"`
	EventID      int64     `json:"eventId"`
	ImageURL     string    `json:"imageUrl"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ImageCreation is the payload for adding an image, also produced by the
// photo search client.
type ImageCreation struct {
	ImageURL     string `json:"imageUrl" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

// ===== Users =====
type UserRepository interface {
	Create(u *User) error
	GetByID(id int64) (User, error)
	GetByEmail(email string) (User, error)
	ExistsByEmail(email string) (bool, error)
	GetAll() ([]User, error)
	Update(u *User) error
	Delete(id int64) error
	ValidateCredentials(email, plain string) (User, error)
}

// ===== Events =====
type EventRepository interface {
	Create(e *Event) error
	GetByID(id int64) (Event, error)
	GetAll(p PageRequest) ([]Event, int64, error)
	GetByCreator(creatorID int64, p PageRequest) ([]Event, int64, error)
	GetAllByCreator(creatorID int64) ([]Event, error)
	GetUpcoming(from time.Time, p PageRequest) ([]Event, int64, error)
	Search(keyword string, p PageRequest) ([]Event, int64, error)
	GetStartingBetween(from, to time.Time) ([]Event, error)
	Update(e *Event) error
	Delete(id int64) error
}

// ===== Registrations =====
type RegistrationRepository interface {
	Create(r *Registration) error
	GetByID(id int64) (Registration, error)
	GetByUserAndEvent(userID, eventID int64) (Registration, error)
	ExistsByUserAndEvent(userID, eventID int64) (bool, error)
	CountByEvent(eventID int64) (int64, error)
	GetByUser(userID int64, p PageRequest) ([]Registration, int64, error)
	GetByEvent(eventID int64, p PageRequest) ([]Registration, int64, error)
	GetAllByEvent(eventID int64) ([]Registration, error)
	UpdateAttended(id int64, attended bool) error
	Delete(id int64) error
	DeleteByEvent(eventID int64) error
	DeleteByUser(userID int64) error
}

// ===== Images =====
type ImageRepository interface {
	Create(im *Image) error
	GetByID(id int64) (Image, error)
	GetByEvent(eventID int64) ([]Image, error) // ordered by display_order
	CountByEvent(eventID int64) (int64, error)
	UpdateOrder(id int64, displayOrder int) error
	Delete(id int64) error
	DeleteByEvent(eventID int64) error
}
