package services

import (
	"log"
	"time"

	"eventapi/models"
	"eventapi/notify"
)

// Reminder sweeps once a day for events starting within the next 24 hours
// and mails every registrant. Best-effort all the way down: no retry, no
// dedupe between runs, no overlap guard.
type Reminder struct {
	events models.EventRepository
	regs   models.RegistrationRepository
	users  models.UserRepository
	mailer notify.Mailer
}

func NewReminder(events models.EventRepository, regs models.RegistrationRepository,
	users models.UserRepository, mailer notify.Mailer) *Reminder {
	return &Reminder{events: events, regs: regs, users: users, mailer: mailer}
}

// Start launches the daily loop. The first sweep fires at the next 09:00
// local time, then every 24 hours.
func (r *Reminder) Start() {
	go func() {
		for {
			time.Sleep(untilNextNineAM(time.Now()))
			r.RunOnce(time.Now())
		}
	}()
}

func untilNextNineAM(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

// RunOnce performs a single sweep as of now.
func (r *Reminder) RunOnce(now time.Time) {
	upcoming, err := r.events.GetStartingBetween(now, now.Add(24*time.Hour))
	if err != nil {
		log.Printf("reminder: loading upcoming events: %v", err)
		return
	}

	for _, event := range upcoming {
		regs, err := r.regs.GetAllByEvent(event.ID)
		if err != nil {
			log.Printf("reminder: loading registrations for event %d: %v", event.ID, err)
			continue
		}
		for _, reg := range regs {
			user, err := r.users.GetByID(reg.UserID)
			if err != nil {
				log.Printf("reminder: loading user %d: %v", reg.UserID, err)
				continue
			}
			r.mailer.SendEventReminder(
				user.Email, user.Name, event.Title,
				event.StartTime.Format(mailDateLayout), event.Location)
		}
	}
}
