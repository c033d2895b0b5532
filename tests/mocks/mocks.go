package mocks

import (
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"eventapi/models"
)

// In-memory repositories for handler and service tests. Misses come back as
// sql.ErrNoRows so the service layer translates them exactly as it would for
// the real store. Paged queries sort by id; tests do not depend on sortBy.

func paginateEvents(in []models.Event, p models.PageRequest) []models.Event {
	sort.Slice(in, func(i, j int) bool { return in[i].ID < in[j].ID })
	lo := p.Offset()
	if lo >= len(in) {
		return nil
	}
	hi := lo + p.Limit()
	if hi > len(in) {
		hi = len(in)
	}
	return in[lo:hi]
}

func paginateRegs(in []models.Registration, p models.PageRequest) []models.Registration {
	sort.Slice(in, func(i, j int) bool { return in[i].ID < in[j].ID })
	lo := p.Offset()
	if lo >= len(in) {
		return nil
	}
	hi := lo + p.Limit()
	if hi > len(in) {
		hi = len(in)
	}
	return in[lo:hi]
}

/* ---------------- users ---------------- */

type MockUserRepo struct {
	Users  map[int64]models.User
	nextID int64
}

func NewMockUserRepo() *MockUserRepo { return &MockUserRepo{Users: map[int64]models.User{}} }

// Seed inserts a user without hashing, returning its id.
func (m *MockUserRepo) Seed(u models.User) int64 {
	m.nextID++
	u.ID = m.nextID
	m.Users[u.ID] = u
	return u.ID
}

func (m *MockUserRepo) Create(u *models.User) error {
	for _, e := range m.Users {
		if e.Email == u.Email {
			return sql.ErrNoRows // mock stand-in for the unique violation
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.Users[u.ID] = *u
	return nil
}

func (m *MockUserRepo) GetByID(id int64) (models.User, error) {
	u, ok := m.Users[id]
	if !ok {
		return models.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (m *MockUserRepo) GetByEmail(email string) (models.User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, sql.ErrNoRows
}

func (m *MockUserRepo) ExistsByEmail(email string) (bool, error) {
	_, err := m.GetByEmail(email)
	return err == nil, nil
}

func (m *MockUserRepo) GetAll() ([]models.User, error) {
	out := make([]models.User, 0, len(m.Users))
	for _, u := range m.Users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockUserRepo) Update(u *models.User) error {
	if _, ok := m.Users[u.ID]; !ok {
		return sql.ErrNoRows
	}
	m.Users[u.ID] = *u
	return nil
}

func (m *MockUserRepo) Delete(id int64) error {
	delete(m.Users, id)
	return nil
}

// ValidateCredentials compares plain text; tests seed plain passwords.
func (m *MockUserRepo) ValidateCredentials(email, plain string) (models.User, error) {
	u, err := m.GetByEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if u.Password != plain {
		return models.User{}, sql.ErrNoRows
	}
	return u, nil
}

/* ---------------- events ---------------- */

type MockEventRepo struct {
	Events map[int64]models.Event
	nextID int64
}

func NewMockEventRepo() *MockEventRepo { return &MockEventRepo{Events: map[int64]models.Event{}} }

func (m *MockEventRepo) Seed(e models.Event) int64 {
	m.nextID++
	e.ID = m.nextID
	m.Events[e.ID] = e
	return e.ID
}

func (m *MockEventRepo) Create(e *models.Event) error {
	m.nextID++
	e.ID = m.nextID
	m.Events[e.ID] = *e
	return nil
}

func (m *MockEventRepo) GetByID(id int64) (models.Event, error) {
	e, ok := m.Events[id]
	if !ok {
		return models.Event{}, sql.ErrNoRows
	}
	return e, nil
}

func (m *MockEventRepo) all() []models.Event {
	out := make([]models.Event, 0, len(m.Events))
	for _, e := range m.Events {
		out = append(out, e)
	}
	return out
}

func (m *MockEventRepo) GetAll(p models.PageRequest) ([]models.Event, int64, error) {
	all := m.all()
	return paginateEvents(all, p), int64(len(all)), nil
}

func (m *MockEventRepo) GetByCreator(creatorID int64, p models.PageRequest) ([]models.Event, int64, error) {
	var sel []models.Event
	for _, e := range m.all() {
		if e.CreatorID == creatorID {
			sel = append(sel, e)
		}
	}
	return paginateEvents(sel, p), int64(len(sel)), nil
}

func (m *MockEventRepo) GetAllByCreator(creatorID int64) ([]models.Event, error) {
	var sel []models.Event
	for _, e := range m.all() {
		if e.CreatorID == creatorID {
			sel = append(sel, e)
		}
	}
	sort.Slice(sel, func(i, j int) bool { return sel[i].ID < sel[j].ID })
	return sel, nil
}

func (m *MockEventRepo) GetUpcoming(from time.Time, p models.PageRequest) ([]models.Event, int64, error) {
	var sel []models.Event
	for _, e := range m.all() {
		if e.StartTime.After(from) {
			sel = append(sel, e)
		}
	}
	return paginateEvents(sel, p), int64(len(sel)), nil
}

func (m *MockEventRepo) Search(keyword string, p models.PageRequest) ([]models.Event, int64, error) {
	var sel []models.Event
	for _, e := range m.all() {
		if containsFold(e.Title, keyword) {
			sel = append(sel, e)
		}
	}
	return paginateEvents(sel, p), int64(len(sel)), nil
}

func (m *MockEventRepo) GetStartingBetween(from, to time.Time) ([]models.Event, error) {
	var sel []models.Event
	for _, e := range m.all() {
		if e.StartTime.After(from) && e.StartTime.Before(to) {
			sel = append(sel, e)
		}
	}
	sort.Slice(sel, func(i, j int) bool { return sel[i].ID < sel[j].ID })
	return sel, nil
}

func (m *MockEventRepo) Update(e *models.Event) error {
	if _, ok := m.Events[e.ID]; !ok {
		return sql.ErrNoRows
	}
	m.Events[e.ID] = *e
	return nil
}

func (m *MockEventRepo) Delete(id int64) error {
	delete(m.Events, id)
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

/* ---------------- registrations ---------------- */

type MockRegRepo struct {
	Regs   map[int64]models.Registration
	nextID int64
}

func NewMockRegRepo() *MockRegRepo { return &MockRegRepo{Regs: map[int64]models.Registration{}} }

func (m *MockRegRepo) Create(r *models.Registration) error {
	for _, e := range m.Regs {
		if e.UserID == r.UserID && e.EventID == r.EventID {
			return sql.ErrNoRows // unique violation stand-in
		}
	}
	m.nextID++
	r.ID = m.nextID
	m.Regs[r.ID] = *r
	return nil
}

func (m *MockRegRepo) GetByID(id int64) (models.Registration, error) {
	r, ok := m.Regs[id]
	if !ok {
		return models.Registration{}, sql.ErrNoRows
	}
	return r, nil
}

func (m *MockRegRepo) GetByUserAndEvent(userID, eventID int64) (models.Registration, error) {
	for _, r := range m.Regs {
		if r.UserID == userID && r.EventID == eventID {
			return r, nil
		}
	}
	return models.Registration{}, sql.ErrNoRows
}

func (m *MockRegRepo) ExistsByUserAndEvent(userID, eventID int64) (bool, error) {
	_, err := m.GetByUserAndEvent(userID, eventID)
	return err == nil, nil
}

func (m *MockRegRepo) CountByEvent(eventID int64) (int64, error) {
	var n int64
	for _, r := range m.Regs {
		if r.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (m *MockRegRepo) GetByUser(userID int64, p models.PageRequest) ([]models.Registration, int64, error) {
	var sel []models.Registration
	for _, r := range m.Regs {
		if r.UserID == userID {
			sel = append(sel, r)
		}
	}
	return paginateRegs(sel, p), int64(len(sel)), nil
}

func (m *MockRegRepo) GetByEvent(eventID int64, p models.PageRequest) ([]models.Registration, int64, error) {
	sel, _ := m.GetAllByEvent(eventID)
	return paginateRegs(sel, p), int64(len(sel)), nil
}

func (m *MockRegRepo) GetAllByEvent(eventID int64) ([]models.Registration, error) {
	var sel []models.Registration
	for _, r := range m.Regs {
		if r.EventID == eventID {
			sel = append(sel, r)
		}
	}
	sort.Slice(sel, func(i, j int) bool { return sel[i].ID < sel[j].ID })
	return sel, nil
}

func (m *MockRegRepo) UpdateAttended(id int64, attended bool) error {
	r, ok := m.Regs[id]
	if !ok {
		return sql.ErrNoRows
	}
	r.Attended = attended
	m.Regs[id] = r
	return nil
}

func (m *MockRegRepo) Delete(id int64) error {
	delete(m.Regs, id)
	return nil
}

func (m *MockRegRepo) DeleteByEvent(eventID int64) error {
	for id, r := range m.Regs {
		if r.EventID == eventID {
			delete(m.Regs, id)
		}
	}
	return nil
}

func (m *MockRegRepo) DeleteByUser(userID int64) error {
	for id, r := range m.Regs {
		if r.UserID == userID {
			delete(m.Regs, id)
		}
	}
	return nil
}

/* ---------------- images ---------------- */

type MockImageRepo struct {
	Images map[int64]models.Image
	nextID int64
}

func NewMockImageRepo() *MockImageRepo { return &MockImageRepo{Images: map[int64]models.Image{}} }

func (m *MockImageRepo) Create(im *models.Image) error {
	m.nextID++
	im.ID = m.nextID
	m.Images[im.ID] = *im
	return nil
}

func (m *MockImageRepo) GetByID(id int64) (models.Image, error) {
	im, ok := m.Images[id]
	if !ok {
		return models.Image{}, sql.ErrNoRows
	}
	return im, nil
}

func (m *MockImageRepo) GetByEvent(eventID int64) ([]models.Image, error) {
	var sel []models.Image
	for _, im := range m.Images {
		if im.EventID == eventID {
			sel = append(sel, im)
		}
	}
	sort.Slice(sel, func(i, j int) bool { return sel[i].DisplayOrder < sel[j].DisplayOrder })
	return sel, nil
}

func (m *MockImageRepo) CountByEvent(eventID int64) (int64, error) {
	var n int64
	for _, im := range m.Images {
		if im.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (m *MockImageRepo) UpdateOrder(id int64, displayOrder int) error {
	im, ok := m.Images[id]
	if !ok {
		return sql.ErrNoRows
	}
	im.DisplayOrder = displayOrder
	m.Images[id] = im
	return nil
}

func (m *MockImageRepo) Delete(id int64) error {
	delete(m.Images, id)
	return nil
}

func (m *MockImageRepo) DeleteByEvent(eventID int64) error {
	for id, im := range m.Images {
		if im.EventID == eventID {
			delete(m.Images, id)
		}
	}
	return nil
}

/* ---------------- mailer ---------------- */

type SentMail struct {
	Kind  string // "confirmation" | "reminder"
	To    string
	Title string
}

// RecordingMailer captures dispatches so tests can assert on them.
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []SentMail
}

func (m *RecordingMailer) SendRegistrationConfirmation(to, name, eventTitle, eventDate, location string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{Kind: "confirmation", To: to, Title: eventTitle})
}

func (m *RecordingMailer) SendEventReminder(to, name, eventTitle, eventDate, location string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{Kind: "reminder", To: to, Title: eventTitle})
}

func (m *RecordingMailer) Count(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.Sent {
		if s.Kind == kind {
			n++
		}
	}
	return n
}
