package models

import (
	"database/sql"
	"time"
)

type sqlEventRepo struct{ db *sql.DB }

func NewSQLEventRepository(db *sql.DB) EventRepository { return &sqlEventRepo{db} }

// API field → column. Anything not listed sorts by start_time.
var eventSortColumns = map[string]string{
	"id":           "id",
	"title":        "title",
	"location":     "location",
	"startTime":    "start_time",
	"endTime":      "end_time",
	"maxAttendees": "max_attendees",
}

func eventOrderClause(p PageRequest) string {
	col, ok := eventSortColumns[p.SortBy]
	if !ok {
		col = "start_time"
	}
	if p.Desc() {
		return " ORDER BY " + col + " DESC"
	}
	return " ORDER BY " + col + " ASC"
}

const eventColumns = `id, title, description, location, start_time, end_time, max_attendees, creator_id`

func scanEvents(rows *sql.Rows) ([]Event, error) {
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location,
			&e.StartTime, &e.EndTime, &e.MaxAttendees, &e.CreatorID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *sqlEventRepo) Create(e *Event) error {
	return r.db.QueryRow(
		`INSERT INTO events(title, description, location, start_time, end_time, max_attendees, creator_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		e.Title, e.Description, e.Location, e.StartTime, e.EndTime, e.MaxAttendees, e.CreatorID,
	).Scan(&e.ID)
}

func (r *sqlEventRepo) GetByID(id int64) (Event, error) {
	var e Event
	err := r.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id=$1`, id).
		Scan(&e.ID, &e.Title, &e.Description, &e.Location,
			&e.StartTime, &e.EndTime, &e.MaxAttendees, &e.CreatorID)
	if err != nil {
		return Event{}, err
	}
	return e, nil
}

func (r *sqlEventRepo) GetAll(p PageRequest) ([]Event, int64, error) {
	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(1) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(
		`SELECT `+eventColumns+` FROM events`+eventOrderClause(p)+` LIMIT $1 OFFSET $2`,
		p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, err
	}
	out, err := scanEvents(rows)
	return out, total, err
}

func (r *sqlEventRepo) GetByCreator(creatorID int64, p PageRequest) ([]Event, int64, error) {
	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(1) FROM events WHERE creator_id=$1`, creatorID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(
		`SELECT `+eventColumns+` FROM events WHERE creator_id=$1`+eventOrderClause(p)+` LIMIT $2 OFFSET $3`,
		creatorID, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, err
	}
	out, err := scanEvents(rows)
	return out, total, err
}

func (r *sqlEventRepo) GetAllByCreator(creatorID int64) ([]Event, error) {
	rows, err := r.db.Query(
		`SELECT `+eventColumns+` FROM events WHERE creator_id=$1 ORDER BY id`, creatorID)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *sqlEventRepo) GetUpcoming(from time.Time, p PageRequest) ([]Event, int64, error) {
	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(1) FROM events WHERE start_time > $1`, from).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(
		`SELECT `+eventColumns+` FROM events WHERE start_time > $1`+eventOrderClause(p)+` LIMIT $2 OFFSET $3`,
		from, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, err
	}
	out, err := scanEvents(rows)
	return out, total, err
}

func (r *sqlEventRepo) Search(keyword string, p PageRequest) ([]Event, int64, error) {
	pattern := "%" + keyword + "%"
	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(1) FROM events WHERE title ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(
		`SELECT `+eventColumns+` FROM events WHERE title ILIKE $1`+eventOrderClause(p)+` LIMIT $2 OFFSET $3`,
		pattern, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, err
	}
	out, err := scanEvents(rows)
	return out, total, err
}

// GetStartingBetween feeds the reminder sweep: events with from < start < to.
func (r *sqlEventRepo) GetStartingBetween(from, to time.Time) ([]Event, error) {
	rows, err := r.db.Query(
		`SELECT `+eventColumns+` FROM events WHERE start_time > $1 AND start_time < $2 ORDER BY start_time`,
		from, to)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *sqlEventRepo) Update(e *Event) error {
	_, err := r.db.Exec(
		`UPDATE events SET title=$1, description=$2, location=$3, start_time=$4, end_time=$5, max_attendees=$6
		 WHERE id=$7`,
		e.Title, e.Description, e.Location, e.StartTime, e.EndTime, e.MaxAttendees, e.ID)
	return err
}

func (r *sqlEventRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM events WHERE id=$1`, id)
	return err
}
