package models

import "database/sql"

type sqlRegistrationRepo struct{ db *sql.DB }

func NewSQLRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &sqlRegistrationRepo{db}
}

var registrationSortColumns = map[string]string{
	"id":               "id",
	"registrationTime": "registration_time",
	"attended":         "attended",
}

func registrationOrderClause(p PageRequest) string {
	col, ok := registrationSortColumns[p.SortBy]
	if !ok {
		col = "registration_time"
	}
	if p.Desc() {
		return " ORDER BY " + col + " DESC"
	}
	return " ORDER BY " + col + " ASC"
}

const registrationColumns = `id, user_id, event_id, registration_time, attended`

func scanRegistrations(rows *sql.Rows) ([]Registration, error) {
	defer rows.Close()
	var out []Registration
	for rows.Next() {
		var reg Registration
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.RegistrationTime, &reg.Attended); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r *sqlRegistrationRepo) Create(reg *Registration) error {
	// UNIQUE(user_id, event_id) backstops the duplicate check in the service.
	return r.db.QueryRow(
		`INSERT INTO registrations(user_id, event_id, registration_time, attended)
		 VALUES ($1,$2,$3,$4) RETURNING id`,
		reg.UserID, reg.EventID, reg.RegistrationTime, reg.Attended,
	).Scan(&reg.ID)
}

func (r *sqlRegistrationRepo) GetByID(id int64) (Registration, error) {
	var reg Registration
	err := r.db.QueryRow(`SELECT `+registrationColumns+` FROM registrations WHERE id=$1`, id).
		Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.RegistrationTime, &reg.Attended)
	if err != nil {
		return Registration{}, err
	}
	return reg, nil
}

func (r *sqlRegistrationRepo) GetByUserAndEvent(userID, eventID int64) (Registration, error) {
	var reg Registration
	err := r.db.QueryRow(
		`SELECT `+registrationColumns+` FROM registrations WHERE user_id=$1 AND event_id=$2`,
		userID, eventID).
		Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.RegistrationTime, &reg.Attended)
	if err != nil {
		return Registration{}, err
	}
	return reg, nil
}

func (r *sqlRegistrationRepo) ExistsByUserAndEvent(userID, eventID int64) (bool, error) {
	var n int
	err := r.db.QueryRow(
		`SELECT COUNT(1) FROM registrations WHERE user_id=$1 AND event_id=$2`,
		userID, eventID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqlRegistrationRepo) CountByEvent(eventID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(`SELECT COUNT(1) FROM registrations WHERE event_id=$1`, eventID).Scan(&n)
	return n, err
}

func (r *sqlRegistrationRepo) GetByUser(userID int64, p PageRequest) ([]Registration, int64, error) {
	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(1) FROM registrations WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(
		`SELECT `+registrationColumns+` FROM registrations WHERE user_id=$1`+registrationOrderClause(p)+` LIMIT $2 OFFSET $3`,
		userID, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, err
	}
	out, err := scanRegistrations(rows)
	return out, total, err
}

func (r *sqlRegistrationRepo) GetByEvent(eventID int64, p PageRequest) ([]Registration, int64, error) {
	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(1) FROM registrations WHERE event_id=$1`, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id=$1`+registrationOrderClause(p)+` LIMIT $2 OFFSET $3`,
		eventID, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, err
	}
	out, err := scanRegistrations(rows)
	return out, total, err
}

func (r *sqlRegistrationRepo) GetAllByEvent(eventID int64) ([]Registration, error) {
	rows, err := r.db.Query(
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id=$1 ORDER BY id`, eventID)
	if err != nil {
		return nil, err
	}
	return scanRegistrations(rows)
}

func (r *sqlRegistrationRepo) UpdateAttended(id int64, attended bool) error {
	_, err := r.db.Exec(`UPDATE registrations SET attended=$1 WHERE id=$2`, attended, id)
	return err
}

func (r *sqlRegistrationRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM registrations WHERE id=$1`, id)
	return err
}

func (r *sqlRegistrationRepo) DeleteByEvent(eventID int64) error {
	_, err := r.db.Exec(`DELETE FROM registrations WHERE event_id=$1`, eventID)
	return err
}

func (r *sqlRegistrationRepo) DeleteByUser(userID int64) error {
	_, err := r.db.Exec(`DELETE FROM registrations WHERE user_id=$1`, userID)
	return err
}
