package models

import (
	"database/sql"
	"errors"

	"eventapi/utils"
)

type sqlUserRepo struct{ db *sql.DB }

func NewSQLUserRepository(db *sql.DB) UserRepository { return &sqlUserRepo{db} }

func (r *sqlUserRepo) Create(u *User) error {
	// u.Password arrives as plain text; hash before it touches the table.
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed

	return r.db.QueryRow(
		`INSERT INTO users(name, email, password, is_admin) VALUES ($1,$2,$3,$4) RETURNING id`,
		u.Name, u.Email, u.Password, u.IsAdmin,
	).Scan(&u.ID)
}

func (r *sqlUserRepo) GetByID(id int64) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT id, name, email, is_admin FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.IsAdmin)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *sqlUserRepo) GetByEmail(email string) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT id, name, email, is_admin FROM users WHERE email=$1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.IsAdmin)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *sqlUserRepo) ExistsByEmail(email string) (bool, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(1) FROM users WHERE email=$1`, email).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqlUserRepo) GetAll() ([]User, error) {
	rows, err := r.db.Query(`SELECT id, name, email, is_admin FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.IsAdmin); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *sqlUserRepo) Update(u *User) error {
	if u.Password != "" {
		hashed, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		_, err = r.db.Exec(`UPDATE users SET name=$1, email=$2, password=$3 WHERE id=$4`,
			u.Name, u.Email, hashed, u.ID)
		return err
	}
	_, err := r.db.Exec(`UPDATE users SET name=$1, email=$2 WHERE id=$3`, u.Name, u.Email, u.ID)
	return err
}

func (r *sqlUserRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM users WHERE id=$1`, id)
	return err
}

func (r *sqlUserRepo) ValidateCredentials(email, plain string) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT id, name, email, password, is_admin FROM users WHERE email=$1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsAdmin)
	if err != nil {
		return User{}, err
	}
	if !utils.CheckPasswordHash(plain, u.Password) {
		return User{}, errors.New("invalid credentials")
	}
	u.Password = ""
	return u, nil
}
