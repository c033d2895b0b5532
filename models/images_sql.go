package models

import "database/sql"

type sqlImageRepo struct{ db *sql.DB }

func NewSQLImageRepository(db *sql.DB) ImageRepository { return &sqlImageRepo{db} }

func (r *sqlImageRepo) Create(im *Image) error {
	return r.db.QueryRow(
		`INSERT INTO images(event_id, image_url, display_order, created_at)
		 VALUES ($1,$2,$3,$4) RETURNING id`,
		im.EventID, im.ImageURL, im.DisplayOrder, im.CreatedAt,
	).Scan(&im.ID)
}

func (r *sqlImageRepo) GetByID(id int64) (Image, error) {
	var im Image
	err := r.db.QueryRow(
		`SELECT id, event_id, image_url, display_order, created_at FROM images WHERE id=$1`, id).
		Scan(&im.ID, &im.EventID, &im.ImageURL, &im.DisplayOrder, &im.CreatedAt)
	if err != nil {
		return Image{}, err
	}
	return im, nil
}

func (r *sqlImageRepo) GetByEvent(eventID int64) ([]Image, error) {
	rows, err := r.db.Query(
		`SELECT id, event_id, image_url, display_order, created_at
		 FROM images WHERE event_id=$1 ORDER BY display_order ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Image
	for rows.Next() {
		var im Image
		if err := rows.Scan(&im.ID, &im.EventID, &im.ImageURL, &im.DisplayOrder, &im.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, im)
	}
	return out, rows.Err()
}

func (r *sqlImageRepo) CountByEvent(eventID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(`SELECT COUNT(1) FROM images WHERE event_id=$1`, eventID).Scan(&n)
	return n, err
}

func (r *sqlImageRepo) UpdateOrder(id int64, displayOrder int) error {
	_, err := r.db.Exec(`UPDATE images SET display_order=$1 WHERE id=$2`, displayOrder, id)
	return err
}

func (r *sqlImageRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM images WHERE id=$1`, id)
	return err
}

// DeleteByEvent is a single bulk statement so event deletion can clear
// dependents first instead of leaning on FK cascades.
func (r *sqlImageRepo) DeleteByEvent(eventID int64) error {
	_, err := r.db.Exec(`DELETE FROM images WHERE event_id=$1`, eventID)
	return err
}
