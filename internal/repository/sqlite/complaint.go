package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campushub/grievance/internal/models"
)

func (r *SQLiteRepo) CreateComplaint(ctx context.Context, c *models.Complaint) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("complaint is nil")
	}

	status := c.Status
	if status == "" {
		status = models.ComplaintPending
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO complaints (name, email, complaint, status, created) VALUES (?, ?, ?, ?, ?)`, c.Name, c.Email, c.Text, status, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetComplaint(ctx context.Context, id int64) (*models.Complaint, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, complaint, status, created FROM complaints WHERE id = ?`, id)
	var c models.Complaint
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Text, &c.Status, &c.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &c, nil
}

func (r *SQLiteRepo) CloseComplaint(ctx context.Context, id int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `UPDATE complaints SET status = ? WHERE id = ?`, models.ComplaintSolved, id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *SQLiteRepo) ListByComplaintStatus(ctx context.Context, status string) ([]models.Complaint, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, email, complaint, status, created FROM complaints WHERE status = ? ORDER BY created DESC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Complaint
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Text, &c.Status, &c.Created); err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, rows.Err()
}
