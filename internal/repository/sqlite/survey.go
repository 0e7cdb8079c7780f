package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campushub/grievance/internal/models"
)

func (r *SQLiteRepo) GetSurveyByEmail(ctx context.Context, email string) (*models.SurveyStatus, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, college_status, hostel_status, updated FROM survey_status WHERE email = ?`, email)
	var s models.SurveyStatus
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.CollegeStatus, &s.HostelStatus, &s.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &s, nil
}

func (r *SQLiteRepo) CreateSurvey(ctx context.Context, s *models.SurveyStatus) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("survey status is nil")
	}

	college := s.CollegeStatus
	if college == "" {
		college = models.SurveyPending
	}
	hostel := s.HostelStatus
	if hostel == "" {
		hostel = models.SurveyPending
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO survey_status (name, email, college_status, hostel_status, updated) VALUES (?, ?, ?, ?, ?)`, s.Name, s.Email, college, hostel, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) SetCollegeStatus(ctx context.Context, email, status string) error {
	_, err := r.conn.Exec(ctx, `UPDATE survey_status SET college_status = ?, updated = ? WHERE email = ?`, status, now(), email)
	return err
}

func (r *SQLiteRepo) SetHostelStatus(ctx context.Context, email, status string) error {
	_, err := r.conn.Exec(ctx, `UPDATE survey_status SET hostel_status = ?, updated = ? WHERE email = ?`, status, now(), email)
	return err
}

func (r *SQLiteRepo) ApproveBoth(ctx context.Context, id int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `UPDATE survey_status SET college_status = ?, hostel_status = ?, updated = ? WHERE id = ?`, models.SurveyApproved, models.SurveyApproved, now(), id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *SQLiteRepo) ListByStatus(ctx context.Context, college, hostel string) ([]models.SurveyStatus, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, email, college_status, hostel_status, updated FROM survey_status WHERE college_status = ? AND hostel_status = ? ORDER BY updated DESC`, college, hostel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SurveyStatus
	for rows.Next() {
		var s models.SurveyStatus
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.CollegeStatus, &s.HostelStatus, &s.Updated); err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}
