package sqlite

import (
	"context"
	"database/sql"

	"github.com/campushub/grievance/internal/models"
)

func (r *SQLiteRepo) CountStudents(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE role = ?`, models.RoleStudent)
}

func (r *SQLiteRepo) CountCollegeSurveyed(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM survey_status WHERE college_status IN (?, ?)`, models.SurveySubmitted, models.SurveyApproved)
}

func (r *SQLiteRepo) CountHostelSurveyed(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM survey_status WHERE hostel_status IN (?, ?)`, models.SurveySubmitted, models.SurveyApproved)
}

func (r *SQLiteRepo) CountPendingApproval(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM survey_status WHERE college_status = ? AND hostel_status = ?`, models.SurveySubmitted, models.SurveySubmitted)
}

func (r *SQLiteRepo) CountApproved(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM survey_status WHERE college_status = ? AND hostel_status = ?`, models.SurveyApproved, models.SurveyApproved)
}

func (r *SQLiteRepo) CountPendingComplaints(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM complaints WHERE status = ?`, models.ComplaintPending)
}

func (r *SQLiteRepo) count(ctx context.Context, query string, args ...any) (int64, error) {
	row := r.conn.QueryRow(ctx, query, args...)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

// ListStudentOverview left-joins each student with their survey row and most
// recent complaint. Students with no survey or complaint rows still appear,
// with placeholder statuses filled in.
func (r *SQLiteRepo) ListStudentOverview(ctx context.Context) ([]models.StudentOverview, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT u.name, u.email, s.college_status, s.hostel_status, c.complaint, c.status
		FROM users u
		LEFT JOIN survey_status s ON s.email = u.email
		LEFT JOIN complaints c ON c.id = (
			SELECT id FROM complaints WHERE email = u.email ORDER BY created DESC, id DESC LIMIT 1
		)
		WHERE u.role = ?
		ORDER BY u.name, u.email`, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StudentOverview
	for rows.Next() {
		var (
			o               models.StudentOverview
			college, hostel sql.NullString
			text, cstatus   sql.NullString
		)
		if err := rows.Scan(&o.Name, &o.Email, &college, &hostel, &text, &cstatus); err != nil {
			return nil, err
		}

		o.CollegeStatus = orNotSubmitted(college)
		o.HostelStatus = orNotSubmitted(hostel)
		if text.Valid {
			o.LatestComplaint = text.String
		}
		if cstatus.Valid {
			o.ComplaintStatus = cstatus.String
		}

		out = append(out, o)
	}

	return out, rows.Err()
}

func orNotSubmitted(v sql.NullString) string {
	if v.Valid && v.String != "" {
		return v.String
	}
	return models.StatusNotSubmitted
}
