package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campushub/grievance/internal/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	role := u.Role
	if role == "" {
		role = models.RoleStudent
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO users (name, email, password, role, created) VALUES (?, ?, ?, ?, ?)`, u.Name, u.Email, u.Password, role, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, password, role, created FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, password, role, created FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// UpsertUser inserts the user or, when the email is already present, refreshes
// name, password and role in place. Used to seed the admin account at startup.
func (r *SQLiteRepo) UpsertUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO users (name, email, password, role, created) VALUES (?, ?, ?, ?, ?) ON CONFLICT(email) DO UPDATE SET name=excluded.name, password=excluded.password, role=excluded.role`, u.Name, u.Email, u.Password, u.Role, now())
	if err != nil {
		return 0, err
	}

	var id int64
	row := r.conn.QueryRow(ctx, `SELECT id FROM users WHERE email = ?`, u.Email)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

func (r *SQLiteRepo) DeleteUserCascade(ctx context.Context, email string) error {
	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE email = ?`, email); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM survey_status WHERE email = ?`, email); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM complaints WHERE email = ?`, email); err != nil {
			return err
		}
		return nil
	})
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}
