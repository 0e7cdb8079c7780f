package db_test

import (
	"context"
	"fmt"
	"testing"

	migrations "github.com/campushub/grievance/db"
	dbpkg "github.com/campushub/grievance/internal/db"
)

func TestMigrateAppliesSchema(t *testing.T) {
	ctx := context.Background()
	d, err := dbpkg.New(ctx, fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, migrations.MigrationsFS); err != nil {
		t.Fatalf("Migrate error: %v", err)
	}

	// the three collections exist
	for _, table := range []string{"users", "survey_status", "complaints"} {
		var name string
		row := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		if err := row.Scan(&name); err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// migrations are recorded
	var applied int
	if err := d.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied == 0 {
		t.Fatalf("no migrations recorded")
	}

	// running again is a no-op
	if err := dbpkg.Migrate(ctx, d, migrations.MigrationsFS); err != nil {
		t.Fatalf("second Migrate error: %v", err)
	}

	var appliedAgain int
	if err := d.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&appliedAgain); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if appliedAgain != applied {
		t.Fatalf("migration reapplied: %d vs %d", appliedAgain, applied)
	}
}

func TestMigrateEnforcesUniqueEmail(t *testing.T) {
	ctx := context.Background()
	d, err := dbpkg.New(ctx, fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, migrations.MigrationsFS); err != nil {
		t.Fatalf("Migrate error: %v", err)
	}

	if _, err := d.Exec(ctx, `INSERT INTO users (name, email, password, created) VALUES ('A', 'dup@x.com', 'p', 0)`); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := d.Exec(ctx, `INSERT INTO users (name, email, password, created) VALUES ('B', 'dup@x.com', 'p', 0)`); err == nil {
		t.Fatalf("expected unique constraint violation on duplicate email")
	}
}
