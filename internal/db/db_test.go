package db_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	dbpkg "github.com/campushub/grievance/internal/db"
)

func openTestDB(t *testing.T) *dbpkg.DB {
	t.Helper()
	d, err := dbpkg.New(context.Background(), fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestExecAndQuery(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	if _, err := d.Exec(ctx, `CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := d.Exec(ctx, `INSERT INTO t (v) VALUES (?), (?)`, "a", "b"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var v string
	if err := d.QueryRow(ctx, `SELECT v FROM t WHERE id = 1`).Scan(&v); err != nil {
		t.Fatalf("query row: %v", err)
	}
	if v != "a" {
		t.Fatalf("v = %q", v)
	}

	rows, err := d.QueryRows(ctx, `SELECT v FROM t ORDER BY id`)
	if err != nil {
		t.Fatalf("query rows: %v", err)
	}
	defer rows.Close()

	var got []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, s)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("rows = %v", got)
	}
}

func TestWithTx(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	if _, err := d.Exec(ctx, `CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	// commit path
	if err := d.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO t (v) VALUES (?)`, "kept")
		return err
	}); err != nil {
		t.Fatalf("WithTx commit: %v", err)
	}

	// rollback path
	boom := errors.New("boom")
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO t (v) VALUES (?)`, "dropped"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx error = %v, want boom", err)
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(*) FROM t`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1 (rollback leaked rows)", count)
	}
}
