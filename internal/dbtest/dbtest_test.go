package dbtest

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
)

func TestApply_idempotent(t *testing.T) {
	conn, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "x.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if err := Apply(conn); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if err := Apply(conn); err != nil {
		t.Fatalf("second Apply: %v", err)
	}

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + tableName).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	all, err := fixtures()
	if err != nil {
		t.Fatalf("fixtures: %v", err)
	}
	if n != len(all) {
		t.Errorf("recorded %d fixtures, want %d", n, len(all))
	}
}

func TestSchemaSQL(t *testing.T) {
	s, err := SchemaSQL()
	if err != nil {
		t.Fatalf("SchemaSQL: %v", err)
	}
	for _, table := range []string{"CREATE TABLE station", "CREATE TABLE measurement"} {
		if !strings.Contains(s, table) {
			t.Errorf("SchemaSQL missing %q", table)
		}
	}
}

func TestOpen_seededAndReadOnly(t *testing.T) {
	conn := Open(t, `INSERT INTO station (id, station, name) VALUES (1, 'USC00519397', 'WAIKIKI')`)

	var name string
	if err := conn.QueryRow(`SELECT name FROM station WHERE id = 1`).Scan(&name); err != nil {
		t.Fatalf("select: %v", err)
	}
	if name != "WAIKIKI" {
		t.Errorf("name = %q", name)
	}
	if _, err := conn.Exec(`DELETE FROM station`); err == nil {
		t.Error("delete succeeded on read-only handle")
	}
}
