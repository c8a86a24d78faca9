// Package dbtest builds throwaway copies of the climate dataset for tests.
// Fixture files are named with a 4-digit prefix for order: 0001_name.sql.
package dbtest

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"gorm.io/gorm"

	"climate-server/internal/config"
	"climate-server/internal/db"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed sql/*.sql
var sqlFS embed.FS

const (
	fixturesDir = "sql"
	tableName   = "fixture_versions"
)

var fixtureFileRe = regexp.MustCompile(`^(\d{4})_(.+)\.sql$`)

type fixture struct {
	version string
	name    string
	body    string
}

// Apply creates the fixture bookkeeping table and runs every embedded fixture
// that has not been applied yet, in version order.
func Apply(conn *sql.DB) error {
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS ` + tableName + ` (version TEXT PRIMARY KEY, name TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("ensure fixture table: %w", err)
	}

	applied, err := appliedVersions(conn)
	if err != nil {
		return fmt.Errorf("list applied fixtures: %w", err)
	}

	all, err := fixtures()
	if err != nil {
		return err
	}
	for _, f := range all {
		if applied[f.version] {
			continue
		}
		if _, err := conn.Exec(f.body); err != nil {
			return fmt.Errorf("apply %s_%s.sql: %w", f.version, f.name, err)
		}
		if _, err := conn.Exec(`INSERT INTO `+tableName+` (version, name) VALUES (?, ?)`, f.version, f.name); err != nil {
			return fmt.Errorf("record %s: %w", f.version, err)
		}
	}
	return nil
}

// SchemaSQL returns every embedded fixture concatenated in version order, for
// feeding to the sqlite3 command line.
func SchemaSQL() (string, error) {
	all, err := fixtures()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, f := range all {
		b.WriteString(f.body)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Path writes a fresh dataset file under t.TempDir(), applies the fixtures and
// then each seed statement, and returns the file path.
func Path(t testing.TB, seed ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("dbtest: open %s: %v", path, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			t.Fatalf("dbtest: close: %v", err)
		}
	}()
	if err := Apply(conn); err != nil {
		t.Fatalf("dbtest: %v", err)
	}
	for _, stmt := range seed {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("dbtest: seed %q: %v", stmt, err)
		}
	}
	return path
}

// Config returns a config pointing at path with a small pool.
func Config(path string) config.Config {
	return config.Config{
		AppEnv:             "dev",
		SQLitePath:         path,
		SQLiteMaxOpenConns: 2,
		SQLiteMaxIdleConns: 2,
	}
}

// Open seeds a dataset and opens it read-only the way the server does.
func Open(t testing.TB, seed ...string) *sql.DB {
	t.Helper()
	conn, err := db.Open(Config(Path(t, seed...)), nil)
	if err != nil {
		t.Fatalf("dbtest: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })
	return conn
}

// OpenGorm is Open wrapped in a gorm handle.
func OpenGorm(t testing.TB, seed ...string) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenGorm(Open(t, seed...))
	if err != nil {
		t.Fatalf("dbtest: %v", err)
	}
	return gdb
}

func fixtures() ([]fixture, error) {
	entries, err := fs.ReadDir(sqlFS, fixturesDir)
	if err != nil {
		return nil, fmt.Errorf("read fixtures dir: %w", err)
	}
	var out []fixture
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := fixtureFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		body, err := fs.ReadFile(sqlFS, fixturesDir+"/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", e.Name(), err)
		}
		out = append(out, fixture{version: m[1], name: m[2], body: string(body)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func appliedVersions(conn *sql.DB) (map[string]bool, error) {
	rows, err := conn.Query(`SELECT version FROM ` + tableName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = true
	}
	return out, rows.Err()
}
