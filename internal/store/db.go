package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type migration struct {
	name string
	run  func(tx *sql.Tx) error
}

var migrations = []migration{
	{name: "0001_initial_schema", run: migrateInitialSchema},
	{name: "0002_clip_engine_column", run: migrateClipEngineColumn},
	{name: "0003_fts_rebuild", run: migrateFTSRebuild},
}

func OpenDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer at a time; serialize connections to avoid busy/locked storms.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at DATETIME NOT NULL
		);
	`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if _, ok := applied[m.name]; ok {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", m.name, err)
		}

		if err := m.run(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("run migration %s: %w", m.name, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO schema_migrations(name, applied_at) VALUES (?, ?)`,
			m.name,
			time.Now().UTC().Format(time.RFC3339Nano),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", m.name, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", m.name, err)
		}
	}

	return nil
}

func appliedMigrations(db *sql.DB) (map[string]struct{}, error) {
	rows, err := db.Query(`SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		out[name] = struct{}{}
	}
	return out, rows.Err()
}

func migrateInitialSchema(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS clips (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			mode TEXT NOT NULL,
			target TEXT,
			markdown TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS clips_fts USING fts5(
			source,
			markdown,
			content=clips,
			content_rowid=id
		);`,
		`CREATE TRIGGER IF NOT EXISTS clips_ai AFTER INSERT ON clips BEGIN
			INSERT INTO clips_fts(rowid, source, markdown)
			VALUES (new.id, new.source, new.markdown);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS clips_ad AFTER DELETE ON clips BEGIN
			INSERT INTO clips_fts(clips_fts, rowid, source, markdown)
			VALUES ('delete', old.id, old.source, old.markdown);
		END;`,
		`CREATE INDEX IF NOT EXISTS idx_clips_created ON clips(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_clips_mode ON clips(mode);`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func migrateClipEngineColumn(tx *sql.Tx) error {
	hasEngine, err := hasClipColumn(tx, "engine")
	if err != nil {
		return err
	}
	if !hasEngine {
		if _, err := tx.Exec(`ALTER TABLE clips ADD COLUMN engine TEXT NOT NULL DEFAULT 'minimal';`); err != nil {
			return err
		}
	}
	return nil
}

func hasClipColumn(tx *sql.Tx, target string) (bool, error) {
	rows, err := tx.Query(`PRAGMA table_info(clips);`)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notNull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == target {
			return true, nil
		}
	}
	return false, rows.Err()
}

func migrateFTSRebuild(tx *sql.Tx) error {
	if _, err := tx.Exec(`INSERT INTO clips_fts(clips_fts) VALUES ('rebuild');`); err != nil {
		return err
	}
	return nil
}
