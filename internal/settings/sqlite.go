package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"finitefield.org/hanko-seo/internal/seo"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS seo_settings (
    site_id      TEXT PRIMARY KEY,
    og_meta      INTEGER NOT NULL DEFAULT 1,
    twitter_meta INTEGER NOT NULL DEFAULT 1,
    twitter_site TEXT NOT NULL DEFAULT '',
    struct_meta  INTEGER NOT NULL DEFAULT 1,
    amp_pages    INTEGER NOT NULL DEFAULT 0,
    updated_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);
`

// SQLite stores settings in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path. ":memory:" gives a
// private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	dsn := path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		dsn = path
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("settings: open sqlite: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("settings: init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("settings: init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get implements Store.
func (s *SQLite) Get(ctx context.Context, siteID string) (seo.Settings, error) {
	id, err := normalizeSiteID(siteID)
	if err != nil {
		return seo.Settings{}, err
	}
	out := seo.Settings{SiteID: id}
	err = s.db.QueryRowContext(ctx,
		`SELECT og_meta, twitter_meta, twitter_site, struct_meta, amp_pages FROM seo_settings WHERE site_id = ?`, id,
	).Scan(&out.OGMeta, &out.TwitterMeta, &out.TwitterSite, &out.StructMeta, &out.AMPPages)
	if errors.Is(err, sql.ErrNoRows) {
		return seo.DefaultSettings(id), nil
	}
	if err != nil {
		return seo.Settings{}, fmt.Errorf("settings: query %s: %w", id, err)
	}
	return out, nil
}

// Save implements Store.
func (s *SQLite) Save(ctx context.Context, in seo.Settings) error {
	in, err := prepare(in)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO seo_settings (site_id, og_meta, twitter_meta, twitter_site, struct_meta, amp_pages)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(site_id) DO UPDATE SET
    og_meta = excluded.og_meta,
    twitter_meta = excluded.twitter_meta,
    twitter_site = excluded.twitter_site,
    struct_meta = excluded.struct_meta,
    amp_pages = excluded.amp_pages,
    updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')`,
		in.SiteID, in.OGMeta, in.TwitterMeta, in.TwitterSite, in.StructMeta, in.AMPPages,
	)
	if err != nil {
		return fmt.Errorf("settings: upsert %s: %w", in.SiteID, err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLite) Delete(ctx context.Context, siteID string) error {
	id, err := normalizeSiteID(siteID)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM seo_settings WHERE site_id = ?`, id)
	if err != nil {
		return fmt.Errorf("settings: delete %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
