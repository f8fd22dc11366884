// Package store is the client's persistent local storage: the cached session
// (user identity plus bearer token) and small key/value settings. It is a
// stand-in for a browser's localStorage, not an offline copy of feed data.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"humordrop/feed"
)

// Store wraps one SQLite file.
type Store struct {
	db *sql.DB
}

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	user_id TEXT NOT NULL,
	handle TEXT NOT NULL,
	bio TEXT,
	profile_pic_url TEXT,
	humor_tag TEXT,
	token TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT
);
`

// New opens (creating if needed) the database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set WAL mode: %w", err)
	}

	if _, err := db.Exec(createTablesSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession stores the logged-in user and token, replacing any previous
// session. There is at most one session row.
func (s *Store) SaveSession(user feed.User, token string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO session (id, user_id, handle, bio, profile_pic_url, humor_tag, token)
		 VALUES (1, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Handle, user.Bio, user.ProfilePicURL, string(user.HumorTag), token,
	)
	if err != nil {
		return fmt.Errorf("store: save session: %w", err)
	}
	return nil
}

// LoadSession returns the stored session, or (nil, "", nil) when logged out.
func (s *Store) LoadSession() (*feed.User, string, error) {
	var (
		user  feed.User
		tag   string
		token string
	)
	err := s.db.QueryRow(
		`SELECT user_id, handle, bio, profile_pic_url, humor_tag, token FROM session WHERE id = 1`,
	).Scan(&user.ID, &user.Handle, &user.Bio, &user.ProfilePicURL, &tag, &token)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("store: load session: %w", err)
	}
	user.HumorTag = feed.HumorTag(tag)
	return &user, token, nil
}

// ClearSession removes the stored session.
func (s *Store) ClearSession() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("store: clear session: %w", err)
	}
	return nil
}

// GetSetting returns the value for key, or "" if unset.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("store: get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores a key/value pair, replacing any previous value.
func (s *Store) SetSetting(key, value string) error {
	if _, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
		return fmt.Errorf("store: set setting %s: %w", key, err)
	}
	return nil
}
