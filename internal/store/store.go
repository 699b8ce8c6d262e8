// Package store keeps translated notes in a local SQLite database, standing
// in for the flashcard editor's own note storage.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when no note has the requested GUID.
var ErrNotFound = errors.New("note not found")

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	guid           TEXT NOT NULL UNIQUE,
	url            TEXT NOT NULL UNIQUE,
	hebrew         TEXT NOT NULL DEFAULT '',
	definition     TEXT NOT NULL DEFAULT '',
	gender         TEXT NOT NULL DEFAULT '',
	part_of_speech TEXT NOT NULL DEFAULT '',
	shoresh        TEXT NOT NULL DEFAULT '',
	audio          TEXT NOT NULL DEFAULT '',
	inflections    TEXT NOT NULL DEFAULT '',
	extended       TEXT NOT NULL DEFAULT '',
	image          TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMP NOT NULL,
	updated_at     TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS note_tags (
	note_id INTEGER NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
	tag     TEXT NOT NULL,
	PRIMARY KEY (note_id, tag)
);
CREATE INDEX IF NOT EXISTS idx_note_tags_tag ON note_tags(tag);
`

// InitDB creates the schema on conn. It is safe to run repeatedly.
func InitDB(conn *sql.DB) error {
	for _, s := range strings.Split(migrationsSQL, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := conn.Exec(s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Store persists notes.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the SQLite database at path and migrates it.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := InitDB(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return New(conn), nil
}

// New wraps an already migrated connection.
func New(conn *sql.DB) *Store {
	return &Store{db: conn, now: time.Now}
}

func (s *Store) Close() error { return s.db.Close() }

// Save inserts n, or updates the note previously saved from the same URL.
// The stored tags are replaced by n.Tags. It fills in n.GUID and the
// timestamps.
func (s *Store) Save(ctx context.Context, n *Note) error {
	if strings.TrimSpace(n.URL) == "" {
		return fmt.Errorf("note url must be non-empty")
	}
	if n.GUID == "" {
		n.GUID = uuid.NewString()
	}
	now := s.now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	f := n.Fields
	var id int64
	var guid string
	var created time.Time
	err = tx.QueryRowContext(ctx, `INSERT INTO notes
		(guid, url, hebrew, definition, gender, part_of_speech, shoresh, audio, inflections, extended, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			hebrew = excluded.hebrew,
			definition = excluded.definition,
			gender = excluded.gender,
			part_of_speech = excluded.part_of_speech,
			shoresh = excluded.shoresh,
			audio = excluded.audio,
			inflections = excluded.inflections,
			extended = excluded.extended,
			image = excluded.image,
			updated_at = excluded.updated_at
		RETURNING id, guid`,
		n.GUID, n.URL, f[0], f[1], f[2], f[3], f[4], f[5], f[6], f[7], f[8], now, now,
	).Scan(&id, &guid)
	if err != nil {
		return fmt.Errorf("upsert note: %w", err)
	}
	if err := tx.QueryRowContext(ctx, `SELECT created_at FROM notes WHERE id = ?`, id).Scan(&created); err != nil {
		return fmt.Errorf("read note: %w", err)
	}
	// the saved tags become exactly n.Tags
	if _, err := tx.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, id); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	for _, tag := range n.Tags {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO note_tags (note_id, tag) VALUES (?, ?)`, id, tag); err != nil {
			return fmt.Errorf("insert tag: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	n.GUID = guid
	n.CreatedAt = created
	n.UpdatedAt = now
	log.Debug().Str("guid", guid).Str("url", n.URL).Msg("note saved")
	return nil
}

const selectNote = `SELECT id, guid, url, hebrew, definition, gender, part_of_speech, shoresh, audio, inflections, extended, image, created_at, updated_at FROM notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(r rowScanner) (int64, Note, error) {
	var id int64
	var n Note
	f := &n.Fields
	err := r.Scan(&id, &n.GUID, &n.URL, &f[0], &f[1], &f[2], &f[3], &f[4], &f[5], &f[6], &f[7], &f[8], &n.CreatedAt, &n.UpdatedAt)
	return id, n, err
}

// Get returns the note with guid.
func (s *Store) Get(ctx context.Context, guid string) (Note, error) {
	id, n, err := scanNote(s.db.QueryRowContext(ctx, selectNote+` WHERE guid = ?`, guid))
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, err
	}
	if n.Tags, err = s.tags(ctx, id); err != nil {
		return Note{}, err
	}
	return n, nil
}

// List returns all notes, oldest first. When tag is set only notes carrying
// it are returned.
func (s *Store) List(ctx context.Context, tag string) ([]Note, error) {
	q := selectNote + ` ORDER BY id`
	args := []any{}
	if tag != "" {
		q = selectNote + ` WHERE id IN (SELECT note_id FROM note_tags WHERE tag = ?) ORDER BY id`
		args = append(args, tag)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	var notes []Note
	for rows.Next() {
		id, n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	for i, id := range ids {
		if notes[i].Tags, err = s.tags(ctx, id); err != nil {
			return nil, err
		}
	}
	return notes, nil
}

func (s *Store) tags(ctx context.Context, noteID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tag FROM note_tags WHERE note_id = ? ORDER BY tag`, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
