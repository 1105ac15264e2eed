// Package storage persists readings and journal entries in SQLite.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/ports"
)

// DB wraps a SQLite connection. It implements ports.ReadingStore and
// ports.JournalStore.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS readings (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		question       TEXT NOT NULL,
		spread_type    TEXT NOT NULL,
		reading_data   TEXT NOT NULL,
		interpretation TEXT NOT NULL,
		created_at     DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal_entries (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL,
		mood       TEXT NOT NULL,
		reading_id TEXT,
		tags       TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_readings_user ON readings(user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_journal_user ON journal_entries(user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_journal_reading ON journal_entries(reading_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type readingRow struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	Question       string    `db:"question"`
	SpreadType     string    `db:"spread_type"`
	ReadingData    string    `db:"reading_data"`
	Interpretation string    `db:"interpretation"`
	CreatedAt      time.Time `db:"created_at"`
}

func (db *DB) CreateReading(ctx context.Context, r domain.Reading) error {
	cards, err := json.Marshal(r.Cards)
	if err != nil {
		return fmt.Errorf("marshal cards: %w", err)
	}
	interp, err := json.Marshal(r.Interpretation)
	if err != nil {
		return fmt.Errorf("marshal interpretation: %w", err)
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO readings (id, user_id, question, spread_type, reading_data, interpretation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Question, r.SpreadType, string(cards), string(interp), r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

func (db *DB) GetReading(ctx context.Context, id string) (domain.Reading, error) {
	var row readingRow
	err := db.conn.GetContext(ctx, &row, `SELECT * FROM readings WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Reading{}, domain.ErrReadingNotFound
	}
	if err != nil {
		return domain.Reading{}, fmt.Errorf("select reading: %w", err)
	}
	return row.toDomain()
}

func (db *DB) ListReadings(ctx context.Context, userID string) ([]domain.Reading, error) {
	var rows []readingRow
	err := db.conn.SelectContext(ctx, &rows, `
		SELECT * FROM readings WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("select readings: %w", err)
	}

	out := make([]domain.Reading, 0, len(rows))
	for _, row := range rows {
		r, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (row readingRow) toDomain() (domain.Reading, error) {
	r := domain.Reading{
		ID:         row.ID,
		UserID:     row.UserID,
		Question:   row.Question,
		SpreadType: row.SpreadType,
		CreatedAt:  row.CreatedAt,
	}
	if err := json.Unmarshal([]byte(row.ReadingData), &r.Cards); err != nil {
		return domain.Reading{}, fmt.Errorf("unmarshal cards for reading %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Interpretation), &r.Interpretation); err != nil {
		return domain.Reading{}, fmt.Errorf("unmarshal interpretation for reading %s: %w", row.ID, err)
	}
	return r, nil
}

type entryRow struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	Title     string         `db:"title"`
	Content   string         `db:"content"`
	Mood      string         `db:"mood"`
	ReadingID sql.NullString `db:"reading_id"`
	Tags      string         `db:"tags"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (db *DB) CreateEntry(ctx context.Context, e domain.JournalEntry) error {
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO journal_entries (id, user_id, title, content, mood, reading_id, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Title, e.Content, string(e.Mood), nullable(e.ReadingID), string(tags), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (db *DB) GetEntry(ctx context.Context, id string) (domain.JournalEntry, error) {
	var row entryRow
	err := db.conn.GetContext(ctx, &row, `SELECT * FROM journal_entries WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.JournalEntry{}, domain.ErrEntryNotFound
	}
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("select entry: %w", err)
	}
	return row.toDomain()
}

func (db *DB) ListEntries(ctx context.Context, filter ports.JournalFilter) ([]domain.JournalEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Mood != "" {
		where = append(where, "mood = ?")
		args = append(args, string(filter.Mood))
	}
	if filter.ReadingID != "" {
		where = append(where, "reading_id = ?")
		args = append(args, filter.ReadingID)
	}

	query := `SELECT * FROM journal_entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var rows []entryRow
	if err := db.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}

	out := make([]domain.JournalEntry, 0, len(rows))
	for _, row := range rows {
		e, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (db *DB) UpdateEntry(ctx context.Context, e domain.JournalEntry) error {
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	res, err := db.conn.ExecContext(ctx, `
		UPDATE journal_entries
		SET title = ?, content = ?, mood = ?, reading_id = ?, tags = ?, updated_at = ?
		WHERE id = ?`,
		e.Title, e.Content, string(e.Mood), nullable(e.ReadingID), string(tags), e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (db *DB) DeleteEntry(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (row entryRow) toDomain() (domain.JournalEntry, error) {
	e := domain.JournalEntry{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Content:   row.Content,
		Mood:      domain.Mood(row.Mood),
		ReadingID: row.ReadingID.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.Tags), &e.Tags); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("unmarshal tags for entry %s: %w", row.ID, err)
	}
	return e, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
