// Package store keeps completed assessments in a SQLite database, together
// with their domain and overall judgements so they can be listed and
// counted without decoding every document.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/rob/internal/models"
	"github.com/harrison/rob/internal/rob2"
)

// ErrNotFound is returned when no assessment matches an ID.
var ErrNotFound = errors.New("assessment not found")

// Record is one stored assessment.
type Record struct {
	ID         string
	Framework  string
	Manuscript string
	Assessor   string
	SourcePath string
	Judgement  models.Verdict
	CreatedAt  time.Time

	// Populated by Get only
	Domains  []DomainJudgement
	Document *models.Framework
}

// DomainJudgement is the stored verdict of one domain.
type DomainJudgement struct {
	Index     int
	Name      string
	Aggregate bool
	Judgement models.Verdict
}

// Store manages the SQLite database of assessments
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens the database at dbPath, creating it and its parent
// directory when needed, and applies pending migrations.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	return openAndInitStore(dbPath)
}

func openAndInitStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	// busy_timeout first so the remaining pragmas wait on locks.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return s, nil
}

// execWithRetry retries statements that fail with "database is locked",
// doubling the delay between attempts.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores fw under a new ID and returns it. sourcePath records the file
// the assessment was imported from and may be empty.
func (s *Store) Save(ctx context.Context, fw *models.Framework, sourcePath string) (string, error) {
	doc, err := json.Marshal(fw)
	if err != nil {
		return "", fmt.Errorf("encode assessment: %w", err)
	}

	id := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO assessments (id, framework, manuscript, assessor, judgement, document, source_path, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, fw.Name, fw.Manuscript, fw.Assessor, fw.Judgement().String(), string(doc),
		nullString(sourcePath), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert assessment: %w", err)
	}

	for _, d := range fw.Domains {
		_, err = tx.ExecContext(ctx, `
INSERT INTO domain_judgements (assessment_id, domain_index, domain_name, aggregate, judgement)
VALUES (?, ?, ?, ?, ?)`,
			id, d.Index, d.Name, d.Aggregate, d.Judgement().String())
		if err != nil {
			return "", fmt.Errorf("insert judgement for domain %d: %w", d.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit assessment: %w", err)
	}
	return id, nil
}

// Get returns the assessment whose ID equals id or starts with it. The
// document is decoded and its domain kinds re-bound.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	fullID, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		rec       Record
		judgement string
		doc       string
		source    sql.NullString
	)
	err = s.db.QueryRowContext(ctx, `
SELECT id, framework, manuscript, assessor, judgement, document, source_path, created_at
FROM assessments WHERE id = ?`, fullID).
		Scan(&rec.ID, &rec.Framework, &rec.Manuscript, &rec.Assessor, &judgement, &doc, &source, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("query assessment: %w", err)
	}
	rec.SourcePath = source.String
	if err := rec.Judgement.UnmarshalText([]byte(judgement)); err != nil {
		return nil, fmt.Errorf("assessment %s: %w", rec.ID, err)
	}

	fw, err := models.UnmarshalFramework([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("assessment %s: %w", rec.ID, err)
	}
	rob2.Bind(fw)
	rec.Document = fw

	rows, err := s.db.QueryContext(ctx, `
SELECT domain_index, domain_name, aggregate, judgement
FROM domain_judgements WHERE assessment_id = ? ORDER BY domain_index`, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("query domain judgements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dj DomainJudgement
		var v string
		if err := rows.Scan(&dj.Index, &dj.Name, &dj.Aggregate, &v); err != nil {
			return nil, fmt.Errorf("scan domain judgement: %w", err)
		}
		if err := dj.Judgement.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("domain %d: %w", dj.Index, err)
		}
		rec.Domains = append(rec.Domains, dj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate domain judgements: %w", err)
	}

	return &rec, nil
}

// List returns every stored assessment, newest first, without documents.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, framework, manuscript, assessor, judgement, source_path, created_at
FROM assessments ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		var judgement string
		var source sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Framework, &rec.Manuscript, &rec.Assessor, &judgement, &source, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		rec.SourcePath = source.String
		if err := rec.Judgement.UnmarshalText([]byte(judgement)); err != nil {
			return nil, fmt.Errorf("assessment %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}
	return records, nil
}

// Delete removes the assessment matching id (full or unique prefix) and its
// domain judgements.
func (s *Store) Delete(ctx context.Context, id string) error {
	fullID, err := s.resolveID(ctx, id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM domain_judgements WHERE assessment_id = ?`, fullID); err != nil {
		return fmt.Errorf("delete domain judgements: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, fullID); err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	return tx.Commit()
}

// VerdictCounts returns how many stored assessments carry each overall
// verdict.
func (s *Store) VerdictCounts(ctx context.Context) (map[models.Verdict]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT judgement, COUNT(*) FROM assessments GROUP BY judgement`)
	if err != nil {
		return nil, fmt.Errorf("query verdict counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Verdict]int)
	for rows.Next() {
		var judgement string
		var n int
		if err := rows.Scan(&judgement, &n); err != nil {
			return nil, fmt.Errorf("scan verdict count: %w", err)
		}
		var v models.Verdict
		if err := v.UnmarshalText([]byte(judgement)); err != nil {
			return nil, err
		}
		counts[v] += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdict counts: %w", err)
	}
	return counts, nil
}

// resolveID expands a unique ID prefix to the full ID.
func (s *Store) resolveID(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM assessments WHERE id = ? OR id LIKE ? ESCAPE '\' LIMIT 2`,
		id, escapeLike(id)+"%")
	if err != nil {
		return "", fmt.Errorf("resolve id: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return "", fmt.Errorf("scan id: %w", err)
		}
		if m == id {
			return m, nil
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate ids: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous", id)
	}
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
