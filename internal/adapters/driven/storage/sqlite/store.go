package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/factotum-labs/factotum-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/factotum-labs/factotum-cli/internal/core/domain"
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// fact and conversation store interfaces through wrapper types.
//
// The database is opened in WAL mode: searches read concurrently while
// inserts and access-stat updates serialize through the single writer.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.factotum/data/knowledge.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".factotum", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "knowledge.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// FactStore returns a FactStore interface backed by this store.
func (s *Store) FactStore() driven.FactStore {
	return &factStore{store: s}
}

// ConversationStore returns a ConversationStore interface backed by
// this store.
func (s *Store) ConversationStore() driven.ConversationStore {
	return &conversationStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Fact Store ====================

// factStore implements driven.FactStore.
type factStore struct {
	store *Store
}

var _ driven.FactStore = (*factStore)(nil)

// SaveFact stores a new fact built from the draft.
func (s *factStore) SaveFact(ctx context.Context, draft domain.FactDraft) (*domain.Fact, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	importance := draft.Importance
	if importance == 0 {
		importance = domain.DefaultImportance
	}

	fact := domain.Fact{
		ID:         uuid.NewString(),
		Content:    draft.Content,
		Category:   draft.Category,
		Importance: domain.ClampImportance(importance),
		Tags:       append([]string(nil), draft.Tags...),
		CreatedAt:  time.Now().UTC(),
	}
	if draft.Source != nil {
		src := *draft.Source
		fact.Source = &src
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO facts (id, content, category, importance, created_at, access_count)
		VALUES (?, ?, ?, ?, ?, 0)
	`, fact.ID, fact.Content, nullString(fact.Category), fact.Importance, fact.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting fact: %w", err)
	}

	for _, tag := range fact.Tags {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO fact_tags (fact_id, tag) VALUES (?, ?)
		`, fact.ID, tag); err != nil {
			return nil, fmt.Errorf("inserting tag: %w", err)
		}
	}

	if fact.Source != nil {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO fact_sources (fact_id, type, url, title, author, date)
			VALUES (?, ?, ?, ?, ?, ?)
		`, fact.ID, fact.Source.Type, fact.Source.URL, fact.Source.Title,
			fact.Source.Author, fact.Source.Date); err != nil {
			return nil, fmt.Errorf("inserting source: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing fact: %w", err)
	}

	out := fact
	return &out, nil
}

// GetFact retrieves a fact by ID.
func (s *factStore) GetFact(ctx context.Context, id string) (*domain.Fact, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, content, category, importance, created_at, last_accessed, access_count
		FROM facts WHERE id = ?
	`, id)

	fact, err := scanFact(row)
	if err != nil {
		return nil, err
	}

	if err := s.loadTags(ctx, fact); err != nil {
		return nil, err
	}
	if err := s.loadSource(ctx, fact); err != nil {
		return nil, err
	}
	return fact, nil
}

// ListFacts returns the corpus ordered by insertion (rowid). That
// order is the documented tie-break for equal ranking scores.
func (s *factStore) ListFacts(ctx context.Context, category string) ([]domain.Fact, error) {
	query := `
		SELECT id, content, category, importance, created_at, last_accessed, access_count
		FROM facts`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ? COLLATE NOCASE`
		args = append(args, category)
	}
	query += ` ORDER BY rowid`

	return s.queryFacts(ctx, query, args...)
}

// FactsByCategory returns facts in a category, importance descending.
func (s *factStore) FactsByCategory(ctx context.Context, category string) ([]domain.Fact, error) {
	return s.queryFacts(ctx, `
		SELECT id, content, category, importance, created_at, last_accessed, access_count
		FROM facts
		WHERE category = ? COLLATE NOCASE
		ORDER BY importance DESC, rowid
	`, category)
}

// TouchAccess updates access statistics for the given facts.
// The increment happens inside the UPDATE statement, so concurrent
// touches on the same fact never lose an update.
func (s *factStore) TouchAccess(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(ids)+1)
	args = append(args, at.UTC())
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := s.store.db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE facts
		SET last_accessed = ?, access_count = access_count + 1
		WHERE id IN (%s)
	`, placeholders), args...)
	if err != nil {
		return fmt.Errorf("updating access stats: %w", err)
	}
	return nil
}

// CountFacts returns the corpus size.
func (s *factStore) CountFacts(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM facts")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting facts: %w", err)
	}
	return count, nil
}

func (s *factStore) queryFacts(ctx context.Context, query string, args ...any) ([]domain.Fact, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying facts: %w", err)
	}
	defer rows.Close()

	var facts []domain.Fact
	for rows.Next() {
		fact, err := scanFact(rows)
		if err != nil {
			return nil, err
		}
		facts = append(facts, *fact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating facts: %w", err)
	}

	// Tags and sources are loaded per fact; corpora are small enough
	// that the extra round trips don't matter on the search path.
	for i := range facts {
		if err := s.loadTags(ctx, &facts[i]); err != nil {
			return nil, err
		}
		if err := s.loadSource(ctx, &facts[i]); err != nil {
			return nil, err
		}
	}
	return facts, nil
}

func (s *factStore) loadTags(ctx context.Context, fact *domain.Fact) error {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT tag FROM fact_tags WHERE fact_id = ? ORDER BY tag
	`, fact.ID)
	if err != nil {
		return fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return fmt.Errorf("scanning tag: %w", err)
		}
		fact.Tags = append(fact.Tags, tag)
	}
	return rows.Err()
}

func (s *factStore) loadSource(ctx context.Context, fact *domain.Fact) error {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT type, url, title, author, date FROM fact_sources WHERE fact_id = ?
	`, fact.ID)

	var src domain.FactSource
	err := row.Scan(&src.Type, &src.URL, &src.Title, &src.Author, &src.Date)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("scanning source: %w", err)
	}
	fact.Source = &src
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFact(row scanner) (*domain.Fact, error) {
	var fact domain.Fact
	var category sql.NullString
	var lastAccessed sql.NullTime
	if err := row.Scan(&fact.ID, &fact.Content, &category, &fact.Importance,
		&fact.CreatedAt, &lastAccessed, &fact.AccessCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning fact: %w", err)
	}

	fact.Category = category.String
	if lastAccessed.Valid {
		t := lastAccessed.Time
		fact.LastAccessed = &t
	}
	return &fact, nil
}

// ==================== Conversation Store ====================

// conversationStore implements driven.ConversationStore.
type conversationStore struct {
	store *Store
}

var _ driven.ConversationStore = (*conversationStore)(nil)

// SaveExchange appends an exchange to the log.
func (s *conversationStore) SaveExchange(
	ctx context.Context, userInput, response string, feedback int,
) (*domain.Exchange, error) {
	exchange := domain.Exchange{
		ID:        uuid.NewString(),
		UserInput: userInput,
		Response:  response,
		Feedback:  feedback,
		Timestamp: time.Now().UTC(),
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO conversations (id, user_input, system_response, feedback, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, exchange.ID, exchange.UserInput, exchange.Response, exchange.Feedback, exchange.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("inserting exchange: %w", err)
	}

	out := exchange
	return &out, nil
}

// RecentExchanges returns up to limit exchanges, newest first.
func (s *conversationStore) RecentExchanges(ctx context.Context, limit int) ([]domain.Exchange, error) {
	query := `
		SELECT id, user_input, system_response, feedback, timestamp
		FROM conversations
		ORDER BY rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []domain.Exchange
	for rows.Next() {
		var e domain.Exchange
		if err := rows.Scan(&e.ID, &e.UserInput, &e.Response, &e.Feedback, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning exchange: %w", err)
		}
		exchanges = append(exchanges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exchanges: %w", err)
	}
	return exchanges, nil
}

// CountExchanges returns the log size.
func (s *conversationStore) CountExchanges(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM conversations")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting exchanges: %w", err)
	}
	return count, nil
}

// nullString converts an empty string to a NULL-able value.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
