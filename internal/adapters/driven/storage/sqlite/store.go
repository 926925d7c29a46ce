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

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nsventures/dealflow-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/nsventures/dealflow-cli/internal/core/domain"
	"github.com/nsventures/dealflow-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// category, user and pipeline store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.dealflow/data/pipeline.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".dealflow", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "pipeline.db")

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

// CategoryStore returns a CategoryStore interface backed by this store.
func (s *Store) CategoryStore() driven.CategoryStore {
	return &categoryStore{store: s}
}

// UserStore returns a UserStore interface backed by this store.
func (s *Store) UserStore() driven.UserStore {
	return &userStore{store: s}
}

// PipelineStore returns a PipelineStore interface backed by this store.
func (s *Store) PipelineStore() driven.PipelineStore {
	return &pipelineStore{store: s}
}

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
		// Extract version number (e.g., "001_schema.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Category Store ====================

type categoryStore struct {
	store *Store
}

func (s *categoryStore) List(ctx context.Context, kind domain.CategoryKind) ([]domain.Category, error) {
	query := fmt.Sprintf("SELECT id, name, color FROM %s ORDER BY name", kind.CategoryTable())
	rows, err := s.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s categories: %w", kind, err)
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Color); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

func (s *categoryStore) Create(ctx context.Context, kind domain.CategoryKind, cat domain.Category) (*domain.Category, error) {
	if cat.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if cat.Color == "" {
		cat.Color = domain.DefaultCategoryColor
	}
	cat.ID = uuid.NewString()

	query := fmt.Sprintf("INSERT INTO %s (id, name, color) VALUES (?, ?, ?)", kind.CategoryTable())
	if _, err := s.store.db.ExecContext(ctx, query, cat.ID, cat.Name, cat.Color); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("creating %s category: %w", kind, err)
	}
	return &cat, nil
}

// ==================== User Store ====================

type userStore struct {
	store *Store
}

func (s *userStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, email, name, airtable_user_id FROM users ORDER BY email
	`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		var name, sourceID sql.NullString
		if err := rows.Scan(&user.ID, &user.Email, &name, &sourceID); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		user.Name = name.String
		user.SourceUserID = sourceID.String
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *userStore) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.Email == "" {
		return nil, domain.ErrMissingEmail
	}
	user.ID = uuid.NewString()

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, airtable_user_id) VALUES (?, ?, ?, ?)
	`, user.ID, user.Email, nullString(user.Name), nullString(user.SourceUserID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &user, nil
}

// ==================== Pipeline Store ====================

type pipelineStore struct {
	store *Store
}

func (s *pipelineStore) InsertPipeline(ctx context.Context, entry *domain.PipelineEntry, createdBy string) (string, error) {
	id := uuid.NewString()

	columns := append([]string{"id"}, domain.PipelineColumns()...)
	columns = append(columns, "created_at", "created_by", "airtable_record_id")

	args := make([]any, 0, len(columns))
	args = append(args, id)
	for _, col := range domain.PipelineColumns() {
		args = append(args, entry.Values[col])
	}
	args = append(args, nullString(entry.CreatedTime), nullString(createdBy), entry.SourceRecordID)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO pipeline (%s) VALUES (%s)",
		strings.Join(columns, ", "), placeholders)

	if _, err := s.store.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("inserting pipeline row: %w", err)
	}
	return id, nil
}

func (s *pipelineStore) LinkCategory(ctx context.Context, kind domain.CategoryKind, pipelineID, categoryID string) error {
	query := fmt.Sprintf("INSERT INTO %s (id, pipeline_id, %s) VALUES (?, ?, ?)",
		kind.JunctionTable(), kind.JunctionColumn())
	if _, err := s.store.db.ExecContext(ctx, query, uuid.NewString(), pipelineID, categoryID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("linking %s category: %w", kind, err)
	}
	return nil
}

func (s *pipelineStore) LinkAssignee(ctx context.Context, pipelineID, userID string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO pipeline_assignees (id, pipeline_id, user_id) VALUES (?, ?, ?)
	`, uuid.NewString(), pipelineID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("linking assignee: %w", err)
	}
	return nil
}

func (s *pipelineStore) LinkPassCommunicator(ctx context.Context, pipelineID, userID string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO pipeline_pass_communicator (pipeline_id, user_id) VALUES (?, ?)
	`, pipelineID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("linking pass communicator: %w", err)
	}
	return nil
}

func (s *pipelineStore) InsertAttachment(ctx context.Context, pipelineID string, att domain.Attachment) error {
	var size any
	if att.FileSize != nil {
		size = *att.FileSize
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO pipeline_attachments
			(id, pipeline_id, file_type, file_name, file_url, file_size, mime_type, airtable_attachment_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), pipelineID, att.FileType, nullString(att.FileName),
		nullString(att.FileURL), size, nullString(att.MimeType), nullString(att.SourceFileID))
	if err != nil {
		return fmt.Errorf("inserting attachment: %w", err)
	}
	return nil
}

// nullString converts an empty string to a NULL-able value.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
