package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/redliner/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
)

// DatabaseFile is the file name of the database inside the data directory.
const DatabaseFile = "redliner.db"

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultDataDir returns <UserConfigDir>/Redliner.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting config directory: %w", err)
	}
	return filepath.Join(base, "Redliner"), nil
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, DefaultDataDir is used.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// Pragmas in the DSN apply to every connection in the pool, which the
	// cascade on annotations relies on.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// AnnotationStore returns an AnnotationStore interface backed by this store.
func (s *Store) AnnotationStore() driven.AnnotationStore {
	return &annotationStore{store: s}
}

// PreferenceStore returns a PreferenceStore interface backed by this store.
func (s *Store) PreferenceStore() driven.PreferenceStore {
	return &preferenceStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

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
		// "001_initial.up.sql" -> 1
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

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("starting migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = "id, file_path, file_name, file_type, created_at, last_modified"

// CreateDocument inserts a document and assigns its ID.
func (s *documentStore) CreateDocument(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.LastModified.IsZero() {
		doc.LastModified = now
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (file_path, file_name, file_type, created_at, last_modified)
		VALUES (?, ?, ?, ?, ?)
	`, doc.FilePath, doc.FileName, string(doc.FileType), doc.CreatedAt.UTC(), doc.LastModified.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("creating document %s: %w", doc.FilePath, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("creating document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading document id: %w", err)
	}
	doc.ID = id
	return nil
}

// UpdateDocument stores changes to an existing document.
func (s *documentStore) UpdateDocument(ctx context.Context, doc *domain.Document) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE documents
		SET file_path = ?, file_name = ?, file_type = ?, last_modified = ?
		WHERE id = ?
	`, doc.FilePath, doc.FileName, string(doc.FileType), doc.LastModified.UTC(), doc.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("updating document %d: %w", doc.ID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("updating document: %w", err)
	}
	return requireAffected(res, "updating document")
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	return scanDocument(row)
}

// GetDocumentByPath retrieves a document by its absolute path.
func (s *documentStore) GetDocumentByPath(ctx context.Context, path string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE file_path = ?", path)
	return scanDocument(row)
}

// ListDocuments returns documents ordered by LastModified, newest first.
func (s *documentStore) ListDocuments(ctx context.Context, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		ORDER BY last_modified DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// CountDocuments returns the number of tracked documents.
func (s *documentStore) CountDocuments(ctx context.Context) (int, error) {
	var count int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}

// DeleteDocument removes a document. Its annotations go with it.
func (s *documentStore) DeleteDocument(ctx context.Context, id int64) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return requireAffected(res, "deleting document")
}

// ==================== Annotation Store ====================

// annotationStore implements driven.AnnotationStore.
type annotationStore struct {
	store *Store
}

var _ driven.AnnotationStore = (*annotationStore)(nil)

const annotationColumns = `id, document_id, type, x, y, width, height, text, color,
	stroke_thickness, layer, created_at, last_modified`

// CreateAnnotation inserts an annotation and assigns its ID.
func (s *annotationStore) CreateAnnotation(ctx context.Context, a *domain.Annotation) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.LastModified.IsZero() {
		a.LastModified = now
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO annotations (document_id, type, x, y, width, height, text, color,
			stroke_thickness, layer, created_at, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.DocumentID, string(a.Type), a.X, a.Y, a.Width, a.Height, nullString(a.Text), a.Color,
		a.StrokeThickness, nullString(a.Layer), a.CreatedAt.UTC(), a.LastModified.UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("creating annotation for document %d: %w", a.DocumentID, domain.ErrNotFound)
		}
		return fmt.Errorf("creating annotation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading annotation id: %w", err)
	}
	a.ID = id
	return nil
}

// UpdateAnnotation stores changes to an existing annotation.
func (s *annotationStore) UpdateAnnotation(ctx context.Context, a *domain.Annotation) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE annotations
		SET document_id = ?, type = ?, x = ?, y = ?, width = ?, height = ?, text = ?,
			color = ?, stroke_thickness = ?, layer = ?, last_modified = ?
		WHERE id = ?
	`, a.DocumentID, string(a.Type), a.X, a.Y, a.Width, a.Height, nullString(a.Text),
		a.Color, a.StrokeThickness, nullString(a.Layer), a.LastModified.UTC(), a.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("updating annotation %d: %w", a.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("updating annotation: %w", err)
	}
	return requireAffected(res, "updating annotation")
}

// GetAnnotation retrieves an annotation by ID.
func (s *annotationStore) GetAnnotation(ctx context.Context, id int64) (*domain.Annotation, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+annotationColumns+" FROM annotations WHERE id = ?", id)
	return scanAnnotation(row)
}

// ListAnnotations returns a document's annotations, oldest first.
// An empty layer matches every layer.
func (s *annotationStore) ListAnnotations(
	ctx context.Context, documentID int64, layer string,
) ([]domain.Annotation, error) {
	query := "SELECT " + annotationColumns + " FROM annotations WHERE document_id = ?"
	args := []any{documentID}
	if layer != "" {
		query += " AND layer = ?"
		args = append(args, layer)
	}
	query += " ORDER BY created_at, id"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	var annotations []domain.Annotation //nolint:prealloc // size unknown from query
	for rows.Next() {
		a, err := scanAnnotation(rows)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}

	return annotations, nil
}

// ListLayers returns the distinct non-empty layers used by a document.
func (s *annotationStore) ListLayers(ctx context.Context, documentID int64) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT DISTINCT layer FROM annotations
		WHERE document_id = ? AND layer IS NOT NULL AND layer <> ''
		ORDER BY layer
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying layers: %w", err)
	}
	defer rows.Close()

	var layers []string
	for rows.Next() {
		var layer string
		if err := rows.Scan(&layer); err != nil {
			return nil, fmt.Errorf("scanning layer: %w", err)
		}
		layers = append(layers, layer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layers: %w", err)
	}

	return layers, nil
}

// DeleteAnnotation removes an annotation.
func (s *annotationStore) DeleteAnnotation(ctx context.Context, id int64) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM annotations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting annotation: %w", err)
	}
	return requireAffected(res, "deleting annotation")
}

// ==================== Helpers ====================

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*domain.Document, error) {
	var doc domain.Document
	var fileType string
	var createdAt, lastModified sql.NullTime
	if err := row.Scan(&doc.ID, &doc.FilePath, &doc.FileName, &fileType,
		&createdAt, &lastModified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.FileType = domain.FileType(fileType)
	if createdAt.Valid {
		doc.CreatedAt = createdAt.Time
	}
	if lastModified.Valid {
		doc.LastModified = lastModified.Time
	}
	return &doc, nil
}

func scanAnnotation(row scanner) (*domain.Annotation, error) {
	var a domain.Annotation
	var typ string
	var text, layer sql.NullString
	var createdAt, lastModified sql.NullTime
	if err := row.Scan(&a.ID, &a.DocumentID, &typ, &a.X, &a.Y, &a.Width, &a.Height,
		&text, &a.Color, &a.StrokeThickness, &layer, &createdAt, &lastModified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning annotation: %w", err)
	}

	a.Type = domain.AnnotationType(typ)
	a.Text = text.String
	a.Layer = layer.String
	if createdAt.Valid {
		a.CreatedAt = createdAt.Time
	}
	if lastModified.Valid {
		a.LastModified = lastModified.Time
	}
	return &a, nil
}

// nullString maps the empty string to NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// requireAffected turns an update or delete that matched no row into ErrNotFound.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
