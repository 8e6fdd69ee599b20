package postgres

import (
	"context"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

const documentColumns = `id, created_at, title, kind, content, user_id`

// DocumentStore implements driven.DocumentStore using PostgreSQL.
// Each version is a row keyed by (id, created_at).
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// SaveVersion inserts a new version
func (s *DocumentStore) SaveVersion(ctx context.Context, doc *domain.Document) error {
	query := `INSERT INTO documents (` + documentColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.CreatedAt,
		doc.Title,
		string(doc.Kind),
		doc.Content,
		doc.UserID,
	)
	return translateError(err)
}

// ListVersions lists all versions of a document, oldest first
func (s *DocumentStore) ListVersions(ctx context.Context, id string) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}
	return docs, nil
}

// Latest retrieves the newest version of a document
func (s *DocumentStore) Latest(ctx context.Context, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 ORDER BY created_at DESC LIMIT 1`
	return scanDocument(s.db.QueryRowContext(ctx, query, id))
}

// DeleteVersionsAfter deletes versions created strictly after the timestamp
func (s *DocumentStore) DeleteVersionsAfter(ctx context.Context, id string, after time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1 AND created_at > $2`, id, after)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

// DeleteByUser deletes every version of every document owned by a user
func (s *DocumentStore) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE user_id = $1`, userID)
	return err
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	err := row.Scan(&doc.ID, &doc.CreatedAt, &doc.Title, &doc.Kind, &doc.Content, &doc.UserID)
	if err != nil {
		return nil, translateError(err)
	}
	return &doc, nil
}
