package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/repository"
	"github.com/lalith-99/docuvault/internal/result"
)

type DocumentStore struct {
	db Querier
}

func NewDocumentStore(db Querier) *DocumentStore {
	return &DocumentStore{db: db}
}

const documentColumns = `id, file_name, file_extension, file_path, user_id, created_at, updated_at`

func scanDocument(row pgx.Row) (domain.Document, error) {
	var d domain.Document
	err := row.Scan(
		&d.ID,
		&d.FileName,
		&d.FileExtension,
		&d.FilePath,
		&d.UserID,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func (s *DocumentStore) FetchByID(ctx context.Context, id uuid.UUID) result.Result[domain.Document] {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	doc, err := scanDocument(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.Document](domain.ErrDocumentNotFound(id.String()))
		}
		return result.Err[domain.Document](fmt.Errorf("fetch document: %w", err))
	}
	return result.Ok(doc)
}

func (s *DocumentStore) Insert(ctx context.Context, doc domain.Document) result.Result[domain.Document] {
	query := `
		INSERT INTO documents (id, file_name, file_extension, file_path, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + documentColumns

	stored, err := scanDocument(s.db.QueryRow(ctx, query,
		doc.ID, doc.FileName, doc.FileExtension, doc.FilePath, doc.UserID, doc.CreatedAt, doc.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return result.Err[domain.Document](domain.ErrDocumentAlreadyExists(doc.ID.String()))
		}
		return result.Err[domain.Document](fmt.Errorf("insert document: %w", err))
	}
	return result.Ok(stored)
}

func (s *DocumentStore) Update(ctx context.Context, doc domain.Document) result.Result[domain.Document] {
	query := `
		UPDATE documents
		SET file_name = $2, file_extension = $3, file_path = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + documentColumns

	stored, err := scanDocument(s.db.QueryRow(ctx, query,
		doc.ID, doc.FileName, doc.FileExtension, doc.FilePath))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.Document](domain.ErrDocumentUpdateFailed(doc.ID.String()))
		}
		return result.Err[domain.Document](fmt.Errorf("update document: %w", err))
	}
	return result.Ok(stored)
}

func (s *DocumentStore) Remove(ctx context.Context, id uuid.UUID) result.Result[domain.Document] {
	query := `DELETE FROM documents WHERE id = $1 RETURNING ` + documentColumns

	deleted, err := scanDocument(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.Document](domain.ErrDocumentNotFound(id.String()))
		}
		return result.Err[domain.Document](fmt.Errorf("remove document: %w", err))
	}
	return result.Ok(deleted)
}

// FetchAllWithPagination reads one page plus the total count. The two
// statements share a snapshot only when this runs inside WithinTx,
// which is how the services call it.
func (s *DocumentStore) FetchAllWithPagination(ctx context.Context, opts repository.PaginationOptions) result.Result[repository.Paginated[domain.Document]] {
	opts = opts.Normalize()
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, opts.PageSize, opts.Offset())
	if err != nil {
		return result.Err[repository.Paginated[domain.Document]](fmt.Errorf("list documents: %w", err))
	}
	defer rows.Close()

	docs := make([]domain.Document, 0, opts.PageSize)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return result.Err[repository.Paginated[domain.Document]](fmt.Errorf("scan document: %w", err))
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return result.Err[repository.Paginated[domain.Document]](fmt.Errorf("iterate documents: %w", err))
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM documents`).Scan(&total); err != nil {
		return result.Err[repository.Paginated[domain.Document]](fmt.Errorf("count documents: %w", err))
	}

	return result.Ok(repository.NewPaginated(docs, opts, total))
}
