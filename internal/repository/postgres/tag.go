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

type TagStore struct {
	db Querier
}

func NewTagStore(db Querier) *TagStore {
	return &TagStore{db: db}
}

// Tag rows join against document_tags to surface the optional link; a
// NULL document_id scans to an absent Option.
func scanTagWithLink(row pgx.Row) (domain.Tag, error) {
	var t domain.Tag
	var docID *uuid.UUID
	err := row.Scan(&t.ID, &t.Name, &docID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	t.DocumentID = result.FromPtr(docID)
	return t, nil
}

func (s *TagStore) FetchByID(ctx context.Context, id uuid.UUID) result.Result[domain.Tag] {
	query := `
		SELECT t.id, t.name, dt.document_id, t.created_at, t.updated_at
		FROM tags t
		LEFT JOIN document_tags dt ON dt.tag_id = t.id
		WHERE t.id = $1`

	tag, err := scanTagWithLink(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.Tag](domain.ErrTagNotFound(id.String()))
		}
		return result.Err[domain.Tag](fmt.Errorf("fetch tag: %w", err))
	}
	return result.Ok(tag)
}

// Insert writes the tag row and, when the tag carries a document id,
// the link row. The two statements are atomic only inside WithinTx;
// the tag service runs it there.
func (s *TagStore) Insert(ctx context.Context, tag domain.Tag) result.Result[domain.Tag] {
	query := `
		INSERT INTO tags (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, created_at, updated_at`

	var stored domain.Tag
	err := s.db.QueryRow(ctx, query, tag.ID, tag.Name, tag.CreatedAt, tag.UpdatedAt).
		Scan(&stored.ID, &stored.Name, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return result.Err[domain.Tag](domain.ErrTagAlreadyExists(tag.Name))
		}
		return result.Err[domain.Tag](fmt.Errorf("insert tag: %w", err))
	}
	stored.DocumentID = tag.DocumentID

	if docID, ok := tag.DocumentID.Get(); ok {
		if _, err := s.db.Exec(ctx,
			`INSERT INTO document_tags (document_id, tag_id) VALUES ($1, $2)`,
			docID, stored.ID); err != nil {
			return result.Err[domain.Tag](fmt.Errorf("link tag to document: %w", err))
		}
	}
	return result.Ok(stored)
}

func (s *TagStore) Update(ctx context.Context, tag domain.Tag) result.Result[domain.Tag] {
	query := `
		UPDATE tags
		SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at`

	var stored domain.Tag
	err := s.db.QueryRow(ctx, query, tag.ID, tag.Name).
		Scan(&stored.ID, &stored.Name, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.Tag](domain.ErrTagUpdateFailed(tag.ID.String()))
		}
		if isUniqueViolation(err) {
			return result.Err[domain.Tag](domain.ErrTagAlreadyExists(tag.Name))
		}
		return result.Err[domain.Tag](fmt.Errorf("update tag: %w", err))
	}
	stored.DocumentID = tag.DocumentID
	return result.Ok(stored)
}

func (s *TagStore) Remove(ctx context.Context, id uuid.UUID) result.Result[domain.Tag] {
	query := `DELETE FROM tags WHERE id = $1 RETURNING id, name, created_at, updated_at`

	var deleted domain.Tag
	err := s.db.QueryRow(ctx, query, id).
		Scan(&deleted.ID, &deleted.Name, &deleted.CreatedAt, &deleted.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.Tag](domain.ErrTagNotFound(id.String()))
		}
		return result.Err[domain.Tag](fmt.Errorf("remove tag: %w", err))
	}
	deleted.DocumentID = result.None[uuid.UUID]()
	return result.Ok(deleted)
}

func (s *TagStore) RemoveLinks(ctx context.Context, tagID uuid.UUID) result.Result[int] {
	tag, err := s.db.Exec(ctx, `DELETE FROM document_tags WHERE tag_id = $1`, tagID)
	if err != nil {
		return result.Err[int](fmt.Errorf("remove tag links: %w", err))
	}
	return result.Ok(int(tag.RowsAffected()))
}

func (s *TagStore) RemoveLinksByDocument(ctx context.Context, documentID uuid.UUID) result.Result[int] {
	tag, err := s.db.Exec(ctx, `DELETE FROM document_tags WHERE document_id = $1`, documentID)
	if err != nil {
		return result.Err[int](fmt.Errorf("remove document links: %w", err))
	}
	return result.Ok(int(tag.RowsAffected()))
}

// UpsertTagsAndLink inserts each tag unless its name already exists,
// then links the row holding that name (new or pre-existing) to the
// tag's carried document id. Conflicting names keep their original tag
// id, so links are resolved by name, not by the id the factory minted.
func (s *TagStore) UpsertTagsAndLink(ctx context.Context, tags []domain.Tag) result.Result[[]domain.Tag] {
	linked := make([]domain.Tag, 0, len(tags))
	for _, tag := range tags {
		docID, ok := tag.DocumentID.Get()
		if !ok {
			return result.Err[[]domain.Tag](domain.ErrTagInvalidDocumentID)
		}

		query := `
			INSERT INTO tags (id, name, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO UPDATE SET updated_at = now()
			RETURNING id, name, created_at, updated_at`

		var stored domain.Tag
		err := s.db.QueryRow(ctx, query, tag.ID, tag.Name, tag.CreatedAt, tag.UpdatedAt).
			Scan(&stored.ID, &stored.Name, &stored.CreatedAt, &stored.UpdatedAt)
		if err != nil {
			return result.Err[[]domain.Tag](fmt.Errorf("upsert tag %q: %w", tag.Name, err))
		}

		if _, err := s.db.Exec(ctx,
			`INSERT INTO document_tags (document_id, tag_id) VALUES ($1, $2)
			 ON CONFLICT (document_id, tag_id) DO NOTHING`,
			docID, stored.ID); err != nil {
			return result.Err[[]domain.Tag](fmt.Errorf("link tag %q: %w", tag.Name, err))
		}

		stored.DocumentID = result.Some(docID)
		linked = append(linked, stored)
	}
	return result.Ok(linked)
}

func (s *TagStore) FetchTags(ctx context.Context, names []string) result.Result[[]uuid.UUID] {
	query := `
		SELECT dt.document_id
		FROM document_tags dt
		JOIN tags t ON t.id = dt.tag_id
		WHERE t.name = ANY($1)`

	rows, err := s.db.Query(ctx, query, names)
	if err != nil {
		return result.Err[[]uuid.UUID](fmt.Errorf("fetch tag links: %w", err))
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return result.Err[[]uuid.UUID](fmt.Errorf("scan document id: %w", err))
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return result.Err[[]uuid.UUID](fmt.Errorf("iterate tag links: %w", err))
	}
	return result.Ok(ids)
}

// FetchMatchingDocuments resolves tag names to the union of linked
// documents. DISTINCT keeps a document tagged with several of the names
// from appearing twice.
func (s *TagStore) FetchMatchingDocuments(ctx context.Context, names []string) result.Result[[]domain.Document] {
	query := `
		SELECT DISTINCT d.id, d.file_name, d.file_extension, d.file_path, d.user_id, d.created_at, d.updated_at
		FROM documents d
		JOIN document_tags dt ON dt.document_id = d.id
		JOIN tags t ON t.id = dt.tag_id
		WHERE t.name = ANY($1)`

	rows, err := s.db.Query(ctx, query, names)
	if err != nil {
		return result.Err[[]domain.Document](fmt.Errorf("search documents by tags: %w", err))
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return result.Err[[]domain.Document](fmt.Errorf("scan document: %w", err))
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return result.Err[[]domain.Document](fmt.Errorf("iterate documents: %w", err))
	}
	return result.Ok(docs)
}

func (s *TagStore) FetchAllWithPagination(ctx context.Context, opts repository.PaginationOptions) result.Result[repository.Paginated[domain.Tag]] {
	opts = opts.Normalize()
	query := `
		SELECT t.id, t.name, dt.document_id, t.created_at, t.updated_at
		FROM tags t
		LEFT JOIN document_tags dt ON dt.tag_id = t.id
		ORDER BY t.created_at DESC, t.id
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, opts.PageSize, opts.Offset())
	if err != nil {
		return result.Err[repository.Paginated[domain.Tag]](fmt.Errorf("list tags: %w", err))
	}
	defer rows.Close()

	tags := make([]domain.Tag, 0, opts.PageSize)
	for rows.Next() {
		t, err := scanTagWithLink(rows)
		if err != nil {
			return result.Err[repository.Paginated[domain.Tag]](fmt.Errorf("scan tag: %w", err))
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return result.Err[repository.Paginated[domain.Tag]](fmt.Errorf("iterate tags: %w", err))
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM tags`).Scan(&total); err != nil {
		return result.Err[repository.Paginated[domain.Tag]](fmt.Errorf("count tags: %w", err))
	}
	return result.Ok(repository.NewPaginated(tags, opts, total))
}
