package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/result"
)

type PermissionStore struct {
	db Querier
}

func NewPermissionStore(db Querier) *PermissionStore {
	return &PermissionStore{db: db}
}

const permissionColumns = `id, document_id, user_id, permission_type, created_at, updated_at`

func scanPermission(row pgx.Row) (domain.Permission, error) {
	var p domain.Permission
	err := row.Scan(
		&p.ID,
		&p.DocumentID,
		&p.UserID,
		&p.PermissionType,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (s *PermissionStore) FetchByID(ctx context.Context, id uuid.UUID) result.Result[domain.Permission] {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE id = $1`

	perm, err := scanPermission(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.Permission](domain.ErrPermissionNotFound(id.String()))
		}
		return result.Err[domain.Permission](fmt.Errorf("fetch permission: %w", err))
	}
	return result.Ok(perm)
}

func (s *PermissionStore) Insert(ctx context.Context, perm domain.Permission) result.Result[domain.Permission] {
	query := `
		INSERT INTO permissions (id, document_id, user_id, permission_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + permissionColumns

	stored, err := scanPermission(s.db.QueryRow(ctx, query,
		perm.ID, perm.DocumentID, perm.UserID, perm.PermissionType, perm.CreatedAt, perm.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return result.Err[domain.Permission](domain.ErrPermissionAlreadyExists(perm.ID.String()))
		}
		return result.Err[domain.Permission](fmt.Errorf("insert permission: %w", err))
	}
	return result.Ok(stored)
}

func (s *PermissionStore) Update(ctx context.Context, perm domain.Permission) result.Result[domain.Permission] {
	query := `
		UPDATE permissions
		SET permission_type = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + permissionColumns

	stored, err := scanPermission(s.db.QueryRow(ctx, query, perm.ID, perm.PermissionType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.Permission](domain.ErrPermissionNotFound(perm.ID.String()))
		}
		return result.Err[domain.Permission](fmt.Errorf("update permission: %w", err))
	}
	return result.Ok(stored)
}

func (s *PermissionStore) Remove(ctx context.Context, id uuid.UUID) result.Result[domain.Permission] {
	query := `DELETE FROM permissions WHERE id = $1 RETURNING ` + permissionColumns

	deleted, err := scanPermission(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.Err[domain.Permission](domain.ErrPermissionNotFound(id.String()))
		}
		return result.Err[domain.Permission](fmt.Errorf("remove permission: %w", err))
	}
	return result.Ok(deleted)
}

func (s *PermissionStore) FetchByDocument(ctx context.Context, documentID uuid.UUID) result.Result[[]domain.Permission] {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE document_id = $1 ORDER BY created_at`

	rows, err := s.db.Query(ctx, query, documentID)
	if err != nil {
		return result.Err[[]domain.Permission](fmt.Errorf("fetch document permissions: %w", err))
	}
	defer rows.Close()

	perms := make([]domain.Permission, 0)
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return result.Err[[]domain.Permission](fmt.Errorf("scan permission: %w", err))
		}
		perms = append(perms, p)
	}
	if err := rows.Err(); err != nil {
		return result.Err[[]domain.Permission](fmt.Errorf("iterate permissions: %w", err))
	}
	return result.Ok(perms)
}

// RemoveByDocumentAndUser targets the specific grantee+document pair so
// revoking one user's grant cannot touch the owner's row.
func (s *PermissionStore) RemoveByDocumentAndUser(ctx context.Context, documentID, userID uuid.UUID) result.Result[int] {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM permissions WHERE document_id = $1 AND user_id = $2`,
		documentID, userID)
	if err != nil {
		return result.Err[int](fmt.Errorf("revoke permission: %w", err))
	}
	return result.Ok(int(tag.RowsAffected()))
}

func (s *PermissionStore) RemoveByDocument(ctx context.Context, documentID uuid.UUID) result.Result[int] {
	tag, err := s.db.Exec(ctx, `DELETE FROM permissions WHERE document_id = $1`, documentID)
	if err != nil {
		return result.Err[int](fmt.Errorf("remove document permissions: %w", err))
	}
	return result.Ok(int(tag.RowsAffected()))
}
