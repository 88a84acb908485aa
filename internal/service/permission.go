package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/auth"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/repository"
	"github.com/lalith-99/docuvault/internal/result"
	"go.uber.org/zap"
)

// PermissionsService manages grants beyond the automatic Owner row.
// Every operation gates on the requester being the document's owner or
// holding the Admin role.
type PermissionsService struct {
	repos  repository.Repositories
	logger *zap.Logger
}

func NewPermissionsService(repos repository.Repositories, logger *zap.Logger) *PermissionsService {
	return &PermissionsService{repos: repos, logger: logger}
}

type GrantPermissionInput struct {
	DocumentID     uuid.UUID
	GranteeID      uuid.UUID
	PermissionType string
}

// GrantPermission inserts a permission row for the grantee after the
// owner-or-admin gate passes.
func (s *PermissionsService) GrantPermission(ctx context.Context, requester auth.Identity, in GrantPermissionInput) result.Result[domain.SerializedPermission] {
	s.logger.Info("granting permission",
		zap.String("document_id", in.DocumentID.String()),
		zap.String("grantee_id", in.GranteeID.String()),
		zap.String("type", in.PermissionType))

	authorized := s.repos.Documents.FetchByID(ctx, in.DocumentID).
		Then(ownerOrAdmin(requester))

	granted := result.AndThen(authorized, func(domain.Document) result.Result[domain.Permission] {
		permission := domain.NewPermission(in.DocumentID, in.GranteeID, in.PermissionType)
		return result.AndThen(permission.Guard(), func(p domain.Permission) result.Result[domain.Permission] {
			return s.repos.Permissions.Insert(ctx, p)
		})
	})
	return result.Map(granted, domain.Permission.Serialize)
}

// RevokePermission removes the rows for exactly the (document, grantee)
// pair. Revoking a grant that does not exist reports NotFound; the
// owner's own row is never in scope.
func (s *PermissionsService) RevokePermission(ctx context.Context, requester auth.Identity, documentID, granteeID uuid.UUID) result.Result[Success] {
	s.logger.Info("revoking permission",
		zap.String("document_id", documentID.String()),
		zap.String("grantee_id", granteeID.String()))

	authorized := s.repos.Documents.FetchByID(ctx, documentID).
		Then(ownerOrAdmin(requester))

	removed := result.AndThen(authorized, func(domain.Document) result.Result[int] {
		return s.repos.Permissions.RemoveByDocumentAndUser(ctx, documentID, granteeID)
	})
	if removed.IsErr() {
		return result.Err[Success](removed.Error())
	}
	if removed.Value() == 0 {
		return result.Err[Success](domain.ErrPermissionNotFound(granteeID.String()))
	}
	return result.Ok(Success{Success: true, Message: "Permission revoked successfully"})
}

// ListPermissions returns every grant on a document, gated like the
// mutations.
func (s *PermissionsService) ListPermissions(ctx context.Context, requester auth.Identity, documentID uuid.UUID) result.Result[[]domain.SerializedPermission] {
	authorized := s.repos.Documents.FetchByID(ctx, documentID).
		Then(ownerOrAdmin(requester))

	perms := result.AndThen(authorized, func(domain.Document) result.Result[[]domain.Permission] {
		return s.repos.Permissions.FetchByDocument(ctx, documentID)
	})
	return result.Map(perms, func(ps []domain.Permission) []domain.SerializedPermission {
		views := make([]domain.SerializedPermission, 0, len(ps))
		for _, p := range ps {
			views = append(views, p.Serialize())
		}
		return views
	})
}

// ownerOrAdmin passes when the requester owns the document or holds the
// Admin role; anyone else is Forbidden.
func ownerOrAdmin(requester auth.Identity) func(domain.Document) result.Result[domain.Document] {
	return func(doc domain.Document) result.Result[domain.Document] {
		if doc.UserID == requester.UserID || requester.IsAdmin() {
			return result.Ok(doc)
		}
		return result.Err[domain.Document](domain.ErrInvalidPermissionOnDocument)
	}
}
