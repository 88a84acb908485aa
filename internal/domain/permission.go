package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/result"
)

// Known permission types. The column is free-form text, so the entity
// only guards non-emptiness; these constants are what the services write.
const (
	PermissionOwner  = "Owner"
	PermissionEditor = "Editor"
	PermissionViewer = "Viewer"
)

// Permission grants a user a level of access on a document. The Owner
// row is created atomically with its document; Editor/Viewer rows are
// granted later through the permissions service.
type Permission struct {
	ID             uuid.UUID
	DocumentID     uuid.UUID
	UserID         uuid.UUID
	PermissionType string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type SerializedPermission struct {
	ID             string    `json:"id"`
	DocumentID     string    `json:"documentId"`
	UserID         string    `json:"userId"`
	PermissionType string    `json:"permissionType"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type PermissionPatch struct {
	PermissionType *string
}

func (p Permission) GuardPermissionType() result.Result[Permission] {
	if p.PermissionType == "" {
		return result.Err[Permission](ErrPermissionTypeEmpty)
	}
	return result.Ok(p)
}

func (p Permission) Guard() result.Result[Permission] {
	return p.GuardPermissionType()
}

func (p Permission) Update(patch PermissionPatch) result.Result[Permission] {
	next := p
	if patch.PermissionType != nil {
		next.PermissionType = *patch.PermissionType
	}
	return next.Guard()
}

func (p Permission) Serialize() SerializedPermission {
	return SerializedPermission{
		ID:             p.ID.String(),
		DocumentID:     p.DocumentID.String(),
		UserID:         p.UserID.String(),
		PermissionType: p.PermissionType,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func PermissionFromSerialized(s SerializedPermission) result.Result[Permission] {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return result.Err[Permission](ErrPermissionNotFound(s.ID))
	}
	docID, err := uuid.Parse(s.DocumentID)
	if err != nil {
		return result.Err[Permission](ErrDocumentNotFound(s.DocumentID))
	}
	userID, err := uuid.Parse(s.UserID)
	if err != nil {
		return result.Err[Permission](ErrUserNotFound(s.UserID))
	}
	return result.Ok(Permission{
		ID:             id,
		DocumentID:     docID,
		UserID:         userID,
		PermissionType: s.PermissionType,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	})
}
