package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/result"
)

// MaxTagNameLength bounds tag names; names are globally unique below
// this length.
const MaxTagNameLength = 50

// Tag labels documents. A tag may exist standalone, so DocumentID is an
// Option; reads must go through the presence check.
type Tag struct {
	ID         uuid.UUID
	Name       string
	DocumentID result.Option[uuid.UUID]
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SerializedTag flattens the optional link to a nullable pointer.
type SerializedTag struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	DocumentID *string   `json:"documentId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TagPatch holds the fields updateTag may overlay.
type TagPatch struct {
	Name *string
}

func (t Tag) GuardName() result.Result[Tag] {
	if t.Name == "" {
		return result.Err[Tag](ErrTagNameEmpty)
	}
	if len(t.Name) > MaxTagNameLength {
		return result.Err[Tag](ErrTagNameTooLong)
	}
	return result.Ok(t)
}

// GuardDocumentID rejects a present-but-nil link. An absent link is fine.
func (t Tag) GuardDocumentID() result.Result[Tag] {
	if id, ok := t.DocumentID.Get(); ok && id == uuid.Nil {
		return result.Err[Tag](ErrTagInvalidDocumentID)
	}
	return result.Ok(t)
}

func (t Tag) Guard() result.Result[Tag] {
	return t.GuardDocumentID().Then(Tag.GuardName)
}

func (t Tag) Update(patch TagPatch) result.Result[Tag] {
	next := t
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	return next.Guard()
}

func (t Tag) Serialize() SerializedTag {
	var docID *string
	if id, ok := t.DocumentID.Get(); ok {
		s := id.String()
		docID = &s
	}
	return SerializedTag{
		ID:         t.ID.String(),
		Name:       t.Name,
		DocumentID: docID,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func TagFromSerialized(s SerializedTag) result.Result[Tag] {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return result.Err[Tag](ErrTagNotFound(s.ID))
	}
	docID := result.None[uuid.UUID]()
	if s.DocumentID != nil {
		parsed, err := uuid.Parse(*s.DocumentID)
		if err != nil {
			return result.Err[Tag](ErrTagInvalidDocumentID)
		}
		docID = result.Some(parsed)
	}
	return result.Ok(Tag{
		ID:         id,
		Name:       s.Name,
		DocumentID: docID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	})
}
