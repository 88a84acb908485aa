package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/result"
)

// Document is a stored file owned by a user. Instances are values:
// Update never mutates the receiver, it returns a fresh entity with the
// same ID and CreatedAt.
type Document struct {
	ID            uuid.UUID
	FileName      string
	FileExtension string
	FilePath      string
	UserID        uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SerializedDocument is the flat record shape a Document round-trips
// through: what handlers render and stores persist.
type SerializedDocument struct {
	ID            string    `json:"id"`
	FileName      string    `json:"fileName"`
	FileExtension string    `json:"fileExtension"`
	FilePath      string    `json:"filePath"`
	UserID        string    `json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DocumentPatch holds the fields updateDocument may overlay. Nil means
// "keep the current value".
type DocumentPatch struct {
	FileName      *string
	FileExtension *string
	FilePath      *string
}

func (d Document) GuardFileName() result.Result[Document] {
	if d.FileName == "" {
		return result.Err[Document](ErrDocumentMissingFileName)
	}
	return result.Ok(d)
}

// GuardFileExtension accepts an empty extension for dot-less file names:
// "README" derives to an empty extension and stays valid. Only a dotted
// name with a missing extension violates the invariant.
func (d Document) GuardFileExtension() result.Result[Document] {
	if d.FileExtension == "" && hasExtensionHint(d.FileName) {
		return result.Err[Document](ErrDocumentMissingExtension)
	}
	return result.Ok(d)
}

func (d Document) GuardFilePath() result.Result[Document] {
	if d.FilePath == "" {
		return result.Err[Document](ErrDocumentMissingFilePath)
	}
	return result.Ok(d)
}

func hasExtensionHint(fileName string) bool {
	for i := len(fileName) - 1; i > 0; i-- {
		if fileName[i] == '.' {
			return true
		}
	}
	return false
}

// Guard chains every invariant; the first violation is surfaced.
func (d Document) Guard() result.Result[Document] {
	return d.GuardFileName().
		Then(Document.GuardFileExtension).
		Then(Document.GuardFilePath)
}

// Update overlays the patch onto the current state and validates the
// candidate. The stored UpdatedAt is refreshed by the persistence layer.
func (d Document) Update(patch DocumentPatch) result.Result[Document] {
	next := d
	if patch.FileName != nil {
		next.FileName = *patch.FileName
	}
	if patch.FileExtension != nil {
		next.FileExtension = *patch.FileExtension
	}
	if patch.FilePath != nil {
		next.FilePath = *patch.FilePath
	}
	return next.Guard()
}

func (d Document) Serialize() SerializedDocument {
	return SerializedDocument{
		ID:            d.ID.String(),
		FileName:      d.FileName,
		FileExtension: d.FileExtension,
		FilePath:      d.FilePath,
		UserID:        d.UserID.String(),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// DocumentFromSerialized rebuilds the entity, failing when either
// identifier does not parse.
func DocumentFromSerialized(s SerializedDocument) result.Result[Document] {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return result.Err[Document](ErrDocumentNotFound(s.ID))
	}
	userID, err := uuid.Parse(s.UserID)
	if err != nil {
		return result.Err[Document](ErrUserNotFound(s.UserID))
	}
	return result.Ok(Document{
		ID:            id,
		FileName:      s.FileName,
		FileExtension: s.FileExtension,
		FilePath:      s.FilePath,
		UserID:        userID,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	})
}
