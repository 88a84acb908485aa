package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/result"
)

// Factories build new entities from already-validated input: fresh ID,
// both timestamps set to the same instant, no persistence concerns.
// Only NewUser can fail, because the embedded email value object is
// re-validated during construction.

func NewDocument(fileName, fileExtension, filePath string, userID uuid.UUID) Document {
	now := time.Now().UTC()
	return Document{
		ID:            uuid.New(),
		FileName:      fileName,
		FileExtension: fileExtension,
		FilePath:      filePath,
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func NewTag(name string, documentID result.Option[uuid.UUID]) Tag {
	now := time.Now().UTC()
	return Tag{
		ID:         uuid.New(),
		Name:       name,
		DocumentID: documentID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func NewPermission(documentID, userID uuid.UUID, permissionType string) Permission {
	now := time.Now().UTC()
	return Permission{
		ID:             uuid.New(),
		DocumentID:     documentID,
		UserID:         userID,
		PermissionType: permissionType,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func NewUser(username, email, passwordHash string, role Role) result.Result[User] {
	return result.Map(ParseEmail(email), func(parsed Email) User {
		now := time.Now().UTC()
		return User{
			ID:        uuid.New(),
			Username:  username,
			Email:     parsed,
			Password:  passwordHash,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		}
	})
}
