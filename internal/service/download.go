package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/auth"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/repository"
	"github.com/lalith-99/docuvault/internal/result"
	"go.uber.org/zap"
)

// DownloadService issues and verifies short-lived download links.
// Both operations are stateless: a link can be generated or verified
// any number of times with no side effects.
type DownloadService struct {
	repos   repository.Repositories
	secret  string
	linkTTL time.Duration
	logger  *zap.Logger
}

func NewDownloadService(repos repository.Repositories, secret string, linkTTL time.Duration, logger *zap.Logger) *DownloadService {
	return &DownloadService{repos: repos, secret: secret, linkTTL: linkTTL, logger: logger}
}

// GenerateDownloadLink confirms the document exists, then returns a URL
// carrying a token scoped to that document.
func (s *DownloadService) GenerateDownloadLink(ctx context.Context, documentID uuid.UUID, scheme, host string) result.Result[string] {
	s.logger.Info("generating download link", zap.String("document_id", documentID.String()))

	fetched := s.repos.Documents.FetchByID(ctx, documentID)
	return result.AndThen(fetched, func(domain.Document) result.Result[string] {
		token, err := auth.GenerateDownloadToken(documentID, s.secret, s.linkTTL)
		if err != nil {
			return result.Err[string](err)
		}
		link := fmt.Sprintf("%s://%s/v1/downloads/%s?token=%s", scheme, host, documentID, token)
		return result.Ok(link)
	})
}

// Download verifies the token, checks it was issued for this document,
// and returns the blob-store key the caller streams from.
func (s *DownloadService) Download(ctx context.Context, documentID uuid.UUID, token string) result.Result[string] {
	tokenDocID, err := auth.ParseDownloadToken(token, s.secret)
	if err != nil || tokenDocID != documentID {
		return result.Err[string](domain.ErrInvalidPermissionOnDocument)
	}

	fetched := s.repos.Documents.FetchByID(ctx, documentID)
	return result.Map(fetched, func(doc domain.Document) string {
		return DeriveFileDetails(doc.FileName).FilePath
	})
}
