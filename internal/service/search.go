package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/repository"
	"github.com/lalith-99/docuvault/internal/result"
	"go.uber.org/zap"
)

type SearchService struct {
	repos  repository.Repositories
	logger *zap.Logger
}

func NewSearchService(repos repository.Repositories, logger *zap.Logger) *SearchService {
	return &SearchService{repos: repos, logger: logger}
}

// SearchDocumentsByTags resolves tag names to the union of documents
// linked to any of them. Matching is exact; names that match nothing
// contribute nothing, and no match at all is Ok with an empty list.
func (s *SearchService) SearchDocumentsByTags(ctx context.Context, tagNames []string) result.Result[[]domain.SerializedDocument] {
	s.logger.Info("searching documents by tags", zap.Strings("tags", tagNames))

	resolved := s.repos.Tags.FetchTags(ctx, tagNames)

	documents := result.AndThen(resolved, func([]uuid.UUID) result.Result[[]domain.Document] {
		return s.repos.Tags.FetchMatchingDocuments(ctx, tagNames)
	})
	return result.Map(documents, func(docs []domain.Document) []domain.SerializedDocument {
		views := make([]domain.SerializedDocument, 0, len(docs))
		for _, doc := range docs {
			views = append(views, doc.Serialize())
		}
		return views
	})
}
