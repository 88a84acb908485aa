package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/repository"
	"github.com/lalith-99/docuvault/internal/result"
	"go.uber.org/zap"
)

type TagService struct {
	repos  repository.Repositories
	tx     repository.Transactor
	logger *zap.Logger
}

func NewTagService(repos repository.Repositories, tx repository.Transactor, logger *zap.Logger) *TagService {
	return &TagService{repos: repos, tx: tx, logger: logger}
}

type CreateTagInput struct {
	Name       string
	DocumentID result.Option[uuid.UUID]
}

// CreateTag builds and guards a tag, then inserts the tag row and its
// optional link row in one transaction. A reader never observes the tag
// without the link it was created with.
func (s *TagService) CreateTag(ctx context.Context, in CreateTagInput) result.Result[domain.SerializedTag] {
	s.logger.Info("creating tag", zap.String("name", in.Name))

	guarded := domain.NewTag(in.Name, in.DocumentID).Guard()
	if guarded.IsErr() {
		return result.Err[domain.SerializedTag](guarded.Error())
	}

	var stored result.Result[domain.Tag]
	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		stored = r.Tags.Insert(ctx, guarded.Value())
		return stored.Error()
	})
	if err != nil {
		return result.Err[domain.SerializedTag](err)
	}
	return result.Map(stored, domain.Tag.Serialize)
}

// UpdateTag fetches, overlays the patch through the entity guards, and
// persists. The first violated guard's error is surfaced.
func (s *TagService) UpdateTag(ctx context.Context, id uuid.UUID, patch domain.TagPatch) result.Result[domain.SerializedTag] {
	s.logger.Info("updating tag", zap.String("id", id.String()))

	updated := result.AndThen(s.repos.Tags.FetchByID(ctx, id), func(tag domain.Tag) result.Result[domain.Tag] {
		return tag.Update(patch)
	})
	persisted := result.AndThen(updated, func(tag domain.Tag) result.Result[domain.Tag] {
		return s.repos.Tags.Update(ctx, tag)
	})
	return result.Map(persisted, domain.Tag.Serialize)
}

// DeleteTag removes link rows before the tag row, inside one
// transaction, so no link ever points at a missing tag.
func (s *TagService) DeleteTag(ctx context.Context, id uuid.UUID) result.Result[Success] {
	s.logger.Info("deleting tag", zap.String("id", id.String()))

	fetched := s.repos.Tags.FetchByID(ctx, id)
	if fetched.IsErr() {
		return result.Err[Success](fetched.Error())
	}

	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		removed := result.AndThen(r.Tags.RemoveLinks(ctx, id), func(int) result.Result[domain.Tag] {
			return r.Tags.Remove(ctx, id)
		})
		return removed.Error()
	})
	if err != nil {
		return result.Err[Success](err)
	}
	return result.Ok(Success{Success: true, Message: "Tag deleted successfully"})
}

func (s *TagService) ListTags(ctx context.Context, opts repository.PaginationOptions) result.Result[repository.Paginated[domain.SerializedTag]] {
	var page result.Result[repository.Paginated[domain.Tag]]
	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		page = r.Tags.FetchAllWithPagination(ctx, opts)
		return page.Error()
	})
	if err != nil {
		return result.Err[repository.Paginated[domain.SerializedTag]](err)
	}
	return result.Map(page, func(p repository.Paginated[domain.Tag]) repository.Paginated[domain.SerializedTag] {
		return repository.MapPage(p, domain.Tag.Serialize)
	})
}
