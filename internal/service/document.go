// Package service orchestrates multi-entity workflows: it loads and
// builds entities, runs their guards, and chains repository calls
// through Result pipelines. Authorization gates live here, before any
// mutation.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/repository"
	"github.com/lalith-99/docuvault/internal/result"
	"go.uber.org/zap"
)

// Success is the payload for operations whose only output is that they
// happened.
type Success struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DocumentCache is an optional read-through cache for serialized
// documents. A nil cache disables caching; the service checks before
// every use.
type DocumentCache interface {
	Get(ctx context.Context, id uuid.UUID) (domain.SerializedDocument, bool)
	Set(ctx context.Context, doc domain.SerializedDocument)
	Invalidate(ctx context.Context, id uuid.UUID)
}

// FileDetails is the derived storage location for an uploaded name.
type FileDetails struct {
	FilePath      string
	FileExtension string
}

// DeriveFileDetails splits on the last dot. A name without one (or a
// leading-dot name like ".env") keeps the whole name: the extension is
// empty and the path is still non-empty. The path doubles as the blob
// store key.
func DeriveFileDetails(fileName string) FileDetails {
	idx := strings.LastIndex(fileName, ".")
	if idx <= 0 {
		return FileDetails{FilePath: "uploads/" + fileName}
	}
	base := fileName[:idx]
	ext := fileName[idx+1:]
	return FileDetails{
		FilePath:      "uploads/" + base + "." + ext,
		FileExtension: ext,
	}
}

type DocumentService struct {
	repos  repository.Repositories
	tx     repository.Transactor
	cache  DocumentCache
	logger *zap.Logger
}

func NewDocumentService(repos repository.Repositories, tx repository.Transactor, cache DocumentCache, logger *zap.Logger) *DocumentService {
	return &DocumentService{repos: repos, tx: tx, cache: cache, logger: logger}
}

// CreateDocumentInput is validated request data: a non-empty file name,
// the owner, and at least one tag name.
type CreateDocumentInput struct {
	FileName string
	UserID   uuid.UUID
	TagNames []string
}

type UpdateDocumentInput struct {
	DocumentID  uuid.UUID
	RequesterID uuid.UUID
	FileName    string
}

// GetDocument returns the serialized document, going through the cache
// when one is configured.
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) result.Result[domain.SerializedDocument] {
	if s.cache != nil {
		if doc, ok := s.cache.Get(ctx, id); ok {
			return result.Ok(doc)
		}
	}

	fetched := s.repos.Documents.FetchByID(ctx, id)
	view := result.Map(fetched, domain.Document.Serialize)
	if view.IsOk() && s.cache != nil {
		s.cache.Set(ctx, view.Value())
	}
	return view
}

// CreateDocument is the critical path: document insert, tag upsert plus
// link rows, and the Owner permission run inside one transaction. Any
// step's Err rolls back all of it: no orphaned document, no partially
// tagged document, no document without an owner.
func (s *DocumentService) CreateDocument(ctx context.Context, in CreateDocumentInput) result.Result[domain.SerializedDocument] {
	s.logger.Info("creating document",
		zap.String("file_name", in.FileName),
		zap.Int("tags", len(in.TagNames)))

	details := DeriveFileDetails(in.FileName)
	document := domain.NewDocument(in.FileName, details.FileExtension, details.FilePath, in.UserID)

	guarded := document.Guard()
	if guarded.IsErr() {
		return result.Err[domain.SerializedDocument](guarded.Error())
	}

	tags := make([]result.Result[domain.Tag], 0, len(in.TagNames))
	for _, name := range in.TagNames {
		tags = append(tags, domain.NewTag(name, result.Some(document.ID)).Guard())
	}
	guardedTags := result.Sequence(tags...)
	if guardedTags.IsErr() {
		return result.Err[domain.SerializedDocument](guardedTags.Error())
	}

	var stored domain.Document
	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		inserted := r.Documents.Insert(ctx, document)

		linked := result.AndThen(inserted, func(domain.Document) result.Result[[]domain.Tag] {
			return r.Tags.UpsertTagsAndLink(ctx, guardedTags.Value())
		})

		owner := result.AndThen(linked, func([]domain.Tag) result.Result[domain.Permission] {
			return r.Permissions.Insert(ctx,
				domain.NewPermission(document.ID, in.UserID, domain.PermissionOwner))
		})

		combined := result.Zip2(inserted, owner)
		if combined.IsErr() {
			return combined.Error()
		}
		stored = combined.Value().A
		return nil
	})
	if err != nil {
		return result.Err[domain.SerializedDocument](err)
	}
	return result.Ok(stored.Serialize())
}

// UpdateDocument enforces fetch, then authorize, then validate, then
// mutate, in that order. The ownership check runs even when the new
// data is fully valid.
func (s *DocumentService) UpdateDocument(ctx context.Context, in UpdateDocumentInput) result.Result[domain.SerializedDocument] {
	authorized := s.repos.Documents.FetchByID(ctx, in.DocumentID).
		Then(ownedBy(in.RequesterID))

	updated := result.AndThen(authorized, func(doc domain.Document) result.Result[domain.Document] {
		if in.FileName == "" {
			return result.Err[domain.Document](domain.ErrDocumentMissingFileName)
		}
		details := DeriveFileDetails(in.FileName)
		return doc.Update(domain.DocumentPatch{
			FileName:      &in.FileName,
			FileExtension: &details.FileExtension,
			FilePath:      &details.FilePath,
		})
	})

	persisted := result.AndThen(updated, func(doc domain.Document) result.Result[domain.Document] {
		return s.repos.Documents.Update(ctx, doc)
	})

	if persisted.IsOk() && s.cache != nil {
		s.cache.Invalidate(ctx, in.DocumentID)
	}
	return result.Map(persisted, domain.Document.Serialize)
}

// DeleteDocument removes the document with its link rows and permission
// rows in one transaction, after the same fetch-then-authorize gate.
func (s *DocumentService) DeleteDocument(ctx context.Context, documentID, requesterID uuid.UUID) result.Result[Success] {
	authorized := s.repos.Documents.FetchByID(ctx, documentID).
		Then(ownedBy(requesterID))
	if authorized.IsErr() {
		return result.Err[Success](authorized.Error())
	}

	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		steps := result.Zip3(
			r.Tags.RemoveLinksByDocument(ctx, documentID),
			r.Permissions.RemoveByDocument(ctx, documentID),
			r.Documents.Remove(ctx, documentID),
		)
		return steps.Error()
	})
	if err != nil {
		return result.Err[Success](err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, documentID)
	}
	return result.Ok(Success{Success: true, Message: "Document deleted successfully"})
}

// ListDocuments pages through all documents. The page and its count are
// read inside one transaction so they describe the same snapshot.
func (s *DocumentService) ListDocuments(ctx context.Context, opts repository.PaginationOptions) result.Result[repository.Paginated[domain.SerializedDocument]] {
	var page result.Result[repository.Paginated[domain.Document]]
	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		page = r.Documents.FetchAllWithPagination(ctx, opts)
		return page.Error()
	})
	if err != nil {
		return result.Err[repository.Paginated[domain.SerializedDocument]](err)
	}
	return result.Map(page, func(p repository.Paginated[domain.Document]) repository.Paginated[domain.SerializedDocument] {
		return repository.MapPage(p, domain.Document.Serialize)
	})
}

// ownedBy is the authorization gate for document mutations: a requester
// other than the owner gets InvalidPermissionOnDocument, which is
// distinct from NotFound.
func ownedBy(requesterID uuid.UUID) func(domain.Document) result.Result[domain.Document] {
	return func(doc domain.Document) result.Result[domain.Document] {
		if doc.UserID != requesterID {
			return result.Err[domain.Document](domain.ErrInvalidPermissionOnDocument)
		}
		return result.Ok(doc)
	}
}
