package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/result"
)

// Every method takes a context (all of these hit the database) and
// returns a Result whose Err is a domain error kind scoped to the
// entity: NotFound on a missed lookup, AlreadyExists on a unique
// conflict, UpdateFailed when a write touched zero rows. Infrastructure
// failures (store unreachable) surface as wrapped non-domain errors
// inside the same Result.

// DocumentRepository persists documents.
type DocumentRepository interface {
	FetchByID(ctx context.Context, id uuid.UUID) result.Result[domain.Document]

	// Insert echoes the stored row. A duplicate id reports AlreadyExists.
	Insert(ctx context.Context, doc domain.Document) result.Result[domain.Document]

	// Update persists the mutable fields and refreshes updated_at.
	Update(ctx context.Context, doc domain.Document) result.Result[domain.Document]

	// Remove deletes the row and echoes what was deleted.
	Remove(ctx context.Context, id uuid.UUID) result.Result[domain.Document]

	// FetchAllWithPagination returns one page plus a total count taken
	// from the same snapshot. Run it through the Transactor so the count
	// cannot drift from the page under concurrent writes.
	FetchAllWithPagination(ctx context.Context, opts PaginationOptions) result.Result[Paginated[domain.Document]]
}

// TagRepository persists tags and the document-tag link rows.
type TagRepository interface {
	FetchByID(ctx context.Context, id uuid.UUID) result.Result[domain.Tag]
	Insert(ctx context.Context, tag domain.Tag) result.Result[domain.Tag]
	Update(ctx context.Context, tag domain.Tag) result.Result[domain.Tag]

	// Remove deletes the tag row only. Callers delete the link rows first
	// (RemoveLinks) inside one transaction so no reader observes a link
	// without its tag.
	Remove(ctx context.Context, id uuid.UUID) result.Result[domain.Tag]

	RemoveLinks(ctx context.Context, tagID uuid.UUID) result.Result[int]
	RemoveLinksByDocument(ctx context.Context, documentID uuid.UUID) result.Result[int]

	// UpsertTagsAndLink inserts each tag if its name is absent, then
	// links the existing-or-new row to the tag's carried document id.
	// Atomic only when run inside the Transactor.
	UpsertTagsAndLink(ctx context.Context, tags []domain.Tag) result.Result[[]domain.Tag]

	// FetchTags resolves tag names to the document ids linked to them.
	FetchTags(ctx context.Context, names []string) result.Result[[]uuid.UUID]

	// FetchMatchingDocuments returns the documents linked to ANY of the
	// named tags, deduplicated. Unknown names contribute nothing; no
	// match is Ok(empty), not an error.
	FetchMatchingDocuments(ctx context.Context, names []string) result.Result[[]domain.Document]

	FetchAllWithPagination(ctx context.Context, opts PaginationOptions) result.Result[Paginated[domain.Tag]]
}

// PermissionRepository persists permission grants.
type PermissionRepository interface {
	FetchByID(ctx context.Context, id uuid.UUID) result.Result[domain.Permission]
	Insert(ctx context.Context, perm domain.Permission) result.Result[domain.Permission]
	Update(ctx context.Context, perm domain.Permission) result.Result[domain.Permission]
	Remove(ctx context.Context, id uuid.UUID) result.Result[domain.Permission]

	FetchByDocument(ctx context.Context, documentID uuid.UUID) result.Result[[]domain.Permission]

	// RemoveByDocumentAndUser deletes exactly the rows for one grantee on
	// one document and reports how many went away. Other grants on the
	// document, the owner's included, are untouched.
	RemoveByDocumentAndUser(ctx context.Context, documentID, userID uuid.UUID) result.Result[int]

	RemoveByDocument(ctx context.Context, documentID uuid.UUID) result.Result[int]
}

// UserRepository persists accounts.
type UserRepository interface {
	FetchByID(ctx context.Context, id uuid.UUID) result.Result[domain.User]
	FetchByUsername(ctx context.Context, username string) result.Result[domain.User]
	Insert(ctx context.Context, user domain.User) result.Result[domain.User]
	Update(ctx context.Context, user domain.User) result.Result[domain.User]
	Remove(ctx context.Context, id uuid.UUID) result.Result[domain.User]
	FetchAllWithPagination(ctx context.Context, opts PaginationOptions) result.Result[Paginated[domain.User]]
}

// Repositories bundles every contract over one querier, so a unit of
// work can span entities.
type Repositories struct {
	Documents   DocumentRepository
	Tags        TagRepository
	Permissions PermissionRepository
	Users       UserRepository
}

// Transactor runs fn against transaction-scoped repositories. A nil
// return commits; any error rolls everything back and is returned
// unchanged, so domain errors pass through the boundary intact.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}
