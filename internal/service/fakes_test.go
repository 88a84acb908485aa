package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/lalith-99/docuvault/internal/repository"
	"github.com/lalith-99/docuvault/internal/result"
	"go.uber.org/zap"
)

// memStore is an in-memory implementation of every repository,
// sufficient for exercising the services without Postgres. Its
// transactor snapshots all tables before the unit of work and restores
// them on error, matching real rollback semantics.
type memStore struct {
	documents   map[uuid.UUID]domain.Document
	tags        map[uuid.UUID]domain.Tag
	links       map[uuid.UUID]map[uuid.UUID]bool // document id -> tag ids
	permissions map[uuid.UUID]domain.Permission
	users       map[uuid.UUID]domain.User

	// Failure injection for atomicity tests.
	failPermissionInsert error
	failTagUpsert        error
}

func newMemStore() *memStore {
	return &memStore{
		documents:   map[uuid.UUID]domain.Document{},
		tags:        map[uuid.UUID]domain.Tag{},
		links:       map[uuid.UUID]map[uuid.UUID]bool{},
		permissions: map[uuid.UUID]domain.Permission{},
		users:       map[uuid.UUID]domain.User{},
	}
}

func (m *memStore) repos() repository.Repositories {
	return repository.Repositories{
		Documents:   (*memDocuments)(m),
		Tags:        (*memTags)(m),
		Permissions: (*memPermissions)(m),
		Users:       (*memUsers)(m),
	}
}

func (m *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range m.documents {
		c.documents[k] = v
	}
	for k, v := range m.tags {
		c.tags[k] = v
	}
	for doc, tagSet := range m.links {
		cp := map[uuid.UUID]bool{}
		for tag := range tagSet {
			cp[tag] = true
		}
		c.links[doc] = cp
	}
	for k, v := range m.permissions {
		c.permissions[k] = v
	}
	for k, v := range m.users {
		c.users[k] = v
	}
	return c
}

func (m *memStore) restore(s *memStore) {
	m.documents = s.documents
	m.tags = s.tags
	m.links = s.links
	m.permissions = s.permissions
	m.users = s.users
}

func (m *memStore) WithinTx(_ context.Context, fn func(repository.Repositories) error) error {
	before := m.snapshot()
	if err := fn(m.repos()); err != nil {
		m.restore(before)
		return err
	}
	return nil
}

func (m *memStore) tagByName(name string) (domain.Tag, bool) {
	for _, tag := range m.tags {
		if tag.Name == name {
			return tag, true
		}
	}
	return domain.Tag{}, false
}

// ---- documents ----

type memDocuments memStore

func (m *memDocuments) FetchByID(_ context.Context, id uuid.UUID) result.Result[domain.Document] {
	doc, ok := m.documents[id]
	if !ok {
		return result.Err[domain.Document](domain.ErrDocumentNotFound(id.String()))
	}
	return result.Ok(doc)
}

func (m *memDocuments) Insert(_ context.Context, doc domain.Document) result.Result[domain.Document] {
	if _, exists := m.documents[doc.ID]; exists {
		return result.Err[domain.Document](domain.ErrDocumentAlreadyExists(doc.ID.String()))
	}
	m.documents[doc.ID] = doc
	return result.Ok(doc)
}

func (m *memDocuments) Update(_ context.Context, doc domain.Document) result.Result[domain.Document] {
	if _, exists := m.documents[doc.ID]; !exists {
		return result.Err[domain.Document](domain.ErrDocumentUpdateFailed(doc.ID.String()))
	}
	doc.UpdatedAt = time.Now().UTC()
	m.documents[doc.ID] = doc
	return result.Ok(doc)
}

func (m *memDocuments) Remove(_ context.Context, id uuid.UUID) result.Result[domain.Document] {
	doc, ok := m.documents[id]
	if !ok {
		return result.Err[domain.Document](domain.ErrDocumentNotFound(id.String()))
	}
	delete(m.documents, id)
	return result.Ok(doc)
}

func (m *memDocuments) FetchAllWithPagination(_ context.Context, opts repository.PaginationOptions) result.Result[repository.Paginated[domain.Document]] {
	opts = opts.Normalize()
	all := make([]domain.Document, 0, len(m.documents))
	for _, doc := range m.documents {
		all = append(all, doc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })

	start := opts.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + opts.PageSize
	if end > len(all) {
		end = len(all)
	}
	return result.Ok(repository.NewPaginated(all[start:end], opts, len(all)))
}

// ---- tags ----

type memTags memStore

func (m *memTags) FetchByID(_ context.Context, id uuid.UUID) result.Result[domain.Tag] {
	tag, ok := m.tags[id]
	if !ok {
		return result.Err[domain.Tag](domain.ErrTagNotFound(id.String()))
	}
	return result.Ok(tag)
}

func (m *memTags) Insert(_ context.Context, tag domain.Tag) result.Result[domain.Tag] {
	if _, exists := (*memStore)(m).tagByName(tag.Name); exists {
		return result.Err[domain.Tag](domain.ErrTagAlreadyExists(tag.Name))
	}
	m.tags[tag.ID] = tag
	if docID, ok := tag.DocumentID.Get(); ok {
		m.link(docID, tag.ID)
	}
	return result.Ok(tag)
}

func (m *memTags) Update(_ context.Context, tag domain.Tag) result.Result[domain.Tag] {
	if _, exists := m.tags[tag.ID]; !exists {
		return result.Err[domain.Tag](domain.ErrTagUpdateFailed(tag.ID.String()))
	}
	if other, ok := (*memStore)(m).tagByName(tag.Name); ok && other.ID != tag.ID {
		return result.Err[domain.Tag](domain.ErrTagAlreadyExists(tag.Name))
	}
	tag.UpdatedAt = time.Now().UTC()
	m.tags[tag.ID] = tag
	return result.Ok(tag)
}

func (m *memTags) Remove(_ context.Context, id uuid.UUID) result.Result[domain.Tag] {
	tag, ok := m.tags[id]
	if !ok {
		return result.Err[domain.Tag](domain.ErrTagNotFound(id.String()))
	}
	delete(m.tags, id)
	return result.Ok(tag)
}

func (m *memTags) RemoveLinks(_ context.Context, tagID uuid.UUID) result.Result[int] {
	removed := 0
	for doc, tagSet := range m.links {
		if tagSet[tagID] {
			delete(tagSet, tagID)
			removed++
		}
		if len(tagSet) == 0 {
			delete(m.links, doc)
		}
	}
	return result.Ok(removed)
}

func (m *memTags) RemoveLinksByDocument(_ context.Context, documentID uuid.UUID) result.Result[int] {
	removed := len(m.links[documentID])
	delete(m.links, documentID)
	return result.Ok(removed)
}

func (m *memTags) UpsertTagsAndLink(_ context.Context, tags []domain.Tag) result.Result[[]domain.Tag] {
	if m.failTagUpsert != nil {
		return result.Err[[]domain.Tag](m.failTagUpsert)
	}
	stored := make([]domain.Tag, 0, len(tags))
	for _, tag := range tags {
		docID, ok := tag.DocumentID.Get()
		if !ok {
			return result.Err[[]domain.Tag](domain.ErrTagInvalidDocumentID)
		}
		existing, found := (*memStore)(m).tagByName(tag.Name)
		if !found {
			m.tags[tag.ID] = tag
			existing = tag
		}
		m.link(docID, existing.ID)
		stored = append(stored, existing)
	}
	return result.Ok(stored)
}

func (m *memTags) FetchTags(_ context.Context, names []string) result.Result[[]uuid.UUID] {
	var docIDs []uuid.UUID
	seen := map[uuid.UUID]bool{}
	for _, name := range names {
		tag, ok := (*memStore)(m).tagByName(name)
		if !ok {
			continue
		}
		for doc, tagSet := range m.links {
			if tagSet[tag.ID] && !seen[doc] {
				seen[doc] = true
				docIDs = append(docIDs, doc)
			}
		}
	}
	return result.Ok(docIDs)
}

func (m *memTags) FetchMatchingDocuments(_ context.Context, names []string) result.Result[[]domain.Document] {
	seen := map[uuid.UUID]bool{}
	var docs []domain.Document
	for _, name := range names {
		tag, ok := (*memStore)(m).tagByName(name)
		if !ok {
			continue
		}
		for docID, tagSet := range m.links {
			if tagSet[tag.ID] && !seen[docID] {
				seen[docID] = true
				if doc, found := m.documents[docID]; found {
					docs = append(docs, doc)
				}
			}
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID.String() < docs[j].ID.String() })
	return result.Ok(docs)
}

func (m *memTags) FetchAllWithPagination(_ context.Context, opts repository.PaginationOptions) result.Result[repository.Paginated[domain.Tag]] {
	opts = opts.Normalize()
	all := make([]domain.Tag, 0, len(m.tags))
	for _, tag := range m.tags {
		all = append(all, tag)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	start := opts.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + opts.PageSize
	if end > len(all) {
		end = len(all)
	}
	return result.Ok(repository.NewPaginated(all[start:end], opts, len(all)))
}

func (m *memTags) link(docID, tagID uuid.UUID) {
	if m.links[docID] == nil {
		m.links[docID] = map[uuid.UUID]bool{}
	}
	m.links[docID][tagID] = true
}

// ---- permissions ----

type memPermissions memStore

func (m *memPermissions) FetchByID(_ context.Context, id uuid.UUID) result.Result[domain.Permission] {
	perm, ok := m.permissions[id]
	if !ok {
		return result.Err[domain.Permission](domain.ErrPermissionNotFound(id.String()))
	}
	return result.Ok(perm)
}

func (m *memPermissions) Insert(_ context.Context, perm domain.Permission) result.Result[domain.Permission] {
	if m.failPermissionInsert != nil {
		return result.Err[domain.Permission](m.failPermissionInsert)
	}
	m.permissions[perm.ID] = perm
	return result.Ok(perm)
}

func (m *memPermissions) Update(_ context.Context, perm domain.Permission) result.Result[domain.Permission] {
	if _, exists := m.permissions[perm.ID]; !exists {
		return result.Err[domain.Permission](domain.ErrPermissionNotFound(perm.ID.String()))
	}
	m.permissions[perm.ID] = perm
	return result.Ok(perm)
}

func (m *memPermissions) Remove(_ context.Context, id uuid.UUID) result.Result[domain.Permission] {
	perm, ok := m.permissions[id]
	if !ok {
		return result.Err[domain.Permission](domain.ErrPermissionNotFound(id.String()))
	}
	delete(m.permissions, id)
	return result.Ok(perm)
}

func (m *memPermissions) FetchByDocument(_ context.Context, documentID uuid.UUID) result.Result[[]domain.Permission] {
	var perms []domain.Permission
	for _, perm := range m.permissions {
		if perm.DocumentID == documentID {
			perms = append(perms, perm)
		}
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i].CreatedAt.Before(perms[j].CreatedAt) })
	return result.Ok(perms)
}

func (m *memPermissions) RemoveByDocumentAndUser(_ context.Context, documentID, userID uuid.UUID) result.Result[int] {
	removed := 0
	for id, perm := range m.permissions {
		if perm.DocumentID == documentID && perm.UserID == userID {
			delete(m.permissions, id)
			removed++
		}
	}
	return result.Ok(removed)
}

func (m *memPermissions) RemoveByDocument(_ context.Context, documentID uuid.UUID) result.Result[int] {
	removed := 0
	for id, perm := range m.permissions {
		if perm.DocumentID == documentID {
			delete(m.permissions, id)
			removed++
		}
	}
	return result.Ok(removed)
}

// ---- users ----

type memUsers memStore

func (m *memUsers) FetchByID(_ context.Context, id uuid.UUID) result.Result[domain.User] {
	user, ok := m.users[id]
	if !ok {
		return result.Err[domain.User](domain.ErrUserNotFound(id.String()))
	}
	return result.Ok(user)
}

func (m *memUsers) FetchByUsername(_ context.Context, username string) result.Result[domain.User] {
	for _, user := range m.users {
		if user.Username == username {
			return result.Ok(user)
		}
	}
	return result.Err[domain.User](domain.ErrUserNotFound(username))
}

func (m *memUsers) Insert(_ context.Context, user domain.User) result.Result[domain.User] {
	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return result.Err[domain.User](domain.ErrUserAlreadyExists(user.Username))
		}
	}
	m.users[user.ID] = user
	return result.Ok(user)
}

func (m *memUsers) Update(_ context.Context, user domain.User) result.Result[domain.User] {
	if _, exists := m.users[user.ID]; !exists {
		return result.Err[domain.User](domain.ErrUserUpdateFailed(user.ID.String()))
	}
	user.UpdatedAt = time.Now().UTC()
	m.users[user.ID] = user
	return result.Ok(user)
}

func (m *memUsers) Remove(_ context.Context, id uuid.UUID) result.Result[domain.User] {
	user, ok := m.users[id]
	if !ok {
		return result.Err[domain.User](domain.ErrUserNotFound(id.String()))
	}
	delete(m.users, id)
	return result.Ok(user)
}

func (m *memUsers) FetchAllWithPagination(_ context.Context, opts repository.PaginationOptions) result.Result[repository.Paginated[domain.User]] {
	opts = opts.Normalize()
	all := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })

	start := opts.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + opts.PageSize
	if end > len(all) {
		end = len(all)
	}
	return result.Ok(repository.NewPaginated(all[start:end], opts, len(all)))
}

// ---- cache fake ----

type fakeCache struct {
	entries     map[uuid.UUID]domain.SerializedDocument
	gets        int
	hits        int
	invalidated []uuid.UUID
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[uuid.UUID]domain.SerializedDocument{}}
}

func (c *fakeCache) Get(_ context.Context, id uuid.UUID) (domain.SerializedDocument, bool) {
	c.gets++
	doc, ok := c.entries[id]
	if ok {
		c.hits++
	}
	return doc, ok
}

func (c *fakeCache) Set(_ context.Context, doc domain.SerializedDocument) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return
	}
	c.entries[id] = doc
}

func (c *fakeCache) Invalidate(_ context.Context, id uuid.UUID) {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("bad uuid %q: %v", s, err)
	}
	return id
}
