package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/auth"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type permissionFixture struct {
	store      *memStore
	svc        *PermissionsService
	ownerID    uuid.UUID
	documentID uuid.UUID
}

func newPermissionFixture(t *testing.T) permissionFixture {
	t.Helper()
	store := newMemStore()
	docs := newDocumentService(store, nil)
	ownerID := uuid.New()

	created := docs.CreateDocument(context.Background(), CreateDocumentInput{
		FileName: "report.pdf", UserID: ownerID, TagNames: []string{"x"},
	})
	require.True(t, created.IsOk())

	return permissionFixture{
		store:      store,
		svc:        NewPermissionsService(store.repos(), testLogger()),
		ownerID:    ownerID,
		documentID: uuid.MustParse(created.Value().ID),
	}
}

func asOwner(f permissionFixture) auth.Identity {
	return auth.Identity{UserID: f.ownerID, Username: "owner", Role: domain.RoleUser}
}

func asAdmin() auth.Identity {
	return auth.Identity{UserID: uuid.New(), Username: "admin", Role: domain.RoleAdmin}
}

func asStranger() auth.Identity {
	return auth.Identity{UserID: uuid.New(), Username: "stranger", Role: domain.RoleUser}
}

func TestGrantPermission(t *testing.T) {
	f := newPermissionFixture(t)
	granteeID := uuid.New()

	granted := f.svc.GrantPermission(context.Background(), asOwner(f), GrantPermissionInput{
		DocumentID: f.documentID, GranteeID: granteeID, PermissionType: domain.PermissionEditor,
	})
	require.True(t, granted.IsOk(), "grant failed: %v", granted.Error())
	assert.Equal(t, granteeID.String(), granted.Value().UserID)
	assert.Equal(t, domain.PermissionEditor, granted.Value().PermissionType)

	// Owner row plus the new grant.
	assert.Len(t, f.store.permissions, 2)
}

func TestGrantPermissionByAdmin(t *testing.T) {
	f := newPermissionFixture(t)

	granted := f.svc.GrantPermission(context.Background(), asAdmin(), GrantPermissionInput{
		DocumentID: f.documentID, GranteeID: uuid.New(), PermissionType: domain.PermissionViewer,
	})
	assert.True(t, granted.IsOk())
}

func TestGrantPermissionForbiddenForStranger(t *testing.T) {
	f := newPermissionFixture(t)

	granted := f.svc.GrantPermission(context.Background(), asStranger(), GrantPermissionInput{
		DocumentID: f.documentID, GranteeID: uuid.New(), PermissionType: domain.PermissionViewer,
	})
	assert.ErrorIs(t, granted.Error(), domain.ErrInvalidPermissionOnDocument)
	assert.Len(t, f.store.permissions, 1)
}

func TestGrantPermissionRejectsEmptyType(t *testing.T) {
	f := newPermissionFixture(t)

	granted := f.svc.GrantPermission(context.Background(), asOwner(f), GrantPermissionInput{
		DocumentID: f.documentID, GranteeID: uuid.New(), PermissionType: "",
	})
	assert.ErrorIs(t, granted.Error(), domain.ErrPermissionTypeEmpty)
}

func TestGrantPermissionMissingDocument(t *testing.T) {
	f := newPermissionFixture(t)

	granted := f.svc.GrantPermission(context.Background(), asAdmin(), GrantPermissionInput{
		DocumentID: uuid.New(), GranteeID: uuid.New(), PermissionType: domain.PermissionViewer,
	})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(granted.Error()))
}

func TestRevokePermission(t *testing.T) {
	f := newPermissionFixture(t)
	granteeID := uuid.New()

	granted := f.svc.GrantPermission(context.Background(), asOwner(f), GrantPermissionInput{
		DocumentID: f.documentID, GranteeID: granteeID, PermissionType: domain.PermissionEditor,
	})
	require.True(t, granted.IsOk())

	revoked := f.svc.RevokePermission(context.Background(), asOwner(f), f.documentID, granteeID)
	require.True(t, revoked.IsOk(), "revoke failed: %v", revoked.Error())
	assert.True(t, revoked.Value().Success)

	// Only the grantee's row went away; the Owner row survives.
	require.Len(t, f.store.permissions, 1)
	for _, perm := range f.store.permissions {
		assert.Equal(t, domain.PermissionOwner, perm.PermissionType)
		assert.Equal(t, f.ownerID, perm.UserID)
	}
}

func TestRevokePermissionNothingToRevoke(t *testing.T) {
	f := newPermissionFixture(t)

	revoked := f.svc.RevokePermission(context.Background(), asOwner(f), f.documentID, uuid.New())
	require.True(t, revoked.IsErr())
	assert.Equal(t, domain.KindNotFound, domain.KindOf(revoked.Error()))
}

func TestRevokePermissionForbiddenForStranger(t *testing.T) {
	f := newPermissionFixture(t)

	revoked := f.svc.RevokePermission(context.Background(), asStranger(), f.documentID, f.ownerID)
	assert.ErrorIs(t, revoked.Error(), domain.ErrInvalidPermissionOnDocument)
}

func TestListPermissions(t *testing.T) {
	f := newPermissionFixture(t)

	for _, permType := range []string{domain.PermissionEditor, domain.PermissionViewer} {
		granted := f.svc.GrantPermission(context.Background(), asOwner(f), GrantPermissionInput{
			DocumentID: f.documentID, GranteeID: uuid.New(), PermissionType: permType,
		})
		require.True(t, granted.IsOk())
	}

	listed := f.svc.ListPermissions(context.Background(), asOwner(f), f.documentID)
	require.True(t, listed.IsOk())
	assert.Len(t, listed.Value(), 3)

	forbidden := f.svc.ListPermissions(context.Background(), asStranger(), f.documentID)
	assert.ErrorIs(t, forbidden.Error(), domain.ErrInvalidPermissionOnDocument)
}
