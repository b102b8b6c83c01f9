// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makao-dev/makao-api/internal/core"
)

// fakeRepository mirrors the idempotency semantics of the SQL layer:
// Insert is conflict-ignoring, UpsertContact never touches user_type.
type fakeRepository struct {
	users      map[string]*User
	failRedact bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[string]*User{}}
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepository) Insert(_ context.Context, user *User) error {
	if _, ok := f.users[user.ID]; ok {
		return nil
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeRepository) UpsertContact(
	_ context.Context,
	id, email, fullName string,
	phone *string,
) error {
	u, ok := f.users[id]
	if !ok {
		f.users[id] = &User{
			ID:          id,
			Email:       email,
			FullName:    fullName,
			PhoneNumber: phone,
		}
		return nil
	}
	u.Email = email
	u.FullName = fullName
	u.PhoneNumber = phone
	return nil
}

func (f *fakeRepository) Redact(
	_ context.Context,
	id, placeholderEmail string,
) error {
	if f.failRedact {
		return fmt.Errorf("redact user: connection reset")
	}
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("redact user: %w", core.ErrNotFound)
	}
	u.Email = placeholderEmail
	u.PhoneNumber = nil
	return nil
}

func (f *fakeRepository) SetUserType(
	_ context.Context,
	id, userType string,
) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("set user type: %w", core.ErrNotFound)
	}
	u.UserType = userType
	return nil
}

func TestSyncCreatedDefaultsToTenant(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	phone := "+254700000001"
	err := svc.SyncCreated(
		context.Background(),
		"usr_1",
		"jane@example.com",
		"Jane Tenant",
		&phone,
	)
	require.NoError(t, err)

	u, err := svc.GetMe(context.Background(), "usr_1")
	require.NoError(t, err)
	assert.Equal(t, UserTypeTenant, u.UserType)
	assert.Equal(t, "jane@example.com", u.Email)
}

func TestSyncCreatedReplayKeepsSelectedRole(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	ctx := context.Background()
	require.NoError(t, svc.SyncCreated(ctx, "usr_1", "a@b.com", "A B", nil))

	_, err := svc.SelectRole(ctx, "usr_1", "landlord")
	require.NoError(t, err)

	// Replayed creation event must not clobber the chosen role.
	require.NoError(t, svc.SyncCreated(ctx, "usr_1", "a@b.com", "A B", nil))

	role, err := svc.ResolveRole(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, "admin", role)
}

func TestSyncUpdatedNeverTouchesRole(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	ctx := context.Background()
	require.NoError(t, svc.SyncCreated(ctx, "usr_1", "a@b.com", "A B", nil))
	_, err := svc.SelectRole(ctx, "usr_1", "admin")
	require.NoError(t, err)

	err = svc.SyncUpdated(ctx, "usr_1", "new@b.com", "A B Jr", nil)
	require.NoError(t, err)

	u, err := svc.GetMe(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", u.Email)
	assert.Equal(t, UserTypeAdmin, u.UserType)
}

func TestSyncUpdatedReplayIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	ctx := context.Background()
	require.NoError(t, svc.SyncCreated(ctx, "usr_1", "a@b.com", "A B", nil))
	_, err := svc.SelectRole(ctx, "usr_1", "admin")
	require.NoError(t, err)

	phone := "+254700000002"
	require.NoError(t, svc.SyncUpdated(ctx, "usr_1", "new@b.com", "A B Jr", &phone))
	once, err := svc.GetMe(ctx, "usr_1")
	require.NoError(t, err)

	// A redelivered update must leave the row exactly as one delivery did.
	require.NoError(t, svc.SyncUpdated(ctx, "usr_1", "new@b.com", "A B Jr", &phone))
	twice, err := svc.GetMe(ctx, "usr_1")
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, "new@b.com", twice.Email)
	assert.Equal(t, UserTypeAdmin, twice.UserType)
}

func TestSyncDeletedRedactsButKeepsRow(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	ctx := context.Background()
	phone := "+254700000001"
	require.NoError(t, svc.SyncCreated(ctx, "usr_1", "a@b.com", "A B", &phone))

	require.NoError(t, svc.SyncDeleted(ctx, "usr_1"))

	u, err := svc.GetMe(ctx, "usr_1")
	require.NoError(t, err, "row must survive deletion for referential integrity")
	assert.Equal(t, DeletedEmail("usr_1"), u.Email)
	assert.Nil(t, u.PhoneNumber)
}

func TestSyncDeletedUnknownUserAcked(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	err := svc.SyncDeleted(context.Background(), "usr_missing")
	assert.NoError(t, err)
}

func TestSyncDeletedStorageFailureSurfaces(t *testing.T) {
	repo := newFakeRepository()
	repo.failRedact = true
	svc := NewService(repo)

	err := svc.SyncDeleted(context.Background(), "usr_1")
	assert.Error(t, err)
}

func TestSelectRoleNormalizesLandlord(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	ctx := context.Background()
	require.NoError(t, svc.SyncCreated(ctx, "usr_1", "a@b.com", "A B", nil))

	u, err := svc.SelectRole(ctx, "usr_1", "landlord")
	require.NoError(t, err)
	assert.Equal(t, UserTypeAdmin, u.UserType)
}

func TestSelectRoleRejectsUnknownType(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.SelectRole(context.Background(), "usr_1", "superuser")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestResolveRoleMissingRowIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.ResolveRole(context.Background(), "usr_missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestResolveRoleEmptySubjectUnauthenticated(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.ResolveRole(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrUnauthenticated)
}
