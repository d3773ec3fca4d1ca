package user

import (
	"context"
	"testing"

	usererrors "github.com/HirziKhalis/hrms-system/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	findPageFn   func(ctx context.Context, page, limit int) ([]Row, int64, error)
	findByIDFn   func(ctx context.Context, id string) (*Row, error)
	updateRoleFn func(ctx context.Context, id, role string) (int64, error)
}

func (f *fakeRepo) FindPage(ctx context.Context, page, limit int) ([]Row, int64, error) {
	return f.findPageFn(ctx, page, limit)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Row, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	return f.updateRoleFn(ctx, id, role)
}

func TestService_UpdateRole(t *testing.T) {
	targetID := uuid.New().String()

	var updatedRole string
	repo := &fakeRepo{}
	repo.updateRoleFn = func(ctx context.Context, id, role string) (int64, error) {
		updatedRole = role
		return 1, nil
	}
	repo.findByIDFn = func(ctx context.Context, id string) (*Row, error) {
		return &Row{UserID: targetID, Username: "jdoe", Role: updatedRole}, nil
	}

	svc := NewService(repo)

	resp, err := svc.UpdateRole(context.Background(), uuid.New().String(), targetID, "manager")
	require.NoError(t, err)
	assert.Equal(t, "manager", resp.Role)
}

func TestService_UpdateRole_SelfDemotion(t *testing.T) {
	actorID := uuid.New().String()
	svc := NewService(&fakeRepo{})

	_, err := svc.UpdateRole(context.Background(), actorID, actorID, "employee")
	assert.ErrorIs(t, err, usererrors.ErrSelfDemotion)
}

func TestService_UpdateRole_NotFound(t *testing.T) {
	repo := &fakeRepo{}
	repo.updateRoleFn = func(ctx context.Context, id, role string) (int64, error) { return 0, nil }

	svc := NewService(repo)

	_, err := svc.UpdateRole(context.Background(), uuid.New().String(), uuid.New().String(), "manager")
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}
