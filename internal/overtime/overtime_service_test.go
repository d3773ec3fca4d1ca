package overtime

import (
	"context"
	"database/sql"
	"testing"

	overtimeerrors "github.com/HirziKhalis/hrms-system/internal/overtime/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn            func(ctx context.Context, o *Overtime) error
	findByIDFn          func(ctx context.Context, id string) (*Overtime, error)
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]Overtime, error)
	findPageFn          func(ctx context.Context, page, limit int) ([]RowWithEmployee, int64, error)
	transitionStatusFn  func(ctx context.Context, id, newStatus, approverID string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, o *Overtime) error {
	return f.createFn(ctx, o)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Overtime, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]Overtime, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindPage(ctx context.Context, page, limit int) ([]RowWithEmployee, int64, error) {
	return f.findPageFn(ctx, page, limit)
}
func (f *fakeRepo) TransitionStatus(ctx context.Context, id, newStatus, approverID string) (int64, error) {
	return f.transitionStatusFn(ctx, id, newStatus, approverID)
}

type fakeSupervisors struct {
	supervisorID *string
}

func (f *fakeSupervisors) GetSupervisorID(ctx context.Context, employeeID string) (*string, error) {
	return f.supervisorID, nil
}

func TestService_Submit(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	var saved Overtime
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, o *Overtime) error { saved = *o; return nil }

	svc := NewService(db, repo, &fakeSupervisors{})

	resp, err := svc.Submit(context.Background(), uuid.New().String(), CreateOvertimeRequest{
		OvertimeDate: "2026-03-04",
		Hours:        2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, 2.5, saved.Hours)
}

func TestService_SetStatus_SupervisorApproves(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	supervisorID := uuid.New().String()
	row := &Overtime{ID: uuid.New(), EmployeeID: uuid.New(), Status: StatusPending}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Overtime, error) { return row, nil }
	repo.transitionStatusFn = func(ctx context.Context, id, newStatus, approverID string) (int64, error) {
		return 1, nil
	}

	svc := NewService(db, repo, &fakeSupervisors{supervisorID: &supervisorID})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.SetStatus(context.Background(), supervisorID, "manager", row.ID.String(), StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SetStatus_NotDirectSupervisor(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	otherSupervisor := uuid.New().String()
	row := &Overtime{ID: uuid.New(), EmployeeID: uuid.New(), Status: StatusPending}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Overtime, error) { return row, nil }

	svc := NewService(db, repo, &fakeSupervisors{supervisorID: &otherSupervisor})

	_, err := svc.SetStatus(context.Background(), uuid.New().String(), "manager", row.ID.String(), StatusApproved)
	assert.ErrorIs(t, err, overtimeerrors.ErrNotDirectSupervisor)
}

func TestService_SetStatus_AlreadyFinalized(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	row := &Overtime{ID: uuid.New(), Status: StatusRejected}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Overtime, error) { return row, nil }

	svc := NewService(db, repo, &fakeSupervisors{})

	_, err := svc.SetStatus(context.Background(), uuid.New().String(), "admin", row.ID.String(), StatusApproved)
	assert.ErrorIs(t, err, overtimeerrors.ErrAlreadyFinalized)
}

func TestService_SetStatus_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Overtime, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeSupervisors{})

	_, err := svc.SetStatus(context.Background(), uuid.New().String(), "admin", uuid.New().String(), StatusApproved)
	assert.ErrorIs(t, err, overtimeerrors.ErrOvertimeNotFound)
}
