package leave

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	leaveerrors "github.com/HirziKhalis/hrms-system/internal/leave/errors"
	"github.com/HirziKhalis/hrms-system/internal/messaging/kafka"
	"github.com/HirziKhalis/hrms-system/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn            func(tx *sql.Tx) Repository
	createFn            func(ctx context.Context, lr *LeaveRequest) error
	findByIDFn          func(ctx context.Context, id string) (*LeaveRequest, error)
	findDuplicateFn     func(ctx context.Context, employeeID, leaveTypeID string, start, end time.Time) (*LeaveRequest, error)
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]RequestWithType, error)
	findPageForReviewFn func(ctx context.Context, page, limit, year int) ([]ReviewRow, int64, error)
	transitionStatusFn  func(ctx context.Context, id, newStatus, approverID string) (int64, error)
	getTypeFn           func(ctx context.Context, id string) (*LeaveType, error)
	listTypesFn         func(ctx context.Context) ([]LeaveType, error)
	sumApprovedDaysFn   func(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error)
	quotaGridFn         func(ctx context.Context, page, limit, year int) ([]QuotaGridRow, int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, lr *LeaveRequest) error { return f.createFn(ctx, lr) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindDuplicate(ctx context.Context, employeeID, leaveTypeID string, start, end time.Time) (*LeaveRequest, error) {
	return f.findDuplicateFn(ctx, employeeID, leaveTypeID, start, end)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]RequestWithType, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindPageForReview(ctx context.Context, page, limit, year int) ([]ReviewRow, int64, error) {
	return f.findPageForReviewFn(ctx, page, limit, year)
}
func (f *fakeRepo) TransitionStatus(ctx context.Context, id, newStatus, approverID string) (int64, error) {
	return f.transitionStatusFn(ctx, id, newStatus, approverID)
}
func (f *fakeRepo) GetType(ctx context.Context, id string) (*LeaveType, error) {
	return f.getTypeFn(ctx, id)
}
func (f *fakeRepo) ListTypes(ctx context.Context) ([]LeaveType, error) { return f.listTypesFn(ctx) }
func (f *fakeRepo) SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	return f.sumApprovedDaysFn(ctx, employeeID, leaveTypeID, year)
}
func (f *fakeRepo) QuotaGrid(ctx context.Context, page, limit, year int) ([]QuotaGridRow, int64, error) {
	return f.quotaGridFn(ctx, page, limit, year)
}

type fakeQuotaRepo struct {
	ensureRowFn       func(ctx context.Context, employeeID, leaveTypeID string, year, defaultDays int) error
	tryConsumeFn      func(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error)
	getTotalDaysFn    func(ctx context.Context, employeeID, leaveTypeID string, year int) (int, bool, error)
	upsertTotalDaysFn func(ctx context.Context, employeeID, leaveTypeID string, year, totalDays int) error
}

func (f *fakeQuotaRepo) WithTx(tx *sql.Tx) QuotaRepository { return f }
func (f *fakeQuotaRepo) EnsureRow(ctx context.Context, employeeID, leaveTypeID string, year, defaultDays int) error {
	return f.ensureRowFn(ctx, employeeID, leaveTypeID, year, defaultDays)
}
func (f *fakeQuotaRepo) TryConsume(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error) {
	return f.tryConsumeFn(ctx, employeeID, leaveTypeID, year, days)
}
func (f *fakeQuotaRepo) GetTotalDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, bool, error) {
	return f.getTotalDaysFn(ctx, employeeID, leaveTypeID, year)
}
func (f *fakeQuotaRepo) UpsertTotalDays(ctx context.Context, employeeID, leaveTypeID string, year, totalDays int) error {
	return f.upsertTotalDaysFn(ctx, employeeID, leaveTypeID, year, totalDays)
}

type fakeSupervisors struct {
	supervisorID *string
	err          error
}

func (f *fakeSupervisors) GetSupervisorID(ctx context.Context, employeeID string) (*string, error) {
	return f.supervisorID, f.err
}

type fakeCalendar struct {
	holidays map[string]struct{}
}

func (f *fakeCalendar) DatesBetween(ctx context.Context, start, end time.Time) (map[string]struct{}, error) {
	return f.holidays, nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error                 { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func fixedNow() time.Time {
	// A Wednesday.
	return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
}

func annualLeaveType() *LeaveType {
	return &LeaveType{
		ID:             uuid.New(),
		TypeName:       "Annual Leave",
		IsQuotaLimited: true,
		DefaultDays:    12,
	}
}

func TestService_Submit(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	leaveType := annualLeaveType()

	repo := &fakeRepo{}
	repo.getTypeFn = func(ctx context.Context, id string) (*LeaveType, error) { return leaveType, nil }
	repo.findDuplicateFn = func(ctx context.Context, employeeID, leaveTypeID string, start, end time.Time) (*LeaveRequest, error) {
		return nil, nil
	}
	var saved LeaveRequest
	repo.createFn = func(ctx context.Context, lr *LeaveRequest) error { saved = *lr; return nil }

	svc := NewService(db, repo, &fakeQuotaRepo{}, &fakeSupervisors{}, &fakeCalendar{}, &fakeOutbox{}, nil).(*service)
	svc.now = fixedNow

	resp, err := svc.Submit(context.Background(), employeeID, SubmitLeaveRequest{
		LeaveTypeID: leaveType.ID.String(),
		StartDate:   "2026-03-09",
		EndDate:     "2026-03-13",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, 5, resp.TotalDays)
	assert.Equal(t, "Annual Leave", resp.LeaveType)
	assert.Equal(t, StatusPending, saved.Status)
	assert.Equal(t, employeeID, saved.EmployeeID.String())
}

func TestService_Submit_InvalidRange(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeQuotaRepo{}, &fakeSupervisors{}, &fakeCalendar{}, &fakeOutbox{}, nil)

	_, err := svc.Submit(context.Background(), uuid.New().String(), SubmitLeaveRequest{
		LeaveTypeID: uuid.New().String(),
		StartDate:   "2026-03-13",
		EndDate:     "2026-03-09",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
}

func TestService_Submit_Duplicate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	leaveType := annualLeaveType()
	existing := &LeaveRequest{ID: uuid.New(), Status: StatusPending}

	repo := &fakeRepo{}
	repo.getTypeFn = func(ctx context.Context, id string) (*LeaveType, error) { return leaveType, nil }
	repo.findDuplicateFn = func(ctx context.Context, employeeID, leaveTypeID string, start, end time.Time) (*LeaveRequest, error) {
		return existing, nil
	}

	svc := NewService(db, repo, &fakeQuotaRepo{}, &fakeSupervisors{}, &fakeCalendar{}, &fakeOutbox{}, nil)

	_, err := svc.Submit(context.Background(), uuid.New().String(), SubmitLeaveRequest{
		LeaveTypeID: leaveType.ID.String(),
		StartDate:   "2026-03-09",
		EndDate:     "2026-03-13",
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, leaveerrors.ErrDuplicateRequest.Code, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, existing.ID.String(), details["request_id"])
}

func TestService_SetStatus_ApproveConsumesWorkingDays(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	supervisorID := uuid.New().String()
	leaveType := annualLeaveType()
	request := &LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  uuid.New(),
		LeaveTypeID: leaveType.ID,
		StartDate:   date("2026-03-09"), // Monday
		EndDate:     date("2026-03-15"), // Sunday
		Status:      StatusPending,
	}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) { return request, nil }
	repo.getTypeFn = func(ctx context.Context, id string) (*LeaveType, error) { return leaveType, nil }
	repo.transitionStatusFn = func(ctx context.Context, id, newStatus, approverID string) (int64, error) {
		return 1, nil
	}

	var consumedDays int
	quotas := &fakeQuotaRepo{}
	quotas.ensureRowFn = func(ctx context.Context, employeeID, leaveTypeID string, year, defaultDays int) error {
		assert.Equal(t, 12, defaultDays)
		return nil
	}
	quotas.tryConsumeFn = func(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error) {
		consumedDays = days
		return true, nil
	}

	outbox := &fakeOutbox{}
	calendar := &fakeCalendar{holidays: map[string]struct{}{"2026-03-11": {}}}

	svc := NewService(db, repo, quotas, &fakeSupervisors{supervisorID: &supervisorID}, calendar, outbox, nil).(*service)
	svc.now = fixedNow

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.SetStatus(context.Background(), supervisorID, "manager", request.ID.String(), StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	// Mon-Sun span minus weekend minus the Wednesday holiday.
	assert.Equal(t, 4, consumedDays)
	require.Len(t, outbox.created, 1)
	assert.Equal(t, "leave.approved", outbox.created[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SetStatus_QuotaExceededRollsBack(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	supervisorID := uuid.New().String()
	leaveType := annualLeaveType()
	request := &LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  uuid.New(),
		LeaveTypeID: leaveType.ID,
		StartDate:   date("2026-03-09"),
		EndDate:     date("2026-03-13"),
		Status:      StatusPending,
	}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) { return request, nil }
	repo.getTypeFn = func(ctx context.Context, id string) (*LeaveType, error) { return leaveType, nil }
	repo.transitionStatusFn = func(ctx context.Context, id, newStatus, approverID string) (int64, error) {
		t.Fatal("transition must not run once the quota gate fails")
		return 0, nil
	}

	quotas := &fakeQuotaRepo{}
	quotas.ensureRowFn = func(ctx context.Context, employeeID, leaveTypeID string, year, defaultDays int) error {
		return nil
	}
	quotas.tryConsumeFn = func(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error) {
		return false, nil
	}

	svc := NewService(db, repo, quotas, &fakeSupervisors{supervisorID: &supervisorID}, &fakeCalendar{}, &fakeOutbox{}, nil).(*service)
	svc.now = fixedNow

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.SetStatus(context.Background(), supervisorID, "manager", request.ID.String(), StatusApproved)
	assert.ErrorIs(t, err, leaveerrors.ErrQuotaExceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SetStatus_ConcurrentReviewerLoses(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	supervisorID := uuid.New().String()
	leaveType := annualLeaveType()
	request := &LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  uuid.New(),
		LeaveTypeID: leaveType.ID,
		StartDate:   date("2026-03-09"),
		EndDate:     date("2026-03-13"),
		Status:      StatusPending,
	}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) { return request, nil }
	repo.getTypeFn = func(ctx context.Context, id string) (*LeaveType, error) { return leaveType, nil }
	repo.transitionStatusFn = func(ctx context.Context, id, newStatus, approverID string) (int64, error) {
		// Another reviewer finalized first.
		return 0, nil
	}

	quotas := &fakeQuotaRepo{}
	quotas.ensureRowFn = func(ctx context.Context, employeeID, leaveTypeID string, year, defaultDays int) error {
		return nil
	}
	quotas.tryConsumeFn = func(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error) {
		return true, nil
	}

	svc := NewService(db, repo, quotas, &fakeSupervisors{supervisorID: &supervisorID}, &fakeCalendar{}, &fakeOutbox{}, nil).(*service)
	svc.now = fixedNow

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.SetStatus(context.Background(), supervisorID, "manager", request.ID.String(), StatusApproved)
	assert.ErrorIs(t, err, leaveerrors.ErrAlreadyFinalized)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SetStatus_NotDirectSupervisor(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	otherSupervisor := uuid.New().String()
	request := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Status:     StatusPending,
	}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) { return request, nil }

	svc := NewService(db, repo, &fakeQuotaRepo{}, &fakeSupervisors{supervisorID: &otherSupervisor}, &fakeCalendar{}, &fakeOutbox{}, nil)

	_, err := svc.SetStatus(context.Background(), uuid.New().String(), "manager", request.ID.String(), StatusApproved)
	assert.ErrorIs(t, err, leaveerrors.ErrNotDirectSupervisor)
}

func TestService_SetStatus_AdminBypassesSupervisorCheck(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	leaveType := &LeaveType{ID: uuid.New(), TypeName: "Unpaid Leave", IsQuotaLimited: false}
	request := &LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  uuid.New(),
		LeaveTypeID: leaveType.ID,
		StartDate:   date("2026-03-09"),
		EndDate:     date("2026-03-10"),
		Status:      StatusPending,
	}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) { return request, nil }
	repo.getTypeFn = func(ctx context.Context, id string) (*LeaveType, error) { return leaveType, nil }
	repo.transitionStatusFn = func(ctx context.Context, id, newStatus, approverID string) (int64, error) {
		return 1, nil
	}

	quotas := &fakeQuotaRepo{}
	quotas.tryConsumeFn = func(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error) {
		t.Fatal("unlimited type must not touch the ledger")
		return false, nil
	}

	outbox := &fakeOutbox{}
	svc := NewService(db, repo, quotas, &fakeSupervisors{supervisorID: nil}, &fakeCalendar{}, outbox, nil).(*service)
	svc.now = fixedNow

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.SetStatus(context.Background(), uuid.New().String(), "admin", request.ID.String(), StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, resp.Status)
	require.Len(t, outbox.created, 1)
	assert.Equal(t, "leave.rejected", outbox.created[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SetStatus_AlreadyFinalized(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	request := &LeaveRequest{ID: uuid.New(), Status: StatusApproved}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) { return request, nil }

	svc := NewService(db, repo, &fakeQuotaRepo{}, &fakeSupervisors{}, &fakeCalendar{}, &fakeOutbox{}, nil)

	_, err := svc.SetStatus(context.Background(), uuid.New().String(), "admin", request.ID.String(), StatusRejected)
	assert.ErrorIs(t, err, leaveerrors.ErrAlreadyFinalized)
}

func TestService_SetStatus_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeQuotaRepo{}, &fakeSupervisors{}, &fakeCalendar{}, &fakeOutbox{}, nil)

	_, err := svc.SetStatus(context.Background(), uuid.New().String(), "admin", uuid.New().String(), StatusApproved)
	assert.ErrorIs(t, err, leaveerrors.ErrRequestNotFound)
}

func TestService_MyQuota(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	annual := annualLeaveType()
	unpaid := &LeaveType{ID: uuid.New(), TypeName: "Unpaid Leave", IsQuotaLimited: false}

	repo := &fakeRepo{}
	repo.listTypesFn = func(ctx context.Context) ([]LeaveType, error) {
		return []LeaveType{*annual, *unpaid}, nil
	}
	repo.sumApprovedDaysFn = func(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
		return 5, nil
	}

	quotas := &fakeQuotaRepo{}
	quotas.getTotalDaysFn = func(ctx context.Context, employeeID, leaveTypeID string, year int) (int, bool, error) {
		return 15, true, nil
	}

	svc := NewService(db, repo, quotas, &fakeSupervisors{}, &fakeCalendar{}, &fakeOutbox{}, nil).(*service)
	svc.now = fixedNow

	summaries, err := svc.MyQuota(context.Background(), employeeID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Annual Leave", summaries[0].TypeName)
	assert.Equal(t, 15, summaries[0].TotalDays)
	assert.Equal(t, 5, summaries[0].UsedDays)
	assert.Equal(t, 10, summaries[0].RemainingDays)

	assert.Equal(t, "Unpaid Leave", summaries[1].TypeName)
	assert.Equal(t, -1, summaries[1].TotalDays)
	assert.Equal(t, 0, summaries[1].UsedDays)
	assert.Equal(t, -1, summaries[1].RemainingDays)
}

func TestService_MyQuota_FallsBackToDefaultDays(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	annual := annualLeaveType()

	repo := &fakeRepo{}
	repo.listTypesFn = func(ctx context.Context) ([]LeaveType, error) { return []LeaveType{*annual}, nil }
	repo.sumApprovedDaysFn = func(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
		return 0, nil
	}

	quotas := &fakeQuotaRepo{}
	quotas.getTotalDaysFn = func(ctx context.Context, employeeID, leaveTypeID string, year int) (int, bool, error) {
		return 0, false, nil
	}

	svc := NewService(db, repo, quotas, &fakeSupervisors{}, &fakeCalendar{}, &fakeOutbox{}, nil).(*service)
	svc.now = fixedNow

	summaries, err := svc.MyQuota(context.Background(), uuid.New().String())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 12, summaries[0].TotalDays)
	assert.Equal(t, 12, summaries[0].RemainingDays)
}

func TestService_ListForReview_RemainingDays(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findPageForReviewFn = func(ctx context.Context, page, limit, year int) ([]ReviewRow, int64, error) {
		return []ReviewRow{
			{
				RequestID:      uuid.New().String(),
				EmployeeName:   "Jamie Chen",
				TypeName:       "Annual Leave",
				IsQuotaLimited: true,
				StartDate:      date("2026-03-09"),
				EndDate:        date("2026-03-13"),
				Status:         StatusPending,
				RequestDate:    date("2026-03-02"),
				TotalDays:      12,
				UsedDays:       4,
			},
			{
				RequestID:      uuid.New().String(),
				EmployeeName:   "Sam Ortiz",
				TypeName:       "Unpaid Leave",
				IsQuotaLimited: false,
				StartDate:      date("2026-03-09"),
				EndDate:        date("2026-03-09"),
				Status:         StatusPending,
				RequestDate:    date("2026-03-02"),
			},
		}, 2, nil
	}

	svc := NewService(db, repo, &fakeQuotaRepo{}, &fakeSupervisors{}, &fakeCalendar{}, &fakeOutbox{}, nil).(*service)
	svc.now = fixedNow

	items, total, err := svc.ListForReview(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)

	assert.Equal(t, 8, items[0].RemainingDays)
	assert.Equal(t, 5, items[0].RequestedDays)
	assert.Equal(t, -1, items[1].RemainingDays)
}
