package payroll

import (
	"context"
	"database/sql"
	"testing"

	payrollerrors "github.com/HirziKhalis/hrms-system/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	createFn            func(ctx context.Context, p *Payroll) error
	findByIDFn          func(ctx context.Context, id string) (*Payroll, error)
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]Payroll, error)
	findPageFn          func(ctx context.Context, page, limit int, filter PayrollFilterRequest) ([]RowWithEmployee, int64, error)
	existsForPeriodFn   func(ctx context.Context, employeeID string, month, year int) (bool, error)
	markPaidFn          func(ctx context.Context, id string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, p *Payroll) error {
	return f.createFn(ctx, p)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Payroll, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]Payroll, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindPage(ctx context.Context, page, limit int, filter PayrollFilterRequest) ([]RowWithEmployee, int64, error) {
	return f.findPageFn(ctx, page, limit, filter)
}
func (f *fakeRepo) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	return f.existsForPeriodFn(ctx, employeeID, month, year)
}
func (f *fakeRepo) MarkPaid(ctx context.Context, id string) (int64, error) {
	return f.markPaidFn(ctx, id)
}

type fakeDirectory struct {
	exists bool
}

func (f *fakeDirectory) Exists(ctx context.Context, employeeID string) (bool, error) {
	return f.exists, nil
}

func TestService_Create_ComputesNetSalary(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Payroll
	repo := &fakeRepo{}
	repo.existsForPeriodFn = func(ctx context.Context, employeeID string, month, year int) (bool, error) {
		return false, nil
	}
	repo.createFn = func(ctx context.Context, p *Payroll) error { saved = *p; return nil }

	svc := NewService(db, repo, &fakeDirectory{exists: true})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreatePayrollRequest{
		EmployeeID:  uuid.New().String(),
		PeriodMonth: 3,
		PeriodYear:  2026,
		BaseSalary:  "5000.00",
		Bonus:       "250.50",
		Deductions:  "100.25",
	})
	require.NoError(t, err)
	assert.Equal(t, "5150.25", resp.NetSalary)
	assert.Equal(t, StatusCreated, saved.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_RejectsNegativeAmount(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeDirectory{exists: true})

	_, err := svc.Create(context.Background(), CreatePayrollRequest{
		EmployeeID:  uuid.New().String(),
		PeriodMonth: 3,
		PeriodYear:  2026,
		BaseSalary:  "-10",
	})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidAmount)
}

func TestService_Create_DuplicatePeriod(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.existsForPeriodFn = func(ctx context.Context, employeeID string, month, year int) (bool, error) {
		return true, nil
	}

	svc := NewService(db, repo, &fakeDirectory{exists: true})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreatePayrollRequest{
		EmployeeID:  uuid.New().String(),
		PeriodMonth: 3,
		PeriodYear:  2026,
		BaseSalary:  "5000",
	})
	assert.ErrorIs(t, err, payrollerrors.ErrDuplicatePeriod)
}

func TestService_Create_UnknownEmployee(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeDirectory{exists: false})

	_, err := svc.Create(context.Background(), CreatePayrollRequest{
		EmployeeID:  uuid.New().String(),
		PeriodMonth: 3,
		PeriodYear:  2026,
		BaseSalary:  "5000",
	})
	assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
}

func TestService_MarkPaid_Twice(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	row := &Payroll{ID: uuid.New(), Status: StatusPaid}
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Payroll, error) { return row, nil }
	repo.markPaidFn = func(ctx context.Context, id string) (int64, error) { return 0, nil }

	svc := NewService(db, repo, &fakeDirectory{})

	_, err := svc.MarkPaid(context.Background(), row.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrAlreadyPaid)
}
