package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	payrollerrors "github.com/HirziKhalis/hrms-system/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory answers whether an employee exists. Satisfied by the
// employee repository.
type EmployeeDirectory interface {
	Exists(ctx context.Context, employeeID string) (bool, error)
}

type Service interface {
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]PayrollResponse, error)
	ListAll(ctx context.Context, page, limit int, filter PayrollFilterRequest) ([]PayrollResponse, int64, error)
	MarkPaid(ctx context.Context, id string) (PayrollResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeDirectory
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees EmployeeDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, employees: employees, logger: l}
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, payrollerrors.ErrInvalidAmount
	}
	return d, nil
}

func (s *service) Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
	base, err := parseAmount(req.BaseSalary)
	if err != nil {
		return PayrollResponse{}, err
	}
	bonus, err := parseAmount(req.Bonus)
	if err != nil {
		return PayrollResponse{}, err
	}
	deductions, err := parseAmount(req.Deductions)
	if err != nil {
		return PayrollResponse{}, err
	}

	exists, err := s.employees.Exists(ctx, req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !exists {
		return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.ExistsForPeriod(ctx, req.EmployeeID, req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return PayrollResponse{}, err
	}
	if taken {
		return PayrollResponse{}, payrollerrors.ErrDuplicatePeriod
	}

	row := &Payroll{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(req.EmployeeID),
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		BaseSalary:  base,
		Bonus:       bonus,
		Deductions:  deductions,
		NetSalary:   base.Add(bonus).Sub(deductions),
		Status:      StatusCreated,
		Notes:       req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return PayrollResponse{}, payrollerrors.ErrDuplicatePeriod
		}
		s.logger.Error("create payroll insert failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(row), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(row), nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]PayrollResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]PayrollResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i])
	}
	return res, nil
}

func (s *service) ListAll(ctx context.Context, page, limit int, filter PayrollFilterRequest) ([]PayrollResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rows, total, err := s.repo.FindPage(ctx, page, limit, filter)
	if err != nil {
		return nil, 0, err
	}

	res := make([]PayrollResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i].Payroll)
		res[i].EmployeeName = rows[i].EmployeeName
	}
	return res, total, nil
}

func (s *service) MarkPaid(ctx context.Context, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	affected, err := s.repo.MarkPaid(ctx, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	if affected == 0 {
		return PayrollResponse{}, payrollerrors.ErrAlreadyPaid
	}

	now := time.Now().UTC()
	row.Status = StatusPaid
	row.PaidAt = &now
	return mapToResponse(row), nil
}

func mapToResponse(p *Payroll) PayrollResponse {
	resp := PayrollResponse{
		PayrollID:   p.ID.String(),
		EmployeeID:  p.EmployeeID.String(),
		PeriodMonth: p.PeriodMonth,
		PeriodYear:  p.PeriodYear,
		BaseSalary:  p.BaseSalary.StringFixed(2),
		Bonus:       p.Bonus.StringFixed(2),
		Deductions:  p.Deductions.StringFixed(2),
		NetSalary:   p.NetSalary.StringFixed(2),
		Status:      p.Status,
		Notes:       p.Notes,
	}
	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}
