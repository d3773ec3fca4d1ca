package incentive

import (
	"context"
	"time"

	incentiveerrors "github.com/HirziKhalis/hrms-system/internal/incentive/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EmployeeDirectory answers whether an employee exists. Satisfied by the
// employee repository.
type EmployeeDirectory interface {
	Exists(ctx context.Context, employeeID string) (bool, error)
}

type Service interface {
	Create(ctx context.Context, req CreateIncentiveRequest) (IncentiveResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]IncentiveResponse, error)
	ListAll(ctx context.Context, page, limit int) ([]IncentiveResponse, int64, error)
}

type service struct {
	repo      Repository
	employees EmployeeDirectory
	logger    *zap.Logger
}

func NewService(repo Repository, employees EmployeeDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("incentive.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("incentive.service")
	}
	return &service{repo: repo, employees: employees, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateIncentiveRequest) (IncentiveResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return IncentiveResponse{}, incentiveerrors.ErrInvalidAmount
	}

	awardedDate, err := time.Parse("2006-01-02", req.AwardedDate)
	if err != nil {
		return IncentiveResponse{}, incentiveerrors.ErrInvalidAmount
	}

	exists, err := s.employees.Exists(ctx, req.EmployeeID)
	if err != nil {
		return IncentiveResponse{}, err
	}
	if !exists {
		return IncentiveResponse{}, incentiveerrors.ErrEmployeeNotFound
	}

	row := &Incentive{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(req.EmployeeID),
		Amount:      amount,
		Description: req.Description,
		AwardedDate: awardedDate,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create incentive insert failed", zap.Error(err))
		return IncentiveResponse{}, err
	}
	return mapToResponse(row), nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]IncentiveResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]IncentiveResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i])
	}
	return res, nil
}

func (s *service) ListAll(ctx context.Context, page, limit int) ([]IncentiveResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rows, total, err := s.repo.FindPage(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]IncentiveResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i].Incentive)
		res[i].EmployeeName = rows[i].EmployeeName
	}
	return res, total, nil
}

func mapToResponse(i *Incentive) IncentiveResponse {
	return IncentiveResponse{
		IncentiveID: i.ID.String(),
		EmployeeID:  i.EmployeeID.String(),
		Amount:      i.Amount.StringFixed(2),
		Description: i.Description,
		AwardedDate: i.AwardedDate.Format("2006-01-02"),
	}
}
