package overtime

import (
	"context"
	"database/sql"
	"errors"
	"time"

	overtimeerrors "github.com/HirziKhalis/hrms-system/internal/overtime/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SupervisorDirectory answers who an employee reports to. Satisfied by
// the employee repository.
type SupervisorDirectory interface {
	GetSupervisorID(ctx context.Context, employeeID string) (*string, error)
}

type Service interface {
	Submit(ctx context.Context, employeeID string, req CreateOvertimeRequest) (OvertimeResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]OvertimeResponse, error)
	ListAll(ctx context.Context, page, limit int) ([]OvertimeResponse, int64, error)
	SetStatus(ctx context.Context, actorEmployeeID, role, overtimeID, newStatus string) (OvertimeResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	supervisors SupervisorDirectory
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, supervisors SupervisorDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("overtime.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("overtime.service")
	}
	return &service{db: db, repo: repo, supervisors: supervisors, logger: l}
}

func (s *service) Submit(ctx context.Context, employeeID string, req CreateOvertimeRequest) (OvertimeResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidEmployeeID
	}

	date, err := time.Parse("2006-01-02", req.OvertimeDate)
	if err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidDateFormat
	}

	row := &Overtime{
		ID:           uuid.New(),
		EmployeeID:   empID,
		OvertimeDate: date,
		Hours:        req.Hours,
		Reason:       req.Reason,
		Status:       StatusPending,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("submit overtime insert failed", zap.Error(err))
		return OvertimeResponse{}, err
	}
	return mapToResponse(row), nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]OvertimeResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, overtimeerrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]OvertimeResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i])
	}
	return res, nil
}

func (s *service) ListAll(ctx context.Context, page, limit int) ([]OvertimeResponse, int64, error) {
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

	res := make([]OvertimeResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i].Overtime)
		res[i].EmployeeName = rows[i].EmployeeName
	}
	return res, total, nil
}

func (s *service) SetStatus(ctx context.Context, actorEmployeeID, role, overtimeID, newStatus string) (OvertimeResponse, error) {
	if _, err := uuid.Parse(overtimeID); err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotFound
	}

	row, err := s.repo.FindByID(ctx, overtimeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotFound
		}
		return OvertimeResponse{}, err
	}
	if row.Status != StatusPending {
		return OvertimeResponse{}, overtimeerrors.ErrAlreadyFinalized
	}

	if role != "admin" {
		supervisorID, supErr := s.supervisors.GetSupervisorID(ctx, row.EmployeeID.String())
		if supErr != nil {
			return OvertimeResponse{}, supErr
		}
		if supervisorID == nil || *supervisorID != actorEmployeeID {
			return OvertimeResponse{}, overtimeerrors.ErrNotDirectSupervisor
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OvertimeResponse{}, err
	}
	defer tx.Rollback()

	affected, err := s.repo.WithTx(tx).TransitionStatus(ctx, overtimeID, newStatus, actorEmployeeID)
	if err != nil {
		return OvertimeResponse{}, err
	}
	if affected == 0 {
		return OvertimeResponse{}, overtimeerrors.ErrAlreadyFinalized
	}

	if err := tx.Commit(); err != nil {
		return OvertimeResponse{}, err
	}

	row.Status = newStatus
	approver, _ := uuid.Parse(actorEmployeeID)
	row.ApprovedBy = &approver
	return mapToResponse(row), nil
}

func mapToResponse(o *Overtime) OvertimeResponse {
	resp := OvertimeResponse{
		OvertimeID:   o.ID.String(),
		EmployeeID:   o.EmployeeID.String(),
		OvertimeDate: o.OvertimeDate.Format("2006-01-02"),
		Hours:        o.Hours,
		Reason:       o.Reason,
		Status:       o.Status,
	}
	if o.ApprovedBy != nil {
		v := o.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	return resp
}
