package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "github.com/HirziKhalis/hrms-system/internal/employee/errors"
	"github.com/HirziKhalis/hrms-system/internal/shared/contextutil"
	"github.com/HirziKhalis/hrms-system/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const employeeOptionsKey = "employees:options"

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.EmailExists(ctx, req.Email, nil)
	if err != nil {
		s.logger.Error("create employee email check failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if taken {
		return EmployeeResponse{}, employeeerrors.ErrEmailTaken
	}

	var supervisorID *uuid.UUID
	if req.SupervisorID != nil && *req.SupervisorID != "" {
		parsed, parseErr := uuid.Parse(*req.SupervisorID)
		if parseErr != nil {
			return EmployeeResponse{}, employeeerrors.ErrSupervisorNotFound
		}
		exists, existsErr := qtx.Exists(ctx, parsed.String())
		if existsErr != nil {
			return EmployeeResponse{}, existsErr
		}
		if !exists {
			return EmployeeResponse{}, employeeerrors.ErrSupervisorNotFound
		}
		supervisorID = &parsed
	}

	employeeNumber := req.EmployeeNumber
	if employeeNumber == "" {
		nextVal, counterErr := s.counter.GetNextValue(ctx, "employee_number")
		if counterErr != nil {
			s.logger.Error("create employee generate number failed", zap.Error(counterErr))
			return EmployeeResponse{}, counterErr
		}
		employeeNumber = fmt.Sprintf("EMP-%05d", nextVal)
	}

	var hireDate *time.Time
	if req.HireDate != "" {
		parsed, parseErr := time.Parse("2006-01-02", req.HireDate)
		if parseErr != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		hireDate = &parsed
	}

	row := &Employee{
		ID:             uuid.New(),
		EmployeeNumber: employeeNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Department:     req.Department,
		Position:       req.Position,
		SupervisorID:   supervisorID,
		Status:         "active",
		HireDate:       hireDate,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create employee insert failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	return mapToResponse(row), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]EmployeeResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i])
	}
	return res, nil
}

// GetOptions serves the dropdown list from redis when possible and
// collapses concurrent cache misses into a single DB query.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, employeeOptionsKey).Result(); err == nil {
			var options []EmployeeOption
			if jsonErr := json.Unmarshal([]byte(cached), &options); jsonErr == nil {
				return options, nil
			}
		}
	}

	v, err, _ := s.sf.Do(employeeOptionsKey, func() (interface{}, error) {
		rows, dbErr := s.repo.FindAll(ctx)
		if dbErr != nil {
			return nil, dbErr
		}

		options := make([]EmployeeOption, len(rows))
		for i, row := range rows {
			options[i] = EmployeeOption{
				EmployeeID: row.ID.String(),
				FullName:   row.FirstName + " " + row.LastName,
			}
		}

		if s.rdb != nil {
			if payload, jsonErr := json.Marshal(options); jsonErr == nil {
				_ = s.rdb.Set(ctx, employeeOptionsKey, payload, 10*time.Minute).Err()
			}
		}

		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	return mapToResponse(row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	taken, err := qtx.EmailExists(ctx, req.Email, &id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if taken {
		return EmployeeResponse{}, employeeerrors.ErrEmailTaken
	}

	var supervisorID *uuid.UUID
	if req.SupervisorID != nil && *req.SupervisorID != "" {
		parsed, parseErr := uuid.Parse(*req.SupervisorID)
		if parseErr != nil {
			return EmployeeResponse{}, employeeerrors.ErrSupervisorNotFound
		}
		exists, existsErr := qtx.Exists(ctx, parsed.String())
		if existsErr != nil {
			return EmployeeResponse{}, existsErr
		}
		if !exists {
			return EmployeeResponse{}, employeeerrors.ErrSupervisorNotFound
		}
		supervisorID = &parsed
	}

	row.FirstName = req.FirstName
	row.LastName = req.LastName
	row.Email = req.Email
	row.Phone = req.Phone
	row.Department = req.Department
	row.Position = req.Position
	row.SupervisorID = supervisorID
	row.Status = req.Status

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("update employee failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	return mapToResponse(row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, employeeOptionsKey).Err(); err != nil {
		s.logger.Warn("invalidate employee options cache failed", zap.Error(err))
	}
}

func mapToResponse(e *Employee) EmployeeResponse {
	resp := EmployeeResponse{
		EmployeeID:     e.ID.String(),
		EmployeeNumber: e.EmployeeNumber,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Phone:          e.Phone,
		Department:     e.Department,
		Position:       e.Position,
		Status:         e.Status,
	}
	if e.SupervisorID != nil {
		v := e.SupervisorID.String()
		resp.SupervisorID = &v
	}
	if e.HireDate != nil {
		resp.HireDate = e.HireDate.Format("2006-01-02")
	}
	return resp
}
