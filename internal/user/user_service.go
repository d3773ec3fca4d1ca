package user

import (
	"context"
	"errors"

	usererrors "github.com/HirziKhalis/hrms-system/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	List(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	UpdateRole(ctx context.Context, actorUserID, targetID, role string) (UserResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
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

	res := make([]UserResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i])
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(row), nil
}

// UpdateRole is the only way a role changes: an explicit, validated
// field. Admins cannot change their own role, which keeps at least the
// acting admin in place.
func (s *service) UpdateRole(ctx context.Context, actorUserID, targetID, role string) (UserResponse, error) {
	if _, err := uuid.Parse(targetID); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	if actorUserID == targetID {
		return UserResponse{}, usererrors.ErrSelfDemotion
	}

	affected, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return UserResponse{}, err
	}
	if affected == 0 {
		return UserResponse{}, usererrors.ErrUserNotFound
	}

	s.logger.Info("user role updated",
		zap.String("target_user_id", targetID),
		zap.String("role", role),
		zap.String("actor_user_id", actorUserID),
	)

	row, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(row), nil
}

func mapToResponse(r *Row) UserResponse {
	resp := UserResponse{
		UserID:     r.UserID,
		Username:   r.Username,
		Role:       r.Role,
		EmployeeID: r.EmployeeID,
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	return resp
}
