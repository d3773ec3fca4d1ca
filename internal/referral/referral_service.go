package referral

import (
	"context"
	"errors"

	referralerrors "github.com/HirziKhalis/hrms-system/internal/referral/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Submit(ctx context.Context, referrerID string, req CreateReferralRequest) (ReferralResponse, error)
	ListMine(ctx context.Context, referrerID string) ([]ReferralResponse, error)
	ListAll(ctx context.Context, page, limit int) ([]ReferralResponse, int64, error)
	SetStatus(ctx context.Context, id, status string) (ReferralResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("referral.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("referral.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Submit(ctx context.Context, referrerID string, req CreateReferralRequest) (ReferralResponse, error) {
	refID, err := uuid.Parse(referrerID)
	if err != nil {
		return ReferralResponse{}, referralerrors.ErrInvalidEmployeeID
	}

	row := &Referral{
		ID:             uuid.New(),
		ReferrerID:     refID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		Position:       req.Position,
		Notes:          req.Notes,
		Status:         StatusSubmitted,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("submit referral insert failed", zap.Error(err))
		return ReferralResponse{}, err
	}
	return mapToResponse(row), nil
}

func (s *service) ListMine(ctx context.Context, referrerID string) ([]ReferralResponse, error) {
	if _, err := uuid.Parse(referrerID); err != nil {
		return nil, referralerrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindAllByReferrer(ctx, referrerID)
	if err != nil {
		return nil, err
	}

	res := make([]ReferralResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i])
	}
	return res, nil
}

func (s *service) ListAll(ctx context.Context, page, limit int) ([]ReferralResponse, int64, error) {
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

	res := make([]ReferralResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i].Referral)
		res[i].ReferrerName = rows[i].ReferrerName
	}
	return res, total, nil
}

func (s *service) SetStatus(ctx context.Context, id, status string) (ReferralResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ReferralResponse{}, referralerrors.ErrReferralNotFound
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReferralResponse{}, referralerrors.ErrReferralNotFound
		}
		return ReferralResponse{}, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return ReferralResponse{}, err
	}

	row.Status = status
	return mapToResponse(row), nil
}

func mapToResponse(r *Referral) ReferralResponse {
	return ReferralResponse{
		ReferralID:     r.ID.String(),
		ReferrerID:     r.ReferrerID.String(),
		CandidateName:  r.CandidateName,
		CandidateEmail: r.CandidateEmail,
		Position:       r.Position,
		Notes:          r.Notes,
		Status:         r.Status,
	}
}
