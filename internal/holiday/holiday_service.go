package holiday

import (
	"context"
	"time"

	"github.com/HirziKhalis/hrms-system/internal/shared/apperror"

	"go.uber.org/zap"
)

type Service interface {
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Import(ctx context.Context, req ImportHolidaysRequest) (int, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]HolidayResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	row, err := buildHoliday(req)
	if err != nil {
		return HolidayResponse{}, err
	}

	if err := s.repo.Upsert(ctx, row); err != nil {
		s.logger.Error("create holiday failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Import(ctx context.Context, req ImportHolidaysRequest) (int, error) {
	imported := 0
	for _, item := range req.Holidays {
		row, err := buildHoliday(item)
		if err != nil {
			return imported, err
		}
		if err := s.repo.Upsert(ctx, row); err != nil {
			s.logger.Error("import holiday failed",
				zap.String("holiday_date", item.HolidayDate),
				zap.Error(err),
			)
			return imported, err
		}
		imported++
	}

	s.logger.Info("holidays imported", zap.Int("count", imported))
	return imported, nil
}

func buildHoliday(req CreateHolidayRequest) (*Holiday, error) {
	date, err := time.Parse("2006-01-02", req.HolidayDate)
	if err != nil {
		return nil, apperror.InvalidField("holiday_date")
	}

	country := req.CountryCode
	if country == "" {
		country = "ID"
	}

	return &Holiday{
		HolidayDate: date,
		Name:        req.Name,
		CountryCode: country,
	}, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		HolidayDate: h.HolidayDate.Format("2006-01-02"),
		Name:        h.Name,
		CountryCode: h.CountryCode,
	}
}
