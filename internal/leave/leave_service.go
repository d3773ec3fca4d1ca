package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/HirziKhalis/hrms-system/internal/events"
	leaveerrors "github.com/HirziKhalis/hrms-system/internal/leave/errors"
	"github.com/HirziKhalis/hrms-system/internal/messaging/kafka"
	"github.com/HirziKhalis/hrms-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const quotaCacheTTL = time.Hour

// SupervisorDirectory answers who an employee reports to. Satisfied by
// the employee repository.
type SupervisorDirectory interface {
	GetSupervisorID(ctx context.Context, employeeID string) (*string, error)
}

// HolidayCalendar yields the public holidays inside a date range.
// Satisfied by the holiday repository.
type HolidayCalendar interface {
	DatesBetween(ctx context.Context, start, end time.Time) (map[string]struct{}, error)
}

type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListForReview(ctx context.Context, page, limit int) ([]ReviewItem, int64, error)
	SetStatus(ctx context.Context, actorEmployeeID, role, requestID, newStatus string) (LeaveRequestResponse, error)
	MyQuota(ctx context.Context, employeeID string) ([]QuotaSummary, error)
	ListTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	QuotaGrid(ctx context.Context, page, limit int) ([]QuotaGridItem, int64, error)
	UpsertQuotas(ctx context.Context, employeeID string, req UpsertQuotasRequest) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	quotas      QuotaRepository
	supervisors SupervisorDirectory
	calendar    HolidayCalendar
	outbox      kafka.OutboxRepository
	rdb         *redis.Client
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	quotas QuotaRepository,
	supervisors SupervisorDirectory,
	calendar HolidayCalendar,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		quotas:      quotas,
		supervisors: supervisors,
		calendar:    calendar,
		outbox:      outbox,
		rdb:         rdb,
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateRange
	}

	leaveType, err := s.repo.GetType(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveTypeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if existing, dupErr := s.repo.FindDuplicate(ctx, employeeID, req.LeaveTypeID, start, end); dupErr != nil {
		return LeaveRequestResponse{}, dupErr
	} else if existing != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrDuplicateRequest.WithDetails(map[string]string{
			"request_id": existing.ID.String(),
			"status":     existing.Status,
		})
	}

	row := &LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  empID,
		LeaveTypeID: leaveType.ID,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   InclusiveDays(start, end),
		Status:      StatusPending,
		Notes:       req.Notes,
		RequestDate: s.now().UTC().Truncate(24 * time.Hour),
	}

	if err := s.repo.Create(ctx, row); err != nil {
		// The unique index closes the gap between the duplicate check
		// and the insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return LeaveRequestResponse{}, leaveerrors.ErrDuplicateRequest
		}
		s.logger.Error("submit leave insert failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request submitted",
		zap.String("request_id", rid),
		zap.String("leave_request_id", row.ID.String()),
		zap.String("employee_id", employeeID),
	)

	resp := mapRequest(row)
	resp.LeaveType = leaveType.TypeName
	return resp, nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]LeaveRequestResponse, len(rows))
	for i := range rows {
		res[i] = mapRequest(&rows[i].LeaveRequest)
		res[i].LeaveType = rows[i].TypeName
	}
	return res, nil
}

func (s *service) ListForReview(ctx context.Context, page, limit int) ([]ReviewItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	year := s.now().Year()
	rows, total, err := s.repo.FindPageForReview(ctx, page, limit, year)
	if err != nil {
		return nil, 0, err
	}

	items := make([]ReviewItem, len(rows))
	for i, row := range rows {
		item := ReviewItem{
			LeaveRequestResponse: LeaveRequestResponse{
				RequestID:   row.RequestID,
				EmployeeID:  row.EmployeeID,
				LeaveTypeID: row.LeaveTypeID,
				LeaveType:   row.TypeName,
				StartDate:   row.StartDate.Format("2006-01-02"),
				EndDate:     row.EndDate.Format("2006-01-02"),
				TotalDays:   InclusiveDays(row.StartDate, row.EndDate),
				Status:      row.Status,
				Notes:       row.Notes,
				RequestDate: row.RequestDate.Format("2006-01-02"),
				ApprovedBy:  row.ApprovedBy,
			},
			EmployeeName:   row.EmployeeName,
			SupervisorName: row.SupervisorName,
			IsQuotaLimited: row.IsQuotaLimited,
			RequestedDays:  InclusiveDays(row.StartDate, row.EndDate),
		}
		if row.IsQuotaLimited {
			item.RemainingDays = row.TotalDays - row.UsedDays
		} else {
			item.RemainingDays = -1
		}
		items[i] = item
	}
	return items, total, nil
}

// SetStatus finalizes a pending request. Approval of a quota-limited type
// reserves working days against the ledger and records the outbox event
// in the same transaction, so either all of it lands or none of it does.
func (s *service) SetStatus(ctx context.Context, actorEmployeeID, role, requestID, newStatus string) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if newStatus != StatusApproved && newStatus != StatusRejected {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidStatus
	}
	if _, err := uuid.Parse(requestID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrRequestNotFound
	}

	row, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if row.Status != StatusPending {
		return LeaveRequestResponse{}, leaveerrors.ErrAlreadyFinalized
	}

	if role != "admin" {
		supervisorID, supErr := s.supervisors.GetSupervisorID(ctx, row.EmployeeID.String())
		if supErr != nil {
			return LeaveRequestResponse{}, supErr
		}
		if supervisorID == nil || *supervisorID != actorEmployeeID {
			return LeaveRequestResponse{}, leaveerrors.ErrNotDirectSupervisor
		}
	}

	leaveType, err := s.repo.GetType(ctx, row.LeaveTypeID.String())
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	year := s.now().Year()
	leaveDays := 0

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set leave status begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	if newStatus == StatusApproved && leaveType.IsQuotaLimited {
		holidays, calErr := s.calendar.DatesBetween(ctx, row.StartDate, row.EndDate)
		if calErr != nil {
			return LeaveRequestResponse{}, calErr
		}
		leaveDays = WorkingDays(row.StartDate, row.EndDate, holidays)

		qtx := s.quotas.WithTx(tx)
		if err := qtx.EnsureRow(ctx, row.EmployeeID.String(), row.LeaveTypeID.String(), year, leaveType.DefaultDays); err != nil {
			return LeaveRequestResponse{}, err
		}
		if leaveDays > 0 {
			ok, consumeErr := qtx.TryConsume(ctx, row.EmployeeID.String(), row.LeaveTypeID.String(), year, leaveDays)
			if consumeErr != nil {
				return LeaveRequestResponse{}, consumeErr
			}
			if !ok {
				return LeaveRequestResponse{}, leaveerrors.ErrQuotaExceeded
			}
		}
	}

	affected, err := s.repo.WithTx(tx).TransitionStatus(ctx, requestID, newStatus, actorEmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if affected == 0 {
		// A concurrent reviewer won the race; the ledger reservation
		// above rolls back with the tx.
		return LeaveRequestResponse{}, leaveerrors.ErrAlreadyFinalized
	}

	eventType := events.LeaveApprovedEventType
	if newStatus == StatusRejected {
		eventType = events.LeaveRejectedEventType
	}
	payload, err := json.Marshal(events.LeaveStatusChangedEvent{
		RequestID:   requestID,
		EmployeeID:  row.EmployeeID.String(),
		LeaveTypeID: row.LeaveTypeID.String(),
		Status:      newStatus,
		LeaveDays:   leaveDays,
		Year:        year,
		ApprovedBy:  actorEmployeeID,
	})
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   requestID,
		EventType:     eventType,
		Topic:         events.LeaveStatusTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.invalidateQuotaCache(ctx, row.EmployeeID.String(), year)
	s.logger.Info("leave request finalized",
		zap.String("request_id", rid),
		zap.String("leave_request_id", requestID),
		zap.String("status", newStatus),
		zap.Int("leave_days", leaveDays),
	)

	row.Status = newStatus
	approver, _ := uuid.Parse(actorEmployeeID)
	row.ApprovedBy = &approver

	resp := mapRequest(row)
	resp.LeaveType = leaveType.TypeName
	return resp, nil
}

// MyQuota reports the current-year standing per leave type. Usage is
// recomputed from approved requests rather than read off the ledger, so
// a drifted ledger never misreports balances.
func (s *service) MyQuota(ctx context.Context, employeeID string) ([]QuotaSummary, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	year := s.now().Year()
	cacheKey := events.QuotaCacheKey(employeeID, year)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var summaries []QuotaSummary
			if jsonErr := json.Unmarshal([]byte(cached), &summaries); jsonErr == nil {
				return summaries, nil
			}
		}
	}

	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]QuotaSummary, 0, len(types))
	for _, lt := range types {
		summary := QuotaSummary{
			LeaveTypeID: lt.ID.String(),
			TypeName:    lt.TypeName,
		}

		if !lt.IsQuotaLimited {
			summary.TotalDays = -1
			summary.UsedDays = 0
			summary.RemainingDays = -1
			summaries = append(summaries, summary)
			continue
		}

		total, found, qErr := s.quotas.GetTotalDays(ctx, employeeID, lt.ID.String(), year)
		if qErr != nil {
			return nil, qErr
		}
		if !found {
			total = lt.DefaultDays
		}

		used, sumErr := s.repo.SumApprovedDays(ctx, employeeID, lt.ID.String(), year)
		if sumErr != nil {
			return nil, sumErr
		}

		summary.TotalDays = total
		summary.UsedDays = used
		summary.RemainingDays = total - used
		summaries = append(summaries, summary)
	}

	if s.rdb != nil {
		if payload, jsonErr := json.Marshal(summaries); jsonErr == nil {
			_ = s.rdb.Set(ctx, cacheKey, payload, quotaCacheTTL).Err()
		}
	}
	return summaries, nil
}

func (s *service) ListTypes(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		res[i] = LeaveTypeResponse{
			LeaveTypeID:    lt.ID.String(),
			TypeName:       lt.TypeName,
			IsQuotaLimited: lt.IsQuotaLimited,
			DefaultDays:    lt.DefaultDays,
		}
	}
	return res, nil
}

func (s *service) QuotaGrid(ctx context.Context, page, limit int) ([]QuotaGridItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rows, total, err := s.repo.QuotaGrid(ctx, page, limit, s.now().Year())
	if err != nil {
		return nil, 0, err
	}

	items := make([]QuotaGridItem, len(rows))
	for i, row := range rows {
		items[i] = QuotaGridItem{
			EmployeeID:    row.EmployeeID,
			EmployeeName:  row.EmployeeName,
			LeaveTypeID:   row.LeaveTypeID,
			TypeName:      row.TypeName,
			TotalDays:     row.TotalDays,
			UsedDays:      row.UsedDays,
			RemainingDays: row.TotalDays - row.UsedDays,
		}
	}
	return items, total, nil
}

func (s *service) UpsertQuotas(ctx context.Context, employeeID string, req UpsertQuotasRequest) error {
	if _, err := uuid.Parse(employeeID); err != nil {
		return leaveerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.quotas.WithTx(tx)
	for _, item := range req.Quotas {
		leaveType, typeErr := s.repo.GetType(ctx, item.LeaveTypeID)
		if typeErr != nil {
			if errors.Is(typeErr, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveTypeNotFound
			}
			return typeErr
		}
		if err := qtx.UpsertTotalDays(ctx, employeeID, leaveType.ID.String(), req.Year, item.TotalDays); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateQuotaCache(ctx, employeeID, req.Year)
	return nil
}

func (s *service) invalidateQuotaCache(ctx context.Context, employeeID string, year int) {
	if s.rdb == nil {
		return
	}
	key := events.QuotaCacheKey(employeeID, year)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("invalidate quota cache failed", zap.String("employee_id", employeeID), zap.Error(err))
	}
}

func mapRequest(lr *LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		RequestID:   lr.ID.String(),
		EmployeeID:  lr.EmployeeID.String(),
		LeaveTypeID: lr.LeaveTypeID.String(),
		StartDate:   lr.StartDate.Format("2006-01-02"),
		EndDate:     lr.EndDate.Format("2006-01-02"),
		TotalDays:   lr.TotalDays,
		Status:      lr.Status,
		Notes:       lr.Notes,
		RequestDate: lr.RequestDate.Format("2006-01-02"),
	}
	if lr.ApprovedBy != nil {
		v := lr.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	return resp
}
