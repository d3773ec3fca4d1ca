package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// RequestWithType is a request row joined with its type name, for the
// employee-facing listing.
type RequestWithType struct {
	LeaveRequest
	TypeName string
}

// ReviewRow carries everything the review listing shows for one request,
// including the requester's quota standing recomputed from approved rows.
type ReviewRow struct {
	RequestID      string
	EmployeeID     string
	EmployeeName   string
	SupervisorName string
	LeaveTypeID    string
	TypeName       string
	IsQuotaLimited bool
	StartDate      time.Time
	EndDate        time.Time
	Status         string
	Notes          *string
	RequestDate    time.Time
	ApprovedBy     *string
	TotalDays      int
	UsedDays       int
}

// QuotaGridRow is one (employee, leave type) cell of the admin quota grid.
type QuotaGridRow struct {
	EmployeeID   string
	EmployeeName string
	LeaveTypeID  string
	TypeName     string
	TotalDays    int
	UsedDays     int
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindDuplicate(ctx context.Context, employeeID, leaveTypeID string, start, end time.Time) (*LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]RequestWithType, error)
	FindPageForReview(ctx context.Context, page, limit, year int) ([]ReviewRow, int64, error)
	TransitionStatus(ctx context.Context, id, newStatus, approverID string) (int64, error)
	GetType(ctx context.Context, id string) (*LeaveType, error)
	ListTypes(ctx context.Context) ([]LeaveType, error)
	SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error)
	QuotaGrid(ctx context.Context, page, limit, year int) ([]QuotaGridRow, int64, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	query := `
        INSERT INTO hr.leave_requests (
            request_id, employee_id, leave_type_id, start_date, end_date,
            total_days, status, notes, request_date
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `

	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		lr.ID, lr.EmployeeID, lr.LeaveTypeID, lr.StartDate, lr.EndDate,
		lr.TotalDays, lr.Status, lr.Notes, lr.RequestDate,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).First(&lr, "request_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) FindDuplicate(ctx context.Context, employeeID, leaveTypeID string, start, end time.Time) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND leave_type_id = ? AND start_date = ? AND end_date = ?",
			employeeID, leaveTypeID, start, end).
		First(&lr).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]RequestWithType, error) {
	query := `
SELECT
	lr.request_id::text AS id,
	lr.employee_id,
	lr.leave_type_id,
	lr.start_date,
	lr.end_date,
	lr.total_days,
	lr.status,
	lr.notes,
	lr.request_date,
	lr.approved_by,
	lt.type_name
FROM hr.leave_requests lr
JOIN hr.leave_types lt ON lt.leave_type_id = lr.leave_type_id
WHERE lr.employee_id = ?
ORDER BY lr.request_date DESC, lr.created_at DESC
`

	var rows []RequestWithType
	err := r.db.WithContext(ctx).Raw(query, employeeID).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindPageForReview(ctx context.Context, page, limit, year int) ([]ReviewRow, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `
SELECT
	lr.request_id::text AS request_id,
	lr.employee_id::text AS employee_id,
	e.first_name || ' ' || e.last_name AS employee_name,
	COALESCE(sup.first_name || ' ' || sup.last_name, '') AS supervisor_name,
	lr.leave_type_id::text AS leave_type_id,
	lt.type_name,
	lt.is_quota_limited,
	lr.start_date,
	lr.end_date,
	lr.status,
	lr.notes,
	lr.request_date,
	lr.approved_by::text AS approved_by,
	COALESCE(lq.total_days, lt.default_days) AS total_days,
	COALESCE(used.used_days, 0) AS used_days
FROM hr.leave_requests lr
JOIN hr.employees e ON e.employee_id = lr.employee_id
LEFT JOIN hr.employees sup ON sup.employee_id = e.supervisor_id
JOIN hr.leave_types lt ON lt.leave_type_id = lr.leave_type_id
LEFT JOIN hr.leave_quotas lq
	ON lq.employee_id = lr.employee_id
	AND lq.leave_type_id = lr.leave_type_id
	AND lq.year = ?
LEFT JOIN (
	SELECT employee_id, leave_type_id, SUM(end_date - start_date + 1) AS used_days
	FROM hr.leave_requests
	WHERE status = 'approved' AND EXTRACT(YEAR FROM start_date) = ?
	GROUP BY employee_id, leave_type_id
) used
	ON used.employee_id = lr.employee_id
	AND used.leave_type_id = lr.leave_type_id
ORDER BY lr.request_date DESC, lr.created_at DESC
LIMIT ? OFFSET ?
`

	offset := (page - 1) * limit
	var rows []ReviewRow
	err := r.db.WithContext(ctx).Raw(query, year, year, limit, offset).Scan(&rows).Error
	return rows, total, err
}

// TransitionStatus finalizes a pending request. The WHERE status guard
// makes the transition one-way: zero rows affected means the request was
// already approved or rejected by a concurrent reviewer.
func (r *repository) TransitionStatus(ctx context.Context, id, newStatus, approverID string) (int64, error) {
	query := `
UPDATE hr.leave_requests
SET
	status = $2,
	approved_by = $3,
	updated_at = NOW()
WHERE request_id = $1 AND status = 'pending'
`

	exec := r.execer()
	res, err := exec.ExecContext(ctx, query, id, newStatus, approverID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) GetType(ctx context.Context, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "leave_type_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) ListTypes(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).Order("type_name").Find(&types).Error
	return types, err
}

// SumApprovedDays recomputes usage from approved rows. It is the
// authoritative figure for reads; the ledger's used_days only gates
// concurrent approvals.
func (r *repository) SumApprovedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	query := `
SELECT COALESCE(SUM(end_date - start_date + 1), 0)
FROM hr.leave_requests
WHERE employee_id = ?
	AND leave_type_id = ?
	AND status = 'approved'
	AND EXTRACT(YEAR FROM start_date) = ?
`

	var sum int
	err := r.db.WithContext(ctx).Raw(query, employeeID, leaveTypeID, year).Scan(&sum).Error
	return sum, err
}

func (r *repository) QuotaGrid(ctx context.Context, page, limit, year int) ([]QuotaGridRow, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Table("hr.employees").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `
SELECT
	e.employee_id::text AS employee_id,
	e.first_name || ' ' || e.last_name AS employee_name,
	lt.leave_type_id::text AS leave_type_id,
	lt.type_name,
	COALESCE(lq.total_days, lt.default_days) AS total_days,
	COALESCE(used.used_days, 0) AS used_days
FROM (
	SELECT employee_id, first_name, last_name
	FROM hr.employees
	ORDER BY last_name, first_name
	LIMIT ? OFFSET ?
) e
CROSS JOIN hr.leave_types lt
LEFT JOIN hr.leave_quotas lq
	ON lq.employee_id = e.employee_id
	AND lq.leave_type_id = lt.leave_type_id
	AND lq.year = ?
LEFT JOIN (
	SELECT employee_id, leave_type_id, SUM(end_date - start_date + 1) AS used_days
	FROM hr.leave_requests
	WHERE status = 'approved' AND EXTRACT(YEAR FROM start_date) = ?
	GROUP BY employee_id, leave_type_id
) used
	ON used.employee_id = e.employee_id
	AND used.leave_type_id = lt.leave_type_id
WHERE lt.is_quota_limited
ORDER BY e.last_name, e.first_name, lt.type_name
`

	offset := (page - 1) * limit
	var rows []QuotaGridRow
	err := r.db.WithContext(ctx).Raw(query, limit, offset, year, year).Scan(&rows).Error
	return rows, total, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
