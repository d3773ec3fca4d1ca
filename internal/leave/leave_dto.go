package leave

type SubmitLeaveRequest struct {
	LeaveTypeID string  `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" binding:"required,datetime=2006-01-02"`
	Notes       *string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type QuotaUpsertItem struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	TotalDays   int    `json:"total_days" binding:"min=0"`
}

type UpsertQuotasRequest struct {
	Year   int               `json:"year" binding:"required,min=2000"`
	Quotas []QuotaUpsertItem `json:"quotas" binding:"required,min=1,dive"`
}

type LeaveRequestResponse struct {
	RequestID   string  `json:"request_id"`
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	LeaveType   string  `json:"leave_type,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalDays   int     `json:"total_days"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes,omitempty"`
	RequestDate string  `json:"request_date"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
}

// ReviewItem is one row of the admin/manager review listing, enriched
// with the names and quota standing the reviewer needs to decide.
type ReviewItem struct {
	LeaveRequestResponse
	EmployeeName   string `json:"employee_name"`
	SupervisorName string `json:"supervisor_name,omitempty"`
	IsQuotaLimited bool   `json:"is_quota_limited"`
	RequestedDays  int    `json:"requested_days"`
	RemainingDays  int    `json:"remaining_days"`
}

// QuotaSummary reports one leave type's standing for one employee.
// Unlimited types use -1 sentinels for total and remaining.
type QuotaSummary struct {
	LeaveTypeID   string `json:"leave_type_id"`
	TypeName      string `json:"type_name"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}

type QuotaGridItem struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	LeaveTypeID   string `json:"leave_type_id"`
	TypeName      string `json:"type_name"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}

type LeaveTypeResponse struct {
	LeaveTypeID    string `json:"leave_type_id"`
	TypeName       string `json:"type_name"`
	IsQuotaLimited bool   `json:"is_quota_limited"`
	DefaultDays    int    `json:"default_days"`
}
