package events

import "fmt"

const (
	LeaveStatusTopic = "hr.leave.status"

	LeaveApprovedEventType = "leave.approved"
	LeaveRejectedEventType = "leave.rejected"
)

// LeaveStatusChangedEvent is published (through the outbox) whenever a
// leave request leaves the pending state.
type LeaveStatusChangedEvent struct {
	RequestID   string `json:"request_id"`
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	Status      string `json:"status"`
	LeaveDays   int    `json:"leave_days"`
	Year        int    `json:"year"`
	ApprovedBy  string `json:"approved_by"`
}

// QuotaCacheKey is the redis key holding an employee's cached quota
// summary for one year. Writers cache under it, the consumer deletes it.
func QuotaCacheKey(employeeID string, year int) string {
	return fmt.Sprintf("leave:quota:%s:%d", employeeID, year)
}
