package overtime

type CreateOvertimeRequest struct {
	OvertimeDate string  `json:"overtime_date" binding:"required,datetime=2006-01-02"`
	Hours        float64 `json:"hours" binding:"required,gt=0,lte=12"`
	Reason       *string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type OvertimeResponse struct {
	OvertimeID   string  `json:"overtime_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	OvertimeDate string  `json:"overtime_date"`
	Hours        float64 `json:"hours"`
	Reason       *string `json:"reason,omitempty"`
	Status       string  `json:"status"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
}
