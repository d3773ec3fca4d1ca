package payroll

type CreatePayrollRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	PeriodMonth int     `json:"period_month" binding:"required,min=1,max=12"`
	PeriodYear  int     `json:"period_year" binding:"required,min=2000"`
	BaseSalary  string  `json:"base_salary" binding:"required"`
	Bonus       string  `json:"bonus"`
	Deductions  string  `json:"deductions"`
	Notes       *string `json:"notes"`
}

type PayrollFilterRequest struct {
	PeriodMonth int `form:"period_month" binding:"omitempty,min=1,max=12"`
	PeriodYear  int `form:"period_year" binding:"omitempty,min=2000"`
}

type PayrollResponse struct {
	PayrollID    string  `json:"payroll_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	PeriodMonth  int     `json:"period_month"`
	PeriodYear   int     `json:"period_year"`
	BaseSalary   string  `json:"base_salary"`
	Bonus        string  `json:"bonus"`
	Deductions   string  `json:"deductions"`
	NetSalary    string  `json:"net_salary"`
	Status       string  `json:"status"`
	PaidAt       *string `json:"paid_at,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}
