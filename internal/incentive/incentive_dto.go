package incentive

type CreateIncentiveRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	Amount      string  `json:"amount" binding:"required"`
	Description *string `json:"description"`
	AwardedDate string  `json:"awarded_date" binding:"required,datetime=2006-01-02"`
}

type IncentiveResponse struct {
	IncentiveID  string  `json:"incentive_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Amount       string  `json:"amount"`
	Description  *string `json:"description,omitempty"`
	AwardedDate  string  `json:"awarded_date"`
}
