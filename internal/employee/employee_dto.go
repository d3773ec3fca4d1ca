package employee

type CreateEmployeeRequest struct {
	FirstName      string  `json:"first_name" binding:"required"`
	LastName       string  `json:"last_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone" binding:"required"`
	Department     string  `json:"department"`
	Position       string  `json:"position"`
	SupervisorID   *string `json:"supervisor_id" binding:"omitempty,uuid"`
	HireDate       string  `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
	EmployeeNumber string  `json:"employee_number"`
}

// UpdateEmployeeRequest enumerates every mutable column. There is no
// patch-whatever-keys-arrive path; unknown fields are simply ignored by
// the binder and never reach SQL.
type UpdateEmployeeRequest struct {
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone" binding:"required"`
	Department   string  `json:"department"`
	Position     string  `json:"position"`
	SupervisorID *string `json:"supervisor_id" binding:"omitempty,uuid"`
	Status       string  `json:"status" binding:"required,oneof=active inactive terminated"`
}

type EmployeeResponse struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeNumber string  `json:"employee_number"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Department     string  `json:"department,omitempty"`
	Position       string  `json:"position,omitempty"`
	SupervisorID   *string `json:"supervisor_id,omitempty"`
	Status         string  `json:"status"`
	HireDate       string  `json:"hire_date,omitempty"`
}

// EmployeeOption is the trimmed shape used by dropdowns.
type EmployeeOption struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
}
