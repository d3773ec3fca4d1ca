package user

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager employee"`
}

type UserResponse struct {
	UserID       string  `json:"user_id"`
	Username     string  `json:"username"`
	Role         string  `json:"role"`
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName string  `json:"employee_name,omitempty"`
}
