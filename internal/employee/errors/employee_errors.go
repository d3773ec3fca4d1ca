package employeeerrors

import (
	"net/http"

	"github.com/HirziKhalis/hrms-system/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"email is already in use",
		http.StatusConflict,
	)
	ErrSupervisorNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"supervisor does not exist",
		http.StatusBadRequest,
	)
)
