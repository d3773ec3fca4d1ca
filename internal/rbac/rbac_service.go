package rbac

import (
	"strings"

	"github.com/HirziKhalis/hrms-system/internal/domain"

	"github.com/casbin/casbin/v2"
)

// Service answers role/permission questions. Roles form a chain
// (admin > manager > employee) through casbin grouping policies, so a
// permission granted to employee is implied for the two roles above it.
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{enforcer: enforcer}
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		return false, nil
	}
	return s.enforcer.Enforce(role, req.Resource, req.Action)
}
