package authz

import (
	"fmt"

	"github.com/tienda-next/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 调用方类别权限矩阵：员工继承会员，会员继承匿名
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleAnonymous,
			Policies: []Policy{
				{Object: "/productos/", Action: "GET"},
				{Object: "/productos/:id/", Action: "GET"},
				{Object: "/categorias/", Action: "GET"},
				{Object: "/categorias/:id/", Action: "GET"},
				{Object: "/auth/registro/", Action: "POST"},
				{Object: "/auth/login/", Action: "POST"},
			},
		},
		{
			Role:     constants.RoleMember,
			Inherits: []string{constants.RoleAnonymous},
			Policies: []Policy{
				{Object: "/auth/me/", Action: "GET"},
				{Object: "/auth/logout/", Action: "POST"},
				{Object: "/carritos/", Action: "GET"},
				{Object: "/carritos/", Action: "POST"},
				{Object: "/carritos/:id/", Action: "*"},
				{Object: "/carritos/:id/agregar_producto/", Action: "POST"},
				{Object: "/carritos/:id/eliminar_producto/", Action: "POST"},
				{Object: "/carrito-items/", Action: "GET"},
				{Object: "/carrito-items/", Action: "POST"},
				{Object: "/carrito-items/:id/", Action: "*"},
			},
		},
		{
			Role:     constants.RoleStaff,
			Inherits: []string{constants.RoleMember},
			Policies: []Policy{
				{Object: "/productos/", Action: "POST"},
				{Object: "/productos/:id/", Action: "*"},
				{Object: "/categorias/", Action: "POST"},
				{Object: "/categorias/:id/", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略（幂等）
// 预置角色以代码中的矩阵为准：库中多余的直接策略会被撤销，完成后重新加载策略。
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		for _, parent := range seed.Inherits {
			if _, err := s.LinkRole(seed.Role, parent); err != nil {
				return err
			}
		}
		wanted := make(map[string]struct{}, len(seed.Policies))
		for _, policy := range seed.Policies {
			if NormalizeAction(policy.Action) == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.GrantRolePolicy(seed.Role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			wanted[policyKey(policy)] = struct{}{}
		}
		if err := s.pruneRolePolicies(seed.Role, wanted); err != nil {
			return err
		}
	}
	return s.ReloadPolicy()
}

// pruneRolePolicies 撤销角色在矩阵之外的直接策略
func (s *Service) pruneRolePolicies(role string, wanted map[string]struct{}) error {
	current, err := s.GetRolePolicies(role)
	if err != nil {
		return err
	}
	for _, policy := range current {
		if _, ok := wanted[policyKey(policy)]; ok {
			continue
		}
		if err := s.RevokeRolePolicy(role, policy.Object, policy.Action); err != nil {
			return fmt.Errorf("prune builtin policy failed: %w", err)
		}
	}
	return nil
}

func policyKey(policy Policy) string {
	return NormalizeAction(policy.Action) + " " + NormalizeObject(policy.Object)
}
