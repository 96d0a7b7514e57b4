package auth

import "placement_dashboard/internal/model"

var access = map[model.Role][]model.Kind{
	model.RoleSuperadmin: model.Kinds,
	model.RoleUniversity: {model.KindUniversityStudents},
	model.RoleCompany:    {model.KindCompanies},
}

// CanManage 判斷角色是否可以管理該實體
func CanManage(role model.Role, kind model.Kind) bool {
	for _, k := range access[role] {
		if k == kind {
			return true
		}
	}
	return false
}

// Manageable 回傳角色可以管理的實體
func Manageable(role model.Role) []model.Kind {
	kinds := access[role]
	out := make([]model.Kind, len(kinds))
	copy(out, kinds)
	return out
}
