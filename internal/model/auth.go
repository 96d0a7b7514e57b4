package model

// Role 是登入者的角色
type Role string

const (
	RoleStudent    Role = "student"
	RoleCompany    Role = "company"
	RoleUniversity Role = "university"
	RoleSuperadmin Role = "superadmin"
)

// Valid 判斷角色是否已知
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleUniversity, RoleSuperadmin:
		return true
	}
	return false
}

// LoginRequest 登入請求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// LoginResponse 登入回應的 data
type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}
